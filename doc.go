// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dynv provides a value-semantic polymorphic container with
// small-buffer optimization.
//
// A [Value] owns exactly one instance of some concrete type implementing
// its declared base interface. It behaves like an ordinary value: it can
// be cloned and moved, it is never empty once constructed, and small
// pointer-free payloads live directly inside the container's own inline
// buffer instead of on the heap.
//
// # Quick Start
//
//	type Shape interface {
//		Area() float64
//	}
//
//	type Circle struct{ R float64 }
//
//	func (c *Circle) Area() float64 { return math.Pi * c.R * c.R }
//
//	// Construct by copy; Circle is 8 bytes and pointer-free, so it is
//	// stored inline.
//	v := dynv.New[Shape](&Circle{R: 2})
//	fmt.Println(v.Get().Area())
//
//	// Emplace directly, avoiding any copy or move of the payload.
//	w := dynv.Emplace[Shape](Circle{R: 3})
//
//	// Clone and move between containers; the concrete type travels with
//	// the value through its installed operation descriptor.
//	c := dynv.Clone[Shape](w)
//	m := dynv.Move[Shape](w) // w is now moved-from
//
// # Locality
//
// Each container carries a fixed inline buffer. A stored value of concrete
// type T is placed inline exactly when
//
//	sizeof(T) <= capacity  and  T contains no pointer words
//
// and is heap-placed otherwise, transparently to the caller. The
// pointer-free requirement exists because the garbage collector does not
// scan raw buffer bytes; pointer-carrying payloads always live behind an
// owned heap reference. [Value.Local] reports the current placement and
// [HeapAllocs] counts heap placements package-wide.
//
// Capacity is configuration, not a type parameter:
//
//	small := dynv.Emplace[Shape](Circle{R: 1}, dynv.WithCapacity(16))
//	big   := dynv.Clone[Shape](small, dynv.WithCapacity(64))
//
// Valid capacities range from the size of a pointer to [MaxCapacity];
// anything else panics at construction. The default is [DefaultCapacity].
// Fit is always computed against the receiving container's capacity, so
// containers of different capacities interoperate freely.
//
// # Transfer Permissions
//
// [Attr] controls whether a container may be cloned or moved:
//
//	// Movable but never copyable, e.g. for payloads owning resources.
//	v := dynv.Emplace[Shape](Circle{R: 1}, dynv.WithAttrs(dynv.AttrMovable))
//
// Copies require a copyable configuration. Moves require a movable
// configuration and silently degrade to copies on copyable-only
// configurations. Violations panic; there are no error returns for
// contract misuse.
//
// # Hooks
//
// Payload types may opt into lifecycle control through three optional
// interfaces: [Cloner] customizes copies, [Mover] customizes moves, and
// [Disposer] runs teardown when a value is replaced or disposed. Types
// without hooks are copied shallowly, which is Go's native semantics.
// Emplacement ([Emplace], [Replace]) bypasses clone and move hooks
// entirely.
//
// When a value moves between containers:
//
//  1. A heap-resident payload is stolen: the pointer changes hands, no
//     hook runs, no allocation occurs.
//  2. An inline payload too large for the target goes to the heap, via
//     MoveValue, else CloneValue, else shallow copy.
//  3. An inline payload that fits is re-placed inline the same way.
//
// The source is left moved-from: reads panic until a new value is
// assigned, while reassignment and [Value.Dispose] remain safe.
//
// # Move-Only Callables
//
// [Func] applies the container to callables: a move-only function wrapper
// for closures that must not be duplicated.
//
//	f := dynv.NewFunc(func(x int) int { return x * 2 })
//	f.Call(21) // 42
//
//	g := dynv.NewFunc(func(x int) int { return x })
//	g.MoveFrom(f) // f is now moved-from; f.Call panics
//
// # Thread Safety
//
// A Value follows ordinary value-type discipline: it is not safe for
// concurrent mutation, and callers synchronize externally when sharing an
// instance. Transferring ownership between goroutines works well over a
// queue; see the package examples for a handoff through an SPSC queue
// from [code.hybscloud.com/lfq].
//
// # Errors
//
// Misuse is rejected with panics carrying "dynv:" prefixed messages:
// invalid capacity or attribute configuration, concrete types outside the
// declared base's family, forbidden clone or move attempts, reads from
// zero or moved-from containers. The only runtime failure mode is
// allocation failure when a payload crosses the capacity threshold, which
// surfaces as Go's usual out-of-memory condition.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the heap-placement
// counter. The examples use [code.hybscloud.com/lfq] and
// [code.hybscloud.com/iox] for cross-goroutine ownership handoff.
package dynv
