// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

import "unsafe"

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

const (
	// MaxCapacity is the physical size in bytes of the inline buffer
	// carried by every container. Capacity configuration may not exceed it.
	MaxCapacity = 64

	// DefaultCapacity is the inline capacity used when no override is
	// given: four pointer words, enough for an interface header plus a
	// pointer with room to spare.
	DefaultCapacity = 4 * ptrSize

	// inlineWords is the inline buffer length in 8-byte words. Keeping the
	// buffer as a uint64 array guarantees 8-byte alignment for any payload.
	inlineWords = MaxCapacity / 8
)

// Cloner is implemented by payload types that need control over how they
// are copied into a container: deep copies, handle duplication, or copy
// instrumentation. CloneValue must return a new value of the same concrete
// type as its receiver. Without this hook, copies are shallow value copies.
type Cloner interface {
	CloneValue() any
}

// Mover is implemented by payload types that need control over how they
// are moved into a container. MoveValue must return a new value of the
// same concrete type; the receiver is the source being moved from and may
// be scrubbed. Without this hook, moves degrade to CloneValue when present,
// and to a shallow copy otherwise.
//
// Mover never runs when a heap-resident payload changes containers: the
// pointer is stolen verbatim instead.
type Mover interface {
	MoveValue() any
}

// Disposer is implemented by payload types that hold resources needing
// teardown. Dispose runs exactly once per held value: when the value is
// replaced by an assignment or re-emplacement, and on [Value.Dispose].
// Values abandoned to the garbage collector without an explicit Dispose
// do not run the hook.
type Disposer interface {
	Dispose()
}
