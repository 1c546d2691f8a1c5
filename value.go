// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

import (
	"reflect"
	"unsafe"
)

// Value is a polymorphic container with value semantics. It owns exactly
// one instance of some concrete type implementing the declared base
// interface B, stores it inline when small enough and pointer-free, and
// can be cloned or moved into containers declared over other bases or
// capacities without either side knowing the concrete type.
//
// A Value produced by a constructor always holds a value; there is no
// empty state in the public contract. The zero Value is unusable and
// every operation on it panics.
//
// A single Value is not safe for concurrent mutation. It follows ordinary
// value-type discipline: synchronize externally if an instance is shared.
type Value[B any] struct {
	s storage
}

// baseType returns the reflect type of the declared base B, which must be
// an interface type: Go expresses a type family as an interface and its
// implementors.
func baseType[B any]() reflect.Type {
	bt := reflect.TypeFor[B]()
	if bt.Kind() != reflect.Interface {
		panic("dynv: base type must be an interface, got " + bt.String())
	}
	return bt
}

// requireImplements rejects a concrete type outside B's family. Entry
// points whose parameter is already typed as B get this check from the
// compiler; the generic and cross-base entry points validate here, at the
// point of insertion.
func requireImplements[B any](t *opsTable) {
	bt := baseType[B]()
	if !reflect.PointerTo(t.typ).Implements(bt) {
		panic("dynv: " + t.typ.String() + " does not implement " + bt.String())
	}
}

// concreteOf normalizes a base-typed value to its concrete payload:
// pointer implementors are dereferenced, so the container always owns the
// object itself, never a pointer into caller memory. The returned address
// is the caller's own object when a pointer was passed (letting MoveValue
// scrub the original) and a private copy otherwise.
func concreteOf[B any](v B) (*opsTable, unsafe.Pointer) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		panic("dynv: nil value")
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			panic("dynv: nil value")
		}
		return tableOf(rv.Type().Elem()), rv.UnsafePointer()
	}
	t := tableOf(rv.Type())
	tmp := reflect.New(t.typ)
	tmp.Elem().Set(rv)
	return t, tmp.UnsafePointer()
}

// New constructs a container holding a copy of v. The concrete type of v
// implements B by construction; pass a pointer implementor to copy the
// pointee. Copying runs the CloneValue hook when the type has one.
// Panics if the resolved configuration is not copyable.
func New[B any](v B, opts ...Option) *Value[B] {
	baseType[B]()
	cfg := resolveConfig(nil, opts)
	if !cfg.attrs.copyable() {
		panic("dynv: configuration is not copyable")
	}
	c := &Value[B]{s: storage{capacity: cfg.capacity, attrs: cfg.attrs}}
	t, p := concreteOf(v)
	t.clone(&c.s, p)
	return c
}

// Own constructs a container by taking ownership of v. Pass a pointer to
// move out of an existing variable: the MoveValue hook then sees the
// caller's object as its source. On a copyable-but-not-movable
// configuration the value travels by copy instead. Panics if the
// configuration permits neither.
func Own[B any](v B, opts ...Option) *Value[B] {
	baseType[B]()
	cfg := resolveConfig(nil, opts)
	c := &Value[B]{s: storage{capacity: cfg.capacity, attrs: cfg.attrs}}
	t, p := concreteOf(v)
	switch {
	case cfg.attrs.movable():
		t.adopt(&c.s, p)
	case cfg.attrs.copyable():
		t.clone(&c.s, p)
	default:
		panic("dynv: configuration is neither movable nor copyable")
	}
	return c
}

// Emplace constructs a container holding v directly, bypassing the
// clone/move hooks entirely; T needs no hooks to be emplaced. T must
// implement B (checked at insertion) and must be a non-pointer concrete
// type. Works on any configuration, including AttrNone.
func Emplace[B, T any](v T, opts ...Option) *Value[B] {
	cfg := resolveConfig(nil, opts)
	t := tableOf(reflect.TypeFor[T]())
	requireImplements[B](t)
	c := &Value[B]{s: storage{capacity: cfg.capacity, attrs: cfg.attrs}}
	c.s.install(t, reflect.ValueOf(v))
	return c
}

// Replace destroys dst's current value and direct-places v, keeping dst's
// configuration. This is the emplacement form of assignment: no clone or
// move hook runs on v.
func Replace[B, T any](dst *Value[B], v T) {
	dst.s.ensureInit()
	t := tableOf(reflect.TypeFor[T]())
	requireImplements[B](t)
	dst.s.destroy()
	dst.s.install(t, reflect.ValueOf(v))
}

// Clone constructs a container over base B holding a copy of the value in
// src, which may be declared over a different base and configuration; the
// copy dispatches through src's installed descriptor, so B never needs to
// know the concrete type. Configuration defaults to src's and may be
// overridden. Panics unless both src and the new configuration are
// copyable, or if src's concrete type does not implement B.
func Clone[B, S any](src *Value[S], opts ...Option) *Value[B] {
	t := src.s.heldTable()
	srcCfg := src.s.cfg()
	cfg := resolveConfig(&srcCfg, opts)
	if !cfg.attrs.copyable() {
		panic("dynv: configuration is not copyable")
	}
	if !src.s.attrs.copyable() {
		panic("dynv: source is not copyable")
	}
	requireImplements[B](t)
	c := &Value[B]{s: storage{capacity: cfg.capacity, attrs: cfg.attrs}}
	t.clone(&c.s, src.s.payload())
	return c
}

// Move constructs a container over base B by moving the value out of src,
// leaving src moved-from: unreadable, but safe to destroy or reassign.
// A heap-resident payload is stolen without copying; an inline payload is
// re-placed against the new container's capacity. Falls back to a clone
// when either side is not movable but both are copyable.
func Move[B, S any](src *Value[S], opts ...Option) *Value[B] {
	t := src.s.heldTable()
	srcCfg := src.s.cfg()
	cfg := resolveConfig(&srcCfg, opts)
	requireImplements[B](t)
	c := &Value[B]{s: storage{capacity: cfg.capacity, attrs: cfg.attrs}}
	moveOrClone(&c.s, &src.s, t)
	return c
}

// CloneInto copy-assigns the value held in src over dst's current value.
// The cross-base form of [Value.CopyFrom].
func CloneInto[B, S any](dst *Value[B], src *Value[S]) {
	dst.s.ensureInit()
	if unsafe.Pointer(dst) == unsafe.Pointer(src) {
		return
	}
	t := src.s.heldTable()
	if !dst.s.attrs.copyable() {
		panic("dynv: container is not copyable")
	}
	if !src.s.attrs.copyable() {
		panic("dynv: source is not copyable")
	}
	requireImplements[B](t)
	dst.s.destroy()
	t.clone(&dst.s, src.s.payload())
}

// MoveInto move-assigns the value held in src over dst's current value,
// leaving src moved-from. The cross-base form of [Value.MoveFrom].
func MoveInto[B, S any](dst *Value[B], src *Value[S]) {
	dst.s.ensureInit()
	if unsafe.Pointer(dst) == unsafe.Pointer(src) {
		return
	}
	t := src.s.heldTable()
	requireImplements[B](t)
	dst.s.destroy()
	moveOrClone(&dst.s, &src.s, t)
}

// moveOrClone transfers src into dst when both sides permit moving, and
// falls back to a copy otherwise.
func moveOrClone(dst, src *storage, t *opsTable) {
	if dst.attrs.movable() && src.attrs.movable() {
		t.transfer(dst, src)
		return
	}
	if !dst.attrs.copyable() || !src.attrs.copyable() {
		panic("dynv: move not permitted and copy fallback unavailable")
	}
	t.clone(dst, src.payload())
}

// Set copy-assigns a value: destroys the current value, then behaves as
// construction by copy.
func (v *Value[B]) Set(x B) {
	v.s.ensureInit()
	if !v.s.attrs.copyable() {
		panic("dynv: container is not copyable")
	}
	t, p := concreteOf(x)
	v.s.destroy()
	t.clone(&v.s, p)
}

// Take move-assigns a value: destroys the current value, then takes
// ownership of x as [Own] does.
func (v *Value[B]) Take(x B) {
	v.s.ensureInit()
	t, p := concreteOf(x)
	switch {
	case v.s.attrs.movable():
		v.s.destroy()
		t.adopt(&v.s, p)
	case v.s.attrs.copyable():
		v.s.destroy()
		t.clone(&v.s, p)
	default:
		panic("dynv: container is neither movable nor copyable")
	}
}

// CopyFrom copy-assigns the value held in o over v's current value.
func (v *Value[B]) CopyFrom(o *Value[B]) {
	CloneInto(v, o)
}

// MoveFrom move-assigns the value held in o over v's current value,
// leaving o moved-from.
func (v *Value[B]) MoveFrom(o *Value[B]) {
	MoveInto(v, o)
}

// Get returns the held value viewed through the base interface. For an
// inline payload the interface points into the container's own buffer, so
// mutations through it act on the container; do not retain the result past
// the container's lifetime or past a move-out. Panics on the zero Value
// and after a move-out.
func (v *Value[B]) Get() B {
	t := v.s.heldTable()
	if v.s.local {
		return t.iface(unsafe.Pointer(&v.s.buf[0])).(B)
	}
	return v.s.remote.(B)
}

// Dispose destroys the held value: the Dispose hook runs and the payload
// is released. Safe on a moved-from container (no-op). The container
// accepts a new value afterwards but panics on reads until one arrives.
func (v *Value[B]) Dispose() {
	v.s.destroy()
}

// Cap returns the configured inline capacity in bytes.
func (v *Value[B]) Cap() int { return v.s.capacity }

// Copyable reports whether the configuration permits clone operations.
func (v *Value[B]) Copyable() bool { return v.s.attrs.copyable() }

// Movable reports whether the configuration permits move operations.
func (v *Value[B]) Movable() bool { return v.s.attrs.movable() }

// Local reports whether the held value lives in the inline buffer, inside
// the container's own footprint, rather than in a heap block.
func (v *Value[B]) Local() bool { return v.s.local }

// Moved reports whether the value was moved out of this container.
func (v *Value[B]) Moved() bool { return v.s.moved }

// ConcreteType returns the dynamic type of the held value.
func (v *Value[B]) ConcreteType() reflect.Type {
	return v.s.heldTable().typ
}
