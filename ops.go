// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

import (
	"reflect"
	"sync"
	"unsafe"
)

// opsTable is the per-concrete-type operation descriptor. One is installed
// into a container's descriptor slot every time the held concrete type
// changes, and it is the only piece of information that lets a transfer
// between containers reconstruct a value whose type the target never saw:
// the target simply dispatches through the source's installed table.
//
// Tables are immutable, shared, and keyed by concrete type in a package
// registry. All entry points operate on erased storage, so a table built
// for one base type serves transfers into containers declared over any
// other base the concrete type satisfies.
type opsTable struct {
	typ  reflect.Type // concrete payload type; never pointer or interface
	size int

	// inline marks the type eligible for inline placement: it contains no
	// pointer words, so the garbage collector never needs to see it.
	inline bool

	hasCloner   bool
	hasMover    bool
	hasDisposer bool
}

var tables sync.Map // reflect.Type -> *opsTable

var (
	clonerType   = reflect.TypeFor[Cloner]()
	moverType    = reflect.TypeFor[Mover]()
	disposerType = reflect.TypeFor[Disposer]()
)

// tableOf returns the operation descriptor for the concrete type typ,
// building and registering it on first use.
func tableOf(typ reflect.Type) *opsTable {
	if t, ok := tables.Load(typ); ok {
		return t.(*opsTable)
	}
	switch typ.Kind() {
	case reflect.Interface:
		panic("dynv: concrete type required, got interface " + typ.String())
	case reflect.Pointer:
		panic("dynv: concrete type required, got pointer " + typ.String())
	}
	pt := reflect.PointerTo(typ)
	t := &opsTable{
		typ:         typ,
		size:        int(typ.Size()),
		inline:      pointerFree(typ),
		hasCloner:   pt.Implements(clonerType),
		hasMover:    pt.Implements(moverType),
		hasDisposer: pt.Implements(disposerType),
	}
	actual, _ := tables.LoadOrStore(typ, t)
	return actual.(*opsTable)
}

// pointerFree reports whether values of typ contain no pointer words.
func pointerFree(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return typ.Len() == 0 || pointerFree(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if !pointerFree(typ.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Pointers, strings, slices, maps, chans, funcs, interfaces.
		return false
	}
}

// iface returns the payload at p as *T boxed in an untyped interface.
func (t *opsTable) iface(p unsafe.Pointer) any {
	return reflect.NewAt(t.typ, p).Interface()
}

// value returns an addressable reflect view of the payload at p.
func (t *opsTable) value(p unsafe.Pointer) reflect.Value {
	return reflect.NewAt(t.typ, p).Elem()
}

// clone copy-places the live payload at src into dst, through the
// CloneValue hook when the type has one, as a shallow copy otherwise.
// Installs this descriptor into dst.
func (t *opsTable) clone(dst *storage, src unsafe.Pointer) {
	if t.hasCloner {
		dst.install(t, t.hookResult(t.iface(src).(Cloner).CloneValue()))
		return
	}
	dst.install(t, t.value(src))
}

// adopt move-places the live payload at src into dst. Hook precedence is
// MoveValue, then CloneValue, then shallow copy: a copy-only type under a
// movable configuration silently travels by copy.
func (t *opsTable) adopt(dst *storage, src unsafe.Pointer) {
	switch {
	case t.hasMover:
		dst.install(t, t.hookResult(t.iface(src).(Mover).MoveValue()))
	case t.hasCloner:
		dst.install(t, t.hookResult(t.iface(src).(Cloner).CloneValue()))
	default:
		dst.install(t, t.value(src))
	}
}

// transfer moves the payload of src into dst and marks src moved-from.
// A heap-resident payload is stolen verbatim: the pointer changes hands,
// no hook runs, and no allocation occurs. An inline payload is re-placed
// against dst's own capacity.
func (t *opsTable) transfer(dst, src *storage) {
	if !src.local {
		dst.adoptRemote(t, src.remote)
		src.remote = nil
		src.moved = true
		return
	}
	t.adopt(dst, unsafe.Pointer(&src.buf[0]))
	src.moved = true
}

// dispose runs the payload's Dispose hook, if the type declares one.
func (t *opsTable) dispose(p unsafe.Pointer) {
	if t.hasDisposer {
		t.iface(p).(Disposer).Dispose()
	}
}

// hookResult validates that a CloneValue/MoveValue result carries the held
// concrete type.
func (t *opsTable) hookResult(r any) reflect.Value {
	rv := reflect.ValueOf(r)
	if !rv.IsValid() {
		panic("dynv: hook returned nil, want " + t.typ.String())
	}
	if rv.Type() != t.typ {
		panic("dynv: hook returned " + rv.Type().String() + ", want " + t.typ.String())
	}
	return rv
}
