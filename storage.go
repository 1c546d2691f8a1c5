// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

import (
	"reflect"
	"unsafe"
)

// storage owns the payload bytes beneath one container: the inline buffer,
// the owned heap reference, the descriptor slot, and the locality and
// moved-from bookkeeping. It is deliberately free of the base type
// parameter so that operation descriptors can write into any container.
//
// Invariant: local reports where the payload lives. When local is true the
// value's bytes sit inside buf, within the container's own footprint; when
// false, remote holds the one owning reference to a heap block. The two
// are never populated at the same time.
type storage struct {
	buf      [inlineWords]uint64
	remote   any       // *T when the payload is heap-resident
	table    *opsTable // descriptor for the held concrete type
	capacity int
	attrs    Attr
	local    bool
	moved    bool
}

// payload returns the address of the held value.
func (s *storage) payload() unsafe.Pointer {
	if s.local {
		return unsafe.Pointer(&s.buf[0])
	}
	return reflect.ValueOf(s.remote).UnsafePointer()
}

// install places v, a value of t's concrete type, into s. The payload goes
// inline when the type is pointer-free and fits this storage's capacity,
// and onto the heap otherwise. Installs t into the descriptor slot.
// Precondition: any previous value has been destroyed by the caller.
func (s *storage) install(t *opsTable, v reflect.Value) {
	if t.inline && t.size <= s.capacity {
		s.local = true
		s.remote = nil
		reflect.NewAt(t.typ, unsafe.Pointer(&s.buf[0])).Elem().Set(v)
	} else {
		boxed := reflect.New(t.typ)
		boxed.Elem().Set(v)
		s.local = false
		s.remote = boxed.Interface()
		heapAllocs.Add(1)
	}
	s.table = t
	s.moved = false
}

// adoptRemote installs an already heap-resident payload without copying it.
func (s *storage) adoptRemote(t *opsTable, remote any) {
	s.local = false
	s.remote = remote
	s.table = t
	s.moved = false
}

// destroy tears down the current value: runs the Dispose hook and releases
// the heap reference. No-op when nothing is held or the payload was moved
// out, so it is always safe before a re-set and at container teardown.
func (s *storage) destroy() {
	if s.table == nil || s.moved {
		return
	}
	s.table.dispose(s.payload())
	s.remote = nil
	s.table = nil
	s.local = false
}

// ensureInit rejects the unusable zero storage. Containers are only valid
// when produced by a constructor.
func (s *storage) ensureInit() {
	if s.capacity == 0 {
		panic("dynv: zero Value; use a constructor")
	}
}

// heldTable returns the installed descriptor, rejecting reads from zero,
// empty, and moved-from storage.
func (s *storage) heldTable() *opsTable {
	s.ensureInit()
	if s.table == nil {
		panic("dynv: no held value")
	}
	if s.moved {
		panic("dynv: use after move")
	}
	return s.table
}

// cfg returns the resolved configuration, for transfer constructors that
// inherit the source's configuration.
func (s *storage) cfg() config {
	return config{capacity: s.capacity, attrs: s.attrs}
}
