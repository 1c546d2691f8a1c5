// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/dynv"
)

// mustPanic runs fn and checks that it panics with a message containing
// want.
func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("no panic, want panic containing %q", want)
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, want) {
			t.Fatalf("panic %v, want message containing %q", r, want)
		}
	}()
	fn()
}

// =============================================================================
// Configuration validation
// =============================================================================

func TestCapacityValidation(t *testing.T) {
	mustPanic(t, "capacity must be at least", func() {
		dynv.Emplace[payload](item{}, dynv.WithCapacity(4))
	})
	mustPanic(t, "capacity exceeds MaxCapacity", func() {
		dynv.Emplace[payload](item{}, dynv.WithCapacity(dynv.MaxCapacity+8))
	})

	// The bounds themselves are valid.
	v := dynv.Emplace[payload](plain{val: 1}, dynv.WithCapacity(8))
	if v.Cap() != 8 {
		t.Fatalf("Cap: got %d, want 8", v.Cap())
	}
	w := dynv.Emplace[payload](item{val: 2}, dynv.WithCapacity(dynv.MaxCapacity))
	if w.Cap() != dynv.MaxCapacity {
		t.Fatalf("Cap: got %d, want %d", w.Cap(), dynv.MaxCapacity)
	}
}

func TestInvalidAttributeBits(t *testing.T) {
	mustPanic(t, "invalid attribute bits", func() {
		dynv.Emplace[payload](item{}, dynv.WithAttrs(dynv.Attr(8)))
	})
}

func TestNonInterfaceBaseRejected(t *testing.T) {
	mustPanic(t, "base type must be an interface", func() {
		dynv.New[int](5)
	})
}

func TestBaseFamilyViolation(t *testing.T) {
	mustPanic(t, "does not implement", func() {
		dynv.Emplace[shape](item{val: 1})
	})
	src := dynv.Emplace[payload](item{val: 1})
	mustPanic(t, "does not implement", func() {
		dynv.Clone[shape](src)
	})
}

func TestNilValueRejected(t *testing.T) {
	mustPanic(t, "nil value", func() {
		dynv.New[payload](nil)
	})
	var p *item
	mustPanic(t, "nil value", func() {
		dynv.New[payload](p)
	})
}

// =============================================================================
// Capability gating
// =============================================================================

func TestNonCopyableConfiguration(t *testing.T) {
	mustPanic(t, "configuration is not copyable", func() {
		dynv.New[payload](&item{val: 1}, dynv.WithAttrs(dynv.AttrMovable))
	})

	v := dynv.Emplace[payload](item{val: 1}, dynv.WithAttrs(dynv.AttrMovable))
	if v.Copyable() {
		t.Fatalf("Copyable: got true, want false")
	}
	if !v.Movable() {
		t.Fatalf("Movable: got false, want true")
	}
	// Clone inherits the source configuration, which forbids copying.
	mustPanic(t, "not copyable", func() {
		dynv.Clone[payload](v)
	})
	// Overriding the target configuration does not bypass the source's.
	mustPanic(t, "source is not copyable", func() {
		dynv.Clone[payload](v, dynv.WithAttrs(dynv.AttrDefault))
	})
	mustPanic(t, "container is not copyable", func() {
		v.Set(&item{val: 2})
	})
}

func TestAttrNonePermitsOnlyEmplacement(t *testing.T) {
	v := dynv.Emplace[payload](item{val: 1}, dynv.WithAttrs(dynv.AttrNone))
	if got := v.Get().Val(); got != 1 {
		t.Fatalf("Val: got %d, want 1", got)
	}

	mustPanic(t, "not copyable", func() { dynv.Clone[payload](v) })
	mustPanic(t, "move not permitted and copy fallback unavailable", func() {
		dynv.Move[payload](v)
	})
	mustPanic(t, "neither movable nor copyable", func() {
		dynv.Own[payload](&item{val: 2}, dynv.WithAttrs(dynv.AttrNone))
	})

	// Re-emplacement still works.
	dynv.Replace(v, item{val: 3})
	if got := v.Get().Val(); got != 3 {
		t.Fatalf("Val after replace: got %d, want 3", got)
	}
}

// TestCopyOnlyMoveFallsBack checks the silent move-to-copy degradation:
// on a copyable-but-not-movable configuration a requested move copies
// instead and leaves the source untouched.
func TestCopyOnlyMoveFallsBack(t *testing.T) {
	v := dynv.Emplace[payload](item{val: 5}, dynv.WithAttrs(dynv.AttrCopyable))

	w := dynv.Move[payload](v)
	if got := w.Get().Made(); got != madeCopied {
		t.Fatalf("fallback: got %v, want %v", got, madeCopied)
	}
	if v.Moved() {
		t.Fatalf("copy fallback marked the source moved")
	}
	if got := v.Get().Val(); got != 5 {
		t.Fatalf("source after fallback: val=%d, want 5", got)
	}

	src := item{val: 6}
	v.Take(&src)
	if got := v.Get().Made(); got != madeCopied {
		t.Fatalf("Take fallback: got %v, want %v", got, madeCopied)
	}
}

// =============================================================================
// State machine edges
// =============================================================================

func TestZeroValueGuards(t *testing.T) {
	var v dynv.Value[payload]
	mustPanic(t, "zero Value", func() { v.Get() })
	mustPanic(t, "zero Value", func() { v.Set(&item{val: 1}) })
	mustPanic(t, "zero Value", func() { dynv.Replace(&v, item{val: 1}) })
}

func TestUseAfterMovePanics(t *testing.T) {
	a := dynv.Emplace[payload](item{val: 1})
	_ = dynv.Move[payload](a)

	mustPanic(t, "use after move", func() { a.Get() })
	mustPanic(t, "use after move", func() { a.ConcreteType() })
	mustPanic(t, "use after move", func() { dynv.Clone[payload](a) })
	mustPanic(t, "use after move", func() { dynv.Move[payload](a) })

	// Destruction of a moved-from container is a safe no-op.
	a.Dispose()

	// Re-emplacement revives it.
	dynv.Replace(a, item{val: 2})
	if got := a.Get().Val(); got != 2 {
		t.Fatalf("Val after revival: got %d, want 2", got)
	}
}

func TestDisposeThenReassign(t *testing.T) {
	v := dynv.Emplace[payload](item{val: 1})
	v.Dispose()
	mustPanic(t, "no held value", func() { v.Get() })

	v.Set(&item{val: 2})
	if got := v.Get().Val(); got != 2 {
		t.Fatalf("Val: got %d, want 2", got)
	}
}

func TestSelfAssignmentIsNoop(t *testing.T) {
	v := dynv.Emplace[payload](item{val: 7})
	v.CopyFrom(v)
	v.MoveFrom(v)

	if v.Moved() {
		t.Fatalf("self move marked the container moved")
	}
	if got := v.Get().Val(); got != 7 {
		t.Fatalf("Val: got %d, want 7", got)
	}
}

// badClone violates the hook contract by returning a foreign type.
type badClone struct {
	val int64
}

func (b *badClone) Val() int64   { return b.val }
func (b *badClone) Made() method { return madeBasic }

func (b *badClone) CloneValue() any { return plain{val: b.val} }

func TestHookTypeMismatch(t *testing.T) {
	v := dynv.Emplace[payload](badClone{val: 1})
	mustPanic(t, "hook returned", func() { dynv.Clone[payload](v) })
}
