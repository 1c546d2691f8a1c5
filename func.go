// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

// Func is a move-only callable wrapper: it holds one callable of the
// declared signature inside a movable-but-not-copyable [Value], so it can
// carry closures that must never be duplicated (one-shot completions,
// owned resources). Calling a Func after it has been moved from panics.
//
// Create with [NewFunc]; the zero Func is unusable.
type Func[A, R any] struct {
	v *Value[invoker[A, R]]
}

// invoker is the private invocation contract stored inside a Func's
// container. Each wrapped callable gets its own implementor, placed via
// the emplacement path.
type invoker[A, R any] interface {
	invoke(a A) R
}

type funcBox[A, R any] struct {
	fn func(A) R
}

func (b *funcBox[A, R]) invoke(a A) R { return b.fn(a) }

// NewFunc wraps fn in a move-only callable. Panics on a nil fn.
func NewFunc[A, R any](fn func(A) R) *Func[A, R] {
	if fn == nil {
		panic("dynv: nil function")
	}
	return &Func[A, R]{
		v: Emplace[invoker[A, R]](funcBox[A, R]{fn: fn}, WithAttrs(AttrMovable)),
	}
}

// Call invokes the wrapped callable. Panics if the Func was moved from.
func (f *Func[A, R]) Call(a A) R {
	return f.v.Get().invoke(a)
}

// Set discards the current callable and binds fn in its place, through
// the container's emplacement path; the old callable is never copied or
// moved. Safe on a moved-from Func, which becomes usable again.
func (f *Func[A, R]) Set(fn func(A) R) {
	if fn == nil {
		panic("dynv: nil function")
	}
	Replace(f.v, funcBox[A, R]{fn: fn})
}

// MoveFrom moves o's callable into f. o is left moved-from and must not
// be called until a new callable is bound with Set.
func (f *Func[A, R]) MoveFrom(o *Func[A, R]) {
	f.v.MoveFrom(o.v)
}
