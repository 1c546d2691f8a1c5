// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

// Attr declares which transfer operations a container permits.
//
// Every Go value is bitwise copyable, so the auto-detected default is
// copyable and movable. Restricting a container with an explicit Attr is
// a contract on the container, not on the payload: a movable-only
// container rejects every clone attempt, regardless of what the concrete
// type could do.
type Attr uint8

const (
	// AttrNone permits neither copying nor moving. Such a container can
	// only be filled through the emplacement path.
	AttrNone Attr = 0

	// AttrCopyable permits clone operations. A move requested on a
	// copyable-but-not-movable container silently degrades to a copy.
	AttrCopyable Attr = 1 << 0

	// AttrMovable permits move operations.
	AttrMovable Attr = 1 << 1

	// AttrDefault is the auto-detected capability set: copyable and movable.
	AttrDefault Attr = AttrCopyable | AttrMovable
)

func (a Attr) copyable() bool { return a&AttrCopyable != 0 }
func (a Attr) movable() bool  { return a&AttrMovable != 0 }

// config is the resolved capability configuration of one container:
// effective inline capacity and transfer permissions. Resolved once, at
// construction, and immutable afterwards.
type config struct {
	capacity int
	attrs    Attr
}

// Option overrides part of a container's capability configuration.
type Option func(*config)

// WithCapacity overrides the inline capacity in bytes. Payloads larger
// than the capacity are heap-placed. Panics at construction if n is
// smaller than a pointer or larger than [MaxCapacity].
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithAttrs overrides the container's transfer permissions.
func WithAttrs(a Attr) Option {
	return func(c *config) { c.attrs = a }
}

// resolveConfig produces the effective configuration from an optional
// inherited configuration (the source container, for transfer
// constructors) and user overrides. Invalid configurations are rejected
// here, before any payload exists.
func resolveConfig(inherit *config, opts []Option) config {
	cfg := config{capacity: DefaultCapacity, attrs: AttrDefault}
	if inherit != nil {
		cfg = *inherit
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.capacity < ptrSize {
		panic("dynv: capacity must be at least the size of a pointer")
	}
	if cfg.capacity > MaxCapacity {
		panic("dynv: capacity exceeds MaxCapacity")
	}
	if cfg.attrs&^AttrDefault != 0 {
		panic("dynv: invalid attribute bits")
	}
	return cfg
}
