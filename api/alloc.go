package api

import "unsafe"

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Alloc allocate a chunk of `size` bytes aligned to `align`,
	// where `align` shall be a power of two. Returns nil if the
	// arena does not have `size` bytes left, or if arguments are
	// invalid.
	Alloc(size, align int64) unsafe.Pointer

	// Used return number of bytes consumed from this arena,
	// including alignment padding.
	Used() int64

	// Capacity return the fixed capacity of this arena in bytes.
	Capacity() int64

	// Remaining return Capacity() minus Used().
	Remaining() int64

	// Reset rewind the arena cursor to zero. All memory previously
	// allocated from this arena becomes invalid, caller shall make
	// sure that there are no live references into the arena.
	Reset()
}
