package nalloc

import "unsafe"

import "github.com/nzengi/nalloc/api"
import "github.com/nzengi/nalloc/malloc"

// WitnessArena typed handle over the witness arena. Blocks come back
// zeroed, either kernel-zeroed from a fresh region or cleared
// explicitly once the arena has been recycled. Witness bytes never
// leave the arena except through a secure wipe.
type WitnessArena struct {
	mgr *malloc.ArenaManager
}

// Alloc a zeroed block of `size` bytes, aligned to at least 64
// bytes. Returns nil when the arena is exhausted or arguments are
// invalid.
func (w *WitnessArena) Alloc(size, align int64) unsafe.Pointer {
	ptr := w.mgr.Allocin(api.Witness, size, align)
	if ptr == nil {
		return nil
	}
	if w.mgr.Witness().Recycled() {
		block := unsafe.Slice((*byte)(ptr), size)
		for i := range block {
			block[i] = 0
		}
	}
	return ptr
}

// Securewipe scrub the used prefix of the arena and rewind its
// cursor. Caller shall make sure no live pointers remain into the
// arena.
func (w *WitnessArena) Securewipe() {
	w.mgr.Securewipewitness()
}

// Used bytes consumed from the witness arena.
func (w *WitnessArena) Used() int64 {
	return w.mgr.Witness().Used()
}

// Capacity of the witness arena.
func (w *WitnessArena) Capacity() int64 {
	return w.mgr.Witness().Capacity()
}

// Remaining bytes in the witness arena.
func (w *WitnessArena) Remaining() int64 {
	return w.mgr.Witness().Remaining()
}
