package malloc

import "unsafe"
import "sync/atomic"

import "github.com/nzengi/nalloc/api"
import "github.com/nzengi/nalloc/lib"
import "github.com/nzengi/nalloc/vmem"

// BumpArena a single contiguous region plus an atomic high-water
// cursor. Alloc is lock-free, concurrent callers race on the cursor
// and the winner owns the new slice exclusively. BumpArena never
// hands out overlapping ranges and never reuses a byte until Reset.
type BumpArena struct {
	// 64-bit aligned atomics
	cursor   int64 // offset of the first unused byte
	recycled int64 // set by the first Reset, used or not

	region   *vmem.Region
	base     uintptr
	capacity int64
	kind     api.ArenaKind
}

// NewBumpArena construct a bump allocator over `region`. The region
// shall stay alive, and exclusively owned, for the lifetime of the
// arena.
func NewBumpArena(region *vmem.Region, kind api.ArenaKind) *BumpArena {
	if region.Capacity() == 0 {
		panicerr("NewBumpArena(%v): empty region", kind)
	}
	return &BumpArena{
		region:   region,
		base:     uintptr(region.Base()),
		capacity: region.Capacity(),
		kind:     kind,
	}
}

//---- operations

// Alloc implement api.Mallocer{} interface. Returns a pointer with
// `ptr % align == 0` whose `size` bytes lie fully inside the region,
// else nil when the arena is exhausted or arguments are invalid.
func (arena *BumpArena) Alloc(size, align int64) unsafe.Pointer {
	if size <= 0 {
		debugf("%v.Alloc(%v, %v): size should be positive\n", arena.kind, size, align)
		return nil
	} else if !lib.Ispowerof2(align) {
		debugf("%v.Alloc(%v, %v): align should be a power of 2\n", arena.kind, size, align)
		return nil
	}
	for {
		cursor := atomic.LoadInt64(&arena.cursor)
		aligned := lib.AlignUp(int64(arena.base)+cursor, align) - int64(arena.base)
		end := aligned + size
		if end > arena.capacity {
			debugf("%v.Alloc(%v, %v): out of capacity, used %v of %v\n",
				arena.kind, size, align, cursor, arena.capacity)
			return nil
		}
		if atomic.CompareAndSwapInt64(&arena.cursor, cursor, end) {
			return unsafe.Pointer(arena.base + uintptr(aligned))
		}
		// lost the race, reload the cursor and retry.
	}
}

// Reset implement api.Mallocer{} interface. Rewind the cursor to the
// region base. Caller shall make sure no live pointers remain into
// this arena, the arena cannot verify it.
func (arena *BumpArena) Reset() {
	atomic.StoreInt64(&arena.cursor, 0)
	atomic.StoreInt64(&arena.recycled, 1)
}

//---- statistics

// Used implement api.Mallocer{} interface.
func (arena *BumpArena) Used() int64 {
	return atomic.LoadInt64(&arena.cursor)
}

// Capacity implement api.Mallocer{} interface.
func (arena *BumpArena) Capacity() int64 {
	return arena.capacity
}

// Remaining implement api.Mallocer{} interface.
func (arena *BumpArena) Remaining() int64 {
	return arena.capacity - arena.Used()
}

// Kind policy tag of this arena.
func (arena *BumpArena) Kind() api.ArenaKind {
	return arena.kind
}

// Recycled whether this arena has been Reset at least once, even
// when nothing was allocated before the reset. A fresh
// region is kernel-zeroed, a recycled one may hold stale bytes
// unless it was wiped.
func (arena *BumpArena) Recycled() bool {
	return atomic.LoadInt64(&arena.recycled) == 1
}

//---- local functions

// view over the used prefix of the region.
func (arena *BumpArena) usedbytes() []byte {
	return arena.region.Bytes()[:arena.Used()]
}
