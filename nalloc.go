package nalloc

import "runtime"
import "sync/atomic"
import "unsafe"

import s "github.com/bnclabs/gosettings"

import "github.com/nzengi/nalloc/api"
import "github.com/nzengi/nalloc/lib"
import "github.com/nzengi/nalloc/malloc"

// NAlloc global allocator control block. The zero value is a valid,
// uninitialized allocator, bootstrap happens on the first allocation
// and never allocates through the allocator itself, the manager is
// initialized in place into the boot field.
type NAlloc struct {
	arenas       unsafe.Pointer // *malloc.ArenaManager, nil until ready
	initializing int32

	capwitness    int64
	cappolynomial int64
	capscratch    int64

	// statically reserved storage for the manager.
	boot malloc.ArenaManager
}

// global allocator instance behind the package level functions.
var global NAlloc

// Setcapacities override the default arena capacities, effective only
// before the first allocation. Returns false once the allocator is
// initialized or another initialization is in flight.
func (na *NAlloc) Setcapacities(witness, polynomial, scratch int64) bool {
	if atomic.LoadPointer(&na.arenas) != nil {
		return false
	}
	if !atomic.CompareAndSwapInt32(&na.initializing, 0, 1) {
		return false
	}
	na.capwitness, na.cappolynomial, na.capscratch = witness, polynomial, scratch
	atomic.StoreInt32(&na.initializing, 0)
	return true
}

// Settings the capacity settings this allocator will initialize
// with, refer malloc.Defaultsettings().
func (na *NAlloc) Settings() s.Settings {
	w, p, sc := na.capacities()
	setts := malloc.Defaultsettings()
	setts["witness.capacity"] = w
	setts["polynomial.capacity"] = p
	setts["scratch.capacity"] = sc
	return setts
}

func (na *NAlloc) capacities() (int64, int64, int64) {
	w, p, sc := na.capwitness, na.cappolynomial, na.capscratch
	if w <= 0 {
		w = malloc.Witnesscapacity
	}
	if p <= 0 {
		p = malloc.Polynomialcapacity
	}
	if sc <= 0 {
		sc = malloc.Scratchcapacity
	}
	return w, p, sc
}

// getarenas return the manager, bootstrapping it on first call.
// Exactly one caller initializes, losers spin until the winner
// publishes, the ready state is absorbing.
func (na *NAlloc) getarenas() *malloc.ArenaManager {
	for {
		if ptr := atomic.LoadPointer(&na.arenas); ptr != nil {
			return (*malloc.ArenaManager)(ptr)
		}
		if atomic.CompareAndSwapInt32(&na.initializing, 0, 1) {
			w, p, sc := na.capacities()
			if err := malloc.Initinto(&na.boot, w, p, sc); err != nil {
				atomic.StoreInt32(&na.initializing, 0)
				panic(err)
			}
			atomic.StorePointer(&na.arenas, unsafe.Pointer(&na.boot))
			return &na.boot
		}
		runtime.Gosched()
	}
}

//---- allocation surface

// Allocate a block of `size` bytes aligned to `align`. Requests for
// page alignment or stricter, and requests of 1MB or more, are served
// from the polynomial arena, everything else from scratch. Returns
// nil when size is not positive, align is not a power of two or the
// routed arena is exhausted.
func (na *NAlloc) Allocate(size, align int64) unsafe.Pointer {
	mgr := na.getarenas()
	if align >= api.Pagealign || size >= api.Largeallocthreshold {
		return mgr.Allocin(api.Polynomial, size, align)
	}
	return mgr.Allocin(api.Scratch, size, align)
}

// Allocatezeroed same as Allocate with the returned block zeroed.
// Fresh regions are kernel-zeroed but recycled arena bytes may hold
// stale data, the explicit clear makes the contract unconditional.
func (na *NAlloc) Allocatezeroed(size, align int64) unsafe.Pointer {
	ptr := na.Allocate(size, align)
	if ptr == nil {
		return nil
	}
	block := unsafe.Slice((*byte)(ptr), size)
	for i := range block {
		block[i] = 0
	}
	return ptr
}

// Deallocate is a no-op. Bump arenas have no per-object free, memory
// is reclaimed en masse with Resetall.
func (na *NAlloc) Deallocate(ptr unsafe.Pointer, size, align int64) {
}

// Reallocate grow or shrink a block previously returned by Allocate.
// Shrinking returns the same pointer, the trailing bytes are simply
// abandoned. Growing allocates a fresh block with the same routing
// rules as Allocate and copies `oldsize` bytes, the old block is
// abandoned in place. Returns nil when the fresh allocation fails,
// the old block stays valid.
func (na *NAlloc) Reallocate(ptr unsafe.Pointer, oldsize, newsize, align int64) unsafe.Pointer {
	if ptr == nil {
		return na.Allocate(newsize, align)
	} else if newsize <= 0 {
		return nil
	} else if newsize <= oldsize {
		return ptr
	}
	newptr := na.Allocate(newsize, align)
	if newptr == nil {
		return nil
	}
	lib.Memcpy(newptr, ptr, int(oldsize))
	return newptr
}

//---- arena handles

// Witness typed handle to the witness arena.
func (na *NAlloc) Witness() *WitnessArena {
	return &WitnessArena{mgr: na.getarenas()}
}

// Polynomial typed handle to the polynomial arena.
func (na *NAlloc) Polynomial() *PolynomialArena {
	return &PolynomialArena{mgr: na.getarenas()}
}

// Scratch handle to the scratch arena.
func (na *NAlloc) Scratch() *malloc.BumpArena {
	return na.getarenas().Scratch()
}

//---- maintenance

// Resetall rewind all three arenas, the witness arena is securely
// wiped first. Caller shall make sure no live pointers remain into
// any arena.
func (na *NAlloc) Resetall() {
	na.getarenas().Resetall()
}

// Stats snapshot of the arenas, refer malloc.Arenastats.
func (na *NAlloc) Stats() malloc.Arenastats {
	return na.getarenas().Stats()
}

// Logstatistics log arena usage via the package logger.
func (na *NAlloc) Logstatistics() {
	na.getarenas().Logstatistics()
}

//---- package level surface over the global instance

// Setcapacities refer NAlloc.Setcapacities, on the global allocator.
func Setcapacities(witness, polynomial, scratch int64) bool {
	return global.Setcapacities(witness, polynomial, scratch)
}

// Settings refer NAlloc.Settings, on the global allocator.
func Settings() s.Settings {
	return global.Settings()
}

// Allocate refer NAlloc.Allocate, on the global allocator.
func Allocate(size, align int64) unsafe.Pointer {
	return global.Allocate(size, align)
}

// Allocatezeroed refer NAlloc.Allocatezeroed, on the global
// allocator.
func Allocatezeroed(size, align int64) unsafe.Pointer {
	return global.Allocatezeroed(size, align)
}

// Deallocate refer NAlloc.Deallocate, on the global allocator.
func Deallocate(ptr unsafe.Pointer, size, align int64) {
	global.Deallocate(ptr, size, align)
}

// Reallocate refer NAlloc.Reallocate, on the global allocator.
func Reallocate(ptr unsafe.Pointer, oldsize, newsize, align int64) unsafe.Pointer {
	return global.Reallocate(ptr, oldsize, newsize, align)
}

// Witness typed handle to the global witness arena.
func Witness() *WitnessArena {
	return global.Witness()
}

// Polynomial typed handle to the global polynomial arena.
func Polynomial() *PolynomialArena {
	return global.Polynomial()
}

// Scratch handle to the global scratch arena.
func Scratch() *malloc.BumpArena {
	return global.Scratch()
}

// Resetall refer NAlloc.Resetall, on the global allocator.
func Resetall() {
	global.Resetall()
}

// Stats refer NAlloc.Stats, on the global allocator.
func Stats() malloc.Arenastats {
	return global.Stats()
}

// Logstatistics refer NAlloc.Logstatistics, on the global allocator.
func Logstatistics() {
	global.Logstatistics()
}
