package nalloc

import "unsafe"

import "github.com/nzengi/nalloc/api"
import "github.com/nzengi/nalloc/malloc"

// PolynomialArena typed handle over the polynomial arena, carries
// the FFT alignment policy. Vectors of 64KB or more start on a page
// boundary, everything else on a cache line.
type PolynomialArena struct {
	mgr *malloc.ArenaManager
}

// Alloc a block of `size` bytes from the polynomial arena. Alignment
// is promoted per the arena policy, refer malloc.Adjustalign.
func (p *PolynomialArena) Alloc(size, align int64) unsafe.Pointer {
	return p.mgr.Allocin(api.Polynomial, size, align)
}

// Allocfftfriendly a coefficient vector of `size` bytes aligned for
// vectorized FFT passes, 64 bytes, promoted to page alignment at and
// above 64KB.
func (p *PolynomialArena) Allocfftfriendly(size int64) unsafe.Pointer {
	return p.mgr.Allocin(api.Polynomial, size, api.Cachelinealign)
}

// Allochuge a page-aligned vector of `size` bytes, for evaluation
// domains large enough to want whole pages.
func (p *PolynomialArena) Allochuge(size int64) unsafe.Pointer {
	return p.mgr.Allocin(api.Polynomial, size, api.Pagealign)
}

// Reset rewind the polynomial cursor. Caller shall make sure no live
// pointers remain into the arena.
func (p *PolynomialArena) Reset() {
	p.mgr.Polynomial().Reset()
}

// Used bytes consumed from the polynomial arena.
func (p *PolynomialArena) Used() int64 {
	return p.mgr.Polynomial().Used()
}

// Capacity of the polynomial arena.
func (p *PolynomialArena) Capacity() int64 {
	return p.mgr.Polynomial().Capacity()
}

// Remaining bytes in the polynomial arena.
func (p *PolynomialArena) Remaining() int64 {
	return p.mgr.Polynomial().Remaining()
}
