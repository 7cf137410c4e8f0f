package malloc

import "fmt"
import "os"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"
import sigar "github.com/cloudfoundry/gosigar"

import "github.com/nzengi/nalloc/api"
import "github.com/nzengi/nalloc/lib"
import "github.com/nzengi/nalloc/vmem"

// ArenaManager owns one witness, one polynomial and one scratch
// arena and enforces the alignment and security policy per arena
// kind. Regions are reserved up front, allocation never touches a
// syscall.
type ArenaManager struct {
	witness    *BumpArena
	polynomial *BumpArena
	scratch    *BumpArena
	regions    []*vmem.Region
	released   bool
}

// NewArenaManager create a manager with capacities picked from
// settings, refer to Defaultsettings().
func NewArenaManager(setts s.Settings) (*ArenaManager, error) {
	w := setts.Int64("witness.capacity")
	p := setts.Int64("polynomial.capacity")
	sc := setts.Int64("scratch.capacity")
	return WithSizes(w, p, sc)
}

// WithSizes create a manager with custom capacities, each shall be
// positive and is rounded up to the OS page size. Returns
// ErrorBackendUnavailable if the kernel refuses any reservation,
// partially reserved regions are released before returning.
func WithSizes(witness, polynomial, scratch int64) (*ArenaManager, error) {
	mgr := &ArenaManager{}
	if err := Initinto(mgr, witness, polynomial, scratch); err != nil {
		return nil, err
	}
	return mgr, nil
}

// Initinto initialize a caller supplied control block, same contract
// as WithSizes. The global shim bootstraps out of statically
// reserved storage with this, initializing the allocator shall not
// recursively allocate through it.
func Initinto(mgr *ArenaManager, witness, polynomial, scratch int64) error {
	if witness <= 0 || polynomial <= 0 || scratch <= 0 {
		panicerr("Initinto(%v, %v, %v): capacities should be positive",
			witness, polynomial, scratch)
	}

	mgr.released = false
	mgr.regions = make([]*vmem.Region, 0, 3)
	reserve := func(size int64, kind api.ArenaKind) (*BumpArena, error) {
		region, err := vmem.Reserve(size)
		if err != nil {
			errorf("%v reserving %v arena: %v\n", "nalloc", kind, err)
			for _, region := range mgr.regions {
				region.Release()
			}
			return nil, err
		}
		mgr.regions = append(mgr.regions, region)
		return NewBumpArena(region, kind), nil
	}

	var err error
	if mgr.witness, err = reserve(witness, api.Witness); err != nil {
		return err
	}
	if mgr.polynomial, err = reserve(polynomial, api.Polynomial); err != nil {
		return err
	}
	if mgr.scratch, err = reserve(scratch, api.Scratch); err != nil {
		return err
	}
	infof("%v arenas reserved witness:%v polynomial:%v scratch:%v\n",
		"nalloc",
		humanize.Bytes(uint64(mgr.witness.Capacity())),
		humanize.Bytes(uint64(mgr.polynomial.Capacity())),
		humanize.Bytes(uint64(mgr.scratch.Capacity())))
	return nil
}

//---- operations

// Witness return a non-owning handle to the witness arena.
func (mgr *ArenaManager) Witness() *BumpArena {
	return mgr.witness
}

// Polynomial return a non-owning handle to the polynomial arena.
func (mgr *ArenaManager) Polynomial() *BumpArena {
	return mgr.polynomial
}

// Scratch return a non-owning handle to the scratch arena.
func (mgr *ArenaManager) Scratch() *BumpArena {
	return mgr.scratch
}

// Allocin allocate from the `kind` arena enforcing its minimum
// alignment:
//
//	witness    : align = max(align, 64)
//	polynomial : align = max(align, 64), size >= 64K promoted to 4096
//	scratch    : align = max(align, 16)
//
// Returns nil when the arena is exhausted, out-of-capacity is never
// fatal, callers decide.
func (mgr *ArenaManager) Allocin(kind api.ArenaKind, size, align int64) unsafe.Pointer {
	if mgr.released {
		panicerr("arena manager released")
	} else if !lib.Ispowerof2(align) {
		debugf("Allocin(%v, %v, %v): align should be a power of 2\n", kind, size, align)
		return nil
	}
	arena := mgr.arenafor(kind)
	return arena.Alloc(size, Adjustalign(kind, size, align))
}

// Securewipewitness scrub the used prefix of the witness arena and
// rewind its cursor. Caller shall make sure no live pointers remain
// into the witness arena.
func (mgr *ArenaManager) Securewipewitness() {
	if used := mgr.witness.Used(); used > 0 {
		vmem.SecureWipeBytes(mgr.witness.usedbytes())
	}
	mgr.witness.Reset()
}

// Resetall rewind the polynomial and scratch cursors, the witness
// arena is always securely wiped, never plainly reset. Caller shall
// make sure no live pointers remain into any arena.
func (mgr *ArenaManager) Resetall() {
	mgr.Securewipewitness()
	mgr.polynomial.Reset()
	mgr.scratch.Reset()
}

// Release the three regions back to the kernel. Idempotent. All
// arena handles from this manager become invalid.
func (mgr *ArenaManager) Release() {
	if mgr.released {
		return
	}
	mgr.released = true
	for _, region := range mgr.regions {
		if err := region.Release(); err != nil {
			errorf("%v releasing region: %v\n", "nalloc", err)
		}
	}
}

//---- statistics and maintenance

// Stats eventually-consistent snapshot of per-arena usage, relaxed
// loads, no cross-arena atomicity. Callers requiring a consistent
// snapshot shall quiesce allocation.
func (mgr *ArenaManager) Stats() Arenastats {
	return Arenastats{
		Witnessused:        mgr.witness.Used(),
		Witnesscapacity:    mgr.witness.Capacity(),
		Polynomialused:     mgr.polynomial.Used(),
		Polynomialcapacity: mgr.polynomial.Capacity(),
		Scratchused:        mgr.scratch.Used(),
		Scratchcapacity:    mgr.scratch.Capacity(),
	}
}

// Logstatistics arena usage and process resident memory, via the
// package logger.
func (mgr *ArenaManager) Logstatistics() {
	stats := mgr.Stats()
	infof("%v witness    {%v/%v}\n", "nalloc",
		humanize.Bytes(uint64(stats.Witnessused)),
		humanize.Bytes(uint64(stats.Witnesscapacity)))
	infof("%v polynomial {%v/%v}\n", "nalloc",
		humanize.Bytes(uint64(stats.Polynomialused)),
		humanize.Bytes(uint64(stats.Polynomialcapacity)))
	infof("%v scratch    {%v/%v}\n", "nalloc",
		humanize.Bytes(uint64(stats.Scratchused)),
		humanize.Bytes(uint64(stats.Scratchcapacity)))
	pmem := sigar.ProcMem{}
	if err := pmem.Get(os.Getpid()); err == nil {
		infof("%v process rss {%v}\n", "nalloc", humanize.Bytes(pmem.Resident))
	}
}

//---- local functions

func (mgr *ArenaManager) arenafor(kind api.ArenaKind) *BumpArena {
	switch kind {
	case api.Witness:
		return mgr.witness
	case api.Polynomial:
		return mgr.polynomial
	case api.Scratch:
		return mgr.scratch
	}
	panicerr("unexpected arena kind %v", byte(kind))
	return nil
}

// Adjustalign promote `align` to the minimum for `kind`. Large
// polynomial vectors get page alignment so FFT passes start on page
// boundaries.
func Adjustalign(kind api.ArenaKind, size, align int64) int64 {
	switch kind {
	case api.Witness:
		if align < api.Cachelinealign {
			align = api.Cachelinealign
		}
	case api.Polynomial:
		if align < api.Cachelinealign {
			align = api.Cachelinealign
		}
		if size >= api.Hugepolysize && align < api.Pagealign {
			align = api.Pagealign
		}
	case api.Scratch:
		if align < api.Scratchalign {
			align = api.Scratchalign
		}
	}
	return align
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
