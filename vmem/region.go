package vmem

import "os"
import "unsafe"
import "fmt"

import "github.com/nzengi/nalloc/api"
import "github.com/nzengi/nalloc/lib"

// Region is a contiguous range of virtual memory reserved from the
// kernel. The zero value is an empty region, Release on it is a
// no-op.
type Region struct {
	block    []byte
	released bool
}

// Reserve obtain `size` bytes of read+write virtual memory from the
// kernel, rounded up to the OS page size. The returned region is
// page-aligned and zero filled. Returns ErrorBackendUnavailable if
// the kernel refuses.
func Reserve(size int64) (*Region, error) {
	if size <= 0 {
		panicerr("Reserve(%v): size should be positive", size)
	}
	size = lib.AlignUp(size, Pagesize())
	block, err := osreserve(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrorBackendUnavailable, err)
	}
	return &Region{block: block}, nil
}

// Base pointer to the first byte of the region, aligned to at least
// the OS page size. Nil for an empty region.
func (region *Region) Base() unsafe.Pointer {
	if region == nil || region.block == nil {
		return nil
	}
	return lib.Bytes2ptr(region.block)
}

// Capacity of the region in bytes, a multiple of the OS page size.
func (region *Region) Capacity() int64 {
	if region == nil {
		return 0
	}
	return int64(len(region.block))
}

// Bytes full-range view over the region. The slice aliases kernel
// memory and is valid until Release.
func (region *Region) Bytes() []byte {
	if region == nil {
		return nil
	}
	return region.block
}

// Release return the range to the kernel. Idempotent, releasing an
// empty or already released region is a no-op.
func (region *Region) Release() error {
	if region == nil || region.released || region.block == nil {
		return nil
	}
	region.released = true
	block := region.block
	region.block = nil
	return osrelease(block)
}

// Pagesize of the host OS in bytes.
func Pagesize() int64 {
	return int64(os.Getpagesize())
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
