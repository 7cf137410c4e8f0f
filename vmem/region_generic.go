//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package vmem

import "github.com/nzengi/nalloc/lib"

// Fallback for platforms without an anonymous-map syscall surface.
// Over-allocates one page from the golang heap and slices out a
// page-aligned window. The backing array stays alive through the
// returned slice.
func osreserve(size int64) ([]byte, error) {
	page := Pagesize()
	raw := make([]byte, size+page)
	base := int64(uintptr(lib.Bytes2ptr(raw)))
	off := lib.AlignUp(base, page) - base
	return raw[off : off+size : off+size], nil
}

func osrelease(block []byte) error {
	return nil // garbage collected
}
