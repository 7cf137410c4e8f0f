//go:build linux

package vmem

import "golang.org/x/sys/unix"

// Anonymous private mapping. MAP_NORESERVE so that multi-gigabyte
// arenas do not count against the overcommit budget until touched.
func osreserve(size int64) ([]byte, error) {
	return unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_NORESERVE)
}

func osrelease(block []byte) error {
	return unix.Munmap(block)
}
