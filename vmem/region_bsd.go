//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package vmem

import "golang.org/x/sys/unix"

// Anonymous private mapping. On darwin the mach VM layer places the
// mapping anywhere in the task address space and zero-fills it.
func osreserve(size int64) ([]byte, error) {
	return unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
}

func osrelease(block []byte) error {
	return unix.Munmap(block)
}
