//go:build windows

package vmem

import "unsafe"

import "golang.org/x/sys/windows"

// Reserve and commit in a single call, the kernel supplies zeroed
// pages on first touch.
func osreserve(size int64) ([]byte, error) {
	base, err := windows.VirtualAlloc(
		0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(base)), size), nil
}

func osrelease(block []byte) error {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
	return windows.VirtualFree(base, 0, windows.MEM_RELEASE)
}
