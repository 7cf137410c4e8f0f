package vmem

import "runtime"
import "unsafe"
import "sync/atomic"

// fences on either side of the wipe loop, the stores cannot be
// reordered or sunk across them.
var wipefence int64

// SecureWipe overwrite `size` bytes at `ptr` with zero, guaranteed
// not to be removed by dead-store elimination even when the caller
// never reads the memory again. Returns only after all stores are
// observable from this thread. Cursors of any arena built over the
// range are left untouched.
func SecureWipe(ptr unsafe.Pointer, size int64) {
	if ptr == nil || size <= 0 {
		return
	}
	atomic.AddInt64(&wipefence, 1)
	block := unsafe.Slice((*byte)(ptr), size)
	for i := range block {
		block[i] = 0
	}
	atomic.AddInt64(&wipefence, 1)
	runtime.KeepAlive(block)
}

// SecureWipeBytes convenience over SecureWipe for slice views.
func SecureWipeBytes(block []byte) {
	if len(block) == 0 {
		return
	}
	SecureWipe(unsafe.Pointer(unsafe.SliceData(block)), int64(len(block)))
}
