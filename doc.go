// Package nalloc global allocator surface for zk-proof provers,
// built over three bump arenas:
//
//   - witness, private proof inputs, 64-byte aligned, securely wiped
//     on every reset.
//   - polynomial, FFT/NTT coefficient vectors, 64-byte aligned,
//     promoted to page alignment at and above 64KB.
//   - scratch, transient computation buffers, 16-byte aligned.
//
// The global entry points Allocate, Allocatezeroed, Reallocate and
// Deallocate route between the polynomial and scratch arenas by size
// and alignment. Allocations of 1MB or more, or requests for page
// alignment or stricter, go to the polynomial arena, everything else
// goes to scratch. Deallocate is a no-op, memory is reclaimed en
// masse with Resetall.
//
// The allocator bootstraps itself on first use. Initialization is
// safe under concurrent first calls and never allocates through
// itself, the manager control block lives in statically reserved
// package storage.
package nalloc
