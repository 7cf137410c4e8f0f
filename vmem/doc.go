// Package vmem reserve large page-aligned memory regions directly
// from the OS kernel, bypassing the golang runtime allocator, with a
// limited scope:
//
//   - Regions are committed read+write and zeroed by the kernel,
//     physical pages show up in RSS only on first touch.
//   - Regions cannot grow, callers shall reserve their worst case
//     capacity up front.
//   - Release returns the whole range to the kernel, there is no
//     partial release.
//
// The package also supplies SecureWipe, a zeroing primitive that is
// not subject to dead-store elimination, for scrubbing sensitive
// buffers before a region is recycled.
package vmem
