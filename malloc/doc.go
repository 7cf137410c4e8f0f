// Package malloc supplies custom memory management for zk-proof
// provers, with a limited scope:
//
//   - Allocation is by bump, a monotonically advancing cursor over a
//     kernel reserved region. There is no per-object free.
//   - Memory is reclaimed en masse, by resetting an arena's cursor.
//     Applications shall make sure no live references remain into an
//     arena before resetting it.
//   - Once a region is reserved from OS it is not given back until
//     the entire manager is Released.
//   - Witness memory is scrubbed with a wipe that survives dead-store
//     elimination before its cursor is rewound.
//
// Arena is a bucket space of memory, with a fixed capacity, that is
// empty to begin with and fills up as and when new allocations are
// requested by application. The manager owns three arenas, one per
// workload: witness data, polynomial coefficient vectors and scratch
// buffers. Each kind carries its own minimum alignment so that FFT
// kernels and SIMD lanes read allocations without straddling cache
// lines.
package malloc
