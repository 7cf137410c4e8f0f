// Package api define types, interfaces and constants common to all
// allocator components implemented by this package.
package api
