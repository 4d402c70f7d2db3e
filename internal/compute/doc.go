// Package compute provides the execution backends that spread grid rows
// across goroutines.
//
// The package automatically selects the best available backend:
//
//   - CPU: chunks rows across runtime.NumCPU() workers
//   - Serial: runs every row on the calling goroutine
//
// # Row Partitioning
//
// Each worker receives a contiguous half-open range of rows:
//
//	backend := compute.GetBackend()
//	backend.ForRows(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // fill row y
//	    }
//	})
//
// Ranges never overlap, so callers writing one slot per row need no locks.
// Any partition yields the same output for a pure per-row function.
package compute
