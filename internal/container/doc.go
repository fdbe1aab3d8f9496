// internal/container/doc.go

// Package container defines the contract shared by the adtkit containers.
//
// # Error Taxonomy
//
// Every failure is one of the sentinel errors in this package, wrapped in an
// *OpError naming the container kind and operation:
//
//	err := v.InsertLast(payload)
//	if errors.Is(err, container.ErrVectorFull) {
//	    // grow or drop
//	}
//
// CodeOf maps an error back to the numeric code used in diagnostics and in
// the metrics result label.
//
// # Ownership
//
// Insert operations copy the caller's payload into allocator-owned storage.
// Extract operations hand the stored buffer to the caller, who may return it
// with Allocator.Free. First, Last and At return the stored slice itself,
// valid until the element leaves the container.
//
// # Options
//
// Options carries the allocator, zap logger and metrics collector. A nil
// *Options selects the heap allocator and a no-op logger. Each container
// instance gets an Observer with a random instance ID that tags its log
// lines and feeds adtkit_operations_total.
package container
