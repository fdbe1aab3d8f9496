// Package memory provides the raw allocators that back every container
// payload. An Allocator hands out byte buffers and takes them back. A nil
// return from Allocate is the only failure signal.
//
// Heap is the default. Pool recycles buffers through power-of-two size
// classes, Budget caps the number of outstanding bytes, and Instrument
// reports traffic to a metrics.Collector. All allocators are safe for
// concurrent use even though the containers built on them are not.
package memory
