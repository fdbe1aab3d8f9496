package mhvector

// Physical layout of a movable-head vector. The backing array is always
// GrowthFactor times the logical capacity so that after re-centering a block
// of at most capacity elements there is free space on both sides.
const (
	GrowthFactor  = 2
	HeadAlignment = 4
)

// PhysicalLength returns the backing array length for a logical capacity.
func PhysicalLength(capacity int) int {
	return capacity * GrowthFactor
}

// InitialHead returns where head and tail park in an empty vector: a quarter
// of the way into the physical array, rounded down to HeadAlignment when the
// quarter is at least one alignment unit.
func InitialHead(physical int) int {
	h := physical / 4
	if h >= HeadAlignment {
		h -= h % HeadAlignment
	}
	return h
}

// Center returns the head index that splits the free slots of a physical
// array evenly around a block of length live elements.
func Center(physical, length int) int {
	if length >= physical {
		return 0
	}
	return (physical - length) / 2
}
