package service

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// pageBounds converts a 0-indexed page request into LIMIT/OFFSET values.
// Negative pages clamp to the first page; sizes outside 1..MaxPageSize
// fall back to the default or the cap. Pages whose offset would overflow
// clamp to the largest representable offset, which is always past the end.
func pageBounds(page, size int) (limit, offset int) {
	if page < 0 {
		page = 0
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return size, page * size
}
