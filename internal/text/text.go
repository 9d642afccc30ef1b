// Package text provides byte-offset text primitives shared by the tree,
// batch, and analyze packages.
package text

import "fmt"

// Range is a half-open byte range [Start, End) into a source buffer.
type Range struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// NewRange creates a range from start and end offsets.
func NewRange(start, end uint32) Range {
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() uint32 {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset uint32) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps reports whether two ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Edit is a single replacement of a byte range with new text.
// An empty range with non-empty text is an insertion; a non-empty
// range with empty text is a deletion.
type Edit struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}
