package text

import "sort"

// LineIndex maps byte offsets to 1-indexed line/column positions.
// Built once per source buffer and safe for concurrent reads.
type LineIndex struct {
	// starts[i] is the byte offset of the first byte of line i+1.
	starts []uint32
	size   uint32
}

// NewLineIndex builds a line index for the given source bytes.
func NewLineIndex(source []byte) *LineIndex {
	starts := []uint32{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, uint32(i)+1)
		}
	}
	return &LineIndex{starts: starts, size: uint32(len(source))}
}

// Position returns the 1-indexed line and column for a byte offset.
// Offsets past the end of the buffer are clamped to the last position.
func (ix *LineIndex) Position(offset uint32) (line, col int) {
	if offset > ix.size {
		offset = ix.size
	}
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
	// i is the first line starting after offset; the offset is on line i.
	return i, int(offset-ix.starts[i-1]) + 1
}

// LineStart returns the byte offset of the first byte of the line
// containing offset.
func (ix *LineIndex) LineStart(offset uint32) uint32 {
	line, _ := ix.Position(offset)
	return ix.starts[line-1]
}
