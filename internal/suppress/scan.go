package suppress

import (
	"strings"

	"sift/internal/text"
	"sift/internal/tree"
)

// Suppressions records which rule categories are silenced on which lines of
// one file, built from a single scan of the source for Marker comments.
// A marker comment suppresses matching findings on the following line; a
// trailing marker suppresses findings on its own line.
type Suppressions struct {
	// byLine maps a 1-indexed line to the categories suppressed on it.
	// The empty category suppresses every rule.
	byLine map[int][]string
	lines  *text.LineIndex
}

// Scan collects suppression markers from source bytes.
func Scan(source []byte, lang tree.Language) *Suppressions {
	comment := tree.LineComment(lang)
	s := &Suppressions{
		byLine: make(map[int][]string),
		lines:  text.NewLineIndex(source),
	}

	for i, line := range strings.Split(string(source), "\n") {
		idx := strings.Index(line, comment+" "+Marker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(comment)+len(Marker)+1:]
		rest = strings.TrimPrefix(rest, ":")
		category := strings.TrimSpace(rest)
		if fields := strings.Fields(category); len(fields) > 0 {
			category = fields[0]
		}

		lineNo := i + 1
		if strings.TrimSpace(line[:idx]) == "" {
			// Marker on its own line applies to the next line.
			lineNo++
		}
		s.byLine[lineNo] = append(s.byLine[lineNo], category)
	}
	return s
}

// IsSuppressed reports whether a finding of the given category starting at
// the given byte offset is silenced by a marker.
func (s *Suppressions) IsSuppressed(category string, offset uint32) bool {
	line, _ := s.lines.Position(offset)
	for _, c := range s.byLine[line] {
		if c == "" || c == category {
			return true
		}
	}
	return false
}
