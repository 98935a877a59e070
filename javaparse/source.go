package javaparse

import (
	"sort"
	"unicode/utf16"
)

// Source is an immutable view of UTF-8 source text plus a lazily built line
// index used to translate absolute byte offsets into (line, column) pairs.
// The zero value is not usable; construct with NewSource.
type Source struct {
	text       string
	lineStarts []uint32 // byte offset of the start of each line; built lazily
}

// NewSource wraps the given text as a Source. The text is not copied; the
// returned Source borrows it for its entire lifetime, same as every Token
// and Node span computed from it.
func NewSource(text string) *Source {
	return &Source{text: text}
}

// Text returns the full source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the source text in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// Slice returns the source text between the given half-open byte offsets.
func (s *Source) Slice(start, end uint32) string {
	return s.text[start:end]
}

// Position is a 1-indexed (line, column) pair. Column is measured in UTF-16
// code units, matching the target language's own canonical positional rule
// (see spec §4.1, §9 Open Questions).
type Position struct {
	Line   int
	Column int
}

// ensureLineIndex builds the line-start table on first use. Line endings
// recognized: LF, CRLF, and bare CR, each counted as exactly one break.
func (s *Source) ensureLineIndex() {
	if s.lineStarts != nil {
		return
	}
	starts := []uint32{0}
	text := s.text
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, uint32(i+1))
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, uint32(i+1))
		}
	}
	s.lineStarts = starts
}

// Position translates an absolute byte offset into a 1-indexed (line,
// column) pair. The column is the number of UTF-16 code units between the
// start of the line and offset.
func (s *Source) Position(offset uint32) Position {
	s.ensureLineIndex()

	lineIdx := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := s.lineStarts[lineIdx]
	column := 1
	if offset > lineStart {
		column += countUTF16Units(s.text[lineStart:offset])
	}

	return Position{Line: lineIdx + 1, Column: column}
}

// LineText returns the full line of source text containing offset, not
// including its terminating line break.
func (s *Source) LineText(offset uint32) string {
	s.ensureLineIndex()

	lineIdx := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	start := s.lineStarts[lineIdx]
	end := uint32(len(s.text))
	if int(lineIdx)+1 < len(s.lineStarts) {
		end = s.lineStarts[lineIdx+1]
	}

	line := s.text[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

func countUTF16Units(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
