// Package srcmap tracks which original 1-based source line each surviving
// (non-blank, comment-stripped) line of an assembly program came from, so
// the assembler can report "line N: message" instead of an offset into the
// already-filtered line list.
//
// Reduced from a full load/snapshot/undo-history facade (built for an
// editor re-indexing a file across incremental edits) down to the one
// read-only mapping a single-shot Assemble(source string) call needs.
package srcmap

import "strings"

// Map records, for each index in a filtered line list, the 1-based line
// number it originated from in the raw source text.
type Map struct {
	origins []int
}

// Build returns an empty Map whose entries will be filled in by
// RecordSurvivor as the lexer decides which raw lines survive filtering.
func Build() *Map {
	return &Map{}
}

// RecordSurvivor appends the 1-based rawLine as the origin of the next
// surviving line. Call once per line the lexer keeps, in order.
func (m *Map) RecordSurvivor(rawLine int) {
	m.origins = append(m.origins, rawLine)
}

// OriginalLine returns the 1-based source line number that produced the
// surviving line at index i, or 0 if i is out of range.
func (m *Map) OriginalLine(i int) int {
	if i < 0 || i >= len(m.origins) {
		return 0
	}
	return m.origins[i]
}

// SplitRawLines splits source text into raw lines without otherwise
// transforming it, using the same newline handling the lexer uses so line
// numbers always agree between the two.
func SplitRawLines(source string) []string {
	return strings.Split(source, "\n")
}
