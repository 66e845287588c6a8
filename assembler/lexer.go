package assembler

import (
	"strings"

	"github.com/halvard/emu8086/internal/srcmap"
)

// lex strips comments, trims whitespace, drops blank lines, and upper-cases
// what remains (8086 assembly is case-insensitive). Returns the surviving
// lines alongside a srcmap.Map recording which original 1-based source
// line each one came from. Folded into one pass instead of several
// composable predicates, since there is no directive handling to keep
// separate from comment handling here.
func lex(source string) ([]string, *srcmap.Map) {
	raw := srcmap.SplitRawLines(source)
	m := srcmap.Build()

	var out []string
	for i, line := range raw {
		if idx := strings.IndexByte(line, ';'); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.ToUpper(line))
		m.RecordSurvivor(i + 1)
	}
	return out, m
}
