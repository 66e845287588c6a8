package assembler

import (
	"strings"

	"github.com/halvard/emu8086/internal/srcmap"
)

// ParsedLine is a parsed source line: a label, a mnemonic, and an operand
// list, any of which (except SourceLine) may be absent.
type ParsedLine struct {
	Label      string // "" if this line carries no label
	Mnemonic   string // "" if this line carries no instruction
	Operands   []string
	SourceLine int // 1-based original source line, for error reporting
}

// parse splits each lexed line on its first colon into an optional label
// and an optional instruction body, then splits the body into a mnemonic
// and a comma-separated operand list.
func parse(lines []string, m *srcmap.Map) ([]ParsedLine, error) {
	out := make([]ParsedLine, 0, len(lines))
	for i, line := range lines {
		srcLine := m.OriginalLine(i)

		label := ""
		body := line
		if idx := strings.IndexByte(line, ':'); idx != -1 {
			label = strings.TrimSpace(line[:idx])
			if label == "" {
				return nil, newError("parse", srcLine, "unterminated label")
			}
			body = strings.TrimSpace(line[idx+1:])
		}

		pl := ParsedLine{Label: label, SourceLine: srcLine}

		if body != "" {
			mnemonic, rest := splitMnemonic(body)
			pl.Mnemonic = mnemonic
			if rest != "" {
				operands, err := splitOperands(rest, srcLine)
				if err != nil {
					return nil, err
				}
				pl.Operands = operands
			}
		}

		out = append(out, pl)
	}
	return out, nil
}

// splitMnemonic separates the first whitespace-delimited token (the
// mnemonic) from the remainder of the instruction body.
func splitMnemonic(body string) (mnemonic, rest string) {
	idx := strings.IndexAny(body, " \t")
	if idx == -1 {
		return body, ""
	}
	return body[:idx], strings.TrimSpace(body[idx+1:])
}

// splitOperands splits a comma-separated operand list, trimming arbitrary
// surrounding whitespace around each operand.
func splitOperands(rest string, srcLine int) ([]string, error) {
	parts := strings.Split(rest, ",")
	operands := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, newError("parse", srcLine, "malformed operand list %q", rest)
		}
		operands = append(operands, p)
	}
	return operands, nil
}
