package assembler

import (
	"github.com/halvard/emu8086/architecture/x86"
)

// assignOffsets is pass 1: walk the parsed lines once, recording each
// label's byte offset and summing instruction sizes, without emitting any
// bytes.
func assignOffsets(lines []ParsedLine) (map[string]int, error) {
	symtab := make(map[string]int)
	offset := 0

	for _, pl := range lines {
		if pl.Label != "" {
			if _, exists := symtab[pl.Label]; exists {
				return nil, newError("assembly", pl.SourceLine, "duplicate label %q", pl.Label)
			}
			symtab[pl.Label] = offset
		}

		if pl.Mnemonic == "" {
			continue
		}

		form, ok := lookupForm(pl.Mnemonic, pl.Operands)
		if !ok {
			return nil, newError("assembly", pl.SourceLine, "unknown instruction form %q", formKey(pl.Mnemonic, pl.Operands))
		}
		offset += form.Size(isAccumDest(form, pl.Operands))
	}

	return symtab, nil
}

// lookupForm derives the mnemonic-form key and resolves it against the
// shared x86 encoding table.
func lookupForm(mnemonic string, operands []string) (x86.Form, bool) {
	form, ok := x86.ByKey[formKey(mnemonic, operands)]
	return form, ok
}

func formKey(mnemonic string, operands []string) string {
	return x86.DeriveKey(mnemonic, operands)
}

// isAccumDest reports whether a KindArithRegImm form should use its
// dedicated AX,imm opcode rather than the general group-1 form. Harmless to
// call for any other Kind since Form.Size ignores the argument then.
func isAccumDest(form x86.Form, operands []string) bool {
	return form.Kind == x86.KindArithRegImm && len(operands) > 0 && operands[0] == "AX"
}
