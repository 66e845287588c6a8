package assembler

import (
	"github.com/halvard/emu8086/architecture/x86"
)

// encode is pass 2: walk the parsed lines again, this time emitting bytes
// for each instruction using the offsets pass 1 resolved for
// label-relative displacements.
func encode(lines []ParsedLine, symtab map[string]int) ([]byte, error) {
	var out []byte
	offset := 0

	for _, pl := range lines {
		if pl.Mnemonic == "" {
			continue
		}

		form, ok := lookupForm(pl.Mnemonic, pl.Operands)
		if !ok {
			return nil, newError("assembly", pl.SourceLine, "unknown instruction form %q", formKey(pl.Mnemonic, pl.Operands))
		}

		bytes, err := encodeForm(form, pl, offset, symtab)
		if err != nil {
			return nil, err
		}

		out = append(out, bytes...)
		offset += len(bytes)
	}

	return out, nil
}

func encodeForm(form x86.Form, pl ParsedLine, offset int, symtab map[string]int) ([]byte, error) {
	switch form.Kind {
	case x86.KindPlain:
		return []byte{form.Opcode}, nil

	case x86.KindRegInOpcode:
		idx, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		return []byte{form.Opcode + idx}, nil

	case x86.KindModRMRegReg:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		src, err := regIndex(pl.Operands[1], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		modrm := 0xC0 | src<<3 | dest
		return []byte{form.Opcode, modrm}, nil

	case x86.KindMovRegImm:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		imm, err := immediate16(pl.Operands[1], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		return append([]byte{form.Opcode + dest}, lowHigh(imm)...), nil

	case x86.KindArithRegImm:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		imm, err := immediate16(pl.Operands[1], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		if pl.Operands[0] == "AX" {
			return append([]byte{form.AccumOpcode}, lowHigh(imm)...), nil
		}
		modrm := 0xC0 | form.Ext<<3 | dest
		return append([]byte{0x81, modrm}, lowHigh(imm)...), nil

	case x86.KindGroupF7:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		modrm := 0xC0 | form.Ext<<3 | dest
		return []byte{form.Opcode, modrm}, nil

	case x86.KindGroupF7Imm:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		imm, err := immediate16(pl.Operands[1], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		modrm := 0xC0 | form.Ext<<3 | dest
		return append([]byte{form.Opcode, modrm}, lowHigh(imm)...), nil

	case x86.KindGroupShiftOne:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		imm, err := immediate16(pl.Operands[1], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		if imm != 1 {
			return nil, newError("encoding", pl.SourceLine, "%s by immediate only supports a count of 1 (use CL for a variable count)", pl.Mnemonic)
		}
		modrm := 0xC0 | form.Ext<<3 | dest
		return []byte{form.Opcode, modrm}, nil

	case x86.KindGroupShiftCL:
		dest, err := regIndex(pl.Operands[0], pl.SourceLine)
		if err != nil {
			return nil, err
		}
		if pl.Operands[1] != "CL" {
			return nil, newError("encoding", pl.SourceLine, "%s register form requires CL as the count register", pl.Mnemonic)
		}
		modrm := 0xC0 | form.Ext<<3 | dest
		return []byte{form.Opcode, modrm}, nil

	case x86.KindRelativeShort:
		size := form.Size(false)
		target, ok := symtab[pl.Operands[0]]
		if !ok {
			return nil, newError("assembly", pl.SourceLine, "undefined label %q", pl.Operands[0])
		}
		disp := target - (offset + size)
		if disp < -128 || disp > 127 {
			return nil, newError("assembly", pl.SourceLine, "Jump to %s is too far", pl.Operands[0])
		}
		return []byte{form.Opcode, byte(int8(disp))}, nil

	case x86.KindRelativeNear:
		size := form.Size(false)
		target, ok := symtab[pl.Operands[0]]
		if !ok {
			return nil, newError("assembly", pl.SourceLine, "undefined label %q", pl.Operands[0])
		}
		disp := target - (offset + size)
		if disp < -32768 || disp > 32767 {
			return nil, newError("assembly", pl.SourceLine, "Jump to %s is too far", pl.Operands[0])
		}
		return append([]byte{form.Opcode}, lowHigh(uint16(int16(disp)))...), nil

	default:
		return nil, newError("encoding", pl.SourceLine, "unsupported encoding for %s", pl.Mnemonic)
	}
}

// regIndex resolves a word-register operand to its canonical ModR/M index
// (AX=0..DI=7). Byte/segment registers are rejected here — every in-scope
// destination operand is a 16-bit general/pointer/index register.
func regIndex(operand string, line int) (byte, error) {
	r, ok := x86.LookupReg16(operand)
	if !ok {
		return 0, newError("encoding", line, "operand %q is neither a known 16-bit register nor a parseable immediate", operand)
	}
	return byte(r), nil
}

// immediate16 parses operand as a decimal or hexadecimal literal,
// truncating to 16 bits.
func immediate16(operand string, line int) (uint16, error) {
	v, ok := x86.ParseImmediate(operand)
	if !ok {
		return 0, newError("encoding", line, "operand %q is neither a known register nor a parseable immediate", operand)
	}
	return uint16(v), nil
}

func lowHigh(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}
