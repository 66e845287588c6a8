// Package x86 is the shared 8086 architecture catalog: register encodings,
// the FLAGS bit layout, and the single declarative instruction-encoding
// table that both the assembler and the CPU decoder read from.
package x86

import "encoding/binary"

// Reg16 identifies one of the eight word-addressable general/pointer/index
// registers using the 8086's canonical ModR/M register-field order.
type Reg16 uint8

const (
	AX Reg16 = iota
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

var reg16Names = [8]string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"}

// String returns the canonical upper-case mnemonic for the register.
func (r Reg16) String() string {
	if int(r) < len(reg16Names) {
		return reg16Names[r]
	}
	return "??"
}

// Reg8 identifies one of the eight byte-addressable halves of AX/CX/DX/BX,
// using the 8086's canonical ModR/M register-field order for 8-bit operands.
type Reg8 uint8

const (
	AL Reg8 = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
)

var reg8Names = [8]string{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"}

func (r Reg8) String() string {
	if int(r) < len(reg8Names) {
		return reg8Names[r]
	}
	return "??"
}

// parent returns the Reg16 that backs this 8-bit half, and whether the half
// is the high byte (true) or the low byte (false).
func (r Reg8) parent() (Reg16, bool) {
	return Reg16(r & 0x3), r >= AH
}

// Seg identifies one of the four segment registers.
type Seg uint8

const (
	ES Seg = iota
	CS
	SS
	DS
)

var segNames = [4]string{"ES", "CS", "SS", "DS"}

func (s Seg) String() string {
	if int(s) < len(segNames) {
		return segNames[s]
	}
	return "??"
}

// reg16ByName, reg8ByName and segByName map every register spelling the
// assembler and lexer accept to its classification. Built once; the zero value of an absent lookup is
// handled by the ok return of the two-result map read, same idiom as the
// teacher's RegistersByName table.
var (
	reg16ByName = map[string]Reg16{
		"AX": AX, "CX": CX, "DX": DX, "BX": BX,
		"SP": SP, "BP": BP, "SI": SI, "DI": DI,
	}
	reg8ByName = map[string]Reg8{
		"AL": AL, "CL": CL, "DL": DL, "BL": BL,
		"AH": AH, "CH": CH, "DH": DH, "BH": BH,
	}
	segByName = map[string]Seg{
		"ES": ES, "CS": CS, "SS": SS, "DS": DS,
	}
)

// LookupReg16 resolves a word-register name (case must already be
// upper-cased by the lexer). Reports ok=false for anything else, including
// 8-bit and segment register names.
func LookupReg16(name string) (Reg16, bool) {
	r, ok := reg16ByName[name]
	return r, ok
}

// LookupReg8 resolves an 8-bit register half name.
func LookupReg8(name string) (Reg8, bool) {
	r, ok := reg8ByName[name]
	return r, ok
}

// LookupSeg resolves a segment register name.
func LookupSeg(name string) (Seg, bool) {
	s, ok := segByName[name]
	return s, ok
}

// IsRegisterName reports whether name spells any register this architecture
// recognizes (word, byte, or segment).
func IsRegisterName(name string) bool {
	if _, ok := reg16ByName[name]; ok {
		return true
	}
	if _, ok := reg8ByName[name]; ok {
		return true
	}
	if _, ok := segByName[name]; ok {
		return true
	}
	return false
}

// slotIP and slotFlags address the two non-segment, non-GPR word slots in
// the fourteen-slot register file (see RegisterFile).
const (
	slotIP    = 12
	slotFlags = 13
)

// RegisterFile is the 8086 register file: fourteen 16-bit slots backed by a
// single byte array. AX/CX/DX/BX additionally expose AL/AH/CL/CH/DL/DH/BL/BH
// as accessors over the same bytes, little-endian, so the 8-bit and 16-bit
// views always alias — endianness is a property of the accessor, not of
// the storage, per the architecture's design notes.
type RegisterFile struct {
	data [28]byte // 14 slots * 2 bytes; see layout below
}

// Slot layout inside data (word index -> byte offset = index*2):
//
//	0 AX  1 CX  2 DX  3 BX
//	4 SP  5 BP  6 SI  7 DI
//	8 ES  9 CS  10 SS 11 DS
//	12 IP 13 FLAGS
func wordOffset(slot int) int { return slot * 2 }

// Word16 reads a general/pointer/index register.
func (f *RegisterFile) Word16(r Reg16) uint16 {
	off := wordOffset(int(r))
	return binary.LittleEndian.Uint16(f.data[off : off+2])
}

// SetWord16 writes a general/pointer/index register, truncated to 16 bits.
func (f *RegisterFile) SetWord16(r Reg16, v uint16) {
	off := wordOffset(int(r))
	binary.LittleEndian.PutUint16(f.data[off:off+2], v)
}

// Byte8 reads one 8-bit half of AX/CX/DX/BX.
func (f *RegisterFile) Byte8(r Reg8) uint8 {
	parent, high := r.parent()
	off := wordOffset(int(parent))
	if high {
		return f.data[off+1]
	}
	return f.data[off]
}

// SetByte8 writes one 8-bit half of AX/CX/DX/BX, leaving the other half of
// the same word untouched.
func (f *RegisterFile) SetByte8(r Reg8, v uint8) {
	parent, high := r.parent()
	off := wordOffset(int(parent))
	if high {
		f.data[off+1] = v
	} else {
		f.data[off] = v
	}
}

// Seg16 reads a segment register.
func (f *RegisterFile) Seg16(s Seg) uint16 {
	off := wordOffset(8 + int(s))
	return binary.LittleEndian.Uint16(f.data[off : off+2])
}

// SetSeg16 writes a segment register.
func (f *RegisterFile) SetSeg16(s Seg, v uint16) {
	off := wordOffset(8 + int(s))
	binary.LittleEndian.PutUint16(f.data[off:off+2], v)
}

// IP reads the instruction pointer slot.
func (f *RegisterFile) IP() uint16 {
	return binary.LittleEndian.Uint16(f.data[wordOffset(slotIP):])
}

// SetIP writes the instruction pointer slot.
func (f *RegisterFile) SetIP(v uint16) {
	binary.LittleEndian.PutUint16(f.data[wordOffset(slotIP):wordOffset(slotIP)+2], v)
}

// FlagsWord reads the raw FLAGS slot. Named-bit access lives in flags.go.
func (f *RegisterFile) FlagsWord() uint16 {
	return binary.LittleEndian.Uint16(f.data[wordOffset(slotFlags):])
}

// SetFlagsWord writes the raw FLAGS slot.
func (f *RegisterFile) SetFlagsWord(v uint16) {
	binary.LittleEndian.PutUint16(f.data[wordOffset(slotFlags):wordOffset(slotFlags)+2], v)
}

// Reset zeroes every slot, matching the defined CPU reset state.
func (f *RegisterFile) Reset() {
	for i := range f.data {
		f.data[i] = 0
	}
}
