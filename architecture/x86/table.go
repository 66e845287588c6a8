package x86

// Forms is the single declarative catalog of every supported instruction
// form. Both ByKey (assembler-facing, mnemonic-form keys) and the Decode*
// tables (CPU-facing, opcode bytes) are derived from this one slice at
// package init, so the two pipelines can never drift out of byte-for-byte
// agreement with each other.
var Forms = []Form{
	// Data transfer
	{Mnemonic: MOV, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x89},
	{Mnemonic: MOV, KeySuffix: "_REG_IMM", Kind: KindMovRegImm, Opcode: 0xB8},
	{Mnemonic: PUSH, KeySuffix: "_REG", Kind: KindRegInOpcode, Opcode: 0x50},
	{Mnemonic: POP, KeySuffix: "_REG", Kind: KindRegInOpcode, Opcode: 0x58},
	{Mnemonic: XCHG, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x87},
	{Mnemonic: XCHG, KeySuffix: "_REG", Kind: KindRegInOpcode, Opcode: 0x90},
	{Mnemonic: LEA, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x8D},

	// Arithmetic: register/register and dedicated-or-group register/immediate
	{Mnemonic: ADD, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x01},
	{Mnemonic: SUB, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x29},
	{Mnemonic: CMP, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x39},
	{Mnemonic: ADD, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, AccumOpcode: 0x05, Ext: 0},
	{Mnemonic: SUB, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, AccumOpcode: 0x2D, Ext: 5},
	{Mnemonic: CMP, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, AccumOpcode: 0x3D, Ext: 7},
	{Mnemonic: INC, KeySuffix: "_REG", Kind: KindRegInOpcode, Opcode: 0x40},
	{Mnemonic: DEC, KeySuffix: "_REG", Kind: KindRegInOpcode, Opcode: 0x48},

	// Group 0xF7: MUL/IMUL/DIV/IDIV/NEG/NOT (no immediate), TEST (immediate)
	{Mnemonic: TEST, KeySuffix: "_REG_IMM", Kind: KindGroupF7Imm, Opcode: 0xF7, Ext: 0},
	{Mnemonic: NOT, KeySuffix: "_REG", Kind: KindGroupF7, Opcode: 0xF7, Ext: 2},
	{Mnemonic: NEG, KeySuffix: "_REG", Kind: KindGroupF7, Opcode: 0xF7, Ext: 3},
	{Mnemonic: MUL, KeySuffix: "_REG", Kind: KindGroupF7, Opcode: 0xF7, Ext: 4},
	{Mnemonic: IMUL, KeySuffix: "_REG", Kind: KindGroupF7, Opcode: 0xF7, Ext: 5},
	{Mnemonic: DIV, KeySuffix: "_REG", Kind: KindGroupF7, Opcode: 0xF7, Ext: 6},
	{Mnemonic: IDIV, KeySuffix: "_REG", Kind: KindGroupF7, Opcode: 0xF7, Ext: 7},

	// Logical
	{Mnemonic: AND, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x21},
	{Mnemonic: OR, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x09},
	{Mnemonic: XOR, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x31},
	{Mnemonic: TEST, KeySuffix: "_REG_REG", Kind: KindModRMRegReg, Opcode: 0x85},
	{Mnemonic: AND, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, AccumOpcode: 0x25, Ext: 4},
	{Mnemonic: OR, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, AccumOpcode: 0x0D, Ext: 1},
	{Mnemonic: XOR, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, AccumOpcode: 0x35, Ext: 6},

	// String primitives
	{Mnemonic: MOVSB, Kind: KindPlain, Opcode: 0xA4},
	{Mnemonic: LODSB, Kind: KindPlain, Opcode: 0xAC},
	{Mnemonic: STOSB, Kind: KindPlain, Opcode: 0xAA},
	{Mnemonic: CMPSB, Kind: KindPlain, Opcode: 0xA6},

	// Control flow
	{Mnemonic: JMP, Kind: KindRelativeNear, Opcode: 0xE9},
	{Mnemonic: CALL, Kind: KindRelativeNear, Opcode: 0xE8},
	{Mnemonic: RET, Kind: KindPlain, Opcode: 0xC3},
	{Mnemonic: JE, Kind: KindRelativeShort, Opcode: 0x74},
	{Mnemonic: JZ, Kind: KindRelativeShort, Opcode: 0x74},
	{Mnemonic: JNE, Kind: KindRelativeShort, Opcode: 0x75},
	{Mnemonic: JNZ, Kind: KindRelativeShort, Opcode: 0x75},
	{Mnemonic: JC, Kind: KindRelativeShort, Opcode: 0x72},
	{Mnemonic: JNC, Kind: KindRelativeShort, Opcode: 0x73},

	// Shift/rotate group (0xD1 shift-by-one, 0xD3 shift-by-CL)
	{Mnemonic: ROL, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 0},
	{Mnemonic: ROR, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 1},
	{Mnemonic: RCL, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 2},
	{Mnemonic: RCR, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 3},
	{Mnemonic: SHL, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 4},
	{Mnemonic: SHR, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 5},
	{Mnemonic: SAR, KeySuffix: "_REG_IMM", Kind: KindGroupShiftOne, Opcode: 0xD1, Ext: 7},
	{Mnemonic: ROL, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 0},
	{Mnemonic: ROR, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 1},
	{Mnemonic: RCL, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 2},
	{Mnemonic: RCR, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 3},
	{Mnemonic: SHL, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 4},
	{Mnemonic: SHR, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 5},
	{Mnemonic: SAR, KeySuffix: "_REG_REG", Kind: KindGroupShiftCL, Opcode: 0xD3, Ext: 7},

	// Single-byte miscellany
	{Mnemonic: NOP, Kind: KindPlain, Opcode: 0x90},
	{Mnemonic: HLT, Kind: KindPlain, Opcode: 0xF4},
	{Mnemonic: CLC, Kind: KindPlain, Opcode: 0xF8},
	{Mnemonic: STC, Kind: KindPlain, Opcode: 0xF9},
	{Mnemonic: CMC, Kind: KindPlain, Opcode: 0xF5},
}

// ByKey resolves a mnemonic-form key (as produced by the assembler's
// instruction-key detection) to its Form.
var ByKey map[string]Form

// Decode tables, derived from Forms (DecodeGroup1 from group1Ext). Each maps
// the bytes the CPU's fetch/decode stage actually sees back to the Form
// describing what to do.
var (
	DecodePlain        map[byte]Form // direct opcode -> Form (0 operands)
	DecodeRegInOpcode  map[byte]Form // base opcode (opcode&0xF8) -> Form
	DecodeMovRegImmBox Form          // the single MOV_REG_IMM form (base 0xB8)
	DecodeModRMRegReg  map[byte]Form // opcode -> Form
	DecodeAccumArith   map[byte]Form // dedicated AX,imm opcode -> Form
	DecodeGroup1       map[byte]Form // opcode 0x81 ext -> Form (general reg,imm arithmetic)
	DecodeGroupF7      map[byte]Form // ext -> Form, opcode always 0xF7
	DecodeGroupShiftD1 map[byte]Form // ext -> Form, opcode 0xD1
	DecodeGroupShiftD3 map[byte]Form // ext -> Form, opcode 0xD3
	DecodeRelShort     map[byte]Form // opcode -> Form
	DecodeRelNear      map[byte]Form // opcode -> Form
)

// group1Ext gives the 0x81 group extension for the six mnemonics that have
// a general (non-AX) register+immediate arithmetic form. Standard 8086
// group-1 ordering: ADD=0 OR=1 ADC=2 SBB=3 AND=4 SUB=5 XOR=6 CMP=7 — ADC/SBB
// have no dedicated accumulator form here, so only the six below are
// populated.
var group1Ext = map[string]byte{
	ADD: 0,
	OR:  1,
	AND: 4,
	SUB: 5,
	XOR: 6,
	CMP: 7,
}

func init() {
	ByKey = make(map[string]Form, len(Forms))
	DecodePlain = make(map[byte]Form)
	DecodeRegInOpcode = make(map[byte]Form)
	DecodeModRMRegReg = make(map[byte]Form)
	DecodeAccumArith = make(map[byte]Form)
	DecodeGroup1 = make(map[byte]Form)
	DecodeGroupF7 = make(map[byte]Form)
	DecodeGroupShiftD1 = make(map[byte]Form)
	DecodeGroupShiftD3 = make(map[byte]Form)
	DecodeRelShort = make(map[byte]Form)
	DecodeRelNear = make(map[byte]Form)

	for _, f := range Forms {
		ByKey[f.Key()] = f

		switch f.Kind {
		case KindPlain:
			DecodePlain[f.Opcode] = f
		case KindRegInOpcode:
			DecodeRegInOpcode[f.Opcode] = f
		case KindMovRegImm:
			DecodeMovRegImmBox = f
		case KindModRMRegReg:
			DecodeModRMRegReg[f.Opcode] = f
		case KindArithRegImm:
			DecodeAccumArith[f.AccumOpcode] = f
		case KindGroupF7, KindGroupF7Imm:
			DecodeGroupF7[f.Ext] = f
		case KindGroupShiftOne:
			DecodeGroupShiftD1[f.Ext] = f
		case KindGroupShiftCL:
			DecodeGroupShiftD3[f.Ext] = f
		case KindRelativeShort:
			DecodeRelShort[f.Opcode] = f
		case KindRelativeNear:
			DecodeRelNear[f.Opcode] = f
		}
	}

	for mnemonic, ext := range group1Ext {
		DecodeGroup1[ext] = Form{Mnemonic: mnemonic, KeySuffix: "_REG_IMM", Kind: KindArithRegImm, Ext: ext}
	}
}
