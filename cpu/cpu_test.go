package cpu_test

import (
	"testing"

	"github.com/halvard/emu8086/architecture/x86"
	"github.com/halvard/emu8086/assembler"
	"github.com/halvard/emu8086/cpu"
)

// runToHalt assembles source, loads it at CS=0,IP=0, and single-steps until
// the CPU halts or stepLimit is exceeded.
func runToHalt(t *testing.T, source string, stepLimit int) *cpu.CPU {
	t.Helper()
	result, err := assembler.Assemble(source)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	c := cpu.New()
	copy(c.Memory[:], result.MachineCode)

	for i := 0; i < stepLimit && !c.Halted; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
	}
	if !c.Halted {
		t.Fatalf("program did not halt within %d steps", stepLimit)
	}
	return c
}

func TestStep_MovAddHlt(t *testing.T) {
	c := runToHalt(t, "MOV AX, 5\nADD AX, 2\nHLT", 10)

	if got := c.Registers.Word16(x86.AX); got != 0x0007 {
		t.Fatalf("AX = 0x%04X, want 0x0007", got)
	}
	if got := c.Registers.IP(); got != 7 {
		t.Fatalf("IP = %d, want 7", got)
	}
}

func TestStep_DecJnzLoop(t *testing.T) {
	c := runToHalt(t, "MOV CX, 3\nL1: DEC CX\nJNZ L1\nHLT", 100)

	if got := c.Registers.Word16(x86.CX); got != 0 {
		t.Fatalf("CX = %d, want 0", got)
	}
	if !c.Flags.ZF() {
		t.Fatal("ZF should be set at halt")
	}
	if got := c.Registers.IP(); got != 7 {
		t.Fatalf("IP = %d, want 7 (just past HLT)", got)
	}
}

func TestStep_AddOverflowWraps(t *testing.T) {
	c := runToHalt(t, "MOV AX, 0xFFFF\nADD AX, 1\nHLT", 10)

	if got := c.Registers.Word16(x86.AX); got != 0 {
		t.Fatalf("AX = 0x%04X, want 0x0000", got)
	}
	if !c.Flags.ZF() {
		t.Fatal("ZF should be set")
	}
	if !c.Flags.CF() {
		t.Fatal("CF should be set")
	}
	if c.Flags.OF() {
		t.Fatal("OF should be clear")
	}
	if !c.Flags.AF() {
		t.Fatal("AF should be set")
	}
}

func TestStep_Div(t *testing.T) {
	c := runToHalt(t, "MOV AX, 0x0010\nMOV DX, 0\nMOV BX, 2\nDIV BX\nHLT", 10)

	if got := c.Registers.Word16(x86.AX); got != 0x0008 {
		t.Fatalf("AX = 0x%04X, want 0x0008", got)
	}
	if got := c.Registers.Word16(x86.DX); got != 0x0000 {
		t.Fatalf("DX = 0x%04X, want 0x0000", got)
	}
}

func TestStep_DivByZeroTraps(t *testing.T) {
	result, err := assembler.Assemble("MOV AX, 1\nMOV DX, 0\nMOV BX, 0\nDIV BX\nHLT")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	c := cpu.New()
	copy(c.Memory[:], result.MachineCode)

	for i := 0; i < 3; i++ { // MOV, MOV, MOV
		if err := c.Step(); err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
	}

	ipBeforeDiv := c.Registers.IP()
	if err := c.Step(); err != nil { // DIV BX traps, does not halt
		t.Fatalf("Step returned error: %v", err)
	}
	if c.Halted {
		t.Fatal("divide-by-zero should not halt the CPU")
	}
	// DIV BX is a 2-byte instruction (opcode + ModR/M); the trap hook rewinds
	// IP by one from the post-fetch position.
	if got, want := c.Registers.IP(), ipBeforeDiv+1; got != want {
		t.Fatalf("IP after trap = %d, want %d", got, want)
	}
	if len(c.Diag.Entries()) == 0 {
		t.Fatal("expected the interrupt hook to record a diagnostic entry")
	}
}

func TestStep_PushPopRoundTrip(t *testing.T) {
	result, err := assembler.Assemble("PUSH AX\nPOP BX")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	c := cpu.New()
	copy(c.Memory[:], result.MachineCode)
	c.Registers.SetWord16(x86.AX, 0xBEEF)
	initialSP := c.Registers.Word16(x86.SP)

	if err := c.Step(); err != nil { // PUSH AX
		t.Fatalf("Step returned error: %v", err)
	}
	sp := c.Registers.Word16(x86.SP)
	lo := c.ReadByte(c.Registers.Seg16(x86.SS), sp)
	hi := c.ReadByte(c.Registers.Seg16(x86.SS), sp+1)
	if lo != 0xEF || hi != 0xBE {
		t.Fatalf("stack bytes = %02X %02X, want EF BE", lo, hi)
	}

	if err := c.Step(); err != nil { // POP BX
		t.Fatalf("Step returned error: %v", err)
	}
	if got := c.Registers.Word16(x86.BX); got != 0xBEEF {
		t.Fatalf("BX = 0x%04X, want 0xBEEF", got)
	}
	if got := c.Registers.Word16(x86.SP); got != initialSP {
		t.Fatalf("SP = 0x%04X, want 0x%04X (restored)", got, initialSP)
	}
}

func TestStep_UnknownOpcodeHalts(t *testing.T) {
	c := cpu.New()
	c.Memory[0] = 0x0F // not in the minimum table
	err := c.Step()
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !c.Halted {
		t.Fatal("CPU should halt on an unknown opcode")
	}
	if c.LastError == nil {
		t.Fatal("LastError should be set on decode error")
	}
}

func TestStep_HltHaltsWithoutError(t *testing.T) {
	c := cpu.New()
	c.Memory[0] = 0xF4 // HLT
	if err := c.Step(); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if !c.Halted {
		t.Fatal("CPU should be halted")
	}
	if c.LastError != nil {
		t.Fatal("LastError should be nil after a clean HLT")
	}
}

func TestMemory_PhysicalAddressWraps(t *testing.T) {
	c := cpu.New()
	a := c.PhysicalAddress(0xFFFF, 0x0010)
	if a > 0xFFFFF {
		t.Fatalf("PhysicalAddress = 0x%X, exceeds the 20-bit address space", a)
	}
}

func TestMemory_PhysicalAddressSegOffEquivalence(t *testing.T) {
	c := cpu.New()
	a := c.PhysicalAddress(0x1234, 0x0050)
	b := c.PhysicalAddress(0x1235, 0x0040)
	if a != b {
		t.Fatalf("PhysicalAddress(seg,off) = 0x%X, PhysicalAddress(seg+1,off-16) = 0x%X, want equal", a, b)
	}
}

func TestMemory_ReadWriteByteRoundTrip(t *testing.T) {
	c := cpu.New()
	c.WriteByte(0x1000, 0x0020, 0xAB)
	if got := c.ReadByte(0x1000, 0x0020); got != 0xAB {
		t.Fatalf("ReadByte = 0x%02X, want 0xAB", got)
	}
}

func TestStep_MemoryOperandSingleEAResolution(t *testing.T) {
	// Raw bytes for "ADD [BX+SI+0x10], AX" followed by HLT. The assembler
	// never emits a mod!=3 ModR/M byte, so this exercises the decoder's
	// memory-operand path directly: a caller-injected instruction stream is
	// a documented way to drive the CPU.
	c := cpu.New()
	c.Memory[0] = 0x01 // ADD r/m16, r16
	c.Memory[1] = 0x40 // mod=01 reg=000(AX) rm=000(BX+SI)
	c.Memory[2] = 0x10 // disp8
	c.Memory[3] = 0xF4 // HLT

	c.Registers.SetWord16(x86.AX, 0x0005)
	c.WriteWord(c.Registers.Seg16(x86.DS), 0x0010, 0x0003)

	if err := c.Step(); err != nil { // ADD [BX+SI+0x10], AX
		t.Fatalf("Step returned error: %v", err)
	}
	if got := c.Registers.IP(); got != 3 {
		t.Fatalf("IP = %d, want 3 (the EA's displacement byte must be consumed exactly once)", got)
	}
	if got := c.ReadWord(c.Registers.Seg16(x86.DS), 0x0010); got != 0x0008 {
		t.Fatalf("memory[0x10] = 0x%04X, want 0x0008", got)
	}

	if err := c.Step(); err != nil { // HLT
		t.Fatalf("Step returned error: %v", err)
	}
	if !c.Halted {
		t.Fatal("CPU should be halted after HLT")
	}
}

func TestALU_AddSubRoundTrip(t *testing.T) {
	// sub16(add16(a,b), b) == a, for arbitrary 16-bit a, b.
	c := runToHalt(t, "MOV AX, 12345\nMOV BX, 54321\nADD AX, BX\nSUB AX, BX\nHLT", 10)
	if got := c.Registers.Word16(x86.AX); got != 12345 {
		t.Fatalf("AX = %d, want 12345", got)
	}
}

func TestALU_XorSelfCancel(t *testing.T) {
	c := runToHalt(t, "MOV AX, 0xBEEF\nMOV BX, 0xBEEF\nXOR AX, BX\nHLT", 10)
	if got := c.Registers.Word16(x86.AX); got != 0 {
		t.Fatalf("AX = 0x%04X, want 0", got)
	}
	if !c.Flags.ZF() {
		t.Fatal("ZF should be set after xor16(a,a)")
	}
}

func TestStep_ShlCountZeroIsNoOp(t *testing.T) {
	// SHL by 0 on the 0xD3 (shift-by-CL) form: CL=0 must leave value/flags
	// untouched.
	result, err := assembler.Assemble("MOV AX, 0x8000\nMOV CX, 0\nSHL AX, CL\nHLT")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	c := cpu.New()
	copy(c.Memory[:], result.MachineCode)
	c.Flags.SetCF(true)

	for !c.Halted {
		if err := c.Step(); err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
	}
	if got := c.Registers.Word16(x86.AX); got != 0x8000 {
		t.Fatalf("AX = 0x%04X, want 0x8000 (unchanged)", got)
	}
	if !c.Flags.CF() {
		t.Fatal("CF should remain set: count=0 must not touch flags")
	}
}
