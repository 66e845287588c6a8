// Package cpu implements the fetch/decode/execute engine: a register/flag/
// memory model driven one instruction at a time by Step, dispatching
// through the same declarative table the assembler package's encoder reads
// (architecture/x86), so the two pipelines can never drift out of
// byte-for-byte agreement with each other.
package cpu

import (
	"fmt"

	"github.com/halvard/emu8086/architecture/x86"
	"github.com/halvard/emu8086/internal/diag"
)

// resetStackPointer is the CPU's chosen reset value for SP. The 8086 leaves
// the reset SP implementation-defined; 0xFFFE (the conventional BIOS stack
// top) gives a program several thousand bytes of descending stack before
// it would wrap.
const resetStackPointer = 0xFFFE

// CPU is the execution engine's full state: the register file, a FLAGS
// view bound to it, flat memory, and the halted/error/interrupt-hook
// surface callers observe after each Step.
type CPU struct {
	Registers     x86.RegisterFile
	Flags         x86.Flags
	Memory        [1 << 20]byte
	Halted        bool
	LastError     error
	InterruptHook InterruptHook
	Diag          *diag.Log
}

// New returns a CPU in its defined reset state: CS=0, IP=0, FLAGS=0,
// halted=false, memory zeroed, SP at resetStackPointer.
func New() *CPU {
	c := &CPU{Diag: diag.NewLog()}
	c.Flags = x86.FlagsOf(&c.Registers)
	c.InterruptHook = defaultInterruptHook
	c.Registers.SetWord16(x86.SP, resetStackPointer)
	return c
}

// Reset returns the CPU to its defined reset state in place, for callers
// that want to re-run a program without reconstructing the CPU (and losing
// a caller-assigned InterruptHook or Diag log).
func (c *CPU) Reset() {
	c.Registers.Reset()
	for i := range c.Memory {
		c.Memory[i] = 0
	}
	c.Halted = false
	c.LastError = nil
	c.Registers.SetWord16(x86.SP, resetStackPointer)
}

// String renders a one-line register/flag snapshot. It performs no
// mutation and exists for the cmd/emu8086 "run" collaborator's final dump,
// not as part of the stepping contract.
func (c *CPU) String() string {
	r := &c.Registers
	return fmt.Sprintf(
		"AX=%04X CX=%04X DX=%04X BX=%04X SP=%04X BP=%04X SI=%04X DI=%04X IP=%04X FLAGS=%04X (CF=%s ZF=%s SF=%s OF=%s) halted=%t",
		r.Word16(x86.AX), r.Word16(x86.CX), r.Word16(x86.DX), r.Word16(x86.BX),
		r.Word16(x86.SP), r.Word16(x86.BP), r.Word16(x86.SI), r.Word16(x86.DI),
		r.IP(), r.FlagsWord(),
		bitString(c.Flags.CF()), bitString(c.Flags.ZF()), bitString(c.Flags.SF()), bitString(c.Flags.OF()),
		c.Halted,
	)
}

func bitString(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
