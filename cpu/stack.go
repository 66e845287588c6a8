package cpu

import "github.com/halvard/emu8086/architecture/x86"

// push16 implements the 8086's descending-stack push: SP is decremented
// first, then the word is stored low-byte-first at SS:SP.
func (c *CPU) push16(v uint16) {
	sp := c.Registers.Word16(x86.SP) - 2
	c.Registers.SetWord16(x86.SP, sp)
	c.WriteWord(c.Registers.Seg16(x86.SS), sp, v)
}

// pop16 reads the word at SS:SP then advances SP past it.
func (c *CPU) pop16() uint16 {
	sp := c.Registers.Word16(x86.SP)
	v := c.ReadWord(c.Registers.Seg16(x86.SS), sp)
	c.Registers.SetWord16(x86.SP, sp+2)
	return v
}
