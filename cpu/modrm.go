package cpu

import "github.com/halvard/emu8086/architecture/x86"

// decodeModRM extracts the mod/reg/rm fields of a ModR/M byte.
func decodeModRM(b byte) (mod, reg, rm byte) {
	return b >> 6 & 3, b >> 3 & 7, b & 7
}

// effectiveAddress resolves a mod/rm pair to a segment:offset pair,
// consuming any displacement bytes the encoding requires from the fetch
// stream. The BP⇒SS default is mandatory: rm=2,3,6(mod≠0) all default to
// SS rather than DS because they address through BP.
func (c *CPU) effectiveAddress(mod, rm byte) (uint16, x86.Seg) {
	var base uint16
	var seg x86.Seg

	switch rm {
	case 0:
		base, seg = c.Registers.Word16(x86.BX)+c.Registers.Word16(x86.SI), x86.DS
	case 1:
		base, seg = c.Registers.Word16(x86.BX)+c.Registers.Word16(x86.DI), x86.DS
	case 2:
		base, seg = c.Registers.Word16(x86.BP)+c.Registers.Word16(x86.SI), x86.SS
	case 3:
		base, seg = c.Registers.Word16(x86.BP)+c.Registers.Word16(x86.DI), x86.SS
	case 4:
		base, seg = c.Registers.Word16(x86.SI), x86.DS
	case 5:
		base, seg = c.Registers.Word16(x86.DI), x86.DS
	case 6:
		if mod == 0 {
			return c.fetchWord(), x86.DS // direct 16-bit displacement
		}
		base, seg = c.Registers.Word16(x86.BP), x86.SS
	case 7:
		base, seg = c.Registers.Word16(x86.BX), x86.DS
	}

	switch mod {
	case 1:
		d := int16(int8(c.fetchByte()))
		base += uint16(d)
	case 2:
		d := int16(c.fetchWord())
		base += uint16(d)
	}

	return base, seg
}

// readRM16 resolves a ModR/M rm field to its 16-bit value: the register
// itself when mod=3, or the word at the resolved effective address
// otherwise.
func (c *CPU) readRM16(mod, rm byte) uint16 {
	if mod == 3 {
		return c.Registers.Word16(x86.Reg16(rm))
	}
	off, seg := c.effectiveAddress(mod, rm)
	return c.ReadWord(c.Registers.Seg16(seg), off)
}

// writeRM16 writes back through a ModR/M rm field, mirroring readRM16.
func (c *CPU) writeRM16(mod, rm byte, v uint16) {
	if mod == 3 {
		c.Registers.SetWord16(x86.Reg16(rm), v)
		return
	}
	off, seg := c.effectiveAddress(mod, rm)
	c.WriteWord(c.Registers.Seg16(seg), off, v)
}

// rmAccessor resolves a ModR/M rm field exactly once and returns a
// read/write pair bound to that single resolution. Any caller that both
// reads and writes the same rm operand must use this instead of pairing
// readRM16/writeRM16 directly: for mod!=3, effectiveAddress consumes
// displacement bytes from the fetch stream, so calling it twice for one
// instruction reads the next instruction's bytes as a displacement and
// corrupts IP.
func (c *CPU) rmAccessor(mod, rm byte) (read func() uint16, write func(uint16)) {
	if mod == 3 {
		reg := x86.Reg16(rm)
		return func() uint16 { return c.Registers.Word16(reg) },
			func(v uint16) { c.Registers.SetWord16(reg, v) }
	}
	off, seg := c.effectiveAddress(mod, rm)
	segVal := c.Registers.Seg16(seg)
	return func() uint16 { return c.ReadWord(segVal, off) },
		func(v uint16) { c.WriteWord(segVal, off, v) }
}
