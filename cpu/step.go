package cpu

import "github.com/halvard/emu8086/architecture/x86"

// Step fetches one opcode byte, dispatches it through the flat tables
// architecture/x86 derives from the shared Forms catalog, and executes it.
// A no-op once Halted. Returns the decode error (if any) that also set
// Halted/LastError.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}

	startIP := c.Registers.IP()
	opcode := c.fetchByte()

	if form, ok := x86.DecodePlain[opcode]; ok {
		return c.executePlain(form)
	}
	if form, ok := x86.DecodeRegInOpcode[opcode&0xF8]; ok {
		return c.executeRegInOpcode(form, opcode)
	}
	if opcode&0xF8 == x86.DecodeMovRegImmBox.Opcode {
		return c.executeMovRegImm(opcode)
	}
	if form, ok := x86.DecodeModRMRegReg[opcode]; ok {
		return c.executeModRMRegReg(startIP, opcode, form)
	}
	if form, ok := x86.DecodeAccumArith[opcode]; ok {
		return c.executeAccumArith(form)
	}

	switch opcode {
	case 0x81:
		return c.executeGroup1(startIP, opcode)
	case 0xF7:
		return c.executeGroupF7(startIP, opcode)
	case 0xD1:
		return c.executeGroupShift(startIP, opcode, x86.DecodeGroupShiftD1, 1)
	case 0xD3:
		return c.executeGroupShift(startIP, opcode, x86.DecodeGroupShiftD3, int(c.Registers.Byte8(x86.CL)))
	}

	if form, ok := x86.DecodeRelShort[opcode]; ok {
		return c.executeRelShort(form)
	}
	if form, ok := x86.DecodeRelNear[opcode]; ok {
		return c.executeRelNear(form)
	}

	return c.fail(startIP, opcode, "unknown opcode")
}

func (c *CPU) executePlain(form x86.Form) error {
	switch form.Mnemonic {
	case x86.HLT:
		c.Halted = true
	case x86.NOP:
		// no-op
	case x86.CLC:
		c.Flags.SetCF(false)
	case x86.STC:
		c.Flags.SetCF(true)
	case x86.CMC:
		c.Flags.SetCF(!c.Flags.CF())
	case x86.RET:
		c.Registers.SetIP(c.pop16())
	case x86.MOVSB:
		b := c.ReadByte(c.Registers.Seg16(x86.DS), c.Registers.Word16(x86.SI))
		c.WriteByte(c.Registers.Seg16(x86.ES), c.Registers.Word16(x86.DI), b)
		c.stepSI()
		c.stepDI()
	case x86.LODSB:
		b := c.ReadByte(c.Registers.Seg16(x86.DS), c.Registers.Word16(x86.SI))
		c.Registers.SetByte8(x86.AL, b)
		c.stepSI()
	case x86.STOSB:
		c.WriteByte(c.Registers.Seg16(x86.ES), c.Registers.Word16(x86.DI), c.Registers.Byte8(x86.AL))
		c.stepDI()
	case x86.CMPSB:
		a := c.ReadByte(c.Registers.Seg16(x86.DS), c.Registers.Word16(x86.SI))
		b := c.ReadByte(c.Registers.Seg16(x86.ES), c.Registers.Word16(x86.DI))
		c.cmpByte(a, b)
		c.stepSI()
		c.stepDI()
	}
	return nil
}

func (c *CPU) stepSI() { c.Registers.SetWord16(x86.SI, c.dirStep(c.Registers.Word16(x86.SI))) }
func (c *CPU) stepDI() { c.Registers.SetWord16(x86.DI, c.dirStep(c.Registers.Word16(x86.DI))) }

// dirStep advances a string-primitive pointer by one, stepping backward
// when DF is set.
func (c *CPU) dirStep(v uint16) uint16 {
	if c.Flags.DF() {
		return v - 1
	}
	return v + 1
}

func (c *CPU) executeRegInOpcode(form x86.Form, opcode byte) error {
	reg := x86.Reg16(opcode & 0x07)
	switch form.Mnemonic {
	case x86.PUSH:
		c.push16(c.Registers.Word16(reg))
	case x86.POP:
		c.Registers.SetWord16(reg, c.pop16())
	case x86.INC:
		c.Registers.SetWord16(reg, c.inc16(c.Registers.Word16(reg)))
	case x86.DEC:
		c.Registers.SetWord16(reg, c.dec16(c.Registers.Word16(reg)))
	case x86.XCHG:
		a, b := c.Registers.Word16(x86.AX), c.Registers.Word16(reg)
		c.Registers.SetWord16(x86.AX, b)
		c.Registers.SetWord16(reg, a)
	}
	return nil
}

func (c *CPU) executeMovRegImm(opcode byte) error {
	reg := x86.Reg16(opcode & 0x07)
	c.Registers.SetWord16(reg, c.fetchWord())
	return nil
}

func (c *CPU) executeModRMRegReg(startIP uint16, opcode byte, form x86.Form) error {
	modrmByte := c.fetchByte()
	mod, reg, rm := decodeModRM(modrmByte)

	switch form.Mnemonic {
	case x86.MOV:
		c.writeRM16(mod, rm, c.Registers.Word16(x86.Reg16(reg)))
	case x86.LEA:
		if mod == 3 {
			return c.fail(startIP, opcode, "LEA requires a memory operand (mod=3 has none)")
		}
		offset, _ := c.effectiveAddress(mod, rm)
		c.Registers.SetWord16(x86.Reg16(reg), offset)
	case x86.XCHG:
		read, write := c.rmAccessor(mod, rm)
		a := read()
		b := c.Registers.Word16(x86.Reg16(reg))
		write(b)
		c.Registers.SetWord16(x86.Reg16(reg), a)
	case x86.TEST:
		c.and16(c.readRM16(mod, rm), c.Registers.Word16(x86.Reg16(reg)))
	case x86.ADD, x86.SUB, x86.CMP, x86.AND, x86.OR, x86.XOR:
		read, write := c.rmAccessor(mod, rm)
		a := read()
		b := c.Registers.Word16(x86.Reg16(reg))
		result := c.applyArith(form.Mnemonic, a, b)
		if form.Mnemonic != x86.CMP {
			write(result)
		}
	}
	return nil
}

func (c *CPU) executeAccumArith(form x86.Form) error {
	imm := c.fetchWord()
	result := c.applyArith(form.Mnemonic, c.Registers.Word16(x86.AX), imm)
	if form.Mnemonic != x86.CMP {
		c.Registers.SetWord16(x86.AX, result)
	}
	return nil
}

func (c *CPU) executeGroup1(startIP uint16, opcode byte) error {
	modrmByte := c.fetchByte()
	mod, reg, rm := decodeModRM(modrmByte)

	form, ok := x86.DecodeGroup1[reg]
	if !ok {
		return c.fail(startIP, opcode, "unknown group 1 extension %d", reg)
	}

	read, write := c.rmAccessor(mod, rm)
	a := read()
	imm := c.fetchWord()
	result := c.applyArith(form.Mnemonic, a, imm)
	if form.Mnemonic != x86.CMP {
		write(result)
	}
	return nil
}

func (c *CPU) executeGroupF7(startIP uint16, opcode byte) error {
	modrmByte := c.fetchByte()
	mod, reg, rm := decodeModRM(modrmByte)

	form, ok := x86.DecodeGroupF7[reg]
	if !ok {
		return c.fail(startIP, opcode, "unknown group 0xF7 extension %d", reg)
	}

	switch form.Mnemonic {
	case x86.TEST:
		a := c.readRM16(mod, rm)
		imm := c.fetchWord()
		c.and16(a, imm)
	case x86.NOT:
		read, write := c.rmAccessor(mod, rm)
		write(c.not16(read()))
	case x86.NEG:
		read, write := c.rmAccessor(mod, rm)
		write(c.neg16(read()))
	case x86.MUL:
		c.mul16(mod, rm)
	case x86.IMUL:
		c.imul16(mod, rm)
	case x86.DIV:
		c.div16(mod, rm)
	case x86.IDIV:
		c.idiv16(mod, rm)
	}
	return nil
}

func (c *CPU) executeGroupShift(startIP uint16, opcode byte, table map[byte]x86.Form, count int) error {
	modrmByte := c.fetchByte()
	mod, reg, rm := decodeModRM(modrmByte)

	form, ok := table[reg]
	if !ok {
		return c.fail(startIP, opcode, "unknown shift/rotate group extension %d", reg)
	}

	read, write := c.rmAccessor(mod, rm)
	result := c.applyShift(form.Mnemonic, read(), count)
	write(result)
	return nil
}

func (c *CPU) executeRelShort(form x86.Form) error {
	disp := int16(int8(c.fetchByte()))
	var taken bool
	switch form.Mnemonic {
	case x86.JE, x86.JZ:
		taken = c.Flags.ZF()
	case x86.JNE, x86.JNZ:
		taken = !c.Flags.ZF()
	case x86.JC:
		taken = c.Flags.CF()
	case x86.JNC:
		taken = !c.Flags.CF()
	}
	if taken {
		c.Registers.SetIP(c.Registers.IP() + uint16(disp))
	}
	return nil
}

func (c *CPU) executeRelNear(form x86.Form) error {
	disp := int16(c.fetchWord())
	switch form.Mnemonic {
	case x86.JMP:
		c.Registers.SetIP(c.Registers.IP() + uint16(disp))
	case x86.CALL:
		returnAddr := c.Registers.IP()
		c.push16(returnAddr)
		c.Registers.SetIP(returnAddr + uint16(disp))
	}
	return nil
}
