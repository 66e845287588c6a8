package cpu

import "github.com/halvard/emu8086/architecture/x86"

// add16 implements ADD's flag formulas. Carry is computed over an unsigned
// 32-bit intermediate rather than by inspecting the 16-bit result.
func (c *CPU) add16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	result := uint16(sum)
	c.Flags.SetCF(sum > 0xFFFF)
	c.Flags.SetAF((a&0xF)+(b&0xF) > 0xF)
	c.Flags.SetOF((a^result)&(b^result)&0x8000 != 0)
	c.Flags.SetFromResult16(result)
	return result
}

// sub16 implements SUB/CMP's shared flag formulas; CMP's caller discards
// the returned result and keeps only the flags.
func (c *CPU) sub16(a, b uint16) uint16 {
	result := a - b
	c.Flags.SetCF(a < b)
	c.Flags.SetAF(a&0xF < b&0xF)
	c.Flags.SetOF((a^b)&(a^result)&0x8000 != 0)
	c.Flags.SetFromResult16(result)
	return result
}

// inc16 leaves CF untouched, matching the 8086 INC instruction.
func (c *CPU) inc16(v uint16) uint16 {
	result := v + 1
	c.Flags.SetAF(v&0xF == 0xF)
	c.Flags.SetOF(v == 0x7FFF)
	c.Flags.SetFromResult16(result)
	return result
}

// dec16 leaves CF untouched, matching the 8086 DEC instruction.
func (c *CPU) dec16(v uint16) uint16 {
	result := v - 1
	c.Flags.SetAF(v&0xF == 0)
	c.Flags.SetOF(v == 0x8000)
	c.Flags.SetFromResult16(result)
	return result
}

// neg16 computes 0-v with full flags, including the degenerate CF=0 case
// when v is already zero.
func (c *CPU) neg16(v uint16) uint16 {
	result := -v
	c.Flags.SetCF(v != 0)
	c.Flags.SetAF(v&0xF != 0)
	c.Flags.SetOF(v == 0x8000)
	c.Flags.SetFromResult16(result)
	return result
}

func (c *CPU) and16(a, b uint16) uint16 {
	result := a & b
	c.Flags.SetCF(false)
	c.Flags.SetOF(false)
	c.Flags.SetFromResult16(result)
	return result
}

func (c *CPU) or16(a, b uint16) uint16 {
	result := a | b
	c.Flags.SetCF(false)
	c.Flags.SetOF(false)
	c.Flags.SetFromResult16(result)
	return result
}

func (c *CPU) xor16(a, b uint16) uint16 {
	result := a ^ b
	c.Flags.SetCF(false)
	c.Flags.SetOF(false)
	c.Flags.SetFromResult16(result)
	return result
}

// not16 is a pure bitwise complement; no flags are affected.
func (c *CPU) not16(v uint16) uint16 {
	return ^v
}

// applyArith dispatches the register/register and register/immediate
// arithmetic families (ADD/SUB/CMP/AND/OR/XOR) to their flag-setting
// implementation above. CMP callers discard the returned value.
func (c *CPU) applyArith(mnemonic string, a, b uint16) uint16 {
	switch mnemonic {
	case x86.ADD:
		return c.add16(a, b)
	case x86.SUB, x86.CMP:
		return c.sub16(a, b)
	case x86.AND:
		return c.and16(a, b)
	case x86.OR:
		return c.or16(a, b)
	case x86.XOR:
		return c.xor16(a, b)
	default:
		return a
	}
}

// mul16 is unsigned AX*operand -> DX:AX; CF=OF iff the high word is nonzero.
func (c *CPU) mul16(mod, rm byte) {
	a := uint32(c.Registers.Word16(x86.AX))
	b := uint32(c.readRM16(mod, rm))
	product := a * b
	c.Registers.SetWord16(x86.AX, uint16(product))
	c.Registers.SetWord16(x86.DX, uint16(product>>16))
	overflow := c.Registers.Word16(x86.DX) != 0
	c.Flags.SetCF(overflow)
	c.Flags.SetOF(overflow)
}

// imul16 sign-extends both operands into a 32-bit signed product; CF=OF iff
// that product does not equal the sign-extension of its own low 16 bits.
func (c *CPU) imul16(mod, rm byte) {
	a := int32(int16(c.Registers.Word16(x86.AX)))
	b := int32(int16(c.readRM16(mod, rm)))
	product := a * b
	c.Registers.SetWord16(x86.AX, uint16(product))
	c.Registers.SetWord16(x86.DX, uint16(product>>16))
	signExtendedLow := int32(int16(uint16(product)))
	overflow := signExtendedLow != product
	c.Flags.SetCF(overflow)
	c.Flags.SetOF(overflow)
}

// div16 divides the unsigned DX:AX dividend by operand. Divide-by-zero and
// an out-of-range quotient both route through interrupt 0 without writing
// AX/DX.
func (c *CPU) div16(mod, rm byte) {
	dividend := uint32(c.Registers.Word16(x86.DX))<<16 | uint32(c.Registers.Word16(x86.AX))
	divisor := uint32(c.readRM16(mod, rm))
	if divisor == 0 {
		c.triggerInterrupt(0)
		return
	}
	quotient := dividend / divisor
	if quotient > 0xFFFF {
		c.triggerInterrupt(0)
		return
	}
	c.Registers.SetWord16(x86.AX, uint16(quotient))
	c.Registers.SetWord16(x86.DX, uint16(dividend%divisor))
}

// idiv16 divides the signed DX:AX dividend by operand, truncating toward
// zero (Go's integer division semantics already match this).
func (c *CPU) idiv16(mod, rm byte) {
	dividend := int32(uint32(c.Registers.Word16(x86.DX))<<16 | uint32(c.Registers.Word16(x86.AX)))
	divisor := int32(int16(c.readRM16(mod, rm)))
	if divisor == 0 {
		c.triggerInterrupt(0)
		return
	}
	quotient := dividend / divisor
	if quotient > 32767 || quotient < -32768 {
		c.triggerInterrupt(0)
		return
	}
	c.Registers.SetWord16(x86.AX, uint16(int16(quotient)))
	c.Registers.SetWord16(x86.DX, uint16(int16(dividend%divisor)))
}

func boolBit(v bool) uint16 {
	if v {
		return 1
	}
	return 0
}

// shl16 shifts left count times, capturing each iteration's outgoing MSB
// into CF; count=0 is a no-op that touches nothing.
func (c *CPU) shl16(v uint16, count int) uint16 {
	result := v
	var cf bool
	for i := 0; i < count; i++ {
		cf = result&0x8000 != 0
		result <<= 1
	}
	if count > 0 {
		c.Flags.SetCF(cf)
		c.Flags.SetFromResult16(result)
	}
	return result
}

// shr16 shifts right count times; CF receives the outgoing LSB.
func (c *CPU) shr16(v uint16, count int) uint16 {
	result := v
	var cf bool
	for i := 0; i < count; i++ {
		cf = result&1 != 0
		result >>= 1
	}
	if count > 0 {
		c.Flags.SetCF(cf)
		c.Flags.SetFromResult16(result)
	}
	return result
}

// sar16 shifts right count times preserving the sign bit; OF is always
// cleared.
func (c *CPU) sar16(v uint16, count int) uint16 {
	result := int16(v)
	var cf bool
	for i := 0; i < count; i++ {
		cf = result&1 != 0
		result >>= 1
	}
	if count > 0 {
		c.Flags.SetCF(cf)
		c.Flags.SetOF(false)
		c.Flags.SetFromResult16(uint16(result))
	}
	return uint16(result)
}

// rol16 rotates left without folding CF into the rotation chain; CF receives
// the last bit that wrapped around. ZF/SF/PF are left untouched.
func (c *CPU) rol16(v uint16, count int) uint16 {
	result := v
	var cf bool
	for i := 0; i < count; i++ {
		msb := result&0x8000 != 0
		result = result<<1 | boolBit(msb)
		cf = msb
	}
	if count > 0 {
		c.Flags.SetCF(cf)
	}
	return result
}

func (c *CPU) ror16(v uint16, count int) uint16 {
	result := v
	var cf bool
	for i := 0; i < count; i++ {
		lsb := result&1 != 0
		result = result>>1 | boolBit(lsb)<<15
		cf = lsb
	}
	if count > 0 {
		c.Flags.SetCF(cf)
	}
	return result
}

// rcl16 is the 17-bit rotate-through-carry: CF feeds in at the bottom and is
// replaced by the outgoing MSB each iteration.
func (c *CPU) rcl16(v uint16, count int) uint16 {
	result := v
	cf := c.Flags.CF()
	for i := 0; i < count; i++ {
		msb := result&0x8000 != 0
		result = result<<1 | boolBit(cf)
		cf = msb
	}
	if count > 0 {
		c.Flags.SetCF(cf)
	}
	return result
}

func (c *CPU) rcr16(v uint16, count int) uint16 {
	result := v
	cf := c.Flags.CF()
	for i := 0; i < count; i++ {
		lsb := result&1 != 0
		result = result>>1 | boolBit(cf)<<15
		cf = lsb
	}
	if count > 0 {
		c.Flags.SetCF(cf)
	}
	return result
}

// applyShift dispatches the shift/rotate group to its implementation above.
func (c *CPU) applyShift(mnemonic string, v uint16, count int) uint16 {
	switch mnemonic {
	case x86.ROL:
		return c.rol16(v, count)
	case x86.ROR:
		return c.ror16(v, count)
	case x86.RCL:
		return c.rcl16(v, count)
	case x86.RCR:
		return c.rcr16(v, count)
	case x86.SHL:
		return c.shl16(v, count)
	case x86.SHR:
		return c.shr16(v, count)
	case x86.SAR:
		return c.sar16(v, count)
	default:
		return v
	}
}

// cmpByte implements byte-width CMP semantics for CMPSB, scaled down from
// sub16's bit positions to an 8-bit operand (sign bit 0x80 instead of
// 0x8000).
func (c *CPU) cmpByte(a, b byte) {
	result := a - b
	c.Flags.SetCF(a < b)
	c.Flags.SetAF(a&0xF < b&0xF)
	c.Flags.SetOF((a^b)&(a^result)&0x80 != 0)
	c.Flags.SetZF(result == 0)
	c.Flags.SetSF(result&0x80 != 0)
	c.Flags.SetPF(x86.Parity(uint16(result)))
}
