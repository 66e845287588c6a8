package cpu

import "github.com/halvard/emu8086/architecture/x86"

// fetchByte reads the next instruction byte at CS:IP and post-increments IP,
// wrapping mod 2^16.
func (c *CPU) fetchByte() byte {
	b := c.ReadByte(c.Registers.Seg16(x86.CS), c.Registers.IP())
	c.Registers.SetIP(c.Registers.IP() + 1)
	return b
}

// fetchWord performs two fetchByte calls and assembles them little-endian.
func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(lo) | uint16(hi)<<8
}
