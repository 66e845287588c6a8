package cpu

// InterruptHook is the injectable capability the CPU calls on divide-by-zero
// and division-overflow traps. It is a plain field on CPU, not global
// state, so multiple CPU instances (or tests substituting their own hook)
// never interfere with each other.
type InterruptHook func(vector uint8, c *CPU)

// defaultInterruptHook records a trap entry in the CPU's diagnostics log and
// rewinds IP by one from whatever position the fetch stream has reached,
// undoing the last byte consumed before the fault was detected.
func defaultInterruptHook(vector uint8, c *CPU) {
	if c.Diag != nil {
		c.Diag.Trap("interrupt vector 0: divide error")
	}
	c.Registers.SetIP(c.Registers.IP() - 1)
}

func (c *CPU) triggerInterrupt(vector uint8) {
	if c.InterruptHook != nil {
		c.InterruptHook(vector, c)
	}
}
