package x86

// Flag bit positions within the FLAGS word. All other bits are reserved and
// must always read back as zero — in-scope instructions never set them.
const (
	FlagCF = 0
	FlagPF = 2
	FlagAF = 4
	FlagZF = 6
	FlagSF = 7
	FlagTF = 8
	FlagIF = 9
	FlagDF = 10
	FlagOF = 11
)

// knownFlagMask has a 1 bit in every named flag position; ANDing a proposed
// FLAGS value with this mask enforces that reserved bits stay zero.
const knownFlagMask = 1<<FlagCF | 1<<FlagPF | 1<<FlagAF | 1<<FlagZF | 1<<FlagSF |
	1<<FlagTF | 1<<FlagIF | 1<<FlagDF | 1<<FlagOF

// Flags is a named-bit view over a 16-bit FLAGS word. It carries no storage
// of its own — the word lives in RegisterFile — so flag reads/writes and
// word-level reads/writes (e.g. PUSHF) observe the same state.
type Flags struct {
	file *RegisterFile
}

// FlagsOf returns a Flags accessor bound to the given register file's FLAGS
// slot.
func FlagsOf(f *RegisterFile) Flags {
	return Flags{file: f}
}

// Get reports whether the flag at bit is set.
func (fl Flags) Get(bit uint) bool {
	return fl.file.FlagsWord()&(1<<bit) != 0
}

// Set assigns the flag at bit, masking the result to the known flag bits.
func (fl Flags) Set(bit uint, v bool) {
	word := fl.file.FlagsWord()
	if v {
		word |= 1 << bit
	} else {
		word &^= 1 << bit
	}
	fl.file.SetFlagsWord(word & knownFlagMask)
}

func (fl Flags) CF() bool { return fl.Get(FlagCF) }
func (fl Flags) PF() bool { return fl.Get(FlagPF) }
func (fl Flags) AF() bool { return fl.Get(FlagAF) }
func (fl Flags) ZF() bool { return fl.Get(FlagZF) }
func (fl Flags) SF() bool { return fl.Get(FlagSF) }
func (fl Flags) TF() bool { return fl.Get(FlagTF) }
func (fl Flags) IF() bool { return fl.Get(FlagIF) }
func (fl Flags) DF() bool { return fl.Get(FlagDF) }
func (fl Flags) OF() bool { return fl.Get(FlagOF) }

func (fl Flags) SetCF(v bool) { fl.Set(FlagCF, v) }
func (fl Flags) SetPF(v bool) { fl.Set(FlagPF, v) }
func (fl Flags) SetAF(v bool) { fl.Set(FlagAF, v) }
func (fl Flags) SetZF(v bool) { fl.Set(FlagZF, v) }
func (fl Flags) SetSF(v bool) { fl.Set(FlagSF, v) }
func (fl Flags) SetTF(v bool) { fl.Set(FlagTF, v) }
func (fl Flags) SetIF(v bool) { fl.Set(FlagIF, v) }
func (fl Flags) SetDF(v bool) { fl.Set(FlagDF, v) }
func (fl Flags) SetOF(v bool) { fl.Set(FlagOF, v) }

// Parity reports the 8086's PF definition: even parity of the low byte of v.
func Parity(v uint16) bool {
	b := byte(v)
	count := 0
	for b != 0 {
		count += int(b & 1)
		b >>= 1
	}
	return count%2 == 0
}

// SetFromResult16 applies the ZF/SF/PF-from-result triple shared by most
// ALU operations.
func (fl Flags) SetFromResult16(result uint16) {
	fl.SetZF(result == 0)
	fl.SetSF(result&0x8000 != 0)
	fl.SetPF(Parity(result))
}
