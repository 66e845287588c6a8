package x86_test

import (
	"testing"

	"github.com/halvard/emu8086/architecture/x86"
)

func TestRegisterFile_WordAndByteAlias(t *testing.T) {
	var f x86.RegisterFile
	f.SetWord16(x86.AX, 0xBEEF)

	if got := f.Byte8(x86.AL); got != 0xEF {
		t.Fatalf("AL = 0x%02X, want 0xEF", got)
	}
	if got := f.Byte8(x86.AH); got != 0xBE {
		t.Fatalf("AH = 0x%02X, want 0xBE", got)
	}

	f.SetByte8(x86.AH, 0x12)
	if got := f.Word16(x86.AX); got != 0x12EF {
		t.Fatalf("AX after SetByte8(AH) = 0x%04X, want 0x12EF", got)
	}
}

func TestRegisterFile_SetWord16Truncates(t *testing.T) {
	var f x86.RegisterFile
	// SetWord16 takes a uint16, so a wider value is truncated at the
	// conversion into its parameter.
	wide := uint32(0x1FFFF)
	f.SetWord16(x86.CX, uint16(wide))
	if got := f.Word16(x86.CX); got != 0xFFFF {
		t.Fatalf("CX = 0x%04X, want 0xFFFF", got)
	}
}

func TestRegisterFile_IPAndFlagsIndependentOfGPRs(t *testing.T) {
	var f x86.RegisterFile
	f.SetWord16(x86.DI, 0xFFFF)
	f.SetIP(0x1234)
	f.SetFlagsWord(0x0046)

	if got := f.IP(); got != 0x1234 {
		t.Fatalf("IP = 0x%04X, want 0x1234", got)
	}
	if got := f.FlagsWord(); got != 0x0046 {
		t.Fatalf("FLAGS = 0x%04X, want 0x0046", got)
	}
	if got := f.Word16(x86.DI); got != 0xFFFF {
		t.Fatalf("DI = 0x%04X, want 0xFFFF", got)
	}
}

func TestRegisterFile_Reset(t *testing.T) {
	var f x86.RegisterFile
	f.SetWord16(x86.AX, 0xFFFF)
	f.SetIP(0x100)
	f.Reset()

	if got := f.Word16(x86.AX); got != 0 {
		t.Fatalf("AX after Reset = 0x%04X, want 0", got)
	}
	if got := f.IP(); got != 0 {
		t.Fatalf("IP after Reset = 0x%04X, want 0", got)
	}
}

func TestLookupReg16(t *testing.T) {
	cases := []struct {
		name string
		want x86.Reg16
		ok   bool
	}{
		{"AX", x86.AX, true},
		{"DI", x86.DI, true},
		{"AL", 0, false},
		{"NOPE", 0, false},
	}
	for _, tc := range cases {
		got, ok := x86.LookupReg16(tc.name)
		if ok != tc.ok {
			t.Fatalf("LookupReg16(%q) ok = %t, want %t", tc.name, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("LookupReg16(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
