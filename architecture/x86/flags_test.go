package x86_test

import (
	"testing"

	"github.com/halvard/emu8086/architecture/x86"
)

func TestFlags_GetSet(t *testing.T) {
	var f x86.RegisterFile
	fl := x86.FlagsOf(&f)

	fl.SetCF(true)
	fl.SetZF(true)
	if !fl.CF() {
		t.Fatal("CF should be set")
	}
	if !fl.ZF() {
		t.Fatal("ZF should be set")
	}
	if fl.OF() {
		t.Fatal("OF should be clear")
	}

	fl.SetCF(false)
	if fl.CF() {
		t.Fatal("CF should be clear after SetCF(false)")
	}
}

func TestFlags_ReservedBitsStayZero(t *testing.T) {
	var f x86.RegisterFile
	f.SetFlagsWord(0xFFFF)
	fl := x86.FlagsOf(&f)
	fl.SetCF(true) // forces a re-mask through Set

	if got := f.FlagsWord(); got&^0x0FD5 != 0 {
		t.Fatalf("FLAGS = 0x%04X, reserved bits should be zero", got)
	}
}

func TestParity(t *testing.T) {
	cases := []struct {
		v    uint16
		even bool
	}{
		{0x00, true},
		{0x01, false},
		{0x03, true},
		{0xFF, true},
		{0xFE, false},
	}
	for _, tc := range cases {
		if got := x86.Parity(tc.v); got != tc.even {
			t.Fatalf("Parity(0x%02X) = %t, want %t", tc.v, got, tc.even)
		}
	}
}
