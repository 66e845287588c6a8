package x86_test

import (
	"testing"

	"github.com/halvard/emu8086/architecture/x86"
)

func TestDeriveKey(t *testing.T) {
	cases := []struct {
		mnemonic string
		operands []string
		want     string
	}{
		{"MOV", []string{"AX", "BX"}, "MOV_REG_REG"},
		{"MOV", []string{"AX", "5"}, "MOV_REG_IMM"},
		{"ADD", []string{"AX", "0xFF"}, "ADD_REG_IMM"},
		{"INC", []string{"CX"}, "INC_REG"},
		{"HLT", nil, "HLT"},
		{"RET", nil, "RET"},
	}
	for _, tc := range cases {
		if got := x86.DeriveKey(tc.mnemonic, tc.operands); got != tc.want {
			t.Fatalf("DeriveKey(%q, %v) = %q, want %q", tc.mnemonic, tc.operands, got, tc.want)
		}
	}
}

func TestParseImmediate(t *testing.T) {
	cases := []struct {
		token string
		want  int64
		ok    bool
	}{
		{"5", 5, true},
		{"-3", -3, true},
		{"0xFF", 0xFF, true},
		{"0XFFFF", 0xFFFF, true},
		{"AX", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := x86.ParseImmediate(tc.token)
		if ok != tc.ok {
			t.Fatalf("ParseImmediate(%q) ok = %t, want %t", tc.token, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseImmediate(%q) = %d, want %d", tc.token, got, tc.want)
		}
	}
}

func TestByKey_CoversMinimumTable(t *testing.T) {
	required := []string{
		"MOV_REG_REG", "MOV_REG_IMM", "PUSH_REG", "POP_REG", "XCHG_REG_REG",
		"LEA_REG_REG", "ADD_REG_REG", "ADD_REG_IMM", "INC_REG", "DEC_REG",
		"TEST_REG_IMM", "NOT_REG", "NEG_REG", "MUL_REG", "IMUL_REG", "DIV_REG",
		"IDIV_REG", "AND_REG_REG", "OR_REG_REG", "XOR_REG_REG", "MOVSB",
		"LODSB", "STOSB", "CMPSB", "JMP", "CALL", "RET", "JE", "JNE", "JC",
		"JNC", "NOP", "HLT", "CLC", "STC", "CMC",
	}
	for _, key := range required {
		if _, ok := x86.ByKey[key]; !ok {
			t.Errorf("ByKey is missing required key %q", key)
		}
	}
}
