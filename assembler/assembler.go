// Package assembler implements the two-pass 8086 assembler: lexer, parser,
// symbol-table pass, and encoder, sharing its instruction table with the
// cpu package via architecture/x86.
package assembler

import (
	"fmt"
	"strings"

	"github.com/halvard/emu8086/internal/diag"
)

// Result is the assembler's external contract: the emitted machine code,
// the resolved symbol table, and its hex rendering.
type Result struct {
	MachineCode []byte
	SymbolTable map[string]int
	HexString   string
}

// Assemble runs the full lex -> parse -> pass 1 -> pass 2 pipeline over
// source and returns the emitted machine code. It fails the whole call on
// the first error encountered in any phase — no partial machine code is
// ever returned.
func Assemble(source string) (Result, error) {
	result, _, err := AssembleWithLog(source)
	return result, err
}

// AssembleWithLog behaves like Assemble but also returns the diagnostics
// log accumulated along the way (internal/diag), for callers that want to
// show informational trace entries even on success.
func AssembleWithLog(source string) (Result, *diag.Log, error) {
	log := diag.NewLog()

	lines, srcMap := lex(source)
	log.Info("lex", 0, fmt.Sprintf("%d line(s) survived comment/whitespace filtering", len(lines)))

	parsed, err := parse(lines, srcMap)
	if err != nil {
		log.Error("parse", err.(*Error).Line, err.(*Error).Message)
		return Result{}, log, err
	}

	symtab, err := assignOffsets(parsed)
	if err != nil {
		log.Error("assembly", err.(*Error).Line, err.(*Error).Message)
		return Result{}, log, err
	}
	log.Info("assembly", 0, fmt.Sprintf("%d label(s) resolved", len(symtab)))

	code, err := encode(parsed, symtab)
	if err != nil {
		log.Error("encoding", err.(*Error).Line, err.(*Error).Message)
		return Result{}, log, err
	}

	result := Result{
		MachineCode: code,
		SymbolTable: symtab,
		HexString:   hexString(code),
	}
	log.Info("encoding", 0, fmt.Sprintf("%d byte(s) emitted", len(code)))
	return result, log, nil
}

// hexString renders code as space-separated uppercase two-digit hex, the
// format Result.HexString uses.
func hexString(code []byte) string {
	var b strings.Builder
	for i, by := range code {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", by)
	}
	return b.String()
}
