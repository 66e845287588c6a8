// Package cmd is the Cobra command tree for the emu8086 CLI, the external
// collaborator that drives assembler.Assemble and cpu.Step from the command
// line. It contains no assembler/CPU logic of its own.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "emu8086",
	Short: "8086 assembler and emulator",
	Long:  `emu8086 assembles a subset of 8086 mnemonics into machine code and can run the result against a fetch-decode-execute engine.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "operations",
		Title: "Operations",
	})

	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(runCmd)
}
