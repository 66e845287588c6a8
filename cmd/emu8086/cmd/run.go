package cmd

import (
	"github.com/halvard/emu8086/assembler"
	"github.com/halvard/emu8086/cpu"
	"github.com/spf13/cobra"
)

var maxSteps int

var runCmd = &cobra.Command{
	Use:     "run <assembly-file>",
	GroupID: "operations",
	Short:   "Assemble and run an 8086 source file to completion",
	Long:    `Assemble an 8086 source file, load it at CS=0,IP=0, single-step it to halt, and print the final register/flag dump.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRun(cmd, args)
	},
}

func init() {
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 1_000_000, "abort after this many steps if the program never halts")
}

func runRun(cmd *cobra.Command, args []string) error {
	fullPath, err := resolveFilePath(args)
	if err != nil {
		return err
	}

	source, err := readSourceFile(fullPath)
	if err != nil {
		return err
	}

	result, err := assembler.Assemble(source)
	if err != nil {
		return err
	}

	c := cpu.New()
	copy(c.Memory[:], result.MachineCode)

	steps := 0
	for !c.Halted && steps < maxSteps {
		if err := c.Step(); err != nil {
			break
		}
		steps++
	}

	cmd.Println(c.String())
	return nil
}
