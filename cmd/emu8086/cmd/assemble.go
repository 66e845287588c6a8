package cmd

import (
	"os"

	"github.com/halvard/emu8086/assembler"
	"github.com/spf13/cobra"
)

var outputPath string

var assembleCmd = &cobra.Command{
	Use:     "assemble <assembly-file>",
	GroupID: "operations",
	Short:   "Assemble an 8086 source file into machine code",
	Long:    `Assemble an 8086 source file into machine code and print its hex rendering (or write it to -o).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(cmd, args)
	},
}

func init() {
	assembleCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the hex rendering to this file instead of stdout")
}

func runAssemble(cmd *cobra.Command, args []string) error {
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

	if outputPath == "" {
		cmd.Println(result.HexString)
		return nil
	}
	return os.WriteFile(outputPath, []byte(result.HexString+"\n"), 0o644)
}
