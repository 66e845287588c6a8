package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveFilePath validates the single positional argument every subcommand
// here takes and returns the absolute path to the source file.
func resolveFilePath(args []string) (string, error) {
	if len(args) < 1 || args[0] == "" {
		return "", fmt.Errorf("no assembly file provided")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get current working directory: %w", err)
	}

	fullPath := filepath.Join(cwd, args[0])
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return "", fmt.Errorf("assembly file does not exist at path: %s", fullPath)
	}
	return fullPath, nil
}

func readSourceFile(path string) (string, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read assembly file: %w", err)
	}
	return string(sourceBytes), nil
}
