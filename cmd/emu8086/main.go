package main

import "github.com/halvard/emu8086/cmd/emu8086/cmd"

func main() {
	cmd.Execute()
}
