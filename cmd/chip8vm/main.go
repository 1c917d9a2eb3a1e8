// Command chip8vm runs a CHIP-8 ROM headlessly against the VM,
// Runner and Debugger packages, reporting the halt condition and a
// final register/memory dump.
package main

import "github.com/go-chip8/chip8vm/cmd/chip8vm/cmd"

func main() {
	cmd.Execute()
}
