// Command chip8vm runs the CHIP-8 / SUPER-CHIP / XO-CHIP interpreter.
// Usage is grounded on bradford-hamilton-chippy/cmd: a cobra root command
// with run and version subcommands.
package main

import "github.com/nevisdale/chip8vm/cmd/chip8vm/cmd"

func main() {
	cmd.Execute()
}
