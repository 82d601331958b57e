package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finleyford/chipvm/internal/chip8"
)

// disasmCmd prints a disassembly listing of a ROM without running it.
var disasmCmd = &cobra.Command{
	Use:   "disasm `path/to/rom`",
	Short: "print a disassembly of a ROM",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rom, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("\nerror reading rom: %v\n", err)
			os.Exit(1)
		}
		if err := chip8.Disassemble(rom, os.Stdout); err != nil {
			fmt.Printf("\nerror writing disassembly: %v\n", err)
			os.Exit(1)
		}
	},
}
