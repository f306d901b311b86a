package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"gohack/pkg/asm"
)

var outPath string

var rootCmd = &cobra.Command{
	Use:   "hackasm <input.asm>",
	Short: "Assemble Hack assembly into 16-bit machine words",
	Long: `Hackasm translates Hack assembly source into binary machine code,
one 16-character line of 0/1 per instruction. Output goes to the input
path with a .hack extension unless -o is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := assembleFile(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "hackasm:", err)
			atexit.Exit(1)
		}
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Encode instructions interactively, one per line",
	Run: func(cmd *cobra.Command, args []string) {
		runREPL()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path")
	rootCmd.AddCommand(replCmd)
}

func assembleFile(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	words, err := asm.Assemble(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	target := outPath
	if target == "" {
		target = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".hack"
	}

	var sb strings.Builder
	for _, word := range words {
		sb.WriteString(word)
		sb.WriteByte('\n')
	}
	return os.WriteFile(target, []byte(sb.String()), 0644)
}

// runREPL encodes one instruction per entered line against the predefined
// symbol table. Labels and variables need full-program context, so the
// repl only accepts numeric A-instructions, predefined symbols, and
// C-instructions.
func runREPL() {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	syms := asm.NewSymbolTable()

	for {
		line, err := ln.Prompt("asm> ")
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		word, err := asm.EncodeInstruction(line, syms)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(word)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
