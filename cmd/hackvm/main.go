package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"gohack/pkg/vm"
)

var (
	outPath   string
	bootstrap bool
)

var rootCmd = &cobra.Command{
	Use:   "hackvm <input.vm>",
	Short: "Translate VM bytecode into Hack assembly",
	Long: `Hackvm lowers stack-machine bytecode to Hack assembly text. The
input file's base name qualifies static-segment symbols; output goes to
the input path with an .asm extension unless -o is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := translateFile(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "hackvm:", err)
			atexit.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path")
	rootCmd.Flags().BoolVar(&bootstrap, "bootstrap", false,
		"emit stack-pointer initialization and a call to Sys.init")
}

func translateFile(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	unit := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	output, err := vm.Translate(string(data), unit, vm.Options{Bootstrap: bootstrap})
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	target := outPath
	if target == "" {
		target = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".asm"
	}
	return os.WriteFile(target, []byte(output+"\n"), 0644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
