// Package asm assembles Hack assembly source into 16-bit machine words.
// Translation is two-pass: the symbol table is completed over the whole
// program before any instruction is encoded, so labels may be referenced
// before they are declared.
package asm

import (
	"fmt"

	"gohack/pkg/hack"
)

// Assemble translates raw assembly source into one binary line per
// instruction, each 16 ASCII '0'/'1' characters, in program order. Label
// declarations produce no output line. On any error no output is
// returned; errors carry the 1-based command index of the offending line.
func Assemble(src string) ([]string, error) {
	lines := hack.CleanLines(src)

	syms, err := BuildSymbolTable(lines)
	if err != nil {
		return nil, err
	}

	var words []string
	for i, line := range lines {
		if _, isLabel := labelName(line); isLabel {
			continue
		}
		word, err := EncodeInstruction(line, syms)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		words = append(words, word)
	}

	return words, nil
}
