// Package hack holds the architecture constants shared by the assembler
// and the VM translator: register addresses, memory-map anchors, and the
// limits of the 15-bit address space.
package hack

import "fmt"

const (
	// Virtual registers used by the VM's calling convention.
	SP   uint16 = 0
	LCL  uint16 = 1
	ARG  uint16 = 2
	THIS uint16 = 3
	THAT uint16 = 4

	// Memory-mapped I/O.
	Screen   uint16 = 16384
	Keyboard uint16 = 24576

	// First address handed to an assembler variable.
	VarBase uint16 = 16

	// Base of the temp segment (R5..R12).
	TempBase uint16 = 5

	// A-instruction operands must fit in 15 bits.
	MaxAddress uint16 = 32767
)

// PredefinedSymbols returns a fresh table of the symbols every program
// starts with: R0..R15, the virtual registers, and the I/O anchors.
func PredefinedSymbols() map[string]uint16 {
	syms := map[string]uint16{
		"SP":     SP,
		"LCL":    LCL,
		"ARG":    ARG,
		"THIS":   THIS,
		"THAT":   THAT,
		"SCREEN": Screen,
		"KBD":    Keyboard,
	}
	for i := uint16(0); i < 16; i++ {
		syms[fmt.Sprintf("R%d", i)] = i
	}
	return syms
}

// FormatWord renders a machine word as 16 ASCII '0'/'1' characters,
// most significant bit first.
func FormatWord(word uint16) string {
	return fmt.Sprintf("%016b", word)
}
