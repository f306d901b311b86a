package asm

import "errors"

var (
	// ErrUndefinedSymbol is returned when an A-instruction operand is
	// neither numeric nor present in the symbol table after both passes.
	ErrUndefinedSymbol = errors.New("undefined symbol")

	// ErrInvalidComputation is returned when a C-instruction computation
	// matches none of the 28 recognized patterns.
	ErrInvalidComputation = errors.New("invalid comp pattern")

	// ErrInvalidJump is returned for an unrecognized mnemonic after ';'.
	ErrInvalidJump = errors.New("invalid jump mnemonic")

	// ErrOperandOutOfRange is returned when an A-instruction operand does
	// not fit in 15 bits.
	ErrOperandOutOfRange = errors.New("operand out of range")

	// ErrDuplicateLabel is returned when pass 1 sees the same label
	// declared twice.
	ErrDuplicateLabel = errors.New("duplicate label")
)
