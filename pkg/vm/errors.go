package vm

import "errors"

var (
	// ErrUnknownCommand is returned when the first token of a line is not
	// a VM mnemonic.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingArgument is returned when a command lacks a required
	// operand.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidInteger is returned when an index or count fails to parse
	// as a non-negative integer.
	ErrInvalidInteger = errors.New("invalid integer")

	// ErrInvalidLabel is returned when a label, goto target or function
	// name violates the label grammar.
	ErrInvalidLabel = errors.New("invalid label name")

	// ErrUnknownSegment is returned for a push/pop segment outside the
	// fixed set.
	ErrUnknownSegment = errors.New("unknown segment")
)
