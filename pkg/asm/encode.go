package asm

import (
	"fmt"
	"strconv"
	"strings"

	"gohack/pkg/hack"
)

// compCodes maps every recognized computation to its a+c1..c6 bit string.
// 18 patterns with the a-flag clear, 10 with it set.
var compCodes = map[string]string{
	// a = 0
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"D|A": "0010101",
	// a = 1
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"D|M": "1010101",
}

var jumpCodes = map[string]string{
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

// EncodeInstruction encodes one preprocessed line (never a label
// declaration) as a 16-character binary string.
func EncodeInstruction(line string, syms *SymbolTable) (string, error) {
	if operand, ok := strings.CutPrefix(line, "@"); ok {
		return encodeAddress(operand, syms)
	}
	return encodeCompute(line)
}

func encodeAddress(operand string, syms *SymbolTable) (string, error) {
	if value, err := strconv.ParseUint(operand, 10, 32); err == nil {
		if value > uint64(hack.MaxAddress) {
			return "", fmt.Errorf("%w: @%s", ErrOperandOutOfRange, operand)
		}
		return hack.FormatWord(uint16(value)), nil
	}

	addr, ok := syms.Resolve(operand)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUndefinedSymbol, operand)
	}
	return hack.FormatWord(addr), nil
}

func encodeCompute(line string) (string, error) {
	rest := line
	jump := "000"
	if body, mnemonic, found := strings.Cut(line, ";"); found {
		code, ok := jumpCodes[mnemonic]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrInvalidJump, mnemonic)
		}
		jump = code
		rest = body
	}

	dest := "000"
	comp := rest
	if destToken, compToken, found := strings.Cut(rest, "="); found {
		dest = destBits(destToken)
		comp = compToken
	}

	code, ok := compCodes[comp]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidComputation, comp)
	}

	return "111" + code + dest + jump, nil
}

// destBits derives the d1..d3 flags by containment, so "AMD", "MDA" and
// friends all encode the same three stores.
func destBits(dest string) string {
	bits := []byte{'0', '0', '0'}
	if strings.Contains(dest, "A") {
		bits[0] = '1'
	}
	if strings.Contains(dest, "D") {
		bits[1] = '1'
	}
	if strings.Contains(dest, "M") {
		bits[2] = '1'
	}
	return string(bits)
}
