package asm

import (
	"fmt"
	"strconv"
	"strings"

	"gohack/pkg/hack"
)

// SymbolTable maps symbol names to 16-bit addresses. Three classes share
// the one table: predefined registers/pointers, labels bound in pass 1,
// and variables allocated in pass 2.
type SymbolTable struct {
	entries map[string]uint16
}

// NewSymbolTable returns a table preloaded with the predefined symbols.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: hack.PredefinedSymbols()}
}

// Resolve looks up a symbol. Names are case-sensitive.
func (s *SymbolTable) Resolve(name string) (uint16, bool) {
	addr, ok := s.entries[name]
	return addr, ok
}

func (s *SymbolTable) define(name string, addr uint16) {
	s.entries[name] = addr
}

// BuildSymbolTable runs both resolution passes over preprocessed lines.
//
// Pass 1 walks the program with an instruction counter that advances once
// per non-label line; each "(NAME)" declaration binds NAME to the address
// of the next real instruction. Declaring the same label twice is an
// error (the permissive overwrite in some assemblers is almost always an
// authoring mistake, so we reject it).
//
// Pass 2 allocates every not-yet-known, non-numeric A-instruction operand
// a sequential address starting at hack.VarBase, in first-encounter
// order. Pass 2 cannot fail: unknown operands are definitions, not uses.
func BuildSymbolTable(lines []string) (*SymbolTable, error) {
	syms := NewSymbolTable()

	pc := uint16(0)
	for i, line := range lines {
		name, ok := labelName(line)
		if !ok {
			pc++
			continue
		}
		if _, exists := syms.Resolve(name); exists {
			return nil, fmt.Errorf("command %d: %w: %s", i+1, ErrDuplicateLabel, name)
		}
		syms.define(name, pc)
	}

	next := hack.VarBase
	for _, line := range lines {
		operand, ok := strings.CutPrefix(line, "@")
		if !ok {
			continue
		}
		if _, err := strconv.ParseUint(operand, 10, 16); err == nil {
			continue
		}
		if _, exists := syms.Resolve(operand); exists {
			continue
		}
		syms.define(operand, next)
		next++
	}

	return syms, nil
}

// labelName extracts NAME from a "(NAME)" declaration line.
func labelName(line string) (string, bool) {
	if strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")") {
		return line[1 : len(line)-1], true
	}
	return "", false
}
