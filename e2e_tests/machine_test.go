package main

import (
	"fmt"
	"strconv"
)

// machine is a minimal Hack CPU used only to verify generated code: 32K
// words of RAM, the A and D registers, and a program counter over the
// assembled word list.
type machine struct {
	rom []uint16
	ram [32768]int16
	a   int16
	d   int16
	pc  int
}

func loadProgram(words []string) (*machine, error) {
	m := &machine{}
	for i, w := range words {
		v, err := strconv.ParseUint(w, 2, 16)
		if err != nil || len(w) != 16 {
			return nil, fmt.Errorf("word %d: %q is not a 16-bit binary string", i, w)
		}
		m.rom = append(m.rom, uint16(v))
	}
	return m, nil
}

// step executes one instruction. It reports true when the program has
// halted: the counter ran off the program, or an unconditional jump
// targets its own instruction.
func (m *machine) step() bool {
	if m.pc < 0 || m.pc >= len(m.rom) {
		return true
	}
	instr := m.rom[m.pc]

	if instr&0x8000 == 0 {
		m.a = int16(instr)
		m.pc++
		return false
	}

	addr := uint16(m.a) & 0x7FFF

	// ALU per the zx/nx/zy/ny/f/no control bits.
	x := m.d
	y := m.a
	if instr&0x1000 != 0 {
		y = m.ram[addr]
	}
	c := instr >> 6
	if c&0x20 != 0 {
		x = 0
	}
	if c&0x10 != 0 {
		x = ^x
	}
	if c&0x08 != 0 {
		y = 0
	}
	if c&0x04 != 0 {
		y = ^y
	}
	var out int16
	if c&0x02 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if c&0x01 != 0 {
		out = ^out
	}

	// The jump target is the A register's value before any store.
	target := int(addr)

	if instr&0x0020 != 0 {
		m.a = out
	}
	if instr&0x0010 != 0 {
		m.d = out
	}
	if instr&0x0008 != 0 {
		m.ram[addr] = out
	}

	j := instr & 0x7
	if (j&0x4 != 0 && out < 0) || (j&0x2 != 0 && out == 0) || (j&0x1 != 0 && out > 0) {
		if target == m.pc {
			return true
		}
		m.pc = target
		return false
	}

	m.pc++
	return false
}

// run steps the machine to a halt, failing if it takes more than
// maxSteps instructions.
func (m *machine) run(maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if m.step() {
			return nil
		}
	}
	return fmt.Errorf("program did not halt within %d steps", maxSteps)
}
