// Package vm lowers stack-machine bytecode to Hack assembly. Each VM
// command expands to a fixed instruction sequence over one global operand
// stack and the LCL/ARG/THIS/THAT base pointers; the call and return
// protocols build and tear down stack frames out of those pieces.
package vm

import (
	"fmt"

	"gohack/pkg/hack"
)

// Options control per-run translator behavior.
type Options struct {
	// Bootstrap prepends stack-pointer initialization and a call to
	// Sys.init, for translating a complete program's entry unit.
	Bootstrap bool
}

// Translate lowers one translation unit of VM source to assembly text.
// unit (normally the source file's base name) qualifies static-segment
// symbols. On any error no output is returned; errors carry the 1-based
// command index of the offending line.
func Translate(src, unit string, opts Options) (string, error) {
	cg := NewCodeGen(unit)
	if opts.Bootstrap {
		cg.Bootstrap()
	}

	for i, line := range hack.CleanLines(src) {
		cmd, err := Parse(line)
		if err == nil {
			err = generate(cg, cmd)
		}
		if err != nil {
			return "", fmt.Errorf("command %d: %w", i+1, err)
		}
	}

	return cg.Output(), nil
}

func generate(cg *CodeGen, cmd Command) error {
	switch cmd.Kind {
	case CmdArithmetic:
		return cg.Arithmetic(cmd.Op)
	case CmdPush:
		return cg.Push(cmd.Segment, cmd.Index)
	case CmdPop:
		return cg.Pop(cmd.Segment, cmd.Index)
	case CmdLabel:
		cg.Label(cmd.Label)
	case CmdGoto:
		cg.Goto(cmd.Label)
	case CmdIfGoto:
		cg.IfGoto(cmd.Label)
	case CmdCall:
		cg.Call(cmd.Name, cmd.Count)
	case CmdFunction:
		cg.Function(cmd.Name, cmd.Count)
	case CmdReturn:
		cg.Return()
	default:
		return fmt.Errorf("%w: kind %d", ErrUnknownCommand, cmd.Kind)
	}
	return nil
}
