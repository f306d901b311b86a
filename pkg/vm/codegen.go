package vm

import (
	"fmt"
	"strings"

	"gohack/pkg/hack"
)

// CodeGen emits Hack assembly for one translation unit. The unit name
// qualifies static-segment symbols; the two counters keep comparison and
// call-site labels unique within the unit.
type CodeGen struct {
	unit         string
	out          strings.Builder
	labelCounter int
	callCounter  int
}

func NewCodeGen(unit string) *CodeGen {
	return &CodeGen{unit: unit}
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// Output returns everything emitted so far, one instruction per line.
func (cg *CodeGen) Output() string {
	return strings.TrimSuffix(cg.out.String(), "\n")
}

// Bootstrap sets SP to 256 and transfers control to Sys.init. It is not
// emitted by default so single-file fragments stay runnable on their own.
func (cg *CodeGen) Bootstrap() {
	cg.line("@256")
	cg.line("D=A")
	cg.line("@SP")
	cg.line("M=D")
	cg.Call("Sys.init", 0)
}

// Arithmetic emits one of the nine stack operations. Binary ops consume
// two stack slots and produce one; unary ops rewrite the top in place;
// comparisons leave 0 or -1.
func (cg *CodeGen) Arithmetic(op string) error {
	switch op {
	case "add":
		cg.binary("D+M")
	case "sub":
		cg.binary("M-D")
	case "and":
		cg.binary("D&M")
	case "or":
		cg.binary("D|M")
	case "neg":
		cg.unary("-M")
	case "not":
		cg.unary("!M")
	case "eq":
		cg.comparison("JEQ")
	case "gt":
		cg.comparison("JGT")
	case "lt":
		cg.comparison("JLT")
	default:
		return fmt.Errorf("%w: arithmetic op %q", ErrUnknownCommand, op)
	}
	return nil
}

// binary pops the top operand into D and combines it with the new top of
// stack in place.
func (cg *CodeGen) binary(comp string) {
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M")
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("M=%s", comp)
	cg.line("@SP")
	cg.line("M=M+1")
}

func (cg *CodeGen) unary(comp string) {
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("M=%s", comp)
	cg.line("@SP")
	cg.line("M=M+1")
}

// comparison computes second - top and branches on the condition. The
// counter advances once per comparison so labels never collide.
func (cg *CodeGen) comparison(jump string) {
	trueLabel := fmt.Sprintf("TRUE_%d", cg.labelCounter)
	endLabel := fmt.Sprintf("END_%d", cg.labelCounter)
	cg.labelCounter++

	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M")
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M-D")
	cg.line("@%s", trueLabel)
	cg.line("D;%s", jump)
	cg.line("@SP")
	cg.line("A=M")
	cg.line("M=0")
	cg.line("@%s", endLabel)
	cg.line("0;JMP")
	cg.line("(%s)", trueLabel)
	cg.line("@SP")
	cg.line("A=M")
	cg.line("M=-1")
	cg.line("(%s)", endLabel)
	cg.line("@SP")
	cg.line("M=M+1")
}

// Push emits code that leaves the addressed value on top of the stack.
func (cg *CodeGen) Push(seg Segment, index int) error {
	switch seg {
	case SegArgument:
		cg.pushSegment("ARG", index)
	case SegLocal:
		cg.pushSegment("LCL", index)
	case SegThis:
		cg.pushSegment("THIS", index)
	case SegThat:
		cg.pushSegment("THAT", index)
	case SegConstant:
		cg.pushValue(fmt.Sprintf("%d", index), true)
	case SegStatic:
		cg.pushValue(cg.staticSymbol(index), false)
	case SegPointer:
		cg.pushValue(pointerRegister(index), false)
	case SegTemp:
		cg.pushValue(fmt.Sprintf("%d", int(hack.TempBase)+index), false)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSegment, seg)
	}
	return nil
}

// Pop emits code that removes the top of the stack into the addressed
// slot. The stack pointer is decremented first: the decremented pointer,
// not the old one, addresses the value being removed.
func (cg *CodeGen) Pop(seg Segment, index int) error {
	switch seg {
	case SegArgument:
		cg.popSegment("ARG", index)
	case SegLocal:
		cg.popSegment("LCL", index)
	case SegThis:
		cg.popSegment("THIS", index)
	case SegThat:
		cg.popSegment("THAT", index)
	case SegStatic:
		cg.popDirect(cg.staticSymbol(index))
	case SegPointer:
		cg.popDirect(pointerRegister(index))
	case SegTemp:
		cg.popDirect(fmt.Sprintf("%d", int(hack.TempBase)+index))
	case SegConstant:
		return fmt.Errorf("%w: cannot pop constant", ErrUnknownSegment)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSegment, seg)
	}
	return nil
}

// Label emits a bare program-counter anchor.
func (cg *CodeGen) Label(label string) {
	cg.line("(%s)", label)
}

// Goto emits an unconditional jump.
func (cg *CodeGen) Goto(label string) {
	cg.line("@%s", label)
	cg.line("0;JMP")
}

// IfGoto pops the top of the stack and branches if it is non-zero.
func (cg *CodeGen) IfGoto(label string) {
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M")
	cg.line("@%s", label)
	cg.line("D;JNE")
}

// Call emits the frame-construction half of the calling convention:
// push the return address, then the caller's LCL, ARG, THIS and THAT,
// reposition ARG to SP-5-argCount and LCL to SP, and jump to the callee.
// The return-address label is qualified by function name and call count
// so repeated or recursive calls never collide.
func (cg *CodeGen) Call(function string, argCount int) {
	returnLabel := fmt.Sprintf("%s$ret.%d", function, cg.callCounter)
	cg.callCounter++

	cg.pushValue(returnLabel, true)
	for _, register := range []string{"LCL", "ARG", "THIS", "THAT"} {
		cg.pushValue(register, false)
	}

	cg.line("@SP")
	cg.line("D=M")
	cg.line("@%d", 5+argCount)
	cg.line("D=D-A")
	cg.line("@ARG")
	cg.line("M=D")

	cg.line("@SP")
	cg.line("D=M")
	cg.line("@LCL")
	cg.line("M=D")

	cg.Goto(function)
	cg.line("(%s)", returnLabel)
}

// Function emits the entry label and zero-initializes the declared
// number of local slots.
func (cg *CodeGen) Function(function string, localCount int) {
	cg.line("(%s)", function)
	for i := 0; i < localCount; i++ {
		cg.Push(SegConstant, 0)
	}
}

// Return emits the frame-teardown half of the convention. The return
// address is extracted first (for a zero-argument call, ARG[0] and the
// saved return address share a slot), the return value lands in ARG[0],
// and all four saved pointers are read out of the frame before the
// stack pointer is overwritten.
func (cg *CodeGen) Return() {
	// R13 walks down the saved frame from LCL.
	cg.line("@LCL")
	cg.line("D=M")
	cg.line("@R13")
	cg.line("M=D")

	// R14 = *(frame - 5), the return address.
	cg.line("@5")
	cg.line("A=D-A")
	cg.line("D=M")
	cg.line("@R14")
	cg.line("M=D")

	// ARG[0] = pop(), the callee's single return value.
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M")
	cg.line("@ARG")
	cg.line("A=M")
	cg.line("M=D")

	// R15 = ARG + 1, the caller's stack pointer after the call.
	cg.line("@ARG")
	cg.line("D=M+1")
	cg.line("@R15")
	cg.line("M=D")

	// Restore THAT, THIS, ARG, LCL from the frame, top down.
	for _, register := range []string{"THAT", "THIS", "ARG", "LCL"} {
		cg.line("@R13")
		cg.line("AM=M-1")
		cg.line("D=M")
		cg.line("@%s", register)
		cg.line("M=D")
	}

	// Only now is the stack pointer overwritten.
	cg.line("@R15")
	cg.line("D=M")
	cg.line("@SP")
	cg.line("M=D")

	cg.line("@R14")
	cg.line("A=M")
	cg.line("0;JMP")
}

func (cg *CodeGen) staticSymbol(index int) string {
	return fmt.Sprintf("%s.%d", cg.unit, index)
}

func pointerRegister(index int) string {
	if index == 0 {
		return "THIS"
	}
	return "THAT"
}

// pushValue pushes either the address value itself (isAddress, used for
// constants and return-address labels) or the word stored at it.
func (cg *CodeGen) pushValue(symbol string, isAddress bool) {
	cg.line("@%s", symbol)
	if isAddress {
		cg.line("D=A")
	} else {
		cg.line("D=M")
	}
	cg.line("@SP")
	cg.line("A=M")
	cg.line("M=D")
	cg.line("@SP")
	cg.line("M=M+1")
}

// pushSegment pushes the word at base-register value + index.
func (cg *CodeGen) pushSegment(base string, index int) {
	cg.line("@%d", index)
	cg.line("D=A")
	cg.line("@%s", base)
	cg.line("A=D+M")
	cg.line("D=M")
	cg.line("@SP")
	cg.line("A=M")
	cg.line("M=D")
	cg.line("@SP")
	cg.line("M=M+1")
}

// popDirect pops the top of the stack into the named address.
func (cg *CodeGen) popDirect(symbol string) {
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M")
	cg.line("@%s", symbol)
	cg.line("M=D")
}

// popSegment stages the effective address in R13, then pops into it.
func (cg *CodeGen) popSegment(base string, index int) {
	cg.line("@%d", index)
	cg.line("D=A")
	cg.line("@%s", base)
	cg.line("D=D+M")
	cg.line("@R13")
	cg.line("M=D")
	cg.line("@SP")
	cg.line("AM=M-1")
	cg.line("D=M")
	cg.line("@R13")
	cg.line("A=M")
	cg.line("M=D")
}
