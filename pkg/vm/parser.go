package vm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CommandKind tags the variant carried by a Command.
type CommandKind int

const (
	CmdArithmetic CommandKind = iota
	CmdPush
	CmdPop
	CmdLabel
	CmdGoto
	CmdIfGoto
	CmdCall
	CmdFunction
	CmdReturn
)

// Segment is one of the VM's eight addressing spaces.
type Segment string

const (
	SegArgument Segment = "argument"
	SegLocal    Segment = "local"
	SegStatic   Segment = "static"
	SegConstant Segment = "constant"
	SegThis     Segment = "this"
	SegThat     Segment = "that"
	SegPointer  Segment = "pointer"
	SegTemp     Segment = "temp"
)

var segments = map[string]Segment{
	"argument": SegArgument,
	"local":    SegLocal,
	"static":   SegStatic,
	"constant": SegConstant,
	"this":     SegThis,
	"that":     SegThat,
	"pointer":  SegPointer,
	"temp":     SegTemp,
}

var arithmeticOps = map[string]bool{
	"add": true, "sub": true, "neg": true,
	"eq": true, "gt": true, "lt": true,
	"and": true, "or": true, "not": true,
}

// Command is one parsed VM command. Kind selects which of the remaining
// fields are meaningful.
type Command struct {
	Kind    CommandKind
	Op      string  // arithmetic mnemonic
	Segment Segment // push/pop
	Index   int     // push/pop index
	Label   string  // label/goto/if-goto target
	Name    string  // call/function name
	Count   int     // call arg count, function local count
}

var labelRe = regexp.MustCompile(`^[A-Za-z_.:][A-Za-z0-9_.:]*$`)

func validateLabel(label string) error {
	if !labelRe.MatchString(label) {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return nil
}

// Parse tokenizes and classifies one preprocessed VM line.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	name := fields[0]
	args := fields[1:]

	switch {
	case arithmeticOps[name]:
		return Command{Kind: CmdArithmetic, Op: name}, nil

	case name == "push" || name == "pop":
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: %s needs a segment and an index", ErrMissingArgument, name)
		}
		seg, ok := segments[args[0]]
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownSegment, args[0])
		}
		index, err := parseCount(args[1])
		if err != nil {
			return Command{}, err
		}
		kind := CmdPush
		if name == "pop" {
			kind = CmdPop
		}
		return Command{Kind: kind, Segment: seg, Index: index}, nil

	case name == "label" || name == "goto" || name == "if-goto":
		if len(args) < 1 {
			return Command{}, fmt.Errorf("%w: %s needs a label", ErrMissingArgument, name)
		}
		if err := validateLabel(args[0]); err != nil {
			return Command{}, err
		}
		kind := CmdLabel
		switch name {
		case "goto":
			kind = CmdGoto
		case "if-goto":
			kind = CmdIfGoto
		}
		return Command{Kind: kind, Label: args[0]}, nil

	case name == "call" || name == "function":
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: %s needs a function name and a count", ErrMissingArgument, name)
		}
		if err := validateLabel(args[0]); err != nil {
			return Command{}, err
		}
		count, err := parseCount(args[1])
		if err != nil {
			return Command{}, err
		}
		kind := CmdCall
		if name == "function" {
			kind = CmdFunction
		}
		return Command{Kind: kind, Name: args[0], Count: count}, nil

	case name == "return":
		return Command{Kind: CmdReturn}, nil

	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func parseCount(token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidInteger, token)
	}
	return v, nil
}
