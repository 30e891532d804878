package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is an opcode with its three operands.
// Name is set for symbolic programs, Opcode for numeric ones.
// C is always a destination register.
type Instruction struct {
	Opcode  int
	Name    string
	A, B, C int64
}

func (ins Instruction) String() string {
	if ins.Name != "" {
		return fmt.Sprintf("%s %d %d %d", ins.Name, ins.A, ins.B, ins.C)
	}
	return fmt.Sprintf("%d %d %d %d", ins.Opcode, ins.A, ins.B, ins.C)
}

// ParseInstruction parses "<opcode> <a> <b> <c>".
// With symbolic set the opcode is kept as a name, otherwise it must be an integer.
func ParseInstruction(line string, symbolic bool) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Instruction{}, fmt.Errorf("instruction %q: expected 4 fields, got %d", line, len(fields))
	}
	var ins Instruction
	if symbolic {
		ins.Name = fields[0]
	} else {
		op, err := strconv.Atoi(fields[0])
		if err != nil {
			return Instruction{}, fmt.Errorf("instruction %q: invalid opcode: %w", line, err)
		}
		ins.Opcode = op
	}
	operands := [3]*int64{&ins.A, &ins.B, &ins.C}
	for i, dst := range operands {
		v, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			return Instruction{}, fmt.Errorf("instruction %q: invalid operand %d: %w", line, i, err)
		}
		*dst = v
	}
	return ins, nil
}
