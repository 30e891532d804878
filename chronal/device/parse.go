package device

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Source is a parsed symbolic program with its optional pointer register.
type Source struct {
	IPRegister   int
	Instructions []Instruction
}

// ParseProgram reads an optional "#ip N" header followed by symbolic instructions.
// Without header the pointer register is NoPointerRegister.
func ParseProgram(r io.Reader) (*Source, error) {
	src := &Source{IPRegister: NoPointerRegister}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "#ip"); ok {
			if len(src.Instructions) > 0 {
				return nil, fmt.Errorf("line %d: #ip header after instructions", lineNum)
			}
			ipr, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil || ipr < 0 {
				return nil, fmt.Errorf("line %d: invalid pointer register %q", lineNum, rest)
			}
			src.IPRegister = ipr
			continue
		}
		ins, err := ParseInstruction(line, true)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		src.Instructions = append(src.Instructions, ins)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	return src, nil
}

// ParseNumericProgram parses lines of "<opcode> a b c" with integer opcodes, skipping blanks.
func ParseNumericProgram(lines []string) ([]Instruction, error) {
	var out []Instruction
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ins, err := ParseInstruction(line, false)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, ins)
	}
	return out, nil
}
