package identify

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronal-vm/chronal/chronal/device"
)

// Sample is one observed execution of an instruction with an unknown opcode mapping.
type Sample struct {
	Before      device.State
	Instruction device.Instruction
	After       device.State
}

// Candidates returns, in registration order, the operations that turn Before into After.
func (s *Sample) Candidates(ops *device.Operations) ([]string, error) {
	if len(s.Before) != len(s.After) {
		return nil, fmt.Errorf("sample before has %d registers, after has %d", len(s.Before), len(s.After))
	}
	results := ops.ApplyAll(s.Instruction, s.Before)
	var out []string
	for _, name := range ops.Names() {
		if res, ok := results[name]; ok && res.Equal(s.After) {
			out = append(out, name)
		}
	}
	return out, nil
}

// CountAmbiguous counts the samples that behave like at least minCandidates operations.
func CountAmbiguous(ops *device.Operations, samples []Sample, minCandidates int) (int, error) {
	count := 0
	for i := range samples {
		c, err := samples[i].Candidates(ops)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if len(c) >= minCandidates {
			count++
		}
	}
	return count, nil
}

// ParseSamples reads "Before:"/instruction/"After:" blocks, followed by the numeric program.
// Any non-blank line outside of a sample block is a program instruction.
func ParseSamples(r io.Reader) ([]Sample, []device.Instruction, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read samples: %w", err)
	}

	var samples []Sample
	var programLines []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "Before:") {
			if line != "" {
				programLines = append(programLines, line)
			}
			continue
		}
		if len(programLines) > 0 {
			return nil, nil, fmt.Errorf("line %d: sample after program instructions", i+1)
		}
		if i+2 >= len(lines) {
			return nil, nil, fmt.Errorf("line %d: truncated sample", i+1)
		}
		before, err := parseRegisters(line, "Before:")
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		ins, err := device.ParseInstruction(lines[i+1], false)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		after, err := parseRegisters(lines[i+2], "After:")
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+3, err)
		}
		samples = append(samples, Sample{Before: before, Instruction: ins, After: after})
		i += 2
	}

	program, err := device.ParseNumericProgram(programLines)
	if err != nil {
		return nil, nil, fmt.Errorf("program: %w", err)
	}
	return samples, program, nil
}

// parseRegisters parses "<prefix> [r0, r1, ...]".
func parseRegisters(line, prefix string) (device.State, error) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return nil, fmt.Errorf("expected %q, got %q", prefix, line)
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return nil, fmt.Errorf("malformed register list %q", rest)
	}
	fields := strings.Split(rest[1:len(rest)-1], ",")
	out := device.NewState(len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("register %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
