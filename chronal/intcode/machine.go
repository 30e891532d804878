package intcode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

const (
	OpAdd  = 1
	OpMul  = 2
	OpHalt = 99
)

var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrAddressBounds = errors.New("address out of bounds")
	ErrNotHalted     = errors.New("machine did not halt")
	ErrHalted        = errors.New("machine already halted")
)

// Status is the outcome of a single step.
type Status uint8

const (
	Running Status = iota
	Halted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Memory is the shared code and data address space.
type Memory []int64

func (m Memory) Copy() Memory {
	return append(Memory(nil), m...)
}

// WithInputs returns a copy of m with the noun and verb written to addresses 1 and 2.
func (m Memory) WithInputs(noun, verb int64) (Memory, error) {
	if len(m) < 3 {
		return nil, fmt.Errorf("memory of %d cells has no input addresses: %w", len(m), ErrAddressBounds)
	}
	out := m.Copy()
	out[1] = noun
	out[2] = verb
	return out, nil
}

// ParseMemory parses a comma-separated memory image.
func ParseMemory(text string) (Memory, error) {
	items := strings.Split(strings.TrimSpace(text), ",")
	out := make(Memory, 0, len(items))
	for i, item := range items {
		v, err := strconv.ParseInt(strings.TrimSpace(item), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("memory cell %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Machine executes an Intcode memory image in place.
// All operands are absolute addresses.
type Machine struct {
	Memory Memory
	Head   int64
	Steps  uint64

	halted bool
	log    log.Logger
}

func NewMachine(mem Memory) *Machine {
	return &Machine{Memory: mem, log: log.Root()}
}

func (m *Machine) WithLogger(l log.Logger) *Machine {
	m.log = l
	return m
}

func (m *Machine) Halted() bool {
	return m.halted
}

// Output is the value at address 0.
func (m *Machine) Output() int64 {
	if len(m.Memory) == 0 {
		return 0
	}
	return m.Memory[0]
}

func (m *Machine) load(addr int64) (int64, error) {
	if addr < 0 || addr >= int64(len(m.Memory)) {
		return 0, fmt.Errorf("load %d of %d: %w", addr, len(m.Memory), ErrAddressBounds)
	}
	return m.Memory[addr], nil
}

func (m *Machine) store(addr int64, v int64) error {
	if addr < 0 || addr >= int64(len(m.Memory)) {
		return fmt.Errorf("store %d of %d: %w", addr, len(m.Memory), ErrAddressBounds)
	}
	m.Memory[addr] = v
	return nil
}

// Step executes the instruction at the head.
func (m *Machine) Step() (Status, error) {
	if m.halted {
		return Halted, ErrHalted
	}
	opcode, err := m.load(m.Head)
	if err != nil {
		return Running, fmt.Errorf("fetch opcode: %w", err)
	}
	var fn func(a, b int64) int64
	switch opcode {
	case OpAdd:
		fn = func(a, b int64) int64 { return a + b }
	case OpMul:
		fn = func(a, b int64) int64 { return a * b }
	case OpHalt:
		m.halted = true
		return Halted, nil
	default:
		return Running, fmt.Errorf("opcode %d at %d: %w", opcode, m.Head, ErrUnknownOpcode)
	}
	var operands [3]int64
	for i := range operands {
		if operands[i], err = m.load(m.Head + 1 + int64(i)); err != nil {
			return Running, fmt.Errorf("fetch operand %d: %w", i, err)
		}
	}
	a, err := m.load(operands[0])
	if err != nil {
		return Running, err
	}
	b, err := m.load(operands[1])
	if err != nil {
		return Running, err
	}
	if err := m.store(operands[2], fn(a, b)); err != nil {
		return Running, err
	}
	m.Head += 4
	m.Steps++
	return Running, nil
}

// Run steps until the machine halts.
func (m *Machine) Run(ctx context.Context) error {
	return m.run(ctx, 0)
}

// RunLimit is like Run, but fails with ErrNotHalted after maxSteps steps.
func (m *Machine) RunLimit(ctx context.Context, maxSteps uint64) error {
	return m.run(ctx, maxSteps)
}

func (m *Machine) run(ctx context.Context, maxSteps uint64) error {
	var taken uint64
	for !m.halted {
		if maxSteps != 0 && taken >= maxSteps {
			return fmt.Errorf("stopped after %d steps at head %d: %w", taken, m.Head, ErrNotHalted)
		}
		if taken%100 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if _, err := m.Step(); err != nil {
			m.log.Debug("Step failed", "head", m.Head, "steps", m.Steps, "err", err)
			return err
		}
		taken++
	}
	return nil
}
