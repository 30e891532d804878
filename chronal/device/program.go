package device

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// NoPointerRegister selects the plain variant, where the pointer is never mirrored into a register.
const NoPointerRegister = -1

// Program drives fetch-decode-execute over a fixed instruction list.
// It owns its State exclusively.
type Program struct {
	ops          *Operations
	instructions []Instruction
	ipRegister   int

	state   State
	pointer int64
	steps   uint64

	// OnStep, if set, is called after every successful step.
	OnStep func(p *Program)

	log log.Logger
}

// NewProgram builds a program. initial is copied; a nil initial starts from a zeroed 6-register state.
// With a mapped pointer register, that register must hold zero in initial.
func NewProgram(ops *Operations, instructions []Instruction, ipRegister int, initial State) (*Program, error) {
	if initial == nil {
		initial = NewState(6)
	}
	state := initial.Copy()
	if ipRegister != NoPointerRegister {
		v, err := state.Get(int64(ipRegister))
		if err != nil {
			return nil, fmt.Errorf("pointer register: %w", err)
		}
		if v != 0 {
			return nil, fmt.Errorf("register %d holds %d: %w", ipRegister, v, ErrPointerRegister)
		}
	}
	return &Program{
		ops:          ops,
		instructions: instructions,
		ipRegister:   ipRegister,
		state:        state,
		log:          log.Root(),
	}, nil
}

func (p *Program) WithLogger(l log.Logger) *Program {
	p.log = l
	return p
}

func (p *Program) State() State {
	return p.state
}

func (p *Program) Pointer() int64 {
	return p.pointer
}

func (p *Program) Steps() uint64 {
	return p.steps
}

func (p *Program) IPRegister() int {
	return p.ipRegister
}

func (p *Program) Instructions() []Instruction {
	return p.instructions
}

func (p *Program) HasValidInstructionIdx() bool {
	return p.pointer >= 0 && p.pointer < int64(len(p.instructions))
}

// Step executes the instruction at the pointer and advances it.
// In the mapped variant the pointer is written to the mapped register before execution,
// read back after it, and then incremented; an instruction writing that register jumps.
func (p *Program) Step() error {
	if !p.HasValidInstructionIdx() {
		return fmt.Errorf("pointer %d with %d instructions: %w", p.pointer, len(p.instructions), ErrInvalidPointer)
	}
	ins := p.instructions[p.pointer]
	if p.ipRegister != NoPointerRegister {
		p.state[p.ipRegister] = p.pointer
	}
	if err := p.ops.Apply(ins, p.state); err != nil {
		return fmt.Errorf("step %d, pointer %d (%s): %w", p.steps, p.pointer, ins, err)
	}
	if p.ipRegister != NoPointerRegister {
		p.pointer = p.state[p.ipRegister]
	}
	p.pointer++
	p.steps++
	if p.OnStep != nil {
		p.OnStep(p)
	}
	return nil
}

// Run steps until the pointer leaves the program. It never gives up on its own;
// use RunLimit to bound non-terminating programs.
func (p *Program) Run(ctx context.Context) error {
	return p.run(ctx, 0)
}

// RunLimit is like Run, but fails with ErrNotHalted after maxSteps steps.
func (p *Program) RunLimit(ctx context.Context, maxSteps uint64) error {
	return p.run(ctx, maxSteps)
}

func (p *Program) run(ctx context.Context, maxSteps uint64) error {
	if !p.HasValidInstructionIdx() {
		p.log.Warn("Program already finished", "pointer", p.pointer, "steps", p.steps)
		return nil
	}
	p.log.Debug("Running program", "instructions", len(p.instructions), "pointer", p.pointer, "state", p.state)
	var taken uint64
	for p.HasValidInstructionIdx() {
		if maxSteps != 0 && taken >= maxSteps {
			return fmt.Errorf("stopped after %d steps at pointer %d with state %s: %w", taken, p.pointer, p.state, ErrNotHalted)
		}
		if taken%100 == 0 { // don't check ctx every step
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := p.Step(); err != nil {
			return err
		}
		taken++
	}
	p.log.Info("Program finished", "steps", p.steps, "state", p.state)
	return nil
}
