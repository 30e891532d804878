package device

import (
	"errors"
	"fmt"
)

// OpFunc computes the value written to the destination register.
// Whether a and b are immediates or register indices is fixed by the operation.
type OpFunc func(a, b int64, s State) (int64, error)

// Operations maps operation names to their semantics.
// Once finalized the name order is frozen, and numeric opcodes index into it.
type Operations struct {
	ops       map[string]OpFunc
	order     []string // registration order
	opnames   []string // opcode -> name, set by Finalize or Remap
	finalized bool
}

func NewEmptyOperations() *Operations {
	return &Operations{ops: make(map[string]OpFunc)}
}

// NewOperations returns the finalized table of the 16 canonical operations.
func NewOperations() *Operations {
	t := NewEmptyOperations()
	for _, op := range canonicalOps {
		if err := t.Register(op.name, op.fn); err != nil {
			panic(err)
		}
	}
	t.Finalize()
	return t
}

func (t *Operations) Register(name string, fn OpFunc) error {
	if t.finalized {
		return fmt.Errorf("register %q: %w", name, ErrFinalized)
	}
	if _, ok := t.ops[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateOp)
	}
	t.ops[name] = fn
	t.order = append(t.order, name)
	return nil
}

// Finalize freezes the registered names into the opcode ordering.
// Calling it again has no effect.
func (t *Operations) Finalize() {
	if t.finalized {
		return
	}
	t.finalized = true
	t.opnames = append([]string(nil), t.order...)
}

func (t *Operations) Finalized() bool {
	return t.finalized
}

// Names returns the registered names in registration order.
func (t *Operations) Names() []string {
	return append([]string(nil), t.order...)
}

// Opnames returns the current opcode to name ordering.
func (t *Operations) Opnames() []string {
	return append([]string(nil), t.opnames...)
}

// Remap installs a new opcode ordering, e.g. one found by opcode identification.
// names must be a permutation of the registered names.
func (t *Operations) Remap(names []string) error {
	if !t.finalized {
		return errors.New("remap before finalize")
	}
	if len(names) != len(t.order) {
		return fmt.Errorf("remap with %d names, expected %d", len(names), len(t.order))
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := t.ops[name]; !ok {
			return fmt.Errorf("remap %q: %w", name, ErrUnknownOp)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("remap %q: %w", name, ErrDuplicateOp)
		}
		seen[name] = struct{}{}
	}
	t.opnames = append([]string(nil), names...)
	return nil
}

// Resolve returns the operation name that an instruction selects.
func (t *Operations) Resolve(ins Instruction) (string, error) {
	if ins.Name != "" {
		return ins.Name, nil
	}
	if !t.finalized {
		return "", fmt.Errorf("opcode %d: table not finalized: %w", ins.Opcode, ErrUnknownOp)
	}
	if ins.Opcode < 0 || ins.Opcode >= len(t.opnames) {
		return "", fmt.Errorf("opcode %d: %w", ins.Opcode, ErrUnknownOp)
	}
	return t.opnames[ins.Opcode], nil
}

// Apply executes ins against s in place.
func (t *Operations) Apply(ins Instruction, s State) error {
	name, err := t.Resolve(ins)
	if err != nil {
		return err
	}
	return t.ApplyNamed(ins, s, name)
}

// ApplyNamed executes ins against s as the named operation, ignoring the instruction's opcode.
// On error s is left unchanged.
func (t *Operations) ApplyNamed(ins Instruction, s State, name string) error {
	fn, ok := t.ops[name]
	if !ok {
		return fmt.Errorf("operation %q: %w", name, ErrUnknownOp)
	}
	if ins.C < 0 || ins.C >= int64(len(s)) {
		return fmt.Errorf("%s: destination register %d of %d: %w", name, ins.C, len(s), ErrRegisterBounds)
	}
	v, err := fn(ins.A, ins.B, s)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s[ins.C] = v
	return nil
}

// ApplyAll applies ins as every registered operation, each on its own copy of s.
// s itself is never modified. Operations that fail are left out of the result.
func (t *Operations) ApplyAll(ins Instruction, s State) map[string]State {
	out := make(map[string]State, len(t.order))
	for _, name := range t.order {
		res := s.Copy()
		if err := t.ApplyNamed(ins, res, name); err != nil {
			continue
		}
		out[name] = res
	}
	return out
}
