package identify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/chronal-vm/chronal/chronal/device"
)

// ErrNoSolution is returned when no opcode assignment satisfies every sample.
var ErrNoSolution = errors.New("no solution")

// Validity relates numeric opcodes (rows) to operation names (columns).
// V[opcode][name] holds when every sample with that opcode allows the name.
type Validity [][]bool

func NewValidity(n int) Validity {
	v := make(Validity, n)
	for j := range v {
		v[j] = make([]bool, n)
		for k := range v[j] {
			v[j][k] = true
		}
	}
	return v
}

func (v Validity) Copy() Validity {
	out := make(Validity, len(v))
	for j := range v {
		out[j] = append([]bool(nil), v[j]...)
	}
	return out
}

func (v Validity) rowSum(j int) int {
	n := 0
	for _, ok := range v[j] {
		if ok {
			n++
		}
	}
	return n
}

func (v Validity) colSum(k int) int {
	n := 0
	for j := range v {
		if v[j][k] {
			n++
		}
	}
	return n
}

func (v Validity) first(j int) int {
	for k, ok := range v[j] {
		if ok {
			return k
		}
	}
	return -1
}

// IsPermutation reports whether every row and every column holds exactly one valid entry.
func (v Validity) IsPermutation() bool {
	for j := range v {
		if len(v[j]) != len(v) || v.rowSum(j) != 1 || v.colSum(j) != 1 {
			return false
		}
	}
	return true
}

func (v Validity) String() string {
	var b strings.Builder
	for j := range v {
		for _, ok := range v[j] {
			if ok {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Assignment maps each opcode to its name. v must be a permutation matrix over names.
func (v Validity) Assignment(names []string) ([]string, error) {
	if len(names) != len(v) || !v.IsPermutation() {
		return nil, fmt.Errorf("validity matrix is not a permutation over %d names: %w", len(names), ErrNoSolution)
	}
	out := make([]string, len(v))
	for j := range v {
		out[j] = names[v.first(j)]
	}
	return out, nil
}

// ValidityMatrix intersects the candidate sets of all samples sharing an opcode.
// Opcodes without samples stay unconstrained.
func ValidityMatrix(ops *device.Operations, samples []Sample) (Validity, error) {
	names := ops.Names()
	index := make(map[string]int, len(names))
	for k, name := range names {
		index[name] = k
	}
	v := NewValidity(len(names))
	for i := range samples {
		opcode := samples[i].Instruction.Opcode
		if opcode < 0 || opcode >= len(names) {
			return nil, fmt.Errorf("sample %d: opcode %d: %w", i, opcode, device.ErrUnknownOp)
		}
		candidates, err := samples[i].Candidates(ops)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		allowed := make([]bool, len(names))
		for _, name := range candidates {
			allowed[index[name]] = true
		}
		for k := range allowed {
			v[opcode][k] = v[opcode][k] && allowed[k]
		}
	}
	return v, nil
}

// Reduce narrows v down to a permutation matrix. Rows with a single valid name
// eliminate that name from every other row; when that stalls, the first undetermined
// row is fixed to each of its names in turn and the reduction recurses on a copy.
// v itself is never modified. The result is a permutation matrix, or ErrNoSolution.
func Reduce(l log.Logger, v Validity) (Validity, error) {
	for j := range v {
		if len(v[j]) != len(v) {
			return nil, fmt.Errorf("validity matrix row %d has %d columns, expected %d", j, len(v[j]), len(v))
		}
	}
	return reduce(l, v.Copy(), 0)
}

func reduce(l log.Logger, v Validity, depth int) (Validity, error) {
	if !propagate(v) {
		return nil, ErrNoSolution
	}
	open := -1
	for j := range v {
		if v.rowSum(j) > 1 {
			open = j
			break
		}
	}
	if open < 0 {
		if !v.IsPermutation() {
			return nil, ErrNoSolution
		}
		return v, nil
	}
	for k, ok := range v[open] {
		if !ok {
			continue
		}
		l.Debug("Attempting reduction", "row", open, "column", k, "depth", depth)
		attempt := v.Copy()
		for c := range attempt[open] {
			attempt[open][c] = c == k
		}
		res, err := reduce(l, attempt, depth+1)
		if err == nil {
			l.Debug("Reduction succeeded", "row", open, "column", k, "depth", depth)
			return res, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, err
		}
		l.Debug("Reduction failed", "row", open, "column", k, "depth", depth)
	}
	return nil, ErrNoSolution
}

// propagate eliminates the column of every determined row from all other rows
// until nothing changes. It reports false once a row has no valid names left.
func propagate(v Validity) bool {
	for changed := true; changed; {
		changed = false
		for j := range v {
			switch v.rowSum(j) {
			case 0:
				return false
			case 1:
				k := v.first(j)
				for other := range v {
					if other != j && v[other][k] {
						v[other][k] = false
						changed = true
					}
				}
			}
		}
	}
	for j := range v {
		if v.rowSum(j) == 0 {
			return false
		}
	}
	return true
}

// Identify deduces the opcode to name ordering from the samples.
func Identify(l log.Logger, ops *device.Operations, samples []Sample) ([]string, error) {
	v, err := ValidityMatrix(ops, samples)
	if err != nil {
		return nil, err
	}
	l.Debug("Initial validity matrix", "matrix", "\n"+v.String())
	reduced, err := Reduce(l, v)
	if err != nil {
		return nil, fmt.Errorf("failed to reduce validity matrix: %w", err)
	}
	l.Debug("Reduced validity matrix", "matrix", "\n"+reduced.String())
	return reduced.Assignment(ops.Names())
}
