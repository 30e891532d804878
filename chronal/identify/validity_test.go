package identify

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/chronal-vm/chronal/chronal/device"
)

func matrix(rows ...string) Validity {
	v := make(Validity, len(rows))
	for j, row := range rows {
		v[j] = make([]bool, len(row))
		for k, c := range row {
			v[j][k] = c == '1'
		}
	}
	return v
}

func TestReduce(t *testing.T) {
	l := log.Root()
	t.Run("propagation only", func(t *testing.T) {
		v := matrix("110", "100", "111")
		res, err := Reduce(l, v)
		require.NoError(t, err)
		require.Equal(t, matrix("010", "100", "001"), res)
		require.Equal(t, matrix("110", "100", "111"), v, "input must not be modified")
	})
	t.Run("unconstrained", func(t *testing.T) {
		res, err := Reduce(l, NewValidity(4))
		require.NoError(t, err)
		require.True(t, res.IsPermutation())
	})
	t.Run("backtracking", func(t *testing.T) {
		res, err := Reduce(l, matrix("111", "110", "110"))
		require.NoError(t, err)
		require.Equal(t, matrix("001", "100", "010"), res)
	})
	t.Run("no solution", func(t *testing.T) {
		_, err := Reduce(l, matrix("100", "100", "011"))
		require.ErrorIs(t, err, ErrNoSolution)
		_, err = Reduce(l, matrix("110", "110", "110"))
		require.ErrorIs(t, err, ErrNoSolution)
		_, err = Reduce(l, matrix("000", "111", "111"))
		require.ErrorIs(t, err, ErrNoSolution)
	})
	t.Run("not square", func(t *testing.T) {
		_, err := Reduce(l, matrix("11", "11", "11"))
		require.Error(t, err)
	})
}

func TestAssignment(t *testing.T) {
	names := []string{"a", "b", "c"}
	out, err := matrix("001", "100", "010").Assignment(names)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, out)
	_, err = matrix("011", "100", "010").Assignment(names)
	require.ErrorIs(t, err, ErrNoSolution)
}

const exampleSamples = `Before: [3, 2, 1, 1]
9 2 1 2
After:  [3, 2, 2, 1]

Before: [0, 1, 2, 3]
4 0 1 3
After:  [0, 1, 2, 1]



9 1 1 0
4 0 1 2
`

func TestParseSamples(t *testing.T) {
	samples, program, err := ParseSamples(strings.NewReader(exampleSamples))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	require.Equal(t, device.State{3, 2, 1, 1}, samples[0].Before)
	require.Equal(t, device.Instruction{Opcode: 9, A: 2, B: 1, C: 2}, samples[0].Instruction)
	require.Equal(t, device.State{3, 2, 2, 1}, samples[0].After)
	require.Len(t, program, 2)
	require.Equal(t, device.Instruction{Opcode: 4, A: 0, B: 1, C: 2}, program[1])

	ops := device.NewOperations()
	candidates, err := samples[0].Candidates(ops)
	require.NoError(t, err)
	require.Equal(t, []string{"addi", "mulr", "seti"}, candidates)

	n, err := CountAmbiguous(ops, samples, 3)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestParseSamplesErrors(t *testing.T) {
	_, _, err := ParseSamples(strings.NewReader("Before: [1, 2, 3, 4]\n1 2 3 4\n"))
	require.ErrorContains(t, err, "truncated sample")
	_, _, err = ParseSamples(strings.NewReader("Before: [1, 2, 3, 4\n1 2 3 4\nAfter: [1, 2, 3, 4]\n"))
	require.ErrorContains(t, err, "malformed register list")
	_, _, err = ParseSamples(strings.NewReader("Before: [1, 2, 3, 4]\n1 2 3 4\nBefore: [1, 2, 3, 4]\n"))
	require.ErrorContains(t, err, "After:")
}

// generateSamples executes random instructions with a secret opcode ordering.
func generateSamples(t *testing.T, secret []string, perOpcode int) []Sample {
	rng := rand.New(rand.NewSource(1337))
	ops := device.NewOperations()
	require.NoError(t, ops.Remap(secret))
	var samples []Sample
	for opcode := range secret {
		for i := 0; i < perOpcode; i++ {
			before := device.State{rng.Int63n(16), rng.Int63n(16), rng.Int63n(16), rng.Int63n(16)}
			ins := device.Instruction{Opcode: opcode, A: rng.Int63n(4), B: rng.Int63n(4), C: rng.Int63n(4)}
			after := before.Copy()
			require.NoError(t, ops.Apply(ins, after))
			samples = append(samples, Sample{Before: before, Instruction: ins, After: after})
		}
	}
	rng.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })
	return samples
}

func TestIdentify(t *testing.T) {
	secret := device.CanonicalNames()
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(secret), func(i, j int) { secret[i], secret[j] = secret[j], secret[i] })

	samples := generateSamples(t, secret, 50)
	ops := device.NewOperations()
	ordering, err := Identify(log.Root(), ops, samples)
	require.NoError(t, err)
	require.Equal(t, secret, ordering)

	// every sample agrees with the identified ordering
	require.NoError(t, ops.Remap(ordering))
	for _, s := range samples {
		after := s.Before.Copy()
		require.NoError(t, ops.Apply(s.Instruction, after))
		require.Equal(t, s.After, after)
	}
}

func TestValidityMatrixUnknownOpcode(t *testing.T) {
	samples := []Sample{{
		Before:      device.State{0, 0, 0, 0},
		Instruction: device.Instruction{Opcode: 16},
		After:       device.State{0, 0, 0, 0},
	}}
	_, err := ValidityMatrix(device.NewOperations(), samples)
	require.ErrorIs(t, err, device.ErrUnknownOp)
}
