package intcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	cases := []struct {
		mem, want Memory
	}{
		{
			Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50},
			Memory{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50},
		},
		{Memory{1, 0, 0, 0, 99}, Memory{2, 0, 0, 0, 99}},
		{Memory{2, 3, 0, 3, 99}, Memory{2, 3, 0, 6, 99}},
		{Memory{2, 4, 4, 5, 99, 0}, Memory{2, 4, 4, 5, 99, 9801}},
		{Memory{1, 1, 1, 4, 99, 5, 6, 0, 99}, Memory{30, 1, 1, 4, 2, 5, 6, 0, 99}},
	}
	for _, tc := range cases {
		m := NewMachine(tc.mem.Copy())
		require.NoError(t, m.Run(context.Background()))
		require.True(t, m.Halted())
		require.Equal(t, tc.want, m.Memory)
	}
}

func TestStepStatus(t *testing.T) {
	m := NewMachine(Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	status, err := m.Step()
	require.NoError(t, err)
	require.Equal(t, Running, status)
	require.Equal(t, int64(70), m.Memory[3])
	require.Equal(t, int64(4), m.Head)

	status, err = m.Step()
	require.NoError(t, err)
	require.Equal(t, Running, status)
	require.Equal(t, int64(3500), m.Output())

	status, err = m.Step()
	require.NoError(t, err)
	require.Equal(t, Halted, status)
	require.Equal(t, int64(8), m.Head)
	require.Equal(t, uint64(2), m.Steps)

	_, err = m.Step()
	require.ErrorIs(t, err, ErrHalted)
}

func TestStepErrors(t *testing.T) {
	_, err := NewMachine(Memory{3, 0, 0, 0}).Step()
	require.ErrorIs(t, err, ErrUnknownOpcode)
	_, err = NewMachine(Memory{1, 0, 0, 9}).Step()
	require.ErrorIs(t, err, ErrAddressBounds)
	_, err = NewMachine(Memory{1, 0}).Step()
	require.ErrorIs(t, err, ErrAddressBounds)
	// running off the end of memory
	err = NewMachine(Memory{1, 0, 0, 0}).Run(context.Background())
	require.ErrorIs(t, err, ErrAddressBounds)
}

func TestRunLimit(t *testing.T) {
	// a long run of adds, halting only at the very end
	mem := make(Memory, 4*1000+1)
	for i := 0; i < 1000; i++ {
		copy(mem[4*i:], Memory{OpAdd, 0, 0, 3})
	}
	mem[4*1000] = OpHalt
	m := NewMachine(mem.Copy())
	err := m.RunLimit(context.Background(), 10)
	require.ErrorIs(t, err, ErrNotHalted)
	require.Equal(t, uint64(10), m.Steps)
	require.False(t, m.Halted())

	m = NewMachine(mem.Copy())
	require.NoError(t, m.RunLimit(context.Background(), 1000+1))
	require.True(t, m.Halted())
}

func TestParseMemory(t *testing.T) {
	mem, err := ParseMemory("1,9,10,3,\n2,3,11,0,99,30,40,50\n")
	require.NoError(t, err)
	require.Equal(t, Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, mem)
	_, err = ParseMemory("1,2,x")
	require.ErrorContains(t, err, "memory cell 2")
}

func TestWithInputs(t *testing.T) {
	mem := Memory{1, 0, 0, 0, 99}
	patched, err := mem.WithInputs(12, 2)
	require.NoError(t, err)
	require.Equal(t, Memory{1, 12, 2, 0, 99}, patched)
	require.Equal(t, Memory{1, 0, 0, 0, 99}, mem)
	_, err = Memory{99}.WithInputs(1, 2)
	require.ErrorIs(t, err, ErrAddressBounds)
}
