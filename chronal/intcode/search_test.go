package intcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// mem[0] = mem[noun] * mem[verb]
var productProgram = Memory{OpMul, 0, 0, 0, OpHalt, 3, 5, 7, 11, 13}

func TestSearchNounVerb(t *testing.T) {
	noun, verb, err := SearchNounVerb(context.Background(), productProgram, 7*13, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(7), noun)
	require.Equal(t, int64(9), verb)

	// 3*5 matches as (5, 6) and (6, 5), but noun 2 reads the verb cell: 5*mem[5]
	noun, verb, err = SearchNounVerb(context.Background(), productProgram, 15, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), noun)
	require.Equal(t, int64(5), verb)
}

func TestSearchNounVerbNoSolution(t *testing.T) {
	_, _, err := SearchNounVerb(context.Background(), productProgram, 17, 10, 0)
	require.ErrorIs(t, err, ErrNoSolution)
}

func TestSearchNounVerbSkipsBrokenInputs(t *testing.T) {
	// nouns past the end of memory fault, they must not abort the search
	noun, verb, err := SearchNounVerb(context.Background(), productProgram, 11*11, 20, 0)
	require.NoError(t, err)
	require.Equal(t, int64(8), noun)
	require.Equal(t, int64(8), verb)
}

func TestSearchNounVerbCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := SearchNounVerb(ctx, productProgram, 15, 10, 0)
	require.ErrorIs(t, err, context.Canceled)
}
