package intcode

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var ErrNoSolution = errors.New("no valid noun and verb found")

// SearchNounVerb finds the noun and verb in [0, maxValue) that make mem output target.
// Every noun is searched in its own goroutine, on its own memory copies. Among several
// matches the lowest noun, then lowest verb, wins. maxSteps bounds each attempt (0 for no bound).
func SearchNounVerb(ctx context.Context, mem Memory, target int64, maxValue int64, maxSteps uint64) (noun, verb int64, err error) {
	if maxValue <= 0 {
		return 0, 0, ErrNoSolution
	}
	found := make([]int64, maxValue)
	for i := range found {
		found[i] = -1
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for n := int64(0); n < maxValue; n++ {
		n := n
		g.Go(func() error {
			for v := int64(0); v < maxValue; v++ {
				attempt, err := mem.WithInputs(n, v)
				if err != nil {
					return err
				}
				m := NewMachine(attempt)
				if err := m.RunLimit(gCtx, maxSteps); err != nil {
					if errors.Is(err, ErrUnknownOpcode) || errors.Is(err, ErrAddressBounds) || errors.Is(err, ErrNotHalted) {
						// inputs can redirect the program; treat as a miss
						continue
					}
					return fmt.Errorf("noun %d verb %d: %w", n, v, err)
				}
				if m.Output() == target {
					found[n] = v
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	for n, v := range found {
		if v >= 0 {
			return int64(n), v, nil
		}
	}
	return 0, 0, ErrNoSolution
}
