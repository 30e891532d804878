package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/chronal-vm/chronal/chronal/device"
	"github.com/chronal-vm/chronal/chronal/identify"
)

// ambiguousCandidates is the candidate count from which a sample counts as ambiguous.
const ambiguousCandidates = 3

func Identify(ctx *cli.Context) error {
	l, err := contextLogger(ctx)
	if err != nil {
		return err
	}
	text, err := ReadInput(ctx.Path(InputFlag.Name))
	if err != nil {
		return err
	}
	samples, program, err := identify.ParseSamples(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("failed to parse samples: %w", err)
	}
	l.Info("Loaded samples", "samples", len(samples), "instructions", len(program))
	ops := device.NewOperations()

	count, err := timed(l, "Part 1", func() (int, error) {
		return identify.CountAmbiguous(ops, samples, ambiguousCandidates)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "Part 1 answer: %d\n", count)

	answer, err := timed(l, "Part 2", func() (int64, error) {
		ordering, err := identify.Identify(l, ops, samples)
		if err != nil {
			return 0, err
		}
		l.Debug("Identified opcodes", "opnames", strings.Join(ordering, ", "))
		if err := ops.Remap(ordering); err != nil {
			return 0, err
		}
		p, err := device.NewProgram(ops, program, device.NoPointerRegister, device.NewState(4))
		if err != nil {
			return 0, err
		}
		p.WithLogger(l)
		if err := p.RunLimit(ctx.Context, ctx.Uint64(MaxStepsFlag.Name)); err != nil {
			return 0, err
		}
		return p.State()[0], nil
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "Part 2 answer: %d\n", answer)
	return nil
}

var IdentifyCommand = &cli.Command{
	Name:        "identify",
	Usage:       "Identify numeric opcodes from before/after samples",
	Description: "Count the samples matching three or more operations, then deduce the opcode mapping and run the numeric program that follows the samples.",
	Action:      Identify,
	Flags: []cli.Flag{
		InputFlag,
		LogLevelFlag,
		MaxStepsFlag,
	},
}
