package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chronal-vm/chronal/chronal/intcode"
)

func Intcode(ctx *cli.Context) error {
	l, err := contextLogger(ctx)
	if err != nil {
		return err
	}
	text, err := ReadInput(ctx.Path(InputFlag.Name))
	if err != nil {
		return err
	}
	mem, err := intcode.ParseMemory(text)
	if err != nil {
		return fmt.Errorf("failed to parse memory image: %w", err)
	}
	maxSteps := ctx.Uint64(MaxStepsFlag.Name)

	output, err := timed(l, "Part 1", func() (int64, error) {
		patched, err := mem.WithInputs(ctx.Int64(NounFlag.Name), ctx.Int64(VerbFlag.Name))
		if err != nil {
			return 0, err
		}
		m := intcode.NewMachine(patched).WithLogger(l)
		if err := m.RunLimit(ctx.Context, maxSteps); err != nil {
			return 0, fmt.Errorf("failed at step %d (head %d): %w", m.Steps, m.Head, err)
		}
		return m.Output(), nil
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "Part 1 answer: %d\n", output)

	answer, err := timed(l, "Part 2", func() (int64, error) {
		noun, verb, err := intcode.SearchNounVerb(ctx.Context, mem, ctx.Int64(TargetFlag.Name), ctx.Int64(SearchMaxFlag.Name), maxSteps)
		if err != nil {
			return 0, err
		}
		l.Debug("Found inputs", "noun", noun, "verb", verb)
		return 100*noun + verb, nil
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "Part 2 answer: %d\n", answer)
	return nil
}

var IntcodeCommand = &cli.Command{
	Name:        "intcode",
	Usage:       "Run an Intcode memory image",
	Description: "Run the comma-separated memory image with the given noun and verb, then search the noun and verb producing the target output.",
	Action:      Intcode,
	Flags: []cli.Flag{
		InputFlag,
		LogLevelFlag,
		MaxStepsFlag,
		NounFlag,
		VerbFlag,
		TargetFlag,
		SearchMaxFlag,
	},
}
