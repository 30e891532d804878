package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/chronal-vm/chronal/chronal/device"
)

func contextLogger(ctx *cli.Context) (log.Logger, error) {
	lvl, err := ParseLevel(ctx.String(LogLevelFlag.Name))
	if err != nil {
		return nil, err
	}
	return Logger(ctx.App.ErrWriter, lvl), nil
}

// progress logs the program state every n steps.
func progress(l log.Logger, n uint64, startStep uint64) func(p *device.Program) {
	if n == 0 {
		return nil
	}
	start := time.Now()
	return func(p *device.Program) {
		if p.Steps()%n != 0 {
			return
		}
		l.Info("processing",
			"step", p.Steps(),
			"pointer", p.Pointer(),
			"state", p.State(),
			"ips", float64(p.Steps()-startStep)/time.Since(start).Seconds(),
		)
	}
}

// execute runs p, optionally resuming from and saving to a snapshot.
// The snapshot is written even if the program did not halt within the step budget.
func execute(ctx *cli.Context, l log.Logger, p *device.Program, snapshotIn, snapshotOut string) error {
	if snapshotIn != "" {
		snap, err := jsonutil.LoadJSON[device.Snapshot](snapshotIn)
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if err := p.Restore(snap); err != nil {
			return fmt.Errorf("failed to restore snapshot %q: %w", snapshotIn, err)
		}
		l.Info("Resumed from snapshot", "step", p.Steps(), "pointer", p.Pointer(), "state", p.State())
	}
	p.OnStep = progress(l, ctx.Uint64(InfoEveryFlag.Name), p.Steps())
	runErr := p.RunLimit(ctx.Context, ctx.Uint64(MaxStepsFlag.Name))
	if snapshotOut != "" && (runErr == nil || errors.Is(runErr, device.ErrNotHalted)) {
		if err := jsonutil.WriteJSON(snapshotOut, p.Snapshot(), OutFilePerm); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	return runErr
}

func Run(ctx *cli.Context) error {
	if ctx.Bool(PProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}
	l, err := contextLogger(ctx)
	if err != nil {
		return err
	}
	text, err := ReadInput(ctx.Path(InputFlag.Name))
	if err != nil {
		return err
	}
	src, err := device.ParseProgram(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("failed to parse program: %w", err)
	}
	if src.IPRegister == device.NoPointerRegister {
		l.Warn("Program has no #ip header, the pointer is not mapped to a register")
	}
	ops := device.NewOperations()
	part2 := ctx.Bool(Part2Flag.Name)

	runPart := func(name string, register0 int64, last bool) (int64, error) {
		initial := device.NewState(6)
		initial[0] = register0
		p, err := device.NewProgram(ops, src.Instructions, src.IPRegister, initial)
		if err != nil {
			return 0, err
		}
		p.WithLogger(l.New("part", name))
		var in, out string
		if last {
			in, out = ctx.Path(SnapshotInFlag.Name), ctx.Path(SnapshotOutFlag.Name)
		}
		if err := execute(ctx, l, p, in, out); err != nil {
			return 0, fmt.Errorf("part %s: %w", name, err)
		}
		return p.State()[0], nil
	}

	answer, err := timed(l, "Part 1", func() (int64, error) { return runPart("1", 0, !part2) })
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "Part 1 answer: %d\n", answer)
	if !part2 {
		return nil
	}
	answer, err = timed(l, "Part 2", func() (int64, error) { return runPart("2", 1, true) })
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "Part 2 answer: %d\n", answer)
	return nil
}

var RunCommand = &cli.Command{
	Name:        "run",
	Usage:       "Run a pointer-mapped device program",
	Description: "Run a device program with an optional #ip header and print register 0 once it halts. See flags to bound the run or snapshot it.",
	Action:      Run,
	Flags: []cli.Flag{
		InputFlag,
		LogLevelFlag,
		MaxStepsFlag,
		InfoEveryFlag,
		Part2Flag,
		SnapshotInFlag,
		SnapshotOutFlag,
		PProfCPUFlag,
	},
}
