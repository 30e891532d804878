package cmd

import (
	"os"

	"github.com/urfave/cli/v2"
)

const envVarPrefix = "CHRONAL"

func prefixEnvVar(name string) []string {
	return []string{envVarPrefix + "_" + name}
}

var OutFilePerm = os.FileMode(0o755)

var (
	InputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "path of the input text, may be .gz or .zst compressed",
		TakesFile: true,
		Required:  true,
		EnvVars:   prefixEnvVar("INPUT"),
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "log level: trace, debug, info, warn or error",
		Value:   "info",
		EnvVars: prefixEnvVar("LOG_LEVEL"),
	}
	MaxStepsFlag = &cli.Uint64Flag{
		Name:    "max-steps",
		Usage:   "give up on a program after this many steps, 0 to run until it halts",
		EnvVars: prefixEnvVar("MAX_STEPS"),
	}
	InfoEveryFlag = &cli.Uint64Flag{
		Name:    "info-every",
		Usage:   "log progress every N steps, 0 to disable",
		Value:   100_000,
		EnvVars: prefixEnvVar("INFO_EVERY"),
	}
	Part2Flag = &cli.BoolFlag{
		Name:    "part2",
		Usage:   "also run the program with register 0 starting at 1",
		EnvVars: prefixEnvVar("PART2"),
	}
	SnapshotInFlag = &cli.PathFlag{
		Name:      "snapshot-in",
		Usage:     "resume the last part from a JSON snapshot",
		TakesFile: true,
		EnvVars:   prefixEnvVar("SNAPSHOT_IN"),
	}
	SnapshotOutFlag = &cli.PathFlag{
		Name:      "snapshot-out",
		Usage:     "write the last part's final (or interrupted) state to a JSON snapshot, - for stdout",
		TakesFile: true,
		EnvVars:   prefixEnvVar("SNAPSHOT_OUT"),
	}
	PProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "enable pprof cpu profiling",
	}
	NounFlag = &cli.Int64Flag{
		Name:  "noun",
		Usage: "value written to address 1 for part 1",
		Value: 12,
	}
	VerbFlag = &cli.Int64Flag{
		Name:  "verb",
		Usage: "value written to address 2 for part 1",
		Value: 2,
	}
	TargetFlag = &cli.Int64Flag{
		Name:  "target",
		Usage: "output searched for in part 2",
		Value: 19690720,
	}
	SearchMaxFlag = &cli.Int64Flag{
		Name:  "search-max",
		Usage: "nouns and verbs are searched in [0, search-max)",
		Value: 100,
	}
	WitnessInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "path of the JSON snapshot",
		TakesFile: true,
		Required:  true,
	}
	WitnessOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "path to write the witness JSON to, - for stdout",
		TakesFile: true,
	}
)
