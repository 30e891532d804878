package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/ethereum/go-ethereum/log"
)

func Logger(w io.Writer, lvl slog.Level) log.Logger {
	return log.NewLogger(log.LogfmtHandlerWithLevel(w, lvl))
}

// ParseLevel maps a level name, as accepted by --log.level, to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// timed runs fn and logs how long it took, and whether it failed.
func timed[X any](l log.Logger, name string, fn func() (X, error)) (X, error) {
	start := time.Now()
	out, err := fn()
	if err != nil {
		l.Debug(name+" failed", "duration", time.Since(start))
	} else {
		l.Debug(name+" completed", "duration", time.Since(start))
	}
	return out, err
}
