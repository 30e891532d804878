package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/chronal-vm/chronal/chronal/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "chronal"
	app.Usage = "Register machine toolkit"
	app.Description = "Run, identify and snapshot programs for the chronal device and Intcode machines"
	app.Commands = []*cli.Command{
		cmd.RunCommand,
		cmd.IdentifyCommand,
		cmd.IntcodeCommand,
		cmd.WitnessCommand,
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			fmt.Println("\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v", err)
			os.Exit(1)
		}
	}
}
