package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/Iron-Ham/vslaunch/internal/cmd"
	"github.com/Iron-Ham/vslaunch/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n%s", r, debug.Stack())
			code = errors.ExitFailure
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}
