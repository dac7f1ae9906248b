// SPDX-License-Identifier: MIT
// Package: spotsynth/cmd/spotsynth
//
// main.go — entry point. Exit codes: 0 ok, 2 configuration or usage error,
// 1 generation or I/O failure, 130 interrupted.

// Command spotsynth generates synthetic spatial-transcriptomics datasets from
// a single-cell reference table.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/katalvlaran/spotsynth/internal/config"
	"github.com/katalvlaran/spotsynth/synth"
)

const logPrefix = "[SPOTSYNTH] "

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	exitInterrupted = 130
)

func main() {
	log.SetPrefix(logPrefix)
	log.SetFlags(log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == exitOK {
		code = exitInterrupted
	}
	stop()
	os.Exit(code)
}

// run executes the command tree and maps the outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "spotsynth: %v\n", err)
		return exitCode(err)
	}

	return exitOK
}

// usageError marks command-line mistakes that cobra reports as plain errors.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ue usageError
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &ue),
		errors.Is(err, config.ErrMissing),
		errors.Is(err, synth.ErrConfiguration),
		strings.HasPrefix(err.Error(), "unknown command"):
		return exitUsage
	default:
		return exitFailure
	}
}

// newLogger returns a logger on w, or a silent one when quiet is set.
func newLogger(w io.Writer, quiet bool) *log.Logger {
	if quiet {
		w = io.Discard
	}

	return log.New(w, logPrefix, log.LstdFlags)
}
