package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/keydata/block"
	"github.com/wippyai/keydata/errors"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return errors.InvalidInput(errors.PhaseCLI, "missing command")
	}

	switch args[0] {
	case "create":
		return runCreate(args[1:], stdout)
	case "read":
		return runRead(args[1:])
	case "interactive", "-i":
		return runInteractive(args[1:])
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}

	printUsage(os.Stderr)
	return errors.NotFound(errors.PhaseCLI, "command", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `keydata - read and write key data

Usage:
  keydata create --key-id N [--valid-until N] [--access "ap,ap[@override]"]...
  keydata create --spec key.yaml [-o out.bin --binary] [--annotate]
  keydata read FILE
  keydata interactive [--integrity name]

Run "keydata create --help" for all create flags.
`)
}

// setupLogger attaches a development logger to the block package when
// verbose is set, so every emitted section is logged.
func setupLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	block.SetLogger(l)
	return l, nil
}

func runRead(args []string) error {
	if len(args) != 1 {
		return errors.InvalidInput(errors.PhaseCLI, "read expects exactly one INPUT argument")
	}
	return errors.Unsupported(errors.PhaseCLI, "decoding key data is not supported")
}
