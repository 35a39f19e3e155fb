// chessrules is a text harness for the chess rules engine. It plays moves
// read from stdin against the legal move set or runs perft counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/perft"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := buildConfig()
	setupLogFile(cfg)
	detectTerminal(cfg, os.Stdin, os.Stdout)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to perft mode or the interactive session.
func run(ctx context.Context, cfg *config.Config, in io.Reader) error {
	if cfg.PerftDepth > 0 {
		return runPerft(ctx, cfg)
	}
	session, err := NewSession(cfg)
	if err != nil {
		return err
	}
	return session.Run(ctx, in)
}

func runPerft(ctx context.Context, cfg *config.Config) error {
	board, err := engine.NewBoardFromFEN(cfg.StartFEN)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := perft.Run(ctx, board, cfg.PerftDepth, perft.Options{
		Workers: cfg.Workers,
		Rules:   cfg.Rules,
	})
	if err != nil {
		return err
	}
	writePerft(cfg.OutputFile, res, cfg.Divide)
	cfg.Logf(1, "perft %d: %d nodes in %v with %d workers",
		cfg.PerftDepth, res.Nodes, time.Since(start).Round(time.Millisecond), cfg.Workers)
	return nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// detectTerminal turns colour off when stdout is not a terminal and the
// prompt off when stdin is not one.
func detectTerminal(cfg *config.Config, in, out *os.File) {
	fd := out.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		cfg.Output.Colour = false
	}
	if !term.IsTerminal(int(in.Fd())) {
		cfg.Output.Prompt = false
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `chessrules - chess move legality harness

Usage: chessrules [options]

Reads moves ("e2 e4", "e2e4", "e7e8q") and commands from stdin.

%s

Options:
`, helpText)
	flag.PrintDefaults()
}
