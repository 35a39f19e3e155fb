// Package config provides configuration for the chess rules engine and its harness.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Config holds all program configuration.
type Config struct {
	// Rule toggles for move generation
	Rules Rules

	// Output formatting
	Output *OutputConfig

	// Position to start from
	StartFEN string

	// Perft mode: depth > 0 runs perft instead of the interactive loop
	PerftDepth int
	Divide     bool
	Workers    int

	// 0=nothing, 1=summary, 2=running commentary
	Verbosity int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Rules:      DefaultRules(),
		Output:     NewOutputConfig(),
		StartFEN:   InitialFEN,
		Workers:    runtime.NumCPU(),
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.PerftDepth < 0 {
		return fmt.Errorf("perft depth %d is negative: %w", c.PerftDepth, errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers = %d, need at least 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.StartFEN == "" {
		return fmt.Errorf("empty start position: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// Logf writes a diagnostic line to the log file when verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}
