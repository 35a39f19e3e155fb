// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Position and rules
	startFEN       = flag.String("fen", config.InitialFEN, "Starting position in FEN")
	legacyCastling = flag.Bool("legacy-castling", false, "Only test the king's destination when castling")
	legacyChecks   = flag.Bool("legacy-checks", false, "Don't restrict non-king moves to resolving a single check")

	// Perft mode
	perftDepth = flag.Int("perft", 0, "Count leaf nodes to depth N and exit")
	divide     = flag.Bool("divide", false, "With -perft, print the count below each root move")
	workers    = flag.Int("workers", runtime.NumCPU(), "Number of perft worker goroutines")

	// Output
	noColour  = flag.Bool("nocolor", false, "Disable coloured output")
	showBoard = flag.Bool("showboard", false, "Print the board after every accepted move")
	logFile   = flag.String("l", "", "Write diagnostics to this file")
	verbosity = flag.Int("v", 1, "Verbosity: 0 quiet, 1 summary, 2 move commentary")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// buildConfig turns the parsed flags into a Config. Colour and prompt
// detection are left to the caller, which knows the attached streams.
func buildConfig() *config.Config {
	return config.NewConfigBuilder().
		WithStartFEN(*startFEN).
		WithStrictCastling(!*legacyCastling).
		WithResolveChecks(!*legacyChecks).
		WithPerft(*perftDepth, *divide).
		WithWorkers(*workers).
		WithColour(!*noColour).
		WithShowBoard(*showBoard).
		WithVerbosity(*verbosity).
		Build()
}
