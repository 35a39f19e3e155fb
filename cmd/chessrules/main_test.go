package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestRun_PerftMode(t *testing.T) {
	var out, log bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithStartFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1").
		WithPerft(2, true).
		WithWorkers(3).
		WithOutput(&out).
		WithLog(&log).
		Build()

	testutil.AssertNoError(t, run(context.Background(), cfg, strings.NewReader("")))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	testutil.AssertEqual(t, len(lines), 15, "14 divide lines and the total")
	testutil.AssertEqual(t, lines[0], "a5a4: 15")
	testutil.AssertEqual(t, lines[len(lines)-1], "nodes: 191")
	testutil.AssertContains(t, log.String(), "perft 2: 191 nodes")
}

func TestRun_PerftBadFEN(t *testing.T) {
	cfg := config.NewConfigBuilder().WithStartFEN("8/8 w").WithPerft(1, false).Build()
	err := run(context.Background(), cfg, strings.NewReader(""))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestRun_Session(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithColour(false).
		WithPrompt(false).
		WithOutput(&out).
		WithLog(&bytes.Buffer{}).
		Build()

	err := run(context.Background(), cfg, strings.NewReader("e2e4\ne7e5\nfen\n"))
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out.String(),
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 1")
}

func TestRun_SessionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.NewConfigBuilder().
		WithColour(false).
		WithPrompt(false).
		WithOutput(&bytes.Buffer{}).
		Build()

	err := run(ctx, cfg, strings.NewReader("e2e4\ne7e5\n"))
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestDetectTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	defer r.Close()
	defer w.Close()

	cfg := config.NewConfig()
	detectTerminal(cfg, r, w)
	testutil.AssertFalse(t, cfg.Output.Colour, "colour on a pipe")
	testutil.AssertFalse(t, cfg.Output.Prompt, "prompt on a pipe")
}
