package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/perft"
)

const helpText = `moves:    e2 e4 | e2e4 | e7e8q (promotion defaults to queen)
commands: moves, undo, redo, fen, board, status, perft N, help, quit`

// Session drives a move handler from text lines.
type Session struct {
	cfg     *config.Config
	handler *engine.Handler
	colours *palette
	out     io.Writer
	line    int
}

// NewSession loads the configured start position.
func NewSession(cfg *config.Config) (*Session, error) {
	board, err := engine.NewBoardFromFEN(cfg.StartFEN)
	if err != nil {
		return nil, err
	}
	gen := engine.NewGenerator(engine.WithRules(cfg.Rules), engine.WithHighlight(true))
	h := engine.NewHandler(board,
		engine.WithGenerator(gen),
		engine.WithLog(cfg.LogFile, cfg.Verbosity),
	)
	cfg.Logf(2, "start %s (strict castling %v, resolve checks %v)",
		cfg.StartFEN, cfg.Rules.StrictCastling, cfg.Rules.ResolveChecks)

	return &Session{
		cfg:     cfg,
		handler: h,
		colours: newPalette(cfg.Output.Colour),
		out:     cfg.OutputFile,
	}, nil
}

// Run reads lines until EOF or quit. Errors from individual lines are
// reported and the loop continues.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		if s.cfg.Output.Prompt {
			s.colours.info.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			s.colours.bad.Fprintf(s.out, "error: %v\n", err)
			s.cfg.Logf(1, "line %d: %v", s.line, err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// Execute runs one line. It returns true when the session should end.
func (s *Session) Execute(ctx context.Context, line string) (bool, error) {
	s.line++
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "moves":
		s.printMoves()
	case "undo":
		if err := s.handler.Undo(); err != nil {
			return false, err
		}
		s.colours.ok.Fprintln(s.out, "ok undo")
	case "redo":
		if err := s.handler.Redo(); err != nil {
			return false, err
		}
		s.colours.ok.Fprintln(s.out, "ok redo")
	case "fen":
		fmt.Fprintln(s.out, engine.BoardToFEN(s.handler.Board()))
	case "board":
		renderBoard(s.out, s.handler.Board(), s.handler.InCheck(), s.colours)
	case "status":
		s.printStatus()
	case "perft":
		return false, s.perft(ctx, fields)
	default:
		return false, s.move(line, fields)
	}
	return false, nil
}

func (s *Session) move(line string, fields []string) error {
	m, err := s.parseMove(fields)
	if err != nil {
		return err
	}
	if err := s.handler.Apply(m); err != nil {
		var me *errors.MoveError
		if errors.As(err, &me) {
			me.Input = strings.TrimSpace(line)
		}
		return err
	}

	history := s.handler.History()
	played := history[len(history)-1]
	s.colours.ok.Fprintf(s.out, "ok %s", played)
	if played.Flag != engine.FlagMove {
		fmt.Fprintf(s.out, " (%s)", played.Flag)
	}
	fmt.Fprintln(s.out)

	switch s.handler.Outcome() {
	case engine.Checkmate:
		s.colours.alert.Fprintf(s.out, "checkmate: %s wins\n", s.handler.Board().ToMove.Opposite())
	case engine.Stalemate:
		s.colours.alert.Fprintln(s.out, "stalemate")
	}
	if s.cfg.Output.ShowBoard {
		renderBoard(s.out, s.handler.Board(), s.handler.InCheck(), s.colours)
	}
	return nil
}

// parseMove accepts "e2 e4", "e2e4", "e7e8q" and "e7 e8 q".
func (s *Session) parseMove(fields []string) (engine.Move, error) {
	text := strings.Join(fields, "")
	if len(text) != 4 && len(text) != 5 {
		return engine.Move{}, &errors.ParseError{
			Err:      errors.ErrInvalidCommand,
			Source:   "input",
			Line:     s.line,
			Expected: "move or command",
			Got:      strconv.Quote(strings.Join(fields, " ")),
		}
	}

	from, err := chess.ParseLocation(text[:2])
	if err != nil {
		return engine.Move{}, s.squareError(1, text[:2], err)
	}
	to, err := chess.ParseLocation(text[2:4])
	if err != nil {
		return engine.Move{}, s.squareError(3, text[2:4], err)
	}

	promo := chess.NoKind
	if len(text) == 5 {
		promo = chess.KindFromLetter(text[4])
		if promo == chess.NoKind {
			return engine.Move{}, &errors.ParseError{
				Err:      errors.ErrInvalidCommand,
				Source:   "input",
				Line:     s.line,
				Column:   5,
				Expected: "promotion piece",
				Got:      strconv.Quote(text[4:]),
			}
		}
	}
	return engine.UserMove(from, to, promo), nil
}

func (s *Session) squareError(column int, got string, err error) error {
	return &errors.ParseError{
		Err:      err,
		Source:   "input",
		Line:     s.line,
		Column:   column,
		Expected: "square",
		Got:      strconv.Quote(got),
	}
}

func (s *Session) printMoves() {
	moves := s.handler.Moves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	sort.Strings(names)
	s.colours.info.Fprintf(s.out, "%d moves:", len(names))
	if len(names) > 0 {
		fmt.Fprintf(s.out, " %s", strings.Join(names, " "))
	}
	fmt.Fprintln(s.out)
}

func (s *Session) printStatus() {
	b := s.handler.Board()
	fmt.Fprintf(s.out, "to move: %s\n", b.ToMove)

	check := "no"
	switch {
	case s.handler.InDoubleCheck():
		check = "double"
	case s.handler.InCheck():
		check = "yes"
	}
	fmt.Fprintf(s.out, "check: %s\n", check)
	fmt.Fprintf(s.out, "outcome: %s\n", s.handler.Outcome())
	fmt.Fprintf(s.out, "moves: %d\n", len(s.handler.Moves()))
	fmt.Fprintf(s.out, "ply: %d\n", s.handler.Ply())

	draws := engine.AnalyzeDrawRules(s.handler)
	if !draws.Any() {
		return
	}
	var reasons []string
	switch {
	case draws.Has5FoldRepetition:
		reasons = append(reasons, "fivefold repetition")
	case draws.HasThreefoldRepetition:
		reasons = append(reasons, "threefold repetition")
	}
	if draws.HasInsufficientMaterial {
		reasons = append(reasons, "insufficient material")
	}
	s.colours.alert.Fprintf(s.out, "draw: %s\n", strings.Join(reasons, ", "))
}

func (s *Session) perft(ctx context.Context, fields []string) error {
	if len(fields) != 2 {
		return errors.Wrap(errors.ErrInvalidCommand, "usage: perft N")
	}
	depth, err := strconv.Atoi(fields[1])
	if err != nil || depth < 1 {
		return errors.Wrapf(errors.ErrInvalidCommand, "perft depth %q", fields[1])
	}

	res, err := perft.Run(ctx, s.handler.Board(), depth, perft.Options{
		Workers: s.cfg.Workers,
		Rules:   s.cfg.Rules,
	})
	if err != nil {
		return err
	}
	writePerft(s.out, res, s.cfg.Divide)
	return nil
}

// writePerft prints the optional divide lines followed by the total.
func writePerft(w io.Writer, res perft.Result, divide bool) {
	if divide {
		for _, e := range res.Divide {
			fmt.Fprintf(w, "%s: %d\n", e.Move, e.Nodes)
		}
	}
	fmt.Fprintf(w, "nodes: %d\n", res.Nodes)
}
