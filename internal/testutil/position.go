package testutil

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// MustBoard loads a FEN, failing the test on error.
func MustBoard(t testing.TB, fen string) *chess.Board {
	t.Helper()
	b, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
	}
	return b
}

// ParseMove turns coordinate text such as "e2e4" or "a7a8n" into a move
// request.
func ParseMove(t testing.TB, text string) engine.Move {
	t.Helper()
	if len(text) != 4 && len(text) != 5 {
		t.Fatalf("bad move text %q", text)
	}
	from, err := chess.ParseLocation(text[:2])
	if err != nil {
		t.Fatalf("bad move text %q: %v", text, err)
	}
	to, err := chess.ParseLocation(text[2:4])
	if err != nil {
		t.Fatalf("bad move text %q: %v", text, err)
	}
	promo := chess.NoKind
	if len(text) == 5 {
		if promo = chess.KindFromLetter(text[4]); promo == chess.NoKind {
			t.Fatalf("bad promotion in %q", text)
		}
	}
	return engine.UserMove(from, to, promo)
}

// MustPlay starts a handler on fen and plays the given moves, failing the
// test on the first rejected one.
func MustPlay(t testing.TB, fen string, moves ...string) *engine.Handler {
	t.Helper()
	h := engine.NewHandler(MustBoard(t, fen))
	for _, text := range moves {
		if err := h.Apply(ParseMove(t, text)); err != nil {
			t.Fatalf("Apply(%s) error = %v\n%s", text, err, h.Board())
		}
	}
	return h
}

// MoveStrings renders moves in coordinate notation.
func MoveStrings(moves []engine.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
