package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// TestHasInsufficientMaterial tests various material configurations
func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool // true = insufficient material
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same colour", "k4b2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+Q vs K", "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"K+B vs K+B opposite colour", "k4b2/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+B+B vs K", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", false},
		{"K+N vs K+N", "4k1n1/8/8/8/8/8/8/4KN2 w - - 0 1", false},
		{"standard starting position", "", false}, // empty fen means use initial board
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var board *chess.Board
			if tt.fen == "" {
				board = NewInitialBoard()
			} else {
				var err error
				board, err = NewBoardFromFEN(tt.fen)
				if err != nil {
					t.Fatalf("NewBoardFromFEN(%q) error: %v", tt.fen, err)
				}
			}

			got := HasInsufficientMaterial(board)
			if got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestAnalyzeDrawRules_Fresh tests a position with no moves played
func TestAnalyzeDrawRules_Fresh(t *testing.T) {
	h := NewHandler(NewInitialBoard())

	result := AnalyzeDrawRules(h)
	if result.Any() {
		t.Errorf("AnalyzeDrawRules() = %+v, want no draw", result)
	}
}

// TestAnalyzeDrawRules_Repetition shuffles knights until the start position
// has been seen five times.
func TestAnalyzeDrawRules_Repetition(t *testing.T) {
	h := NewHandler(NewInitialBoard())
	shuffle := [][2]string{{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"}}

	for cycle := 1; cycle <= 4; cycle++ {
		for _, mv := range shuffle {
			if !h.Move(chess.MustParseLocation(mv[0]), chess.MustParseLocation(mv[1])) {
				t.Fatalf("cycle %d: move %s-%s rejected", cycle, mv[0], mv[1])
			}
		}
		result := AnalyzeDrawRules(h)
		if got, want := h.Repetitions(), cycle+1; got != want {
			t.Fatalf("cycle %d: Repetitions() = %d, want %d", cycle, got, want)
		}
		if result.HasThreefoldRepetition != (cycle+1 >= 3) {
			t.Errorf("cycle %d: HasThreefoldRepetition = %v", cycle, result.HasThreefoldRepetition)
		}
		if result.Has5FoldRepetition != (cycle+1 >= 5) {
			t.Errorf("cycle %d: Has5FoldRepetition = %v", cycle, result.Has5FoldRepetition)
		}
	}

	if err := h.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if AnalyzeDrawRules(h).Has5FoldRepetition {
		t.Error("undo did not drop the repeated position from the history")
	}
}

// TestAnalyzeDrawRules_BareKings tests insufficient material via the handler
func TestAnalyzeDrawRules_BareKings(t *testing.T) {
	board, err := NewBoardFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("NewBoardFromFEN() error = %v", err)
	}
	if !AnalyzeDrawRules(NewHandler(board)).HasInsufficientMaterial {
		t.Error("HasInsufficientMaterial = false for bare kings")
	}
}
