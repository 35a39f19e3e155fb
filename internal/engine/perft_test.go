package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// Published node counts for the standard perft suite.
var perftPositions = []struct {
	name   string
	fen    string
	counts []uint64 // indexed by depth-1
}{
	{"initial", InitialFEN, []uint64{20, 400, 8902}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039}},
	{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
	{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467}},
	{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486}},
}

func TestPerft(t *testing.T) {
	for _, tt := range perftPositions {
		for i, want := range tt.counts {
			depth := i + 1
			t.Run(tt.name, func(t *testing.T) {
				board := mustBoard(t, tt.fen)
				before := BoardToFEN(board)

				if got := Perft(board, depth, config.DefaultRules()); got != want {
					t.Errorf("Perft(depth %d) = %d; want %d", depth, got, want)
				}
				if after := BoardToFEN(board); after != before {
					t.Errorf("board changed by perft: %q -> %q", before, after)
				}
			})
		}
	}
}

func TestPerft_Deep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	tests := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"initial", InitialFEN, 4, 197281},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
		{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 3, 62379},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Perft(mustBoard(t, tt.fen), tt.depth, config.DefaultRules()); got != tt.want {
				t.Errorf("Perft(depth %d) = %d; want %d", tt.depth, got, tt.want)
			}
		})
	}
}

func TestPerft_DepthZero(t *testing.T) {
	if got := Perft(NewInitialBoard(), 0, config.DefaultRules()); got != 1 {
		t.Errorf("Perft(0) = %d; want 1", got)
	}
	if got := Divide(NewInitialBoard(), 0, config.DefaultRules()); got != nil {
		t.Errorf("Divide(0) = %v; want nil", got)
	}
}

func TestDivide(t *testing.T) {
	board := mustBoard(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	entries := Divide(board, 2, config.DefaultRules())

	if len(entries) != 14 {
		t.Fatalf("len(Divide) = %d; want 14", len(entries))
	}
	var total uint64
	for i, e := range entries {
		total += e.Nodes
		if i > 0 && entries[i-1].Move >= e.Move {
			t.Errorf("entries not sorted: %q before %q", entries[i-1].Move, e.Move)
		}
	}
	if total != 191 {
		t.Errorf("sum of Divide = %d; want 191", total)
	}

	// Ka4 leaves the f4 pawn pinned against the black king.
	want := DivideEntry{Move: "a5a4", Nodes: 15}
	if diff := cmp.Diff(want, entries[0]); diff != "" {
		t.Errorf("first entry mismatch (-want +got):\n%s", diff)
	}
}
