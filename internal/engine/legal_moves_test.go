package engine

import (
	"sort"
	"testing"

	refchess "github.com/corentings/chess/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
)

// moveStrings returns the coordinate forms of moves, sorted.
func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func generate(t *testing.T, fen string, rules config.Rules) (*Generator, []Move) {
	t.Helper()
	g := NewGenerator(WithRules(rules))
	return g, g.Generate(mustBoard(t, fen))
}

func TestGenerate_StartingPosition(t *testing.T) {
	g, moves := generate(t, InitialFEN, config.DefaultRules())

	if len(moves) != 20 {
		t.Fatalf("len(moves) = %d; want 20: %v", len(moves), moveStrings(moves))
	}
	if g.InCheck() || g.InDoubleCheck() {
		t.Error("start position reported as check")
	}
	if g.KingMoveCount() != 0 {
		t.Errorf("KingMoveCount() = %d; want 0", g.KingMoveCount())
	}
	if len(g.Pins()) != 0 {
		t.Errorf("Pins() = %v; want none", g.Pins())
	}

	var pawn, knight int
	for _, m := range moves {
		switch m.From.Rank {
		case 2:
			pawn++
		case 1:
			knight++
		}
	}
	if pawn != 16 || knight != 4 {
		t.Errorf("pawn/knight moves = %d/%d; want 16/4", pawn, knight)
	}
}

func TestGenerate_Counts(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		rules config.Rules
		want  []string
	}{
		{
			name:  "double check leaves only king moves",
			fen:   "7k/R3r3/8/8/8/3n4/8/4K3 w - - 0 1",
			rules: config.DefaultRules(),
			want:  []string{"e1d1", "e1d2", "e1f1"},
		},
		{
			name:  "bishop pin freezes rook",
			fen:   "4k3/8/8/8/1b6/8/3R4/4K3 w - - 0 1",
			rules: config.DefaultRules(),
			want:  []string{"e1d1", "e1e2", "e1f1", "e1f2"},
		},
		{
			name:  "pinned pawn may capture its pinner",
			fen:   "4k3/8/8/8/8/2b5/3P4/4K3 w - - 0 1",
			rules: config.DefaultRules(),
			want:  []string{"d2c3", "e1d1", "e1e2", "e1f1", "e1f2"},
		},
		{
			name:  "single check must be blocked or captured",
			fen:   "4k3/8/8/8/8/8/3B4/r3K3 w - - 0 1",
			rules: config.DefaultRules(),
			want:  []string{"d2c1", "e1e2", "e1f2"},
		},
		{
			name:  "legacy checks let other pieces ignore the check",
			fen:   "4k3/8/8/8/8/8/3B4/r3K3 w - - 0 1",
			rules: config.LegacyRules(),
			want: []string{
				"d2a5", "d2b4", "d2c1", "d2c3", "d2e3", "d2f4", "d2g5", "d2h6",
				"e1e2", "e1f2",
			},
		},
		{
			name:  "knight check answered by capture",
			fen:   "4k3/8/8/8/8/3n4/8/3RK3 w - - 0 1",
			rules: config.DefaultRules(),
			want:  []string{"d1d3", "e1d2", "e1e2", "e1f1"},
		},
		{
			name:  "promotion generates every kind",
			fen:   "8/P7/8/8/8/8/8/k3K3 w - - 0 1",
			rules: config.DefaultRules(),
			want: []string{
				"a7a8b", "a7a8n", "a7a8q", "a7a8r",
				"e1d1", "e1d2", "e1e2", "e1f1", "e1f2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, moves := generate(t, tt.fen, tt.rules)
			if diff := cmp.Diff(tt.want, moveStrings(moves)); diff != "" {
				t.Errorf("moves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_DoubleCheckFlags(t *testing.T) {
	g, moves := generate(t, "7k/R3r3/8/8/8/3n4/8/4K3 w - - 0 1", config.DefaultRules())

	if !g.InCheck() || !g.InDoubleCheck() {
		t.Fatalf("InCheck/InDoubleCheck = %v/%v; want true/true", g.InCheck(), g.InDoubleCheck())
	}
	if len(moves) != g.KingMoveCount() {
		t.Errorf("len(moves) = %d; KingMoveCount() = %d", len(moves), g.KingMoveCount())
	}
}

func TestGenerate_Pins(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want map[chess.Location]chess.Direction
	}{
		{
			name: "diagonal",
			fen:  "4k3/8/8/8/1b6/8/3R4/4K3 w - - 0 1",
			want: map[chess.Location]chess.Direction{chess.MustParseLocation("d2"): {File: -1, Rank: 1}},
		},
		{
			name: "file",
			fen:  "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1",
			want: map[chess.Location]chess.Direction{chess.MustParseLocation("e2"): {File: 0, Rank: 1}},
		},
		{
			name: "two blockers cancel the pin",
			fen:  "4r1k1/8/8/8/8/4N3/4R3/4K3 w - - 0 1",
			want: map[chess.Location]chess.Direction{},
		},
		{
			name: "wrong slider does not pin",
			fen:  "4b1k1/8/8/8/8/8/4R3/4K3 w - - 0 1",
			want: map[chess.Location]chess.Direction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := generate(t, tt.fen, config.DefaultRules())
			if diff := cmp.Diff(tt.want, g.Pins()); diff != "" {
				t.Errorf("Pins() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_PinnedRookSlidesAlongFile(t *testing.T) {
	g, _ := generate(t, "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1", config.DefaultRules())

	got := moveStrings(g.MovesFrom(chess.MustParseLocation("e2")))
	want := []string{"e2e3", "e2e4", "e2e5", "e2e6", "e2e7", "e2e8"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pinned rook moves mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_KingCannotRetreatAlongCheckRay(t *testing.T) {
	g, _ := generate(t, "4k3/8/8/8/8/8/3B4/r3K3 w - - 0 1", config.DefaultRules())

	if !g.InCheck() || g.InDoubleCheck() {
		t.Fatalf("InCheck/InDoubleCheck = %v/%v; want true/false", g.InCheck(), g.InDoubleCheck())
	}
	if g.Contains(UserMove(chess.MustParseLocation("e1"), chess.MustParseLocation("f1"), chess.NoKind)) {
		t.Error("king allowed to step back along the rook's rank")
	}
}

func TestGenerate_KingCannotCaptureDefendedPiece(t *testing.T) {
	// Double check from e2 and h1; nothing defends e2.
	g, _ := generate(t, "4k3/8/8/8/8/8/4r3/4K2r w - - 0 1", config.DefaultRules())
	if !g.InDoubleCheck() {
		t.Error("InDoubleCheck() = false")
	}
	if !g.Contains(UserMove(chess.MustParseLocation("e1"), chess.MustParseLocation("e2"), chess.NoKind)) {
		t.Error("king should capture the undefended rook on e2")
	}

	g, _ = generate(t, "4k3/8/8/8/8/4r3/4r3/4K3 w - - 0 1", config.DefaultRules())
	if g.Contains(UserMove(chess.MustParseLocation("e1"), chess.MustParseLocation("e2"), chess.NoKind)) {
		t.Error("king captured a rook defended from e3")
	}
}

func TestGenerate_EnPassant(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		rules config.Rules
		want  bool
	}{
		{"available", "4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1", config.DefaultRules(), true},
		{"no target", "4k3/8/8/3Pp3/8/8/8/4K3 w - - 0 1", config.DefaultRules(), false},
		{"exposes king on rank", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", config.DefaultRules(), false},
		{"legacy skips the rank test", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", config.LegacyRules(), true},
		{"captures the checking pawn", "8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1", config.DefaultRules(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, moves := generate(t, tt.fen, tt.rules)
			var found *Move
			for i := range moves {
				if moves[i].Flag.Has(FlagEnPassant) {
					found = &moves[i]
				}
			}
			if (found != nil) != tt.want {
				t.Fatalf("en passant present = %v; want %v: %v", found != nil, tt.want, moveStrings(moves))
			}
			if found != nil && found.CapturedAt == found.To {
				t.Errorf("en passant CapturedAt = %v; should differ from To", found.CapturedAt)
			}
		})
	}
}

func TestGenerate_Castling(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		rules         config.Rules
		wantKingside  bool
		wantQueenside bool
	}{
		{"both", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", config.DefaultRules(), true, true},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", config.DefaultRules(), false, false},
		{"blocked", "4k3/8/8/8/8/8/8/4KB1R w K - 0 1", config.DefaultRules(), false, false},
		{"queenside b-file blocked", "4k3/8/8/8/8/8/8/RN2K3 w Q - 0 1", config.DefaultRules(), false, false},
		{"destination attacked", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1", config.DefaultRules(), false, false},
		{"destination attacked legacy", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1", config.LegacyRules(), false, false},
		{"transit attacked", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", config.DefaultRules(), false, false},
		{"transit attacked legacy", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", config.LegacyRules(), true, false},
		{"in check", "k3r3/8/8/8/8/8/8/4K2R w K - 0 1", config.DefaultRules(), false, false},
		{"in check legacy", "k3r3/8/8/8/8/8/8/4K2R w K - 0 1", config.LegacyRules(), true, false},
		{"b1 attacked is fine", "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", config.DefaultRules(), false, true},
		{"black", "r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1", config.DefaultRules(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, moves := generate(t, tt.fen, tt.rules)
			k, q := g.CastleRights()
			if k != tt.wantKingside || q != tt.wantQueenside {
				t.Errorf("CastleRights() = %v/%v; want %v/%v: %v", k, q, tt.wantKingside, tt.wantQueenside, moveStrings(moves))
			}
			var castles int
			for _, m := range moves {
				if m.Flag.Has(FlagCastle) {
					castles++
				}
			}
			want := 0
			if tt.wantKingside {
				want++
			}
			if tt.wantQueenside {
				want++
			}
			if castles != want {
				t.Errorf("castle moves = %d; want %d", castles, want)
			}
		})
	}
}

func TestGenerate_Highlight(t *testing.T) {
	b := mustBoard(t, InitialFEN)
	g := NewGenerator(WithHighlight(true))
	g.Generate(b)

	for _, sq := range []string{"e4", "e3", "f3", "a3"} {
		if !b.MustGet(chess.MustParseLocation(sq)).Attacked {
			t.Errorf("%s not marked", sq)
		}
	}
	if b.MustGet(chess.MustParseLocation("e5")).Attacked {
		t.Error("e5 marked but no move reaches it")
	}

	b.EndTurn()
	if b.MustGet(chess.MustParseLocation("e4")).Attacked {
		t.Error("EndTurn did not clear markers")
	}
}

func TestGenerator_Find(t *testing.T) {
	g, _ := generate(t, "8/P7/8/8/8/8/8/k3K3 w - - 0 1", config.DefaultRules())
	a7, a8 := chess.MustParseLocation("a7"), chess.MustParseLocation("a8")

	m, ok := g.Find(a7, a8, chess.NoKind)
	if !ok || m.Promotion != chess.Queen {
		t.Errorf("Find(a7, a8, none) = %v, %v; want queen promotion", m, ok)
	}
	m, ok = g.Find(a7, a8, chess.Knight)
	if !ok || m.Promotion != chess.Knight {
		t.Errorf("Find(a7, a8, knight) = %v, %v; want knight promotion", m, ok)
	}
	if _, ok := g.Find(a7, a8, chess.King); ok {
		t.Error("Find accepted a king promotion")
	}
	if _, ok := g.Find(a7, chess.MustParseLocation("a6"), chess.NoKind); ok {
		t.Error("Find accepted a backwards pawn move")
	}
}

func TestPseudoLegalAndAttackSquares(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/2p5/1P6/4K3 w - - 0 1")
	pawn := b.PieceAt(chess.MustParseLocation("b2"))

	gotMoves := PseudoLegalMoves(b, pawn)
	wantMoves := []chess.Location{
		chess.MustParseLocation("b3"), chess.MustParseLocation("b4"), chess.MustParseLocation("c3"),
	}
	if diff := cmp.Diff(wantMoves, gotMoves); diff != "" {
		t.Errorf("PseudoLegalMoves(b2) mismatch (-want +got):\n%s", diff)
	}

	gotAttacks := AttackSquares(b, pawn)
	wantAttacks := []chess.Location{chess.MustParseLocation("a3"), chess.MustParseLocation("c3")}
	if diff := cmp.Diff(wantAttacks, gotAttacks); diff != "" {
		t.Errorf("AttackSquares(b2) mismatch (-want +got):\n%s", diff)
	}

	king := b.King(chess.White)
	if n := len(AttackSquares(b, king)); n != 5 {
		t.Errorf("len(AttackSquares(e1)) = %d; want 5", n)
	}
}

// refMoveString renders a reference library move in coordinate form.
func refMoveString(m *refchess.Move) string {
	s := m.S1().String() + m.S2().String()
	switch m.Promo() {
	case refchess.Queen:
		s += "q"
	case refchess.Rook:
		s += "r"
	case refchess.Bishop:
		s += "b"
	case refchess.Knight:
		s += "n"
	}
	return s
}

// TestGenerate_MatchesReferenceLibrary compares the legal move sets with an
// independent implementation.
func TestGenerate_MatchesReferenceLibrary(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"7k/R3r3/8/8/8/3n4/8/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			opt, err := refchess.FEN(fen)
			if err != nil {
				t.Fatalf("reference FEN(%q) error = %v", fen, err)
			}
			refMoves := refchess.NewGame(opt).ValidMoves()
			want := make([]string, len(refMoves))
			for i := range refMoves {
				want[i] = refMoveString(&refMoves[i])
			}
			sort.Strings(want)

			_, moves := generate(t, fen, config.DefaultRules())
			if diff := cmp.Diff(want, moveStrings(moves)); diff != "" {
				t.Errorf("moves differ from reference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasLegalMoves(t *testing.T) {
	if !HasLegalMoves(NewInitialBoard(), config.DefaultRules()) {
		t.Error("HasLegalMoves(initial) = false")
	}
	// Stalemate: black king a8, white queen b6, white king c1
	if HasLegalMoves(mustBoard(t, "k7/8/1Q6/8/8/8/8/2K5 b - - 0 1"), config.DefaultRules()) {
		t.Error("HasLegalMoves(stalemate) = true")
	}
}
