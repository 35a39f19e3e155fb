package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
)

// Generator computes the legal moves of the side to move together with
// its check state and pin table.
type Generator struct {
	rules     config.Rules
	highlight bool

	board    *chess.Board
	friendly chess.Colour
	king     chess.Location
	moves    []Move

	inCheck       bool
	inDoubleCheck bool
	kingMoves     int
	canKingside   bool
	canQueenside  bool

	pinned   [chess.NumSquares]bool
	pinDir   [chess.NumSquares]chess.Direction
	blockers [chess.NumSquares]bool
	attacked [chess.NumSquares]bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRules selects the rule set.
func WithRules(r config.Rules) GeneratorOption {
	return func(g *Generator) {
		g.rules = r
	}
}

// WithHighlight marks every legal destination square as attacked after
// each generation.
func WithHighlight(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.highlight = enabled
	}
}

// NewGenerator creates a generator. Default: strict rules, no highlighting.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{rules: config.DefaultRules()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rules returns the rule set in use.
func (g *Generator) Rules() config.Rules {
	return g.rules
}

// Generate computes the legal moves for the side to move on b. The
// returned slice is owned by the caller.
func (g *Generator) Generate(b *chess.Board) []Move {
	g.reset(b)

	g.probeSliders()
	g.probeLeapers()

	g.attacked = attackUnion(b, g.friendly.Opposite(), g.king)
	g.generateKingMoves()

	if !g.inDoubleCheck {
		g.generatePieceMoves(b.Pawns(g.friendly))
		g.generatePieceMoves(b.Sliders(g.friendly))
		g.generatePieceMoves(b.Knights(g.friendly))
	}

	if g.highlight {
		for _, m := range g.moves {
			b.MustGet(m.To).Attacked = true
		}
	}
	return g.moves
}

func (g *Generator) reset(b *chess.Board) {
	g.board = b
	g.friendly = b.ToMove
	g.king = b.Piece(b.King(g.friendly)).Location
	g.moves = nil
	g.inCheck = false
	g.inDoubleCheck = false
	g.kingMoves = 0
	g.canKingside = false
	g.canQueenside = false
	g.pinned = [chess.NumSquares]bool{}
	g.blockers = [chess.NumSquares]bool{}
}

// addCheck records a checker. path holds the squares between it and the
// king, which together with the checker's square resolve a single check.
func (g *Generator) addCheck(checker chess.Location, path []chess.Location) {
	if g.inCheck {
		g.inDoubleCheck = true
	}
	g.inCheck = true
	g.blockers[checker.Index()] = true
	for _, loc := range path {
		g.blockers[loc.Index()] = true
	}
}

// probeSliders walks the rays out of the king looking for sliding checks
// and pins. Directions the opponent has no slider for are skipped.
func (g *Generator) probeSliders() {
	opp := g.friendly.Opposite()
	diagonal := g.board.HasKind(opp, chess.Bishop) || g.board.HasKind(opp, chess.Queen)
	straight := g.board.HasKind(opp, chess.Rook) || g.board.HasKind(opp, chess.Queen)

	for _, d := range chess.AllDirections {
		if d.IsDiagonal() && !diagonal || !d.IsDiagonal() && !straight {
			continue
		}
		g.probeRay(d)
	}
}

func (g *Generator) probeRay(d chess.Direction) {
	candidate := chess.NoLocation
	for _, loc := range chess.Ray(g.king, d) {
		id := g.board.PieceAt(loc)
		if id == chess.NoPiece {
			continue
		}
		p := g.board.Piece(id)
		if p.Colour == g.friendly {
			if candidate.Valid() {
				return // two friendly pieces: no pin
			}
			candidate = loc
			continue
		}
		if !slidesAlong(p.Kind, d) {
			return
		}
		if candidate.Valid() {
			g.pinned[candidate.Index()] = true
			g.pinDir[candidate.Index()] = d
		} else {
			g.addCheck(loc, squaresBetween(g.king, loc))
		}
		return
	}
}

// probeLeapers looks for knight and pawn checks, which cannot pin.
func (g *Generator) probeLeapers() {
	opp := g.friendly.Opposite()
	for _, ids := range [][]chess.PieceID{g.board.Knights(opp), g.board.Pawns(opp)} {
		for _, id := range ids {
			p := g.board.Piece(id)
			for _, loc := range ruleFor(p.Kind).attacks(g.board, p, chess.NoLocation) {
				if loc == g.king {
					g.addCheck(p.Location, nil)
					break
				}
			}
		}
	}
}

func (g *Generator) generateKingMoves() {
	king := g.board.Piece(g.board.King(g.friendly))
	for _, to := range kingSteps(g.board, king) {
		if g.attacked[to.Index()] {
			continue
		}
		g.moves = append(g.moves, NewMove(g.board, king.Location, to))
	}

	for _, opt := range castlingOptions(g.board, king) {
		if g.attacked[opt.KingTo.Index()] {
			continue
		}
		if g.rules.StrictCastling && (g.inCheck || g.attacked[opt.Transit.Index()]) {
			continue
		}
		if opt.Kingside {
			g.canKingside = true
		} else {
			g.canQueenside = true
		}
		g.moves = append(g.moves, NewCastleMove(g.board, king.Location, opt))
	}
	g.kingMoves = len(g.moves)
}

func (g *Generator) generatePieceMoves(ids []chess.PieceID) {
	for _, id := range ids {
		p := g.board.Piece(id)
		pinned := g.pinned[p.Location.Index()]
		axis := g.pinDir[p.Location.Index()]
		for _, to := range ruleFor(p.Kind).pseudoLegal(g.board, p) {
			if pinned && !chess.Collinear(g.king, to, axis) {
				continue
			}
			g.addPieceMove(p, to)
		}
	}
}

func (g *Generator) addPieceMove(p *chess.Piece, to chess.Location) {
	from := p.Location
	if p.Kind == chess.Pawn {
		if to.File != from.File && g.board.PieceAt(to) == chess.NoPiece {
			m := NewEnPassantMove(g.board, from, to, chess.Location{File: to.File, Rank: from.Rank})
			if g.rules.ResolveChecks && !g.leavesKingSafe(m) {
				return
			}
			g.moves = append(g.moves, m)
			return
		}
		if isPromotionSquare(p.Colour, to) {
			if !g.resolvesCheck(to) {
				return
			}
			for _, kind := range chess.PromotionKinds {
				g.moves = append(g.moves, NewPromoteMove(g.board, from, to, kind))
			}
			return
		}
	}
	if !g.resolvesCheck(to) {
		return
	}
	g.moves = append(g.moves, NewMove(g.board, from, to))
}

// resolvesCheck reports whether a non-king move landing on to deals with
// a single check, or true when the rules do not require it.
func (g *Generator) resolvesCheck(to chess.Location) bool {
	return !g.rules.ResolveChecks || !g.inCheck || g.blockers[to.Index()]
}

// leavesKingSafe plays the move and tests the king directly. En passant
// removes two pieces from one rank, which the pin table cannot see.
func (g *Generator) leavesKingSafe(m Move) bool {
	rec := m.Apply(g.board)
	safe := !IsSquareAttacked(g.board, g.king, g.friendly.Opposite())
	rec.Revert(g.board)
	return safe
}

// InCheck reports whether the side to move was in check at the last generation.
func (g *Generator) InCheck() bool {
	return g.inCheck
}

// InDoubleCheck reports whether two pieces were giving check.
func (g *Generator) InDoubleCheck() bool {
	return g.inDoubleCheck
}

// KingMoveCount returns how many of the generated moves belong to the king.
func (g *Generator) KingMoveCount() int {
	return g.kingMoves
}

// CastleRights reports which castles were generated.
func (g *Generator) CastleRights() (kingside, queenside bool) {
	return g.canKingside, g.canQueenside
}

// Pins returns the pinned squares mapped to the direction from the king
// towards the pinning piece.
func (g *Generator) Pins() map[chess.Location]chess.Direction {
	pins := make(map[chess.Location]chess.Direction)
	for i, ok := range g.pinned {
		if ok {
			pins[chess.LocationFromIndex(i)] = g.pinDir[i]
		}
	}
	return pins
}

// Moves returns the moves of the last generation.
func (g *Generator) Moves() []Move {
	return g.moves
}

// Find returns the legal move from -> to. A promotion with no kind given
// selects the queen.
func (g *Generator) Find(from, to chess.Location, promotion chess.Kind) (Move, bool) {
	for _, m := range g.moves {
		if m.From != from || m.To != to {
			continue
		}
		want := UserMove(from, to, promotion)
		if m.Flag.Has(FlagPromote) && promotion == chess.NoKind {
			want.Promotion = chess.Queen
		}
		if m.Matches(want) {
			return m, true
		}
	}
	return Move{}, false
}

// Contains reports whether a move matching m is legal.
func (g *Generator) Contains(m Move) bool {
	_, ok := g.Find(m.From, m.To, m.Promotion)
	return ok
}

// MovesFrom returns the legal moves of the piece on from.
func (g *Generator) MovesFrom(from chess.Location) []Move {
	var moves []Move
	for _, m := range g.moves {
		if m.From == from {
			moves = append(moves, m)
		}
	}
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(b *chess.Board, rules config.Rules) bool {
	return len(NewGenerator(WithRules(rules)).Generate(b)) > 0
}
