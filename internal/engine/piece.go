package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// pieceRule is the behaviour table entry for one piece kind.
type pieceRule struct {
	// pseudoLegal lists destinations ignoring the safety of the own king.
	pseudoLegal func(b *chess.Board, p *chess.Piece) []chess.Location

	// attacks lists the squares the piece threatens. Sliders treat the
	// square transparent as empty; pass chess.NoLocation for none.
	attacks func(b *chess.Board, p *chess.Piece, transparent chess.Location) []chess.Location
}

var pieceRules = [chess.NumKinds]pieceRule{
	chess.Pawn:   {pseudoLegal: pawnMoves, attacks: pawnAttacks},
	chess.Knight: {pseudoLegal: knightMoves, attacks: knightAttacks},
	chess.Bishop: {pseudoLegal: slidingMoves, attacks: slidingAttacks},
	chess.Rook:   {pseudoLegal: slidingMoves, attacks: slidingAttacks},
	chess.Queen:  {pseudoLegal: slidingMoves, attacks: slidingAttacks},
	chess.King:   {pseudoLegal: kingMoves, attacks: kingAttacks},
}

func ruleFor(k chess.Kind) pieceRule {
	if k <= chess.NoKind || k >= chess.NumKinds {
		panic(chess.Invariant("no rule for piece kind %d", k))
	}
	return pieceRules[k]
}

// PseudoLegalMoves returns the destinations of a piece ignoring whether the
// move would leave its own king in check.
func PseudoLegalMoves(b *chess.Board, id chess.PieceID) []chess.Location {
	p := b.Piece(id)
	if !p.Alive() {
		return nil
	}
	return ruleFor(p.Kind).pseudoLegal(b, p)
}

// AttackSquares returns the squares a piece threatens. For pawns these are
// the two forward diagonals whatever stands on them.
func AttackSquares(b *chess.Board, id chess.PieceID) []chess.Location {
	p := b.Piece(id)
	if !p.Alive() {
		return nil
	}
	return ruleFor(p.Kind).attacks(b, p, chess.NoLocation)
}

// slideDirections returns the rays a sliding kind moves along.
func slideDirections(k chess.Kind) []chess.Direction {
	switch k {
	case chess.Bishop:
		return chess.Diagonals[:]
	case chess.Rook:
		return chess.Orthogonals[:]
	case chess.Queen:
		return chess.AllDirections[:]
	}
	return nil
}

// slidesAlong reports whether a kind attacks along direction d.
func slidesAlong(k chess.Kind, d chess.Direction) bool {
	if d.IsDiagonal() {
		return k.SlidesDiagonally()
	}
	return k.SlidesOrthogonally()
}

func slidingMoves(b *chess.Board, p *chess.Piece) []chess.Location {
	return slideRays(b, p, slideDirections(p.Kind))
}

// slideRays walks each ray, collecting empty squares and stopping at the
// first occupied one, which is included when it holds an enemy.
func slideRays(b *chess.Board, p *chess.Piece, dirs []chess.Direction) []chess.Location {
	var moves []chess.Location
	for _, d := range dirs {
		for _, loc := range chess.Ray(p.Location, d) {
			id := b.PieceAt(loc)
			if id == chess.NoPiece {
				moves = append(moves, loc)
				continue
			}
			if b.Piece(id).Colour != p.Colour {
				moves = append(moves, loc)
			}
			break
		}
	}
	return moves
}

func slidingAttacks(b *chess.Board, p *chess.Piece, transparent chess.Location) []chess.Location {
	var squares []chess.Location
	for _, d := range slideDirections(p.Kind) {
		for _, loc := range chess.Ray(p.Location, d) {
			squares = append(squares, loc)
			if loc != transparent && b.PieceAt(loc) != chess.NoPiece {
				break
			}
		}
	}
	return squares
}

func knightMoves(b *chess.Board, p *chess.Piece) []chess.Location {
	var moves []chess.Location
	for _, off := range chess.KnightOffsets {
		loc := p.Location.Step(off)
		if !loc.Valid() || friendlyAt(b, loc, p.Colour) {
			continue
		}
		moves = append(moves, loc)
	}
	return moves
}

func knightAttacks(_ *chess.Board, p *chess.Piece, _ chess.Location) []chess.Location {
	var squares []chess.Location
	for _, off := range chess.KnightOffsets {
		if loc := p.Location.Step(off); loc.Valid() {
			squares = append(squares, loc)
		}
	}
	return squares
}

// kingSteps lists the adjacent destinations not held by a friendly piece.
func kingSteps(b *chess.Board, p *chess.Piece) []chess.Location {
	var moves []chess.Location
	for _, d := range chess.AllDirections {
		loc := p.Location.Step(d)
		if !loc.Valid() || friendlyAt(b, loc, p.Colour) {
			continue
		}
		moves = append(moves, loc)
	}
	return moves
}

func kingMoves(b *chess.Board, p *chess.Piece) []chess.Location {
	moves := kingSteps(b, p)
	for _, c := range castlingOptions(b, p) {
		moves = append(moves, c.KingTo)
	}
	return moves
}

func kingAttacks(_ *chess.Board, p *chess.Piece, _ chess.Location) []chess.Location {
	var squares []chess.Location
	for _, d := range chess.AllDirections {
		if loc := p.Location.Step(d); loc.Valid() {
			squares = append(squares, loc)
		}
	}
	return squares
}

// friendlyAt reports whether loc holds a piece of the given colour.
func friendlyAt(b *chess.Board, loc chess.Location, colour chess.Colour) bool {
	id := b.PieceAt(loc)
	return id != chess.NoPiece && b.Piece(id).Colour == colour
}

// enemyAt reports whether loc holds a piece of the opposite colour.
func enemyAt(b *chess.Board, loc chess.Location, colour chess.Colour) bool {
	id := b.PieceAt(loc)
	return id != chess.NoPiece && b.Piece(id).Colour != colour
}
