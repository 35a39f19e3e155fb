package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(b *chess.Board, colour chess.Colour) bool {
	king := b.Piece(b.King(colour))
	return IsSquareAttacked(b, king.Location, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(b *chess.Board, loc chess.Location, by chess.Colour) bool {
	return isSquareAttacked(b, loc, by, chess.NoLocation)
}

// isSquareAttacked treats the square transparent as empty when tracing
// slider rays.
func isSquareAttacked(b *chess.Board, loc chess.Location, by chess.Colour, transparent chess.Location) bool {
	// Pawns attack from one rank behind, relative to their direction
	pawnRank := -chess.ColourOffset(by)
	for _, df := range [...]int{-1, 1} {
		if isPieceOf(b, loc.Offset(df, pawnRank), by, chess.Pawn) {
			return true
		}
	}

	for _, off := range chess.KnightOffsets {
		if isPieceOf(b, loc.Step(off), by, chess.Knight) {
			return true
		}
	}

	for _, d := range chess.AllDirections {
		if isPieceOf(b, loc.Step(d), by, chess.King) {
			return true
		}
	}

	for _, d := range chess.AllDirections {
		for _, sq := range chess.Ray(loc, d) {
			if sq == transparent {
				continue
			}
			id := b.PieceAt(sq)
			if id == chess.NoPiece {
				continue
			}
			p := b.Piece(id)
			if p.Colour == by && slidesAlong(p.Kind, d) {
				return true
			}
			break // Blocked
		}
	}

	return false
}

// isPieceOf reports whether loc holds a piece of the given colour and kind.
func isPieceOf(b *chess.Board, loc chess.Location, colour chess.Colour, kind chess.Kind) bool {
	id := b.PieceAt(loc)
	if id == chess.NoPiece {
		return false
	}
	p := b.Piece(id)
	return p.Colour == colour && p.Kind == kind
}

// attackUnion marks every square attacked by the colour. Sliders see
// through the square transparent, so a king cannot step backwards along
// the line of a checking slider.
func attackUnion(b *chess.Board, by chess.Colour, transparent chess.Location) [chess.NumSquares]bool {
	var attacked [chess.NumSquares]bool
	for _, id := range b.Pieces(by) {
		p := b.Piece(id)
		for _, loc := range ruleFor(p.Kind).attacks(b, p, transparent) {
			attacked[loc.Index()] = true
		}
	}
	return attacked
}
