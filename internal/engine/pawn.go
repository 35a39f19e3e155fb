package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// pawnMoves returns the pawn's pushes, diagonal captures and en passant
// destinations.
func pawnMoves(b *chess.Board, p *chess.Piece) []chess.Location {
	var moves []chess.Location
	dir := chess.ColourOffset(p.Colour)

	one := p.Location.Offset(0, dir)
	if one.Valid() && b.PieceAt(one) == chess.NoPiece {
		moves = append(moves, one)
		if !p.HasMoved {
			two := one.Offset(0, dir)
			if two.Valid() && b.PieceAt(two) == chess.NoPiece {
				moves = append(moves, two)
			}
		}
	}

	for _, df := range [...]int{-1, 1} {
		to := p.Location.Offset(df, dir)
		if !to.Valid() {
			continue
		}
		if enemyAt(b, to, p.Colour) {
			moves = append(moves, to)
			continue
		}
		if enPassantVictim(b, p, df) != chess.NoPiece {
			moves = append(moves, to)
		}
	}
	return moves
}

// enPassantVictim returns the enemy pawn beside p on file offset df that
// can be taken en passant, or NoPiece.
func enPassantVictim(b *chess.Board, p *chess.Piece, df int) chess.PieceID {
	side := p.Location.Offset(df, 0)
	if !side.Valid() {
		return chess.NoPiece
	}
	id := b.PieceAt(side)
	if id == chess.NoPiece {
		return chess.NoPiece
	}
	victim := b.Piece(id)
	if victim.Colour == p.Colour || victim.Kind != chess.Pawn || !victim.EnPassantEligible {
		return chess.NoPiece
	}
	if b.PieceAt(side.Offset(0, chess.ColourOffset(p.Colour))) != chess.NoPiece {
		return chess.NoPiece
	}
	return id
}

func pawnAttacks(_ *chess.Board, p *chess.Piece, _ chess.Location) []chess.Location {
	var squares []chess.Location
	dir := chess.ColourOffset(p.Colour)
	for _, df := range [...]int{-1, 1} {
		if loc := p.Location.Offset(df, dir); loc.Valid() {
			squares = append(squares, loc)
		}
	}
	return squares
}

// isPromotionSquare reports whether a pawn of the colour arriving on loc
// must promote.
func isPromotionSquare(colour chess.Colour, loc chess.Location) bool {
	return int(loc.Rank) == chess.PromotionRank(colour)
}
