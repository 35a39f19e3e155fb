package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// castleOption describes one castle available on the board geometry.
type castleOption struct {
	Kingside bool
	KingTo   chess.Location
	Rook     chess.PieceID
	RookFrom chess.Location
	RookTo   chess.Location

	// Transit is the square the king crosses on its way to KingTo.
	Transit chess.Location
}

// castlingOptions returns the castles whose king, rook and empty-path
// conditions hold. Attacked squares are checked by the generator.
func castlingOptions(b *chess.Board, king *chess.Piece) []castleOption {
	if king.HasMoved || king.Kind != chess.King {
		return nil
	}
	var opts []castleOption
	if opt, ok := castleSide(b, king, 1, 3); ok {
		opt.Kingside = true
		opts = append(opts, opt)
	}
	if opt, ok := castleSide(b, king, -1, 4); ok {
		opts = append(opts, opt)
	}
	return opts
}

// castleSide checks one wing: every square strictly between king and rook
// must be empty and the rook, rookDist files away, must be unmoved.
func castleSide(b *chess.Board, king *chess.Piece, dir, rookDist int) (castleOption, bool) {
	from := king.Location
	for i := 1; i < rookDist; i++ {
		loc := from.Offset(dir*i, 0)
		if !loc.Valid() || b.PieceAt(loc) != chess.NoPiece {
			return castleOption{}, false
		}
	}
	rookFrom := from.Offset(dir*rookDist, 0)
	id := b.PieceAt(rookFrom)
	if id == chess.NoPiece {
		return castleOption{}, false
	}
	rook := b.Piece(id)
	if rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.HasMoved {
		return castleOption{}, false
	}
	return castleOption{
		KingTo:   from.Offset(2*dir, 0),
		Rook:     id,
		RookFrom: rookFrom,
		RookTo:   from.Offset(dir, 0),
		Transit:  from.Offset(dir, 0),
	}, true
}
