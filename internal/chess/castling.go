package chess

// Castling home squares for the standard start position.
const (
	KingHomeFile      = 5
	KingsideRookFile  = 8
	QueensideRookFile = 1
)

// CastlingRights reports which castles are still available to a colour
// judging only by the moved flags of the king and rooks on their home
// squares. Occupancy and attacks are the move generator's concern.
func (b *Board) CastlingRights(colour Colour) (kingside, queenside bool) {
	home := HomeRank(colour)
	if !b.unmovedAt(colour, King, Loc(KingHomeFile, home)) {
		return false, false
	}
	kingside = b.unmovedAt(colour, Rook, Loc(KingsideRookFile, home))
	queenside = b.unmovedAt(colour, Rook, Loc(QueensideRookFile, home))
	return kingside, queenside
}

func (b *Board) unmovedAt(colour Colour, kind Kind, loc Location) bool {
	id := b.PieceAt(loc)
	if id == NoPiece {
		return false
	}
	p := &b.pieces[id]
	return p.Colour == colour && p.Kind == kind && !p.HasMoved
}
