package engine

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Flag describes what a move does. Flags combine as a bitset; a quiet
// move has no bits set.
type Flag uint8

const (
	FlagMove    Flag = 0
	FlagCapture Flag = 1 << iota
	FlagEnPassant
	FlagCastle
	FlagPromote
	FlagCheck
	FlagCheckmate
)

// Has reports whether all bits of f2 are set in f.
func (f Flag) Has(f2 Flag) bool {
	return f&f2 == f2
}

// String lists the set flags, e.g. "capture|promote".
func (f Flag) String() string {
	if f == FlagMove {
		return "move"
	}
	names := []struct {
		flag Flag
		name string
	}{
		{FlagCapture, "capture"},
		{FlagEnPassant, "enpassant"},
		{FlagCastle, "castle"},
		{FlagPromote, "promote"},
		{FlagCheck, "check"},
		{FlagCheckmate, "checkmate"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Move describes one ply. Variant data is populated according to Flag:
// captures carry the victim and its square (which differs from To for en
// passant), castles carry the rook and its hop, promotions the new kind.
type Move struct {
	From  chess.Location
	To    chess.Location
	Flag  Flag
	Piece chess.PieceID

	Captured   chess.PieceID
	CapturedAt chess.Location

	Rook     chess.PieceID
	RookFrom chess.Location
	RookTo   chess.Location

	Promotion chess.Kind
}

// NewMove returns a plain relocation or capture of the piece on from.
func NewMove(b *chess.Board, from, to chess.Location) Move {
	m := Move{
		From:     from,
		To:       to,
		Piece:    b.PieceAt(from),
		Captured: chess.NoPiece,
		Rook:     chess.NoPiece,
	}
	if victim := b.PieceAt(to); victim != chess.NoPiece {
		m.Flag |= FlagCapture
		m.Captured = victim
		m.CapturedAt = to
	}
	return m
}

// NewEnPassantMove returns an en passant capture of the pawn on victimAt.
func NewEnPassantMove(b *chess.Board, from, to, victimAt chess.Location) Move {
	m := NewMove(b, from, to)
	m.Flag |= FlagCapture | FlagEnPassant
	m.Captured = b.PieceAt(victimAt)
	m.CapturedAt = victimAt
	return m
}

// NewCastleMove pairs the king's hop with the rook's.
func NewCastleMove(b *chess.Board, from chess.Location, opt castleOption) Move {
	m := NewMove(b, from, opt.KingTo)
	m.Flag |= FlagCastle
	m.Rook = opt.Rook
	m.RookFrom = opt.RookFrom
	m.RookTo = opt.RookTo
	return m
}

// NewPromoteMove returns a pawn move that turns the pawn into kind.
func NewPromoteMove(b *chess.Board, from, to chess.Location, kind chess.Kind) Move {
	m := NewMove(b, from, to)
	m.Flag |= FlagPromote
	m.Promotion = kind
	return m
}

// UserMove wraps raw user intent. It is only matched against the
// generated set and never applied directly.
func UserMove(from, to chess.Location, promotion chess.Kind) Move {
	return Move{
		From:      from,
		To:        to,
		Piece:     chess.NoPiece,
		Captured:  chess.NoPiece,
		Rook:      chess.NoPiece,
		Promotion: promotion,
	}
}

// Matches reports whether two moves name the same transition.
func (m Move) Matches(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

// String returns the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoKind {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// UndoRecord holds exactly the fields a move changed.
type UndoRecord struct {
	Move Move

	ToMove        chess.Colour
	MoverHadMoved bool
	MoverKind     chess.Kind
	RookHadMoved  bool

	// Pawns whose en passant eligibility expired with this move.
	ClearedEnPassant []chess.PieceID
}

// Apply performs the move on the board without flipping the turn and
// returns the record needed to revert it.
func (m Move) Apply(b *chess.Board) UndoRecord {
	mover := b.Piece(m.Piece)
	rec := UndoRecord{
		Move:          m,
		ToMove:        b.ToMove,
		MoverHadMoved: mover.HasMoved,
		MoverKind:     mover.Kind,
	}

	// Eligibility lasts one half-move.
	for _, c := range [...]chess.Colour{chess.Black, chess.White} {
		for _, id := range b.Pawns(c) {
			if p := b.Piece(id); p.EnPassantEligible {
				p.EnPassantEligible = false
				rec.ClearedEnPassant = append(rec.ClearedEnPassant, id)
			}
		}
	}

	if m.Flag.Has(FlagCapture) {
		b.Capture(m.Captured)
	}

	b.SetPiece(m.Piece, m.To)
	mover.HasMoved = true

	if m.Flag.Has(FlagCastle) {
		rook := b.Piece(m.Rook)
		rec.RookHadMoved = rook.HasMoved
		b.SetPiece(m.Rook, m.RookTo)
		rook.HasMoved = true
	}

	if m.Flag.Has(FlagPromote) {
		mover.Kind = m.Promotion
	}

	if mover.Kind == chess.Pawn && abs(int(m.To.Rank)-int(m.From.Rank)) == 2 {
		mover.EnPassantEligible = true
	}

	return rec
}

// Revert undoes the recorded move, restoring the side to move.
func (r UndoRecord) Revert(b *chess.Board) {
	m := r.Move
	if m.Flag.Has(FlagCastle) {
		b.SetPiece(m.Rook, m.RookFrom)
		b.Piece(m.Rook).HasMoved = r.RookHadMoved
	}

	mover := b.Piece(m.Piece)
	b.SetPiece(m.Piece, m.From)
	mover.HasMoved = r.MoverHadMoved
	mover.Kind = r.MoverKind
	mover.EnPassantEligible = false

	if m.Flag.Has(FlagCapture) {
		b.Revive(m.Captured, m.CapturedAt)
	}

	for _, id := range r.ClearedEnPassant {
		b.Piece(id).EnPassantEligible = true
	}

	b.ToMove = r.ToMove
}

// MakeMove applies the move and hands the turn to the opponent.
func MakeMove(b *chess.Board, m Move) UndoRecord {
	rec := m.Apply(b)
	b.EndTurn()
	return rec
}

// UnmakeMove reverts a move made with MakeMove.
func UnmakeMove(b *chess.Board, rec UndoRecord) {
	rec.Revert(b)
}
