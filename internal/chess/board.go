package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// PieceID identifies a piece slot in the board's arena. Ids are stable for
// the life of the board: captures and promotions never reassign them.
type PieceID int

// NoPiece marks an empty square or an absent piece.
const NoPiece PieceID = -1

// Piece is one chessman. Its kind may change in place on promotion.
type Piece struct {
	ID       PieceID
	Colour   Colour
	Kind     Kind
	Location Location

	// HasMoved is set once the piece leaves its starting square.
	HasMoved bool

	// EnPassantEligible is set on a pawn for the half-move right after
	// its own two-square advance.
	EnPassantEligible bool

	// Captured pieces stay in the arena so undo can revive them.
	Captured bool
}

// Alive reports whether the piece is still on the board.
func (p *Piece) Alive() bool {
	return !p.Captured
}

// String returns a short description such as "White Knight g1".
func (p *Piece) String() string {
	return fmt.Sprintf("%s %s %s", p.Colour, p.Kind, p.Location)
}

// Square is one cell of the board.
type Square struct {
	Shade    Shade
	Location Location
	Occupant PieceID

	// Attacked is a transient highlight marker, cleared by EndTurn.
	Attacked bool
}

// Empty reports whether no piece stands on the square.
func (s *Square) Empty() bool {
	return s.Occupant == NoPiece
}

// Board owns all squares and pieces of a position.
type Board struct {
	squares  [NumSquares]Square
	pieces   []Piece
	byColour [NumColours][]PieceID

	// Who has the next move.
	ToMove Colour
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	b := &Board{ToMove: White}
	for i := range b.squares {
		loc := LocationFromIndex(i)
		shade := Light
		if (int(loc.File)+int(loc.Rank))%2 == 0 {
			shade = Dark
		}
		b.squares[i] = Square{Shade: shade, Location: loc, Occupant: NoPiece}
	}
	return b
}

// Get returns the square at loc, or ErrNotFound for an off-board location.
func (b *Board) Get(loc Location) (*Square, error) {
	if !loc.Valid() {
		return nil, fmt.Errorf("square %s: %w", loc, errors.ErrNotFound)
	}
	return &b.squares[loc.Index()], nil
}

// MustGet returns the square at loc and panics if loc is off the board.
// Callers check board extent first.
func (b *Board) MustGet(loc Location) *Square {
	sq, err := b.Get(loc)
	if err != nil {
		panic(Invariant("%v", err))
	}
	return sq
}

// Neighbour returns the square offset from loc, or nil off the board.
func (b *Board) Neighbour(loc Location, fileDelta, rankDelta int) *Square {
	next := loc.Offset(fileDelta, rankDelta)
	if !next.Valid() {
		return nil
	}
	return &b.squares[next.Index()]
}

// PieceAt returns the occupant of loc, or NoPiece.
func (b *Board) PieceAt(loc Location) PieceID {
	if !loc.Valid() {
		return NoPiece
	}
	return b.squares[loc.Index()].Occupant
}

// Piece returns the piece with the given id.
func (b *Board) Piece(id PieceID) *Piece {
	if id < 0 || int(id) >= len(b.pieces) {
		panic(Invariant("piece id %d out of range", id))
	}
	return &b.pieces[id]
}

// Place puts a new piece on an empty square and returns its id.
func (b *Board) Place(colour Colour, kind Kind, loc Location) (PieceID, error) {
	sq, err := b.Get(loc)
	if err != nil {
		return NoPiece, err
	}
	if !sq.Empty() {
		return NoPiece, fmt.Errorf("square %s already occupied: %w", loc, errors.ErrInvariant)
	}
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{ID: id, Colour: colour, Kind: kind, Location: loc})
	b.byColour[colour] = append(b.byColour[colour], id)
	sq.Occupant = id
	return id, nil
}

// SetPiece moves a piece's occupancy to loc without any move side effects.
// The piece's previous square is cleared if it still points at the piece.
func (b *Board) SetPiece(id PieceID, loc Location) {
	p := b.Piece(id)
	if p.Location.Valid() && b.squares[p.Location.Index()].Occupant == id {
		b.squares[p.Location.Index()].Occupant = NoPiece
	}
	b.MustGet(loc).Occupant = id
	p.Location = loc
}

// Capture removes a piece from play. It stays in the arena.
func (b *Board) Capture(id PieceID) {
	p := b.Piece(id)
	if b.squares[p.Location.Index()].Occupant == id {
		b.squares[p.Location.Index()].Occupant = NoPiece
	}
	p.Captured = true
}

// Revive returns a captured piece to loc.
func (b *Board) Revive(id PieceID, loc Location) {
	p := b.Piece(id)
	p.Captured = false
	p.Location = loc
	b.MustGet(loc).Occupant = id
}

// Pieces returns the live pieces of a colour in id order.
func (b *Board) Pieces(colour Colour) []PieceID {
	return b.filter(colour, NoKind)
}

// Pawns returns the live pawns of a colour.
func (b *Board) Pawns(colour Colour) []PieceID { return b.filter(colour, Pawn) }

// Knights returns the live knights of a colour.
func (b *Board) Knights(colour Colour) []PieceID { return b.filter(colour, Knight) }

// Bishops returns the live bishops of a colour.
func (b *Board) Bishops(colour Colour) []PieceID { return b.filter(colour, Bishop) }

// Rooks returns the live rooks of a colour.
func (b *Board) Rooks(colour Colour) []PieceID { return b.filter(colour, Rook) }

// Queens returns the live queens of a colour.
func (b *Board) Queens(colour Colour) []PieceID { return b.filter(colour, Queen) }

// Sliders returns the live bishops, rooks and queens of a colour.
func (b *Board) Sliders(colour Colour) []PieceID {
	var ids []PieceID
	for _, id := range b.byColour[colour] {
		p := &b.pieces[id]
		if p.Alive() && p.Kind.IsSlider() {
			ids = append(ids, id)
		}
	}
	return ids
}

func (b *Board) filter(colour Colour, kind Kind) []PieceID {
	var ids []PieceID
	for _, id := range b.byColour[colour] {
		p := &b.pieces[id]
		if p.Alive() && (kind == NoKind || p.Kind == kind) {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasKind reports whether the colour still has a piece of the kind.
func (b *Board) HasKind(colour Colour, kind Kind) bool {
	for _, id := range b.byColour[colour] {
		p := &b.pieces[id]
		if p.Alive() && p.Kind == kind {
			return true
		}
	}
	return false
}

// King returns the king of a colour. A missing king is an invariant
// violation and panics.
func (b *Board) King(colour Colour) PieceID {
	for _, id := range b.byColour[colour] {
		p := &b.pieces[id]
		if p.Alive() && p.Kind == King {
			return id
		}
	}
	panic(Invariant("no %s king on the board", colour))
}

// EndTurn flips the side to move and clears the attacked markers.
func (b *Board) EndTurn() {
	b.ResetMarkers()
	b.ToMove = b.ToMove.Opposite()
}

// ResetMarkers clears every square's Attacked marker.
func (b *Board) ResetMarkers() {
	for i := range b.squares {
		b.squares[i].Attacked = false
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		squares: b.squares,
		pieces:  append([]Piece(nil), b.pieces...),
		ToMove:  b.ToMove,
	}
	for i := range b.byColour {
		c.byColour[i] = append([]PieceID(nil), b.byColour[i]...)
	}
	return c
}

// Snapshot captures the piece state and side to move of a position.
// Two boards holding the same position produce equal snapshots.
type Snapshot struct {
	ToMove Colour
	Pieces []Piece
}

// Snapshot returns the current position state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{ToMove: b.ToMove, Pieces: append([]Piece(nil), b.pieces...)}
}

// Validate checks the structural invariants of the board.
func (b *Board) Validate() error {
	var kings [NumColours]int
	for i := range b.pieces {
		p := &b.pieces[i]
		if p.Captured {
			continue
		}
		if !p.Location.Valid() {
			return fmt.Errorf("%s has no square: %w", p, errors.ErrInvariant)
		}
		if b.squares[p.Location.Index()].Occupant != p.ID {
			return fmt.Errorf("%s not referenced by its square: %w", p, errors.ErrInvariant)
		}
		if p.Kind == King {
			kings[p.Colour]++
		}
	}
	for i := range b.squares {
		id := b.squares[i].Occupant
		if id == NoPiece {
			continue
		}
		if int(id) >= len(b.pieces) || b.pieces[id].Captured || b.pieces[id].Location != b.squares[i].Location {
			return fmt.Errorf("square %s holds stale piece %d: %w", b.squares[i].Location, id, errors.ErrInvariant)
		}
	}
	for c, n := range kings {
		if n != 1 {
			return fmt.Errorf("%s has %d kings: %w", Colour(c), n, errors.ErrInvariant)
		}
	}
	return nil
}

// String draws the board as text, rank 8 first, upper case for White.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := BoardSize; rank >= 1; rank-- {
		sb.WriteByte(byte(RankBase + rank - 1))
		sb.WriteByte(' ')
		for file := 1; file <= BoardSize; file++ {
			id := b.squares[Loc(file, rank).Index()].Occupant
			if id == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(b.pieces[id].Letter())
			}
			if file < BoardSize {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Letter returns the piece letter, upper case for White.
func (p *Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// Invariant builds an error wrapping ErrInvariant.
func Invariant(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvariant, format, args...)
}
