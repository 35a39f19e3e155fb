package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Location addresses one square by file and rank, both in 1..8.
// The zero value is NoLocation, the result of any arithmetic that leaves
// the board.
type Location struct {
	File int8
	Rank int8
}

// NoLocation marks an off-board result.
var NoLocation = Location{}

// Loc builds a location, returning NoLocation when out of range.
func Loc(file, rank int) Location {
	if !onBoard(file) || !onBoard(rank) {
		return NoLocation
	}
	return Location{File: int8(file), Rank: int8(rank)}
}

func onBoard(v int) bool {
	return v >= 1 && v <= BoardSize
}

// Valid reports whether the location lies on the board.
func (l Location) Valid() bool {
	return onBoard(int(l.File)) && onBoard(int(l.Rank))
}

// Offset returns the location shifted by the given deltas, or NoLocation.
func (l Location) Offset(fileDelta, rankDelta int) Location {
	if !l.Valid() {
		return NoLocation
	}
	return Loc(int(l.File)+fileDelta, int(l.Rank)+rankDelta)
}

// Step moves one unit in the given direction.
func (l Location) Step(d Direction) Location {
	return l.Offset(d.File, d.Rank)
}

// Index returns the 0..63 array index of the location (a1 = 0, h8 = 63).
func (l Location) Index() int {
	return int(l.Rank-1)*BoardSize + int(l.File-1)
}

// LocationFromIndex is the inverse of Index.
func LocationFromIndex(i int) Location {
	if i < 0 || i >= NumSquares {
		return NoLocation
	}
	return Location{File: int8(i%BoardSize + 1), Rank: int8(i/BoardSize + 1)}
}

// String returns the algebraic name of the square, e.g. "e4".
func (l Location) String() string {
	if !l.Valid() {
		return "-"
	}
	return string([]byte{byte(ColBase + l.File - 1), byte(RankBase + l.Rank - 1)})
}

// ParseLocation parses an algebraic square name such as "e4".
func ParseLocation(s string) (Location, error) {
	if len(s) != 2 {
		return NoLocation, fmt.Errorf("%q: %w", s, errors.ErrInvalidSquare)
	}
	file := int(s[0]) - ColBase + 1
	rank := int(s[1]) - RankBase + 1
	if s[0] >= 'A' && s[0] <= 'H' {
		file = int(s[0]) - 'A' + 1
	}
	loc := Loc(file, rank)
	if !loc.Valid() {
		return NoLocation, fmt.Errorf("%q: %w", s, errors.ErrInvalidSquare)
	}
	return loc, nil
}

// MustParseLocation is ParseLocation for literals; it panics on bad input.
func MustParseLocation(s string) Location {
	loc, err := ParseLocation(s)
	if err != nil {
		panic(err)
	}
	return loc
}

// Direction is a unit step (or knight jump) across the board.
type Direction struct {
	File int
	Rank int
}

// Direction tables used by the ray walkers.
var (
	Orthogonals = [...]Direction{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}
	Diagonals   = [...]Direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

	AllDirections = [...]Direction{
		{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
		{0, 1}, {1, 0}, {-1, 0}, {0, -1},
	}

	KnightOffsets = [...]Direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

// IsDiagonal reports whether the direction runs along a diagonal.
func (d Direction) IsDiagonal() bool {
	return d.File != 0 && d.Rank != 0
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	return Direction{File: -d.File, Rank: -d.Rank}
}

// Ray returns every on-board location strictly beyond start in direction d,
// ordered outwards and ending at the board edge.
func Ray(start Location, d Direction) []Location {
	if d.File == 0 && d.Rank == 0 {
		return nil
	}
	var ray []Location
	for next := start.Step(d); next.Valid(); next = next.Step(d) {
		ray = append(ray, next)
	}
	return ray
}

// Collinear reports whether to lies on the line through from along d
// (in either sense).
func Collinear(from, to Location, d Direction) bool {
	df := int(to.File - from.File)
	dr := int(to.Rank - from.Rank)
	return df*d.Rank-dr*d.File == 0
}
