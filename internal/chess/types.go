// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// NumColours is the number of sides.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PawnStartRank returns the rank pawns of the colour start on.
func PawnStartRank(colour Colour) int {
	if colour == White {
		return 2
	}
	return 7
}

// PromotionRank returns the rank on which pawns of the colour promote.
func PromotionRank(colour Colour) int {
	if colour == White {
		return 8
	}
	return 1
}

// HomeRank returns the back rank of the colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return 8
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsSlider reports whether the kind moves along rays.
func (k Kind) IsSlider() bool {
	return k == Bishop || k == Rook || k == Queen
}

// SlidesDiagonally reports whether the kind attacks along diagonals.
func (k Kind) SlidesDiagonally() bool {
	return k == Bishop || k == Queen
}

// SlidesOrthogonally reports whether the kind attacks along ranks and files.
func (k Kind) SlidesOrthogonally() bool {
	return k == Rook || k == Queen
}

// KindFromLetter converts a piece letter (either case) to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// PromotionKinds lists the kinds a pawn may promote to, strongest first.
var PromotionKinds = [...]Kind{Queen, Rook, Bishop, Knight}

// Shade is the fixed colour of a board square.
type Shade int

const (
	Dark Shade = iota
	Light
)

// String returns the string representation of a shade.
func (s Shade) String() string {
	if s == Light {
		return "Light"
	}
	return "Dark"
}

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	ColBase  = 'a'
)
