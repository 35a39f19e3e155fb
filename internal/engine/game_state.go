package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
)

// Outcome classifies a position for the side to move.
type Outcome int

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Classify combines the last generation's move set with its check flag.
func Classify(g *Generator) Outcome {
	if len(g.Moves()) > 0 {
		return Ongoing
	}
	if g.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(b *chess.Board) bool {
	g := NewGenerator(WithRules(config.DefaultRules()))
	g.Generate(b)
	return Classify(g) == Checkmate
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(b *chess.Board) bool {
	g := NewGenerator(WithRules(config.DefaultRules()))
	g.Generate(b)
	return Classify(g) == Stalemate
}
