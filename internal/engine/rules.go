package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// DrawRuleResult reports the draw conditions of the current position.
// They are informational; the handler keeps accepting moves.
type DrawRuleResult struct {
	// HasThreefoldRepetition is true if the position occurred 3 or more times.
	HasThreefoldRepetition bool

	// Has5FoldRepetition is true if the position occurred 5 or more times.
	Has5FoldRepetition bool

	// HasInsufficientMaterial is true if neither side can deliver mate.
	HasInsufficientMaterial bool
}

// Any reports whether any draw condition holds.
func (r DrawRuleResult) Any() bool {
	return r.HasThreefoldRepetition || r.Has5FoldRepetition || r.HasInsufficientMaterial
}

// AnalyzeDrawRules checks the handler's current position for draw conditions.
func AnalyzeDrawRules(h *Handler) DrawRuleResult {
	reps := h.Repetitions()
	return DrawRuleResult{
		HasThreefoldRepetition:  reps >= 3,
		Has5FoldRepetition:      reps >= 5,
		HasInsufficientMaterial: HasInsufficientMaterial(h.Board()),
	}
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same colour bishops)
func HasInsufficientMaterial(b *chess.Board) bool {
	var minors [chess.NumColours][]chess.Kind
	var bishopShade [chess.NumColours]chess.Shade

	for _, c := range [...]chess.Colour{chess.Black, chess.White} {
		for _, id := range b.Pieces(c) {
			p := b.Piece(id)
			switch p.Kind {
			case chess.King:
				continue
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			case chess.Bishop:
				bishopShade[c] = b.MustGet(p.Location).Shade
			}
			minors[c] = append(minors[c], p.Kind)
		}
	}

	white, black := minors[chess.White], minors[chess.Black]

	// K vs K
	if len(white) == 0 && len(black) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(white) == 0 && len(black) == 1 {
		return true
	}
	if len(black) == 0 && len(white) == 1 {
		return true
	}

	// K+B vs K+B on the same shade
	if len(white) == 1 && len(black) == 1 &&
		white[0] == chess.Bishop && black[0] == chess.Bishop {
		return bishopShade[chess.White] == bishopShade[chess.Black]
	}

	return false
}
