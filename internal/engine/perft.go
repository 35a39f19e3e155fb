package engine

import (
	"sort"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
)

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// The board is restored before returning.
func Perft(b *chess.Board, depth int, rules config.Rules) uint64 {
	return perft(b, depth, NewGenerator(WithRules(rules)))
}

func perft(b *chess.Board, depth int, g *Generator) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := g.Generate(b)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		rec := MakeMove(b, m)
		nodes += perft(b, depth-1, g)
		UnmakeMove(b, rec)
	}
	return nodes
}

// Divide runs perft below each root move, sorted by move text.
func Divide(b *chess.Board, depth int, rules config.Rules) []DivideEntry {
	if depth < 1 {
		return nil
	}
	g := NewGenerator(WithRules(rules))
	var entries []DivideEntry
	for _, m := range g.Generate(b) {
		rec := MakeMove(b, m)
		entries = append(entries, DivideEntry{Move: m.String(), Nodes: perft(b, depth-1, g)})
		UnmakeMove(b, rec)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	return entries
}
