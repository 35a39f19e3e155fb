// Package hashing provides Zobrist position keys and repetition counting.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// zobristSeed fixes the key tables so keys are stable across runs.
const zobristSeed = 0x5eed_c0de

type zobristTables struct {
	pieces [chess.NumColours][chess.NumKinds][chess.NumSquares]uint64
	side   uint64
	castle [chess.NumColours][2]uint64
	ep     [chess.BoardSize]uint64
}

var zobrist = newZobristTables(zobristSeed)

func newZobristTables(seed int64) *zobristTables {
	r := rand.New(rand.NewSource(seed))
	t := &zobristTables{side: r.Uint64()}
	for c := range t.pieces {
		for k := range t.pieces[c] {
			for sq := range t.pieces[c][k] {
				t.pieces[c][k][sq] = r.Uint64()
			}
		}
		t.castle[c][0] = r.Uint64()
		t.castle[c][1] = r.Uint64()
	}
	for f := range t.ep {
		t.ep[f] = r.Uint64()
	}
	return t
}

// Key returns the Zobrist key of a position: piece placement, side to
// move, castling eligibility and the file of an en passant eligible pawn.
func Key(b *chess.Board) uint64 {
	var key uint64
	for _, c := range [...]chess.Colour{chess.Black, chess.White} {
		for _, id := range b.Pieces(c) {
			p := b.Piece(id)
			key ^= zobrist.pieces[c][p.Kind][p.Location.Index()]
			if p.EnPassantEligible {
				key ^= zobrist.ep[p.Location.File-1]
			}
		}
		kingside, queenside := b.CastlingRights(c)
		if kingside {
			key ^= zobrist.castle[c][0]
		}
		if queenside {
			key ^= zobrist.castle[c][1]
		}
	}
	if b.ToMove == chess.White {
		key ^= zobrist.side
	}
	return key
}

// History records the keys of the positions of one game in order and
// counts how often each has occurred.
type History struct {
	keys   []uint64
	counts map[uint64]int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{counts: make(map[uint64]int)}
}

// Push records a position and returns how many times it has now occurred.
func (h *History) Push(key uint64) int {
	h.keys = append(h.keys, key)
	h.counts[key]++
	return h.counts[key]
}

// Pop forgets the most recent position. It reports false when empty.
func (h *History) Pop() (uint64, bool) {
	if len(h.keys) == 0 {
		return 0, false
	}
	key := h.keys[len(h.keys)-1]
	h.keys = h.keys[:len(h.keys)-1]
	if h.counts[key]--; h.counts[key] == 0 {
		delete(h.counts, key)
	}
	return key, true
}

// Count returns how many times the position has occurred.
func (h *History) Count(key uint64) int {
	return h.counts[key]
}

// Last returns the most recent key.
func (h *History) Last() (uint64, bool) {
	if len(h.keys) == 0 {
		return 0, false
	}
	return h.keys[len(h.keys)-1], true
}

// Len returns the number of recorded positions.
func (h *History) Len() int {
	return len(h.keys)
}

// Reset clears the history.
func (h *History) Reset() {
	h.keys = nil
	h.counts = make(map[uint64]int)
}
