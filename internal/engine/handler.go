package engine

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// Handler sequences turns on one board: it validates proposed moves
// against the generated legal set, applies them and keeps undo and redo
// stacks.
type Handler struct {
	board   *chess.Board
	gen     *Generator
	history *hashing.History

	undo []UndoRecord
	redo []Move

	log       io.Writer
	verbosity int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLog sends move commentary to w. Accepted and rejected moves are
// logged at verbosity 2 and above.
func WithLog(w io.Writer, verbosity int) HandlerOption {
	return func(h *Handler) {
		h.log = w
		h.verbosity = verbosity
	}
}

// WithGenerator replaces the default generator.
func WithGenerator(g *Generator) HandlerOption {
	return func(h *Handler) {
		h.gen = g
	}
}

// NewHandler takes ownership of b and generates its first move set.
func NewHandler(b *chess.Board, opts ...HandlerOption) *Handler {
	h := &Handler{
		board:   b,
		history: hashing.NewHistory(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.gen == nil {
		h.gen = NewGenerator(WithHighlight(true))
	}
	h.history.Push(hashing.Key(b))
	h.gen.Generate(b)
	return h
}

func (h *Handler) logf(format string, args ...interface{}) {
	if h.log == nil || h.verbosity < 2 {
		return
	}
	fmt.Fprintf(h.log, format+"\n", args...)
}

// TryMove applies m if it is legal for the side to move. It returns false
// without touching the board otherwise. A successful move clears the redo
// stack.
func (h *Handler) TryMove(m Move) bool {
	if !h.tryMove(m) {
		return false
	}
	h.redo = nil
	return true
}

func (h *Handler) tryMove(m Move) bool {
	id := h.board.PieceAt(m.From)
	if id == chess.NoPiece {
		h.logf("reject %s: no piece on %s", m, m.From)
		return false
	}
	if p := h.board.Piece(id); p.Colour != h.board.ToMove {
		h.logf("reject %s: %s is not to move", m, p.Colour)
		return false
	}
	legal, ok := h.gen.Find(m.From, m.To, m.Promotion)
	if !ok {
		h.logf("reject %s: not a legal move", m)
		return false
	}

	rec := MakeMove(h.board, legal)
	h.gen.Generate(h.board)
	if h.gen.InCheck() {
		rec.Move.Flag |= FlagCheck
		if len(h.gen.Moves()) == 0 {
			rec.Move.Flag |= FlagCheckmate
		}
	}
	h.undo = append(h.undo, rec)
	h.history.Push(hashing.Key(h.board))
	h.logf("ply %d: %s (%s)", len(h.undo), rec.Move, rec.Move.Flag)
	return true
}

// Move wraps a from/to pair from the presentation layer. Promotions
// default to a queen.
func (h *Handler) Move(from, to chess.Location) bool {
	return h.TryMove(UserMove(from, to, chess.NoKind))
}

// Apply is TryMove with an error describing a rejection.
func (h *Handler) Apply(m Move) error {
	if h.TryMove(m) {
		return nil
	}
	return &errors.MoveError{
		Err:  errors.ErrIllegalMove,
		Ply:  len(h.undo) + 1,
		From: m.From.String(),
		To:   m.To.String(),
	}
}

// Undo reverts the last move and makes it available to Redo.
func (h *Handler) Undo() error {
	if len(h.undo) == 0 {
		h.logf("undo: nothing to undo")
		return errors.ErrNothingToUndo
	}
	rec := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	rec.Revert(h.board)
	h.board.ResetMarkers()
	h.history.Pop()
	h.redo = append(h.redo, rec.Move)
	h.gen.Generate(h.board)
	h.logf("undo %s", rec.Move)
	return nil
}

// Redo replays the most recently undone move.
func (h *Handler) Redo() error {
	if len(h.redo) == 0 {
		h.logf("redo: nothing to redo")
		return errors.ErrNothingToRedo
	}
	m := h.redo[len(h.redo)-1]
	if !h.tryMove(UserMove(m.From, m.To, m.Promotion)) {
		return fmt.Errorf("redo %s: %w", m, errors.ErrInvariant)
	}
	h.redo = h.redo[:len(h.redo)-1]
	return nil
}

// Board returns the board being played on.
func (h *Handler) Board() *chess.Board {
	return h.board
}

// Generator returns the generator holding the current move set.
func (h *Handler) Generator() *Generator {
	return h.gen
}

// Moves returns the legal moves of the side to move.
func (h *Handler) Moves() []Move {
	return h.gen.Moves()
}

// InCheck reports whether the side to move is in check.
func (h *Handler) InCheck() bool {
	return h.gen.InCheck()
}

// InDoubleCheck reports whether the side to move is in double check.
func (h *Handler) InDoubleCheck() bool {
	return h.gen.InDoubleCheck()
}

// Outcome classifies the current position.
func (h *Handler) Outcome() Outcome {
	return Classify(h.gen)
}

// History returns the applied moves, oldest first, with check flags.
func (h *Handler) History() []Move {
	moves := make([]Move, len(h.undo))
	for i, rec := range h.undo {
		moves[i] = rec.Move
	}
	return moves
}

// Repetitions returns how many times the current position has occurred.
func (h *Handler) Repetitions() int {
	return h.history.Count(hashing.Key(h.board))
}

// Ply returns the number of moves applied.
func (h *Handler) Ply() int {
	return len(h.undo)
}

// CanUndo reports whether there is a move to undo.
func (h *Handler) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether there is a move to redo.
func (h *Handler) CanRedo() bool {
	return len(h.redo) > 0
}
