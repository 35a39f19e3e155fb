// Package engine provides chess move generation, application and undo.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = config.InitialFEN

// fenError builds a parse error wrapping ErrInvalidFEN.
func fenError(column int, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidFEN,
		Source:   "fen",
		Line:     1,
		Column:   column,
		Expected: expected,
		Got:      got,
	}
}

// NewBoardFromFEN creates a board from a FEN string. Castling rights are
// mapped onto the moved flags of kings and rooks, and the en passant target
// onto the pawn that has just advanced. Clocks are accepted but not kept.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}
	if len(parts) > 6 {
		return nil, fenError(0, "at most 6 fields", strconv.Itoa(len(parts)))
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}

	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}

	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err)
	}

	if err := parseCastlingRights(board, parts); err != nil {
		return nil, err
	}
	markPawnsMoved(board)

	if err := parseEnPassant(board, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(parts); err != nil {
		return nil, err
	}

	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fmt.Errorf("%s to move but %s is in check: %w",
			board.ToMove, board.ToMove.Opposite(), errors.ErrInvalidFEN)
	}

	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	rank := chess.BoardSize
	file := 1

	for i, c := range positions {
		switch {
		case c == '/':
			if file != chess.BoardSize+1 {
				return fenError(i+1, "8 squares per rank", strconv.Itoa(file-1))
			}
			rank--
			file = 1
			if rank < 1 {
				return fenError(i+1, "8 ranks", "more")
			}
		case c >= '1' && c <= '8':
			file += int(c - '0')
			if file > chess.BoardSize+1 {
				return fenError(i+1, "8 squares per rank", "more")
			}
		default:
			kind := chess.KindFromLetter(byte(c))
			if kind == chess.NoKind {
				return fenError(i+1, "piece letter", string(c))
			}
			if file > chess.BoardSize {
				return fenError(i+1, "8 squares per rank", "more")
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			if kind == chess.Pawn && (rank == 1 || rank == chess.BoardSize) {
				return fenError(i+1, "no pawns on the back ranks", chess.Loc(file, rank).String())
			}

			if _, err := board.Place(colour, kind, chess.Loc(file, rank)); err != nil {
				return fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err)
			}
			file++
		}
	}
	if rank != 1 || file != chess.BoardSize+1 {
		return fenError(len(positions), "8 complete ranks", positions)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fenError(0, "w or b", parts[1])
	}
	return nil
}

// parseCastlingRights maps the castling field onto moved flags. Every king
// and rook starts as moved; a right clears the flags of the king on its
// home square and the rook in the matching corner.
func parseCastlingRights(board *chess.Board, parts []string) error {
	for _, c := range [...]chess.Colour{chess.Black, chess.White} {
		for _, id := range board.Pieces(c) {
			p := board.Piece(id)
			if p.Kind == chess.King || p.Kind == chess.Rook {
				p.HasMoved = true
			}
		}
	}

	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		var rookFile int
		switch unicode.ToUpper(c) {
		case 'K':
			rookFile = chess.KingsideRookFile
		case 'Q':
			rookFile = chess.QueensideRookFile
		default:
			return fenError(0, "castling rights KQkq or -", string(c))
		}

		home := chess.HomeRank(colour)
		king := pieceOn(board, chess.Loc(chess.KingHomeFile, home), colour, chess.King)
		rook := pieceOn(board, chess.Loc(rookFile, home), colour, chess.Rook)
		if king == nil || rook == nil {
			return fenError(0, "king and rook on their home squares", string(c))
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

// markPawnsMoved flags every pawn away from its start rank as moved.
func markPawnsMoved(board *chess.Board) {
	for _, c := range [...]chess.Colour{chess.Black, chess.White} {
		for _, id := range board.Pawns(c) {
			p := board.Piece(id)
			p.HasMoved = int(p.Location.Rank) != chess.PawnStartRank(c)
		}
	}
}

// parseEnPassant marks the pawn standing in front of the target square.
func parseEnPassant(board *chess.Board, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	target, err := chess.ParseLocation(parts[3])
	if err != nil {
		return fenError(0, "en passant square", parts[3])
	}
	mover := board.ToMove.Opposite()
	if int(target.Rank) != chess.PawnStartRank(mover)+chess.ColourOffset(mover) {
		return fenError(0, "en passant square on rank 3 or 6", parts[3])
	}
	pawn := pieceOn(board, target.Offset(0, chess.ColourOffset(mover)), mover, chess.Pawn)
	if pawn == nil || board.PieceAt(target) != chess.NoPiece {
		return fenError(0, "pawn that has just advanced two squares", parts[3])
	}
	pawn.EnPassantEligible = true
	return nil
}

// parseClocks checks the halfmove clock and fullmove number fields.
func parseClocks(parts []string) error {
	for i := 4; i < len(parts); i++ {
		if n, err := strconv.Atoi(parts[i]); err != nil || n < 0 {
			return fenError(0, "non-negative move counter", parts[i])
		}
	}
	return nil
}

// pieceOn returns the piece on loc if it has the given colour and kind.
func pieceOn(board *chess.Board, loc chess.Location, colour chess.Colour, kind chess.Kind) *chess.Piece {
	id := board.PieceAt(loc)
	if id == chess.NoPiece {
		return nil
	}
	p := board.Piece(id)
	if p.Colour != colour || p.Kind != kind {
		return nil
	}
	return p
}

// BoardToFEN converts a board to a FEN string. The clocks are not tracked
// and are always written as "0 1".
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize; rank >= 1; rank-- {
		emptyCount := 0
		for file := 1; file <= chess.BoardSize; file++ {
			id := board.PieceAt(chess.Loc(file, rank))
			if id == chess.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(board.Piece(id).Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, c := range [...]chess.Colour{chess.White, chess.Black} {
		kingside, queenside := board.CastlingRights(c)
		k, q := byte('K'), byte('Q')
		if c == chess.Black {
			k, q = 'k', 'q'
		}
		if kingside {
			sb.WriteByte(k)
			hasCastling = true
		}
		if queenside {
			sb.WriteByte(q)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind an eligible pawn, if any.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if loc := EnPassantTarget(board); loc.Valid() {
		sb.WriteString(loc.String())
		return
	}
	sb.WriteByte('-')
}

// EnPassantTarget returns the square behind the pawn that may be taken en
// passant, or NoLocation.
func EnPassantTarget(board *chess.Board) chess.Location {
	mover := board.ToMove.Opposite()
	for _, id := range board.Pawns(mover) {
		if p := board.Piece(id); p.EnPassantEligible {
			return p.Location.Offset(0, -chess.ColourOffset(mover))
		}
	}
	return chess.NoLocation
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, err := NewBoardFromFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return board
}
