package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// palette holds the harness colours. All entries are switched on or off
// together.
type palette struct {
	ok      *color.Color
	bad     *color.Color
	info    *color.Color
	alert   *color.Color
	white   *color.Color
	black   *color.Color
	target  *color.Color
	checked *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		ok:      color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		info:    color.New(color.FgCyan),
		alert:   color.New(color.FgYellow, color.Bold),
		white:   color.New(color.FgHiWhite, color.Bold),
		black:   color.New(color.FgHiBlue),
		target:  color.New(color.BgGreen, color.FgBlack),
		checked: color.New(color.BgRed, color.FgHiWhite),
	}
	for _, c := range p.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) all() []*color.Color {
	return []*color.Color{p.ok, p.bad, p.info, p.alert, p.white, p.black, p.target, p.checked}
}

// renderBoard draws the board from White's side. Legal destinations are
// marked with the target colour and a king in check with the checked
// colour.
func renderBoard(w io.Writer, b *chess.Board, inCheck bool, p *palette) {
	checkedKing := chess.NoLocation
	if inCheck {
		checkedKing = b.Piece(b.King(b.ToMove)).Location
	}

	for rank := chess.BoardSize; rank >= 1; rank-- {
		fmt.Fprintf(w, "%d ", rank)
		for file := 1; file <= chess.BoardSize; file++ {
			loc := chess.Loc(file, rank)
			sq := b.MustGet(loc)

			text := "."
			c := p.white
			if sq.Occupant != chess.NoPiece {
				piece := b.Piece(sq.Occupant)
				text = string(piece.Letter())
				if piece.Colour == chess.Black {
					c = p.black
				}
			}
			switch {
			case loc == checkedKing:
				c = p.checked
			case sq.Attacked:
				c = p.target
			}
			c.Fprint(w, text)
			if file < chess.BoardSize {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "  a b c d e f g h")
}
