package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// lineDirection returns the unit direction from one square towards another
// when they share a rank, file or diagonal.
func lineDirection(from, to chess.Location) (chess.Direction, bool) {
	df := int(to.File) - int(from.File)
	dr := int(to.Rank) - int(from.Rank)
	if df == 0 && dr == 0 {
		return chess.Direction{}, false
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return chess.Direction{}, false
	}
	return chess.Direction{File: sign(df), Rank: sign(dr)}, true
}

// squaresBetween returns the squares strictly between two aligned squares,
// or nil when they are adjacent or not aligned.
func squaresBetween(from, to chess.Location) []chess.Location {
	d, ok := lineDirection(from, to)
	if !ok {
		return nil
	}
	var path []chess.Location
	for loc := from.Step(d); loc.Valid() && loc != to; loc = loc.Step(d) {
		path = append(path, loc)
	}
	return path
}
