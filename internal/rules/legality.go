// Package rules decides whether a move is legal on a board and applies it.
//
// Legality is geometric only: occupancy, colour and per-piece movement
// shape. King safety, en passant and move history are not modelled.
package rules

import (
	"fmt"

	"github.com/IJMacD/chess/internal/board"
)

// CheckMove returns nil when moving the piece on from to to is legal,
// otherwise an error wrapping ErrIllegalMove that names the reason.
func CheckMove(b *board.Board, from, to board.Position) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %s-%s is off the board", ErrIllegalMove, from, to)
	}
	mover := b.At(from)
	if mover.IsEmpty() {
		return fmt.Errorf("%w: no piece on %s", ErrIllegalMove, from)
	}
	colour, _ := mover.Colour()
	target := b.At(to)
	if tc, ok := target.Colour(); ok && tc == colour {
		return fmt.Errorf("%w: %s cannot capture own piece on %s", ErrIllegalMove, mover, to)
	}

	df := to.File - from.File
	dr := to.Rank - from.Rank
	adf, adr := abs(df), abs(dr)

	var ok bool
	switch mover.Kind() {
	case board.Pawn:
		ok = pawnMove(colour, from, to, !target.IsEmpty())
	case board.Knight:
		ok = (adf == 1 && adr == 2) || (adf == 2 && adr == 1)
	case board.King:
		ok = adf <= 1 && adr <= 1
	case board.Bishop:
		ok = adf == adr && PathClear(b, from, to)
	case board.Rook:
		ok = (df == 0) != (dr == 0) && PathClear(b, from, to)
	case board.Queen:
		ok = (adf == adr || (df == 0) != (dr == 0)) && PathClear(b, from, to)
	}
	if !ok {
		return fmt.Errorf("%w: %s cannot move %s-%s", ErrIllegalMove, mover.Kind(), from, to)
	}
	return nil
}

// Legal reports whether CheckMove accepts the move.
func Legal(b *board.Board, from, to board.Position) bool {
	return CheckMove(b, from, to) == nil
}

// pawnMove checks pawn arithmetic. Captures are one square diagonally in
// either direction; pushes stay on the file and advance one square, or two
// from the home rank. The skipped square is not inspected.
func pawnMove(c board.Colour, from, to board.Position, capture bool) bool {
	df := to.File - from.File
	dr := to.Rank - from.Rank
	if capture {
		return abs(df) == 1 && abs(dr) == 1
	}
	if df != 0 {
		return false
	}
	forward, home := -1, board.RankIndex("2")
	if c == board.Black {
		forward, home = 1, board.RankIndex("7")
	}
	switch dr {
	case forward:
		return true
	case 2 * forward:
		return from.Rank == home
	}
	return false
}

// PathClear reports whether every square strictly between from and to is
// empty, stepping one square at a time by the sign of each delta. Adjacent
// squares have an empty path and are always clear. The squares must share a
// file, rank or diagonal.
func PathClear(b *board.Board, from, to board.Position) bool {
	sf := sign(to.File - from.File)
	sr := sign(to.Rank - from.Rank)
	f, r := from.File+sf, from.Rank+sr
	for f != to.File || r != to.Rank {
		if f < 0 || f >= board.Size || r < 0 || r >= board.Size {
			return false
		}
		if b[r][f] != board.Empty {
			return false
		}
		f += sf
		r += sr
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
