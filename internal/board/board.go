// Package board holds the coordinate, piece and board model shared by the
// notation parser, the rules engine and the replayer.
package board

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Board is an 8x8 grid indexed [rank][file]; rank 0 is the 8th rank.
// It is a plain array, so assigning a Board copies it.
type Board [Size][Size]Symbol

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns the standard starting layout.
func New() Board {
	var b Board
	for f, k := range backRank {
		b[0][f] = SymbolOf(k, Black)
		b[1][f] = BlackPawn
		b[6][f] = WhitePawn
		b[7][f] = SymbolOf(k, White)
	}
	return b
}

// Blank returns a board with every square empty.
func Blank() Board {
	return Board{}
}

// FromRows builds a board from eight rows, top (8th rank) first. Each row
// holds eight runes: a figurine glyph or '.' for an empty square.
func FromRows(rows [Size]string) (Board, error) {
	var b Board
	for r, row := range rows {
		if n := utf8.RuneCountInString(row); n != Size {
			return Board{}, fmt.Errorf("row %d: want %d squares, got %d", r, Size, n)
		}
		f := 0
		for _, ch := range row {
			if ch != '.' {
				s, ok := SymbolFromRune(ch)
				if !ok {
					return Board{}, fmt.Errorf("row %d: unknown piece %q", r, ch)
				}
				b[r][f] = s
			}
			f++
		}
	}
	return b, nil
}

// At returns the symbol on p.
func (b *Board) At(p Position) Symbol {
	return b[p.Rank][p.File]
}

// Set places s on p; Empty clears the square.
func (b *Board) Set(p Position, s Symbol) {
	b[p.Rank][p.File] = s
}

// Rows returns the board as strings, empty squares as "".
func (b Board) Rows() [Size][Size]string {
	var out [Size][Size]string
	for r := range Size {
		for f := range Size {
			out[r][f] = b[r][f].String()
		}
	}
	return out
}

// String draws the board as text with rank and file labels.
func (b Board) String() string {
	var sb strings.Builder
	for r := range Size {
		sb.WriteString(RankName(r))
		sb.WriteByte(' ')
		for f := range Size {
			if b[r][f] == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(rune(b[r][f]))
			}
			if f < Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
