// Package notation turns algebraic move text into structured move intents.
// It only recognises the shape of a move; legality is decided elsewhere.
package notation

import (
	"strings"
	"unicode/utf8"

	"github.com/IJMacD/chess/internal/board"
)

type staticErr string

func (e staticErr) Error() string { return string(e) }

// ErrNotAMove is returned for tokens that do not follow the move grammar.
// Callers skip such tokens instead of treating them as failures.
var ErrNotAMove error = staticErr("not a move")

// NoIndex marks an absent source file or rank.
const NoIndex = -1

// CastleSide tags castling intents.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

func (c CastleSide) String() string {
	switch c {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	}
	return ""
}

// Intent is a parsed move. For castling only Castle and Colour are set.
// Otherwise Dest is always a full square and SourceFile/SourceRank are
// independently NoIndex when the token did not give them.
type Intent struct {
	Castle     CastleSide
	Colour     board.Colour
	Kind       board.Kind
	SourceFile int
	SourceRank int
	Dest       board.Position
	Promotion  board.Kind
	Capture    bool
}

// HasSource reports whether both source file and rank were given.
func (in Intent) HasSource() bool {
	return in.SourceFile != NoIndex && in.SourceRank != NoIndex
}

// Source returns the explicit source square; only meaningful when HasSource.
func (in Intent) Source() board.Position {
	return board.PositionFromIndices(in.SourceFile, in.SourceRank)
}

// Parse reads one move token, without its move number, for the given side.
//
// Recognised forms, after trailing annotation marks (+ # ! ?) are dropped:
//
//	O-O, O-O-O
//	[KQBNR][file][rank][x|-|:]<file><rank>[=QBNR]
//
// The piece letter may also be a figurine glyph such as ♘.
func Parse(token string, c board.Colour) (Intent, error) {
	s := strings.TrimRight(strings.TrimSpace(token), "+#!?")
	switch s {
	case "O-O":
		return Intent{Castle: Kingside, Colour: c, SourceFile: NoIndex, SourceRank: NoIndex}, nil
	case "O-O-O":
		return Intent{Castle: Queenside, Colour: c, SourceFile: NoIndex, SourceRank: NoIndex}, nil
	}

	in := Intent{Colour: c, Kind: board.Pawn, SourceFile: NoIndex, SourceRank: NoIndex}

	if i := strings.IndexByte(s, '='); i >= 0 {
		if len(s) != i+2 {
			return Intent{}, ErrNotAMove
		}
		promo, ok := pieceLetter(s[i+1])
		if !ok || promo == board.King {
			return Intent{}, ErrNotAMove
		}
		in.Promotion = promo
		s = s[:i]
	}

	s = figurineToLetter(s)
	if s == "" {
		return Intent{}, ErrNotAMove
	}
	if k, ok := pieceLetter(s[0]); ok {
		in.Kind = k
		s = s[1:]
	}

	if len(s) < 2 || !board.IsFileByte(s[len(s)-2]) || !board.IsRankByte(s[len(s)-1]) {
		return Intent{}, ErrNotAMove
	}
	in.Dest = board.PositionFromNames(s[len(s)-2:len(s)-1], s[len(s)-1:])
	mid := s[:len(s)-2]

	if n := len(mid); n > 0 && isCaptureByte(mid[n-1]) {
		in.Capture = mid[n-1] == 'x' || mid[n-1] == ':'
		mid = mid[:n-1]
	}

	switch len(mid) {
	case 0:
	case 1:
		switch {
		case board.IsFileByte(mid[0]):
			in.SourceFile = board.FileIndex(mid)
		case board.IsRankByte(mid[0]):
			in.SourceRank = board.RankIndex(mid)
		default:
			return Intent{}, ErrNotAMove
		}
	case 2:
		if !board.IsFileByte(mid[0]) || !board.IsRankByte(mid[1]) {
			return Intent{}, ErrNotAMove
		}
		in.SourceFile = board.FileIndex(mid[:1])
		in.SourceRank = board.RankIndex(mid[1:])
	default:
		return Intent{}, ErrNotAMove
	}
	return in, nil
}

func pieceLetter(c byte) (board.Kind, bool) {
	switch c {
	case 'K', 'Q', 'B', 'N', 'R':
		return board.KindFromCode(string(c))
	}
	return board.NoKind, false
}

func isCaptureByte(c byte) bool {
	return c == 'x' || c == ':' || c == '-'
}

// figurineToLetter replaces a leading figurine glyph with its letter.
// Pawn figurines are dropped since pawns have no letter.
func figurineToLetter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	sym, ok := board.SymbolFromRune(r)
	if !ok {
		return s
	}
	return sym.Code() + s[size:]
}
