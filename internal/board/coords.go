package board

import (
	"fmt"
	"strconv"
)

// Size is the number of files and ranks on the board.
const Size = 8

// FileName returns the letter for a zero-based file index ("a" for 0).
func FileName(file int) string {
	return string(rune('a' + file))
}

// FileIndex returns the zero-based index of a file letter.
func FileIndex(name string) int {
	if name == "" {
		return -1
	}
	return int(name[0]) - 'a'
}

// RankName returns the rank digit for a zero-based rank index.
// Index 0 is the top row of the board, i.e. the 8th rank.
func RankName(rank int) string {
	return strconv.Itoa(Size - rank)
}

// RankIndex returns the zero-based index of a rank digit ("8" is 0, "1" is 7).
func RankIndex(name string) int {
	if name == "" {
		return -1
	}
	return Size - (int(name[0]) - '0')
}

// Position is a square carrying both its human names and its indices.
// Always build one with PositionFromNames or PositionFromIndices so that
// the two forms agree.
type Position struct {
	File     int
	Rank     int
	FileName string
	RankName string
}

// PositionFromNames builds a Position from a file letter and a rank digit.
func PositionFromNames(file, rank string) Position {
	return Position{
		File:     FileIndex(file),
		Rank:     RankIndex(rank),
		FileName: file,
		RankName: rank,
	}
}

// PositionFromIndices builds a Position from zero-based indices.
func PositionFromIndices(file, rank int) Position {
	return Position{
		File:     file,
		Rank:     rank,
		FileName: FileName(file),
		RankName: RankName(rank),
	}
}

// ParsePosition parses a square name such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || !IsFileByte(s[0]) || !IsRankByte(s[1]) {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return PositionFromNames(s[:1], s[1:]), nil
}

// MustPosition is ParsePosition for literals known to be valid.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether both indices are on the board.
func (p Position) Valid() bool {
	return p.File >= 0 && p.File < Size && p.Rank >= 0 && p.Rank < Size
}

func (p Position) String() string {
	return p.FileName + p.RankName
}

// IsFileByte reports whether c is a file letter a-h.
func IsFileByte(c byte) bool { return c >= 'a' && c <= 'h' }

// IsRankByte reports whether c is a rank digit 1-8.
func IsRankByte(c byte) bool { return c >= '1' && c <= '8' }
