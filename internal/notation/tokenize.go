package notation

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/IJMacD/chess/internal/board"
)

// Move is one parsed half-move together with the token it came from.
type Move struct {
	Token  string
	Intent Intent
}

// Turn is one numbered pair of moves. A slot is nil when its token was
// missing or was not a move.
type Turn struct {
	Number int
	White  *Move
	Black  *Move
}

type slot uint8

const (
	whiteSlot slot = iota
	blackSlot
	closed
)

// Tokenize splits a move list into turns.
//
// A token of the form "N." (optionally glued to the move, as in "1.e4")
// opens a turn. The next token is the white slot and the one after it the
// black slot; a slot whose token is not a move stays nil, so "1. ... e5"
// gives black e5. "N..." opens the turn at the black slot and continues
// turn N when it has no black move yet. Brace comments do not take a slot.
// Anything after the black slot and anything before the first number is
// ignored, and a turn without any move is dropped.
// Full-width characters are narrowed first, so "１．ｅ４" reads as "1. e4".
func Tokenize(text string) []Turn {
	text = stripComments(width.Narrow.String(text))

	var (
		turns []Turn
		cur   *Turn
		next  = closed
	)
	flush := func() {
		if cur != nil && (cur.White != nil || cur.Black != nil) {
			turns = append(turns, *cur)
		}
		cur = nil
	}
	for _, field := range strings.Fields(text) {
		if n, rest, dots, ok := moveNumber(field); ok {
			flush()
			next = whiteSlot
			if dots >= 3 {
				next = blackSlot
				if last := len(turns) - 1; last >= 0 && turns[last].Number == n && turns[last].Black == nil {
					prev := turns[last]
					turns = turns[:last]
					cur = &prev
				}
			}
			if cur == nil {
				cur = &Turn{Number: n}
			}
			if rest == "" {
				continue
			}
			field = rest
		}
		if cur == nil || next == closed {
			continue
		}

		colour := board.White
		if next == blackSlot {
			colour = board.Black
		}
		if in, err := Parse(field, colour); err == nil {
			mv := &Move{Token: field, Intent: in}
			if next == whiteSlot {
				cur.White = mv
			} else {
				cur.Black = mv
			}
		}
		next++
	}
	flush()
	return turns
}

// stripComments removes {...} comments, including unterminated ones.
func stripComments(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	var sb strings.Builder
	for {
		i := strings.IndexByte(text, '{')
		if i < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		sb.WriteString(text[:i])
		sb.WriteByte(' ')
		j := strings.IndexByte(text[i:], '}')
		if j < 0 {
			return sb.String()
		}
		text = text[i+j+1:]
	}
}

// TotalTurns returns the number of turns Tokenize finds in text.
func TotalTurns(text string) int {
	return len(Tokenize(text))
}

// moveNumber splits a "12." or "12.Nf3" token into its number, the rest and
// the number of dots ("12..." has three).
func moveNumber(field string) (int, string, int, bool) {
	i := 0
	for i < len(field) && field[i] >= '0' && field[i] <= '9' {
		i++
	}
	if i == 0 || i == len(field) || field[i] != '.' {
		return 0, "", 0, false
	}
	n, err := strconv.Atoi(field[:i])
	if err != nil {
		return 0, "", 0, false
	}
	rest := strings.TrimLeft(field[i:], ".")
	return n, rest, len(field) - i - len(rest), true
}
