// Package replay rebuilds the board for a move list up to a cursor.
//
// Every call starts from the standard layout, so results never depend on
// earlier calls.
package replay

import (
	"fmt"

	"github.com/IJMacD/chess/internal/board"
	"github.com/IJMacD/chess/internal/notation"
	"github.com/IJMacD/chess/internal/rules"
)

// TurnError reports the first move that could not be applied.
type TurnError struct {
	Turn   int // 1-based position in the turn list
	Number int // move number as written in the text
	Colour board.Colour
	Token  string
	Err    error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn %d (%d. %s %q): %v", e.Turn, e.Number, e.Colour, e.Token, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// Replay tokenizes text and replays it up to cursor. See Run.
func Replay(text string, cursor int) (board.Board, error) {
	return Run(notation.Tokenize(text), cursor)
}

// Run applies the white then black move of turns 1..cursor to a fresh
// starting board, passing over empty slots. A cursor of zero or less yields the starting board; a
// cursor past the end replays every turn.
//
// On the first failing move Run stops and returns the board as it stood
// before that move together with a *TurnError.
func Run(turns []notation.Turn, cursor int) (board.Board, error) {
	b := board.New()
	n := min(max(cursor, 0), len(turns))
	for i, t := range turns[:n] {
		for _, mv := range [...]*notation.Move{t.White, t.Black} {
			if mv == nil {
				continue
			}
			if err := rules.Apply(&b, mv.Intent); err != nil {
				return b, &TurnError{Turn: i + 1, Number: t.Number, Colour: mv.Intent.Colour, Token: mv.Token, Err: err}
			}
		}
	}
	return b, nil
}

// TotalTurns returns the number of turns in text.
func TotalTurns(text string) int {
	return notation.TotalTurns(text)
}
