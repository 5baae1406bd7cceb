package rules

import (
	"fmt"

	"github.com/IJMacD/chess/internal/board"
	"github.com/IJMacD/chess/internal/notation"
)

type castleLayout struct {
	kingFrom, kingTo string
	rookFrom, rookTo string
	between          []string
}

var castleFiles = map[notation.CastleSide]castleLayout{
	notation.Kingside:  {kingFrom: "e", kingTo: "g", rookFrom: "h", rookTo: "f", between: []string{"f", "g"}},
	notation.Queenside: {kingFrom: "e", kingTo: "c", rookFrom: "a", rookTo: "d", between: []string{"b", "c", "d"}},
}

// Apply validates the intent against b and commits it. On error b is left
// exactly as it was.
func Apply(b *board.Board, in notation.Intent) error {
	if in.Castle != notation.NoCastle {
		return castle(b, in)
	}

	if in.Promotion != board.NoKind {
		if in.Kind != board.Pawn {
			return fmt.Errorf("%w: only pawns promote, not a %s", ErrIllegalPromotion, in.Kind)
		}
		if in.Dest.RankName != backRank(in.Colour) {
			return fmt.Errorf("%w: %s pawns promote on rank %s, not %s", ErrIllegalPromotion, in.Colour, backRank(in.Colour), in.Dest)
		}
	}

	var from board.Position
	if in.HasSource() {
		from = in.Source()
		if b.At(from) != board.SymbolOf(in.Kind, in.Colour) {
			return fmt.Errorf("%w: no %s %s on %s", ErrIllegalMove, in.Colour, in.Kind, from)
		}
		if err := CheckMove(b, from, in.Dest); err != nil {
			return err
		}
	} else {
		var err error
		if from, err = Resolve(b, in); err != nil {
			return err
		}
	}

	placed := board.SymbolOf(in.Kind, in.Colour)
	if in.Kind == board.Pawn && in.Dest.RankName == backRank(in.Colour) {
		if in.Promotion == board.NoKind {
			return fmt.Errorf("%w: pawn reaching %s must name a promotion piece", ErrIllegalPromotion, in.Dest)
		}
		placed = board.SymbolOf(in.Promotion, in.Colour)
	}

	b.Set(from, board.Empty)
	b.Set(in.Dest, placed)
	return nil
}

func castle(b *board.Board, in notation.Intent) error {
	layout := castleFiles[in.Castle]
	rank := homeRank(in.Colour)
	sq := func(file string) board.Position { return board.PositionFromNames(file, rank) }

	king := board.SymbolOf(board.King, in.Colour)
	rook := board.SymbolOf(board.Rook, in.Colour)
	if b.At(sq(layout.kingFrom)) != king || b.At(sq(layout.rookFrom)) != rook {
		return fmt.Errorf("%w: %s needs king on %s and rook on %s", ErrIllegalCastling, in.Castle, sq(layout.kingFrom), sq(layout.rookFrom))
	}
	for _, f := range layout.between {
		if !b.At(sq(f)).IsEmpty() {
			return fmt.Errorf("%w: %s is occupied", ErrIllegalCastling, sq(f))
		}
	}

	b.Set(sq(layout.kingFrom), board.Empty)
	b.Set(sq(layout.rookFrom), board.Empty)
	b.Set(sq(layout.kingTo), king)
	b.Set(sq(layout.rookTo), rook)
	return nil
}

// homeRank is the rank name of a side's pieces in the starting layout.
func homeRank(c board.Colour) string {
	if c == board.Black {
		return "8"
	}
	return "1"
}

// backRank is the rank name on which a side's pawns promote.
func backRank(c board.Colour) string {
	if c == board.Black {
		return "1"
	}
	return "8"
}
