package rules

import (
	"fmt"

	"github.com/IJMacD/chess/internal/board"
	"github.com/IJMacD/chess/internal/notation"
)

// Candidates lists the squares holding a piece of kind and colour, scanning
// rank index 0 to 7 and, within a rank, file index 0 to 7. file and rank
// restrict the scan when they are not notation.NoIndex.
func Candidates(b *board.Board, kind board.Kind, colour board.Colour, file, rank int) []board.Position {
	want := board.SymbolOf(kind, colour)
	var out []board.Position
	for r := range board.Size {
		if rank != notation.NoIndex && r != rank {
			continue
		}
		for f := range board.Size {
			if file != notation.NoIndex && f != file {
				continue
			}
			if b[r][f] == want {
				out = append(out, board.PositionFromIndices(f, r))
			}
		}
	}
	return out
}

// Resolve finds the source square for a move whose source is not fully
// given. The first candidate, in Candidates order, that can legally reach
// the destination wins. Notation only disambiguates when it must, so the
// first legal match is the piece the author meant.
//
// With no candidate at all the error wraps ErrNoLegalSource. When candidates
// exist but none can make the move it wraps ErrIllegalMove as well.
func Resolve(b *board.Board, in notation.Intent) (board.Position, error) {
	cands := Candidates(b, in.Kind, in.Colour, in.SourceFile, in.SourceRank)
	if len(cands) == 0 {
		return board.Position{}, fmt.Errorf("%w: no %s %s for %s", ErrNoLegalSource, in.Colour, in.Kind, in.Dest)
	}
	for _, from := range cands {
		if Legal(b, from, in.Dest) {
			return from, nil
		}
	}
	return board.Position{}, fmt.Errorf("%w: no %s %s can reach %s: %w", ErrNoLegalSource, in.Colour, in.Kind, in.Dest, ErrIllegalMove)
}
