package notation

import (
	"errors"
	"testing"

	"github.com/IJMacD/chess/internal/board"
)

func TestParse(t *testing.T) {
	cases := []struct {
		token      string
		colour     board.Colour
		wantCastle CastleSide
		wantKind   board.Kind
		wantFile   int
		wantRank   int
		wantDest   string
		wantPromo  board.Kind
		wantTake   bool
	}{
		{token: "e4", wantKind: board.Pawn, wantFile: NoIndex, wantRank: NoIndex, wantDest: "e4"},
		{token: "Nf3", wantKind: board.Knight, wantFile: NoIndex, wantRank: NoIndex, wantDest: "f3"},
		{token: "Nbd7", colour: board.Black, wantKind: board.Knight, wantFile: 1, wantRank: NoIndex, wantDest: "d7"},
		{token: "R1e2", wantKind: board.Rook, wantFile: NoIndex, wantRank: 7, wantDest: "e2"},
		{token: "Qh4xe1+", wantKind: board.Queen, wantFile: 7, wantRank: 4, wantDest: "e1", wantTake: true},
		{token: "exd5", wantKind: board.Pawn, wantFile: 4, wantRank: NoIndex, wantDest: "d5", wantTake: true},
		{token: "e8=Q", wantKind: board.Pawn, wantFile: NoIndex, wantRank: NoIndex, wantDest: "e8", wantPromo: board.Queen},
		{token: "bxa1=N#", colour: board.Black, wantKind: board.Pawn, wantFile: 1, wantRank: NoIndex, wantDest: "a1", wantPromo: board.Knight, wantTake: true},
		{token: "e2-e4", wantKind: board.Pawn, wantFile: 4, wantRank: 6, wantDest: "e4"},
		{token: "Bb5!?", wantKind: board.Bishop, wantFile: NoIndex, wantRank: NoIndex, wantDest: "b5"},
		{token: "♘f3", wantKind: board.Knight, wantFile: NoIndex, wantRank: NoIndex, wantDest: "f3"},
		{token: "O-O", wantCastle: Kingside, wantFile: NoIndex, wantRank: NoIndex},
		{token: "O-O-O+", colour: board.Black, wantCastle: Queenside, wantFile: NoIndex, wantRank: NoIndex},
	}
	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			in, err := Parse(c.token, c.colour)
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.token, err)
			}
			if in.Colour != c.colour {
				t.Fatalf("colour %s, want %s", in.Colour, c.colour)
			}
			if in.Castle != c.wantCastle {
				t.Fatalf("castle %v, want %v", in.Castle, c.wantCastle)
			}
			if c.wantCastle != NoCastle {
				return
			}
			if in.Kind != c.wantKind {
				t.Fatalf("kind %s, want %s", in.Kind, c.wantKind)
			}
			if in.SourceFile != c.wantFile || in.SourceRank != c.wantRank {
				t.Fatalf("source (%d,%d), want (%d,%d)", in.SourceFile, in.SourceRank, c.wantFile, c.wantRank)
			}
			if in.Dest.String() != c.wantDest {
				t.Fatalf("dest %s, want %s", in.Dest, c.wantDest)
			}
			if in.Promotion != c.wantPromo {
				t.Fatalf("promotion %s, want %s", in.Promotion, c.wantPromo)
			}
			if in.Capture != c.wantTake {
				t.Fatalf("capture %v, want %v", in.Capture, c.wantTake)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, tok := range []string{"", "1-0", "0-1", "1/2-1/2", "*", "{comment}", "e9", "i4", "Xe4", "e8=K", "e8=", "e8=QQ", "Nabc3", "hello", "O-O-O-O"} {
		if _, err := Parse(tok, board.White); !errors.Is(err, ErrNotAMove) {
			t.Fatalf("Parse(%q): expected ErrNotAMove, got %v", tok, err)
		}
	}
}

func TestTokenizeLines(t *testing.T) {
	text := "1. e4 e5\n2. Nf3 Nc6\n3. Bb5\n"
	turns := Tokenize(text)
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	if turns[0].White.Token != "e4" || turns[0].Black == nil || turns[0].Black.Token != "e5" {
		t.Fatalf("unexpected first turn: %+v", turns[0])
	}
	if turns[0].Black.Intent.Colour != board.Black {
		t.Fatalf("black slot parsed with wrong colour")
	}
	if turns[2].Number != 3 || turns[2].Black != nil {
		t.Fatalf("unexpected last turn: %+v", turns[2])
	}
}

func TestTokenizeInlineAndNoise(t *testing.T) {
	text := `[Event "casual"]
1.e4 {best by test} e5 2. Nf3 Nc6 Bb5 3. Bb5 a6 1-0`
	turns := Tokenize(text)
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d: %+v", len(turns), turns)
	}
	if turns[0].White.Token != "e4" || turns[0].Black.Token != "e5" {
		t.Fatalf("comment not skipped: %+v", turns[0])
	}
	if turns[1].Black.Token != "Nc6" {
		t.Fatalf("extra token should be ignored: %+v", turns[1])
	}
	if turns[2].Black == nil || turns[2].Black.Token != "a6" {
		t.Fatalf("result token should not become a move: %+v", turns[2])
	}
}

func TestTokenizeFullWidth(t *testing.T) {
	turns := Tokenize("１．ｅ４ ｅ５")
	if len(turns) != 1 || turns[0].White.Token != "e4" || turns[0].Black == nil {
		t.Fatalf("full-width input not narrowed: %+v", turns)
	}
}

func TestTokenizeIgnoresUnnumberedAndEmptyTurns(t *testing.T) {
	if n := TotalTurns("e4 e5 Nf3"); n != 0 {
		t.Fatalf("unnumbered text should have no turns, got %d", n)
	}
	if n := TotalTurns("1.\n2. d4"); n != 1 {
		t.Fatalf("empty turn should be dropped, got %d", n)
	}
	if n := TotalTurns(""); n != 0 {
		t.Fatalf("empty text should have no turns, got %d", n)
	}
}

func TestTokenizeSlotsArePositional(t *testing.T) {
	turns := Tokenize("1. ... e5")
	if len(turns) != 1 || turns[0].White != nil || turns[0].Black == nil {
		t.Fatalf("expected a black-only turn, got %+v", turns)
	}
	if turns[0].Black.Token != "e5" || turns[0].Black.Intent.Colour != board.Black {
		t.Fatalf("e5 should be parsed for black: %+v", turns[0].Black)
	}

	turns = Tokenize("1. e9 e5 2. d4")
	if len(turns) != 2 || turns[0].White != nil || turns[0].Black == nil || turns[0].Black.Token != "e5" {
		t.Fatalf("bad white token should leave its slot empty: %+v", turns)
	}
	if turns[1].White == nil || turns[1].White.Token != "d4" || turns[1].Black != nil {
		t.Fatalf("unexpected second turn: %+v", turns[1])
	}

	turns = Tokenize("1. e8Q Nf6")
	if len(turns) != 1 || turns[0].White != nil || turns[0].Black == nil || turns[0].Black.Intent.Colour != board.Black {
		t.Fatalf("promotion without = should only drop its own slot: %+v", turns)
	}
}

func TestTokenizeBlackContinuation(t *testing.T) {
	turns := Tokenize("1. e4 {main line} 1... e5 2. Nf3")
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d: %+v", len(turns), turns)
	}
	if turns[0].White == nil || turns[0].White.Token != "e4" || turns[0].Black == nil || turns[0].Black.Token != "e5" {
		t.Fatalf("continuation should fill the black slot of turn 1: %+v", turns[0])
	}

	turns = Tokenize("12... Nf6")
	if len(turns) != 1 || turns[0].Number != 12 || turns[0].White != nil || turns[0].Black.Token != "Nf6" {
		t.Fatalf("unexpected turn %+v", turns)
	}
}

func TestTokenizeCommentsTakeNoSlot(t *testing.T) {
	turns := Tokenize("1. {opening} e4 {reply} e5 {unterminated 2. d4")
	if len(turns) != 1 || turns[0].White.Token != "e4" || turns[0].Black.Token != "e5" {
		t.Fatalf("comments shifted slots: %+v", turns)
	}
}
