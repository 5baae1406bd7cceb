package viewer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IJMacD/chess/internal/board"
	"github.com/IJMacD/chess/internal/movestore"
	"github.com/IJMacD/chess/internal/msgcat"
	"github.com/IJMacD/chess/internal/render"
	"github.com/IJMacD/chess/pkg/replaydto"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat: %v", err)
	}
	return NewService(movestore.NewMemoryStore(), cat, render.Options{SquareSize: 16})
}

func TestCursorNavigation(t *testing.T) {
	c := Cursor{Pos: 2, Total: 5}
	cases := []struct {
		step Step
		want int
	}{
		{StepNone, 2},
		{StepFirst, 0},
		{StepPrev, 1},
		{StepNext, 3},
		{StepLast, 5},
	}
	for _, tc := range cases {
		if got := c.Apply(tc.step).Pos; got != tc.want {
			t.Fatalf("%q: got %d want %d", tc.step, got, tc.want)
		}
	}
	if got := (Cursor{Pos: 0, Total: 5}).Prev().Pos; got != 0 {
		t.Fatalf("prev at start should stay at 0, got %d", got)
	}
	if got := (Cursor{Pos: 5, Total: 5}).Next().Pos; got != 5 {
		t.Fatalf("next at end should stay at total, got %d", got)
	}
	if got := (Cursor{Pos: 40, Total: 5}).Prev().Pos; got != 4 {
		t.Fatalf("prev from out of range should clamp first, got %d", got)
	}
	if got := (Cursor{Pos: -2, Total: -1}).Clamp(); got != (Cursor{}) {
		t.Fatalf("clamp=%+v", got)
	}
}

func TestParseStep(t *testing.T) {
	if st, err := ParseStep(" Next "); err != nil || st != StepNext {
		t.Fatalf("ParseStep: %v %v", st, err)
	}
	if st, err := ParseStep(""); err != nil || st != StepNone {
		t.Fatalf("empty step: %v %v", st, err)
	}
	if _, err := ParseStep("sideways"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestViewTextDefaultsToLastTurn(t *testing.T) {
	s := newTestService(t)
	v := s.ViewText("1. e4 e5\n2. Nf3 Nc6", CursorRequest{})
	if v.Cursor != 2 || v.TotalTurns != 2 || v.Applied != 2 || v.Failure != nil {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Board[5][5] != "♘" || v.Board[2][2] != "♞" {
		t.Fatalf("knights not developed: %v", v.Board)
	}

	v = s.ViewText("1. e4 e5\n2. Nf3 Nc6", CursorRequest{Cursor: intPtr(2), Step: StepPrev})
	if v.Cursor != 1 || v.Board[4][4] != "♙" || v.Board[7][6] != "♘" {
		t.Fatalf("prev step not applied: %+v", v)
	}
}

func TestViewTextFailure(t *testing.T) {
	s := newTestService(t)
	v := s.ViewText("1. e5", At(1))
	if v.Failure == nil {
		t.Fatalf("expected failure")
	}
	f := v.Failure
	if f.Turn != 1 || f.Colour != "white" || f.Token != "e5" || f.Code != replaydto.CodeIllegalMove {
		t.Fatalf("unexpected failure %+v", f)
	}
	if f.Message != "Turn 1 (white): e5 is not a legal move." {
		t.Fatalf("message=%q", f.Message)
	}
	if v.Applied != 0 || v.Board != board.New().Rows() {
		t.Fatalf("expected starting board, applied=%d", v.Applied)
	}
}

func TestFailureCodes(t *testing.T) {
	s := newTestService(t)
	cases := map[string]string{
		"1. O-O":           replaydto.CodeIllegalCastling,
		"1. Qh5":           replaydto.CodeIllegalMove,
		"1. e4 e5 2. e6=Q": replaydto.CodeIllegalPromotion,
		"1. e4 d5 2. exd5 Qxd5 3. Nc3 Qe4+ 4. Nxe4 Qd5": replaydto.CodeNoLegalSource,
	}
	for text, want := range cases {
		v := s.ViewText(text, CursorRequest{})
		if v.Failure == nil || v.Failure.Code != want {
			t.Fatalf("%q: expected %s, got %+v", text, want, v.Failure)
		}
	}
}

func TestDocumentLifecycle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, "1. d4")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if err := s.SaveDocument(ctx, doc.ID, "1. d4 d5\n2. c4"); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	got, err := s.Document(ctx, doc.ID)
	if err != nil || !strings.Contains(got.Text, "c4") {
		t.Fatalf("Document: %+v %v", got, err)
	}

	v, err := s.View(ctx, doc.ID, CursorRequest{Step: StepFirst})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if v.DocumentID != doc.ID || v.Cursor != 0 || v.TotalTurns != 2 {
		t.Fatalf("unexpected view %+v", v)
	}

	svgOut, err := s.BoardSVG(ctx, doc.ID, CursorRequest{})
	if err != nil || !bytes.Contains(svgOut, []byte("<svg")) {
		t.Fatalf("BoardSVG: %v", err)
	}
	pngOut, err := s.BoardPNG(ctx, doc.ID, At(1))
	if err != nil || !bytes.HasPrefix(pngOut, []byte("\x89PNG")) {
		t.Fatalf("BoardPNG: %v", err)
	}

	if err := s.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.View(ctx, doc.ID, CursorRequest{}); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := s.SaveDocument(ctx, doc.ID, "x"); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("save deleted: expected ErrDocumentNotFound, got %v", err)
	}
	if err := s.DeleteDocument(ctx, doc.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("delete deleted: expected ErrDocumentNotFound, got %v", err)
	}
}

func intPtr(n int) *int { return &n }
