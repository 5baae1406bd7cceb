package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/IJMacD/chess/internal/board"
)

func TestSVGStartingBoard(t *testing.T) {
	out := string(SVG(board.New(), Options{SquareSize: 40}))
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "<svg") {
		t.Fatalf("not an svg document: %.80s", out)
	}
	if n := strings.Count(out, "<rect"); n != 65 {
		t.Fatalf("expected 64 squares and a background, got %d rects", n)
	}
	if !strings.Contains(out, `data-square="e1"`) || !strings.Contains(out, "♔") || !strings.Contains(out, "♛") {
		t.Fatalf("missing piece glyphs")
	}
	if n := strings.Count(out, "data-square="); n != 32 {
		t.Fatalf("expected 32 pieces, got %d", n)
	}
	if !strings.Contains(out, ">a</text>") || !strings.Contains(out, ">8</text>") {
		t.Fatalf("missing coordinates")
	}
}

func TestSVGWithoutCoordinates(t *testing.T) {
	out := string(SVG(board.Blank(), Options{SquareSize: 10, HideCoordinates: true}))
	if strings.Contains(out, "<text") {
		t.Fatalf("blank board without coordinates should have no text")
	}
	if !strings.Contains(out, `width="80"`) {
		t.Fatalf("expected 80px board: %.120s", out)
	}
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func near(a, b color.Color) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	d := func(x, y uint32) uint32 {
		if x > y {
			return x - y
		}
		return y - x
	}
	const tol = 4 << 8
	return d(ar, br) <= tol && d(ag, bg) <= tol && d(ab, bb) <= tol
}

func TestPNGStartingBoard(t *testing.T) {
	const sq = 64
	data, err := PNG(context.Background(), board.New(), Options{SquareSize: sq})
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img := decodePNG(t, data)
	margin := sq / 2
	if got := img.Bounds().Dx(); got != sq*8+2*margin {
		t.Fatalf("width=%d", got)
	}

	center := func(name string) (int, int) {
		p := board.MustPosition(name)
		return margin + p.File*sq + sq/2, margin + p.Rank*sq + sq/2
	}

	x, y := center("d4")
	if !near(img.At(x, y), squareColor(3, 4)) {
		t.Fatalf("d4 colour %v", img.At(x, y))
	}
	x, y = center("e5")
	if !near(img.At(x, y), squareColor(4, 3)) {
		t.Fatalf("e5 colour %v", img.At(x, y))
	}

	x, y = center("e1")
	if !near(img.At(x, y+sq/4), whitePieceFill) {
		t.Fatalf("e1 should carry a white disc, got %v", img.At(x, y+sq/4))
	}
	x, y = center("e8")
	if !near(img.At(x, y+sq/4), blackPieceFill) {
		t.Fatalf("e8 should carry a black disc, got %v", img.At(x, y+sq/4))
	}
}

func TestPNGCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PNG(ctx, board.New(), Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestSquareColours(t *testing.T) {
	a8 := board.MustPosition("a8")
	a1 := board.MustPosition("a1")
	if squareColor(a8.File, a8.Rank) != lightSquare || squareColor(a1.File, a1.Rank) != darkSquare {
		t.Fatalf("a8 should be light and a1 dark")
	}
}
