package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/IJMacD/chess/internal/board"
)

// PNG rasterises the board. Pieces are drawn as discs in the side's colour
// carrying the piece letter, since the raster path has no glyph font.
func PNG(ctx context.Context, b board.Board, opts Options) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	sq := opts.squareSize()
	margin := opts.margin()
	size := sq*board.Size + margin*2

	img, err := rasterise(boardShapes(b, sq, margin, size), size)
	if err != nil {
		return nil, err
	}

	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Face: face}
	ascent := face.Metrics().Ascent.Ceil()

	for r := range board.Size {
		for f := range board.Size {
			s := b[r][f]
			if s.IsEmpty() {
				continue
			}
			_, ink := pieceColours(s)
			drawer.Src = image.NewUniform(ink)
			drawCenteredText(drawer, letter(s), margin+f*sq+sq/2, margin+r*sq+sq/2+ascent/2)
		}
	}

	if !opts.HideCoordinates {
		drawer.Src = image.NewUniform(coordinateText)
		for i := range board.Size {
			drawCenteredText(drawer, board.RankName(i), margin/2, margin+i*sq+sq/2+ascent/2)
			drawCenteredText(drawer, board.FileName(i), margin+i*sq+sq/2, margin+board.Size*sq+margin/2+ascent/2)
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// boardShapes returns an SVG document holding only shapes the rasteriser
// understands: the squares and one disc per piece.
func boardShapes(b board.Board, sq, margin, size int) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size, size, fmt.Sprintf(`viewBox="0 0 %d %d"`, size, size))
	canvas.Rect(0, 0, size, size, "fill:"+hex(background))
	drawSquaresSVG(canvas, sq, margin)

	radius := sq * 3 / 8
	stroke := max(sq/32, 1)
	for r := range board.Size {
		for f := range board.Size {
			s := b[r][f]
			if s.IsEmpty() {
				continue
			}
			fill, _ := pieceColours(s)
			canvas.Circle(margin+f*sq+sq/2, margin+r*sq+sq/2, radius,
				fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", hex(fill), hex(pieceOutline), stroke))
		}
	}
	canvas.End()
	return buf.Bytes()
}

func rasterise(doc []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// letter is the piece's notation letter, with P for pawns.
func letter(s board.Symbol) string {
	if s.Kind() == board.Pawn {
		return "P"
	}
	return s.Code()
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	if text == "" {
		return
	}
	width := drawer.MeasureString(text).Round()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}
