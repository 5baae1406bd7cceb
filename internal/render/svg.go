package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/IJMacD/chess/internal/board"
)

// SVG draws the board with figurine glyphs for the pieces.
func SVG(b board.Board, opts Options) []byte {
	sq := opts.squareSize()
	margin := opts.margin()
	size := sq*board.Size + margin*2

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size, size, fmt.Sprintf(`viewBox="0 0 %d %d"`, size, size))
	canvas.Rect(0, 0, size, size, "fill:"+hex(background))

	drawSquaresSVG(canvas, sq, margin)

	canvas.Gstyle(fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central;font-family:serif", sq*4/5))
	for r := range board.Size {
		for f := range board.Size {
			s := b[r][f]
			if s.IsEmpty() {
				continue
			}
			x := margin + f*sq + sq/2
			y := margin + r*sq + sq/2
			canvas.Text(x, y, s.String(), "fill:#000000", fmt.Sprintf(`data-square="%s"`, board.PositionFromIndices(f, r)))
		}
	}
	canvas.Gend()

	if !opts.HideCoordinates {
		canvas.Gstyle(fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central;font-family:sans-serif;fill:%s", sq/4, hex(coordinateText)))
		for i := range board.Size {
			canvas.Text(margin/2, margin+i*sq+sq/2, board.RankName(i))
			canvas.Text(margin+i*sq+sq/2, margin+board.Size*sq+margin/2, board.FileName(i))
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func drawSquaresSVG(canvas *svg.SVG, sq, margin int) {
	for r := range board.Size {
		for f := range board.Size {
			canvas.Rect(margin+f*sq, margin+r*sq, sq, sq, "fill:"+hex(squareColor(f, r)))
		}
	}
}
