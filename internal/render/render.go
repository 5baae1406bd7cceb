// Package render draws boards as SVG markup or PNG images.
package render

import (
	"fmt"
	"image/color"

	"github.com/IJMacD/chess/internal/board"
)

// DefaultSquareSize is used when Options.SquareSize is not positive.
const DefaultSquareSize = 64

type Options struct {
	SquareSize      int
	HideCoordinates bool
}

func (o Options) squareSize() int {
	if o.SquareSize <= 0 {
		return DefaultSquareSize
	}
	return o.SquareSize
}

// margin is the space reserved around the board for coordinates.
func (o Options) margin() int {
	if o.HideCoordinates {
		return 0
	}
	return o.squareSize() / 2
}

var (
	lightSquare    = color.RGBA{233, 207, 163, 255}
	darkSquare     = color.RGBA{187, 136, 96, 255}
	background     = color.RGBA{40, 44, 52, 255}
	whitePieceFill = color.RGBA{248, 248, 248, 255}
	blackPieceFill = color.RGBA{30, 30, 30, 255}
	pieceOutline   = color.RGBA{90, 90, 90, 255}
	coordinateText = color.RGBA{8, 214, 120, 255}
)

func isLight(file, rank int) bool { return (file+rank)%2 == 0 }

func squareColor(file, rank int) color.RGBA {
	if isLight(file, rank) {
		return lightSquare
	}
	return darkSquare
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func pieceColours(s board.Symbol) (fill, ink color.RGBA) {
	if c, _ := s.Colour(); c == board.Black {
		return blackPieceFill, whitePieceFill
	}
	return whitePieceFill, blackPieceFill
}
