// path: internal/render/geometry.go

// Package render draws bitboards. It is a consumer of Bitboard.All: every
// record maps to one square of CellLength pixels.
package render

import (
	"image"

	"bitboard_lab/internal/bitboard"
)

// Geometry places cells on a pixel canvas. Origin is the top-left pixel of
// cell (0, 0).
type Geometry struct {
	CellLength int
	Origin     image.Point
}

// CellRect returns the pixel rectangle of a cell.
func (g Geometry) CellRect(row, col int) image.Rectangle {
	top := g.Origin.Add(image.Pt(col*g.CellLength, row*g.CellLength))
	return image.Rectangle{Min: top, Max: top.Add(image.Pt(g.CellLength, g.CellLength))}
}

// CellAt maps a pixel to the cell under it. ok is false when the pixel is
// outside the board.
func (g Geometry) CellAt(b *bitboard.Bitboard, x, y int) (row, col int, ok bool) {
	if g.CellLength <= 0 {
		return 0, 0, false
	}
	row = floorDiv(y-g.Origin.Y, g.CellLength)
	col = floorDiv(x-g.Origin.X, g.CellLength)
	return row, col, b.Contains(row, col)
}

// Bounds is the canvas needed to draw b, origin included.
func (g Geometry) Bounds(b *bitboard.Bitboard) image.Rectangle {
	return image.Rect(0, 0, g.Origin.X+b.Width()*g.CellLength, g.Origin.Y+b.Height()*g.CellLength)
}

func floorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}
