// path: internal/render/render.go
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"bitboard_lab/internal/bitboard"
)

var ErrInvalidColor = errors.New("invalid color")

// Style controls how Image draws a board. A nil Off leaves empty cells on
// the background.
type Style struct {
	Geometry
	On         color.Color
	Off        color.Color
	Background color.Color
	GridColor  color.Color
	Grid       bool
	// Labels prints each cell's bit index, which makes the orientation
	// visible.
	Labels bool
}

// DefaultStyle matches the original sketches: lime cells on black, 20px.
func DefaultStyle() Style {
	return Style{
		Geometry:   Geometry{CellLength: 20},
		On:         color.RGBA{0x00, 0xff, 0x00, 0xff},
		Background: color.Black,
		GridColor:  color.RGBA{0x30, 0x30, 0x30, 0xff},
	}
}

// Image draws b onto a new canvas.
func Image(b *bitboard.Bitboard, st Style) *image.RGBA {
	img := image.NewRGBA(st.Bounds(b))
	fill(img, img.Bounds(), st.Background)

	for c := range b.All() {
		r := st.CellRect(c.Row, c.Col)
		switch {
		case c.Bit == 1:
			fill(img, r, st.On)
		case st.Off != nil:
			fill(img, r, st.Off)
		}
	}
	if st.Grid {
		drawGrid(img, b, st)
	}
	if st.Labels {
		drawLabels(img, b, st)
	}
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	if c == nil {
		return
	}
	xdraw.Draw(img, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func drawGrid(img *image.RGBA, b *bitboard.Bitboard, st Style) {
	area := st.CellRect(0, 0).Union(st.CellRect(b.Height()-1, b.Width()-1))
	for row := 0; row <= b.Height(); row++ {
		y := st.Origin.Y + row*st.CellLength
		fill(img, image.Rect(area.Min.X, y, area.Max.X, y+1).Intersect(img.Bounds()), st.GridColor)
	}
	for col := 0; col <= b.Width(); col++ {
		x := st.Origin.X + col*st.CellLength
		fill(img, image.Rect(x, area.Min.Y, x+1, area.Max.Y).Intersect(img.Bounds()), st.GridColor)
	}
}

func drawLabels(img *image.RGBA, b *bitboard.Bitboard, st Style) {
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Round()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(labelColor(st)), Face: face}
	for c := range b.All() {
		r := st.CellRect(c.Row, c.Col)
		s := strconv.Itoa(b.Index(c.Row, c.Col))
		adv := d.MeasureString(s).Round()
		d.Dot = fixed.P(r.Min.X+(st.CellLength-adv)/2, r.Min.Y+(st.CellLength+ascent)/2-1)
		d.DrawString(s)
	}
}

func labelColor(st Style) color.Color {
	if st.GridColor != nil {
		return st.GridColor
	}
	return color.Gray{Y: 0x80}
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Text renders b one line per row.
func Text(b *bitboard.Bitboard, on, off rune) string {
	var sb strings.Builder
	for c := range b.All() {
		if c.Bit == 1 {
			sb.WriteRune(on)
		} else {
			sb.WriteRune(off)
		}
		if c.Col == b.Width()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseColor reads "#rgb" or "#rrggbb". The empty string yields nil.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
