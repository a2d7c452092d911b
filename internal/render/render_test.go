package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"bitboard_lab/internal/bitboard"
)

func board(t *testing.T, literal string, width, height int) *bitboard.Bitboard {
	t.Helper()
	b, err := bitboard.Parse(literal, width, height)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return b
}

func TestCellAtInvertsCellRect(t *testing.T) {
	b := board(t, "0", 4, 3)
	g := Geometry{CellLength: 10, Origin: image.Pt(5, 7)}
	for c := range b.All() {
		r := g.CellRect(c.Row, c.Col)
		for _, p := range []image.Point{r.Min, r.Max.Sub(image.Pt(1, 1))} {
			row, col, ok := g.CellAt(b, p.X, p.Y)
			if !ok || row != c.Row || col != c.Col {
				t.Fatalf("pixel %v: expected (%d,%d), got (%d,%d,%v)", p, c.Row, c.Col, row, col, ok)
			}
		}
	}
	if _, _, ok := g.CellAt(b, 4, 7); ok {
		t.Fatalf("pixel left of the origin must be off board")
	}
	if row, _, ok := g.CellAt(b, 5, 6); ok || row != -1 {
		t.Fatalf("pixel above the origin should map to row -1, got %d", row)
	}
	if _, _, ok := g.CellAt(b, 45, 7); ok {
		t.Fatalf("pixel right of the board must be off board")
	}
	if _, _, ok := (Geometry{}).CellAt(b, 0, 0); ok {
		t.Fatalf("zero cell length must never hit")
	}
}

func TestImageDrawsSetCells(t *testing.T) {
	b := board(t, "100000100", 3, 3)
	on := color.RGBA{0x00, 0xff, 0x00, 0xff}
	off := color.RGBA{0x10, 0x10, 0x10, 0xff}
	st := Style{
		Geometry:   Geometry{CellLength: 4},
		On:         on,
		Off:        off,
		Background: color.Black,
	}
	img := Image(b, st)
	if img.Bounds() != image.Rect(0, 0, 12, 12) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	for c := range b.All() {
		center := st.CellRect(c.Row, c.Col).Min.Add(image.Pt(2, 2))
		want := off
		if c.Bit == 1 {
			want = on
		}
		if got := img.RGBAAt(center.X, center.Y); got != want {
			t.Fatalf("cell (%d,%d): expected %v, got %v", c.Row, c.Col, want, got)
		}
	}
}

func TestImageGridAndLabels(t *testing.T) {
	b := board(t, "1", 2, 2)
	st := DefaultStyle()
	st.Grid = true
	st.Labels = true
	img := Image(b, st)

	gc := st.GridColor.(color.RGBA)
	if got := img.RGBAAt(0, 5); got != gc {
		t.Fatalf("expected grid line at x=0, got %v", got)
	}
	if got := img.RGBAAt(20, 5); got != gc {
		t.Fatalf("expected grid line at x=20, got %v", got)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("expected %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestText(t *testing.T) {
	b := board(t, "100000100", 3, 3)
	want := "#..\n...\n#..\n"
	if got := Text(b, '#', '.'); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
		err  bool
	}{
		{in: "#00ff00", want: color.RGBA{0, 0xff, 0, 0xff}},
		{in: "fff", want: color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{in: "", want: nil},
		{in: "#12345", err: true},
		{in: "#zzzzzz", err: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidColor) {
				t.Fatalf("%q: expected invalid color, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
