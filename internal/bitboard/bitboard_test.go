// path: internal/bitboard/bitboard_test.go
package bitboard

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"testing"
)

func mustParse(t *testing.T, literal string, width, height int) *Bitboard {
	t.Helper()
	b, err := Parse(literal, width, height)
	if err != nil {
		t.Fatalf("parse %q: %v", literal, err)
	}
	return b
}

func mustEmpty(t *testing.T, width, height int, littleEndian bool) *Bitboard {
	t.Helper()
	b, err := NewEmpty(width, height, littleEndian)
	if err != nil {
		t.Fatalf("new empty %dx%d: %v", width, height, err)
	}
	return b
}

func setCells(b *Bitboard) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for c := range b.Cells(Filled) {
		out[[2]int{c.Row, c.Col}] = true
	}
	return out
}

func expectCells(t *testing.T, b *Bitboard, want ...[2]int) {
	t.Helper()
	got := setCells(b)
	if len(got) != len(want) {
		t.Fatalf("expected %d set cells %v, got %d: %v", len(want), want, len(got), got)
	}
	for _, w := range want {
		if !got[w] {
			t.Fatalf("expected cell %v set, got %v", w, got)
		}
	}
}

func expectMasked(t *testing.T, b *Bitboard) {
	t.Helper()
	if b.Value().Cmp(b.Mask()) > 0 {
		t.Fatalf("value %s exceeds mask %s", b.Value(), b.Mask())
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestNewDefaults(t *testing.T) {
	b, err := New(Config{Value: big.NewInt(255)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b.Width() != DefaultWidth || b.Height() != 1 {
		t.Fatalf("expected 8x1, got %dx%d", b.Width(), b.Height())
	}
	if b.LittleEndian() {
		t.Fatalf("expected big-endian by default")
	}
	if b.Order() != 8 {
		t.Fatalf("expected 8 set cells, got %d", b.Order())
	}
	if b.Cropped() {
		t.Fatalf("unexpected crop")
	}
}

func TestBigEndianBitZeroIsBottomRight(t *testing.T) {
	b, err := FromUint64(1, 4, 3, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	expectCells(t, b, [2]int{2, 3})

	le, err := FromUint64(1, 4, 3, true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	expectCells(t, le, [2]int{0, 0})
}

func TestHeightDerivedFromBitLength(t *testing.T) {
	tests := []struct {
		name   string
		value  *big.Int
		width  int
		height int
	}{
		{name: "zero has one digit", value: big.NewInt(0), width: 8, height: 1},
		{name: "one", value: big.NewInt(1), width: 3, height: 1},
		{name: "exact rows", value: big.NewInt(16252911), width: 3, height: 8},
		{name: "partial row rounds up", value: big.NewInt(1 << 9), width: 3, height: 4},
		{name: "wide value", value: new(big.Int).Lsh(big.NewInt(1), 99), width: 10, height: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(Config{Value: tt.value, Width: tt.width})
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if b.Height() != tt.height {
				t.Fatalf("expected height %d, got %d", tt.height, b.Height())
			}
			if b.Value().Cmp(tt.value) != 0 {
				t.Fatalf("expected value %s, got %s", tt.value, b.Value())
			}
		})
	}
}

func TestCroppingIsReported(t *testing.T) {
	buf := captureLog(t)

	b, err := New(Config{Value: big.NewInt(0b11111), Width: 2, Height: 2})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !b.Cropped() {
		t.Fatalf("expected board to report cropping")
	}
	if b.Value().Int64() != 0b1111 {
		t.Fatalf("expected cropped value 15, got %s", b.Value())
	}
	if !strings.Contains(buf.String(), `msg="bitboard: value too long for dimensions, cropped"`) {
		t.Fatalf("expected crop warning, got %q", buf.String())
	}
	expectMasked(t, b)

	if b.Clone().Cropped() {
		t.Fatalf("clone should not carry the crop flag")
	}
}

func TestInvalidConstruction(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "negative width", cfg: Config{Width: -1}, want: ErrInvalidDimensions},
		{name: "negative height", cfg: Config{Width: 3, Height: -2}, want: ErrInvalidDimensions},
		{name: "bad digit", cfg: Config{Literal: "102"}, want: ErrInvalidLiteral},
		{name: "bare prefix", cfg: Config{Literal: "0b"}, want: ErrInvalidLiteral},
		{name: "negative value", cfg: Config{Value: big.NewInt(-3)}, want: ErrNegativeValue},
		{name: "overflowing area", cfg: Config{Width: math.MaxInt / 2, Height: 4}, want: ErrInvalidDimensions},
		{name: "square overflow", cfg: Config{Width: 1 << 30, Height: 1 << 30}, want: ErrInvalidDimensions},
		{name: "above cell cap", cfg: Config{Width: MaxCells, Height: 2}, want: ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if b != nil {
				t.Fatalf("expected nil board on error")
			}
		})
	}

	if _, err := NewEmpty(0, 3, false); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected invalid dimensions for zero width, got %v", err)
	}
	if _, err := NewEmpty(math.MaxInt, math.MaxInt, false); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected invalid dimensions for overflowing area, got %v", err)
	}
}

func TestLiteralForms(t *testing.T) {
	for _, lit := range []string{"0b101", "101", "1_0_1", "0b1_01"} {
		b := mustParse(t, lit, 3, 1)
		if b.Value().Int64() != 5 {
			t.Fatalf("%q: expected 5, got %s", lit, b.Value())
		}
	}
}

func TestLiteralTakesPrecedence(t *testing.T) {
	b, err := New(Config{Value: big.NewInt(7), Literal: "1", Width: 3, Height: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b.Order() != 1 {
		t.Fatalf("expected literal to win, got %s", b.Value())
	}
}

func TestScenarioThreeByThreeLiteral(t *testing.T) {
	b := mustParse(t, "100000100", 3, 3)
	expectCells(t, b, [2]int{0, 0}, [2]int{2, 0})
	if b.Index(0, 0) != 8 || b.Index(2, 0) != 2 {
		t.Fatalf("unexpected indices %d %d", b.Index(0, 0), b.Index(2, 0))
	}
	if got := b.BinaryString(); got != "100000100" {
		t.Fatalf("expected binary round trip, got %q", got)
	}
}

func TestRowsAndString(t *testing.T) {
	b := mustParse(t, "100000100", 3, 3)
	rows := b.Rows()
	want := []string{"100", "000", "100"}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], rows[i])
		}
	}
	if got := b.String(); got != "Bitboard(3x3 big-endian 0b100000100)" {
		t.Fatalf("unexpected String(): %q", got)
	}
	if got := mustEmpty(t, 2, 2, true).BinaryString(); got != "0" {
		t.Fatalf("expected empty board to print 0, got %q", got)
	}
}

func TestEqualAndClone(t *testing.T) {
	a := mustParse(t, "1001", 2, 2)
	c := a.Clone()
	if !a.Equal(c) {
		t.Fatalf("clone should equal original")
	}
	c.ToggleCell(0, 1)
	if a.Equal(c) {
		t.Fatalf("mutating the clone changed equality")
	}
	if a.Order() != 2 {
		t.Fatalf("mutating the clone changed the original")
	}

	le, _, _ := a.Fit(2, 2, true)
	if a.Equal(le) {
		t.Fatalf("boards of different orientation must not be equal")
	}
	if a.Equal(nil) {
		t.Fatalf("board must not equal nil")
	}
}
