package bitboard

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"
)

func TestBooleanIdentities(t *testing.T) {
	for _, le := range []bool{false, true} {
		for _, lit := range []string{"0", "1", "100000100", "111101111111111111101111", "1011_0110_1110_0011"} {
			b, err := New(Config{Literal: lit, Width: 4, LittleEndian: le})
			if err != nil {
				t.Fatalf("new %q: %v", lit, err)
			}
			if !b.And(b).Equal(b) {
				t.Fatalf("%q: b and b != b", lit)
			}
			if !b.Or(b).Equal(b) {
				t.Fatalf("%q: b or b != b", lit)
			}
			full := b.Or(b.Not())
			if full.Order() != b.Size() {
				t.Fatalf("%q: b or not b has %d of %d cells", lit, full.Order(), b.Size())
			}
			if full.Value().Cmp(b.Mask()) != 0 {
				t.Fatalf("%q: b or not b != mask", lit)
			}
			if !b.Xor(b).None() {
				t.Fatalf("%q: b xor b not empty", lit)
			}
			if !b.Not().Not().Equal(b) {
				t.Fatalf("%q: double complement changed the board", lit)
			}
			if b.AndNot(b).Any() {
				t.Fatalf("%q: b andnot b not empty", lit)
			}
			expectMasked(t, b.Not())
		}
	}
}

func TestBinaryOpsReturnNewBoards(t *testing.T) {
	a := mustParse(t, "1100", 2, 2)
	b := mustParse(t, "1010", 2, 2)

	expectCells(t, a.And(b), [2]int{0, 0})
	expectCells(t, a.Or(b), [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})
	expectCells(t, a.Xor(b), [2]int{0, 1}, [2]int{1, 0})
	expectCells(t, a.AndNot(b), [2]int{0, 1})
	expectCells(t, a.Not(), [2]int{1, 0}, [2]int{1, 1})

	expectCells(t, a, [2]int{0, 0}, [2]int{0, 1})
	expectCells(t, b, [2]int{0, 0}, [2]int{1, 0})
}

func TestFitDropsOutOfRangeCells(t *testing.T) {
	buf := captureLog(t)

	small := mustEmpty(t, 3, 3, false)
	big := mustEmpty(t, 4, 4, false).FillCell(0, 0).FillCell(3, 3).FillCell(1, 2)

	fitted, dropped, err := big.Fit(3, 3, false)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped cell, got %d", dropped)
	}
	expectCells(t, fitted, [2]int{0, 0}, [2]int{1, 2})

	got := small.Or(big)
	if got.Width() != 3 || got.Height() != 3 {
		t.Fatalf("expected receiver shape, got %dx%d", got.Width(), got.Height())
	}
	expectCells(t, got, [2]int{0, 0}, [2]int{1, 2})
	if !strings.Contains(buf.String(), "dropped=1") {
		t.Fatalf("expected fit warning, got %q", buf.String())
	}
}

func TestFitWarnsWhenValueChanges(t *testing.T) {
	buf := captureLog(t)

	board := mustEmpty(t, 8, 8, false)
	glider, err := New(Config{Value: big.NewInt(16252911), Width: 3, Height: 8})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	got := board.Or(glider)
	if got.Order() != glider.Order() {
		t.Fatalf("expected every cell kept, got %d of %d", got.Order(), glider.Order())
	}
	out := buf.String()
	if !strings.Contains(out, "operand changed to fit") || !strings.Contains(out, "dropped=0") {
		t.Fatalf("expected fit warning without drops, got %q", out)
	}
	if !strings.Contains(out, "from=16252911") {
		t.Fatalf("expected original value in warning, got %q", out)
	}
}

func TestFitKeepsReceiverOrientation(t *testing.T) {
	board := mustEmpty(t, 8, 8, false)
	seed := mustEmpty(t, 3, 3, true).FillCell(0, 1).FillCell(2, 2)

	got := board.Or(seed)
	expectCells(t, got, [2]int{0, 1}, [2]int{2, 2})
	if got.LittleEndian() {
		t.Fatalf("result must keep the receiver orientation")
	}
}

func TestFitWithUnchangedValueIsSilent(t *testing.T) {
	buf := captureLog(t)

	// Little-endian (0, 0) is bit 0 on any width.
	board := mustEmpty(t, 4, 4, true)
	seed := mustEmpty(t, 3, 3, true).FillCell(0, 0)
	board.Or(seed)
	board.Or(mustEmpty(t, 2, 2, false))

	if buf.Len() != 0 {
		t.Fatalf("expected no warning, got %q", buf.String())
	}
}

func TestFitRejectsInvalidDimensions(t *testing.T) {
	b := mustEmpty(t, 2, 2, false)
	for _, dims := range [][2]int{{0, 2}, {2, -1}, {math.MaxInt, 2}} {
		if _, _, err := b.Fit(dims[0], dims[1], false); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("fit %v: expected invalid dimensions, got %v", dims, err)
		}
	}
}
