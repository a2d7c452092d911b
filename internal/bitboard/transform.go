// path: internal/bitboard/transform.go
package bitboard

import "fmt"

// Rect is a rectangle of cells.
type Rect struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Transpose swaps rows and columns in place, swapping width and height.
func (b *Bitboard) Transpose() *Bitboard {
	out := newBoard(b.height, b.width, b.littleEndian)
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		row, col := b.Cell(int(i))
		out.bits.Set(uint(out.Index(col, row)))
	}
	b.bits, b.width, b.height = out.bits, out.width, out.height
	return b
}

// Reflect flips the board vertically in place: row r moves to height-1-r.
func (b *Bitboard) Reflect() *Bitboard {
	out := b.derive()
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		row, col := b.Cell(int(i))
		out.bits.Set(uint(out.Index(b.height-1-row, col)))
	}
	b.bits = out.bits
	return b
}

// Rotate turns the board a quarter turn clockwise in place.
func (b *Bitboard) Rotate() *Bitboard {
	return b.Reflect().Transpose()
}

// Translate moves every set cell by dx columns and dy rows. With wrap the
// coordinates are taken modulo the board size; without it cells leaving the
// board are dropped.
func (b *Bitboard) Translate(dx, dy int, wrap bool) *Bitboard {
	out := b.derive()
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		row, col := b.Cell(int(i))
		row, col = row+dy, col+dx
		if wrap {
			row, col = floorMod(row, b.height), floorMod(col, b.width)
		} else if !b.Contains(row, col) {
			continue
		}
		out.bits.Set(uint(out.Index(row, col)))
	}
	return out
}

// Shift rotates the packed value left by one bit. The visual direction
// depends on orientation: on a big-endian board every cell moves one step
// back in row-major order (left, wrapping to the end of the previous row);
// on a little-endian board one step forward. With wrap the bit leaving the
// top of the word re-enters at bit 0; without it the bit is dropped.
func (b *Bitboard) Shift(wrap bool) *Bitboard {
	out, _ := b.ShiftBy(1, wrap)
	return out
}

// ShiftBy shifts the packed value by n bits, left for n = 1 and right for
// n = -1. Other magnitudes are not supported: the result is an unchanged copy
// and the error wraps ErrUnsupportedShift.
func (b *Bitboard) ShiftBy(n int, wrap bool) (*Bitboard, error) {
	if n == 0 {
		return b.Clone(), nil
	}
	if n != 1 && n != -1 {
		warn("shift only supports -1, 0 or 1", "n", n)
		return b.Clone(), fmt.Errorf("%w: %d", ErrUnsupportedShift, n)
	}
	size := b.Size()
	out := b.derive()
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		j := int(i) + n
		if j < 0 || j >= size {
			if !wrap {
				continue
			}
			j = floorMod(j, size)
		}
		out.bits.Set(uint(j))
	}
	return out, nil
}

// Crop extracts the w x h window whose top-left cell is (row, col). Window
// cells that fall outside the board stay empty.
func (b *Bitboard) Crop(row, col, w, h int) (*Bitboard, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, fmt.Errorf("crop: %w", err)
	}
	out := newBoard(w, h, b.littleEndian)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if b.IsFilled(row+r, col+c) {
				out.bits.Set(uint(out.Index(r, c)))
			}
		}
	}
	return out, nil
}

// Bounds returns the smallest rectangle enclosing every set cell. ok is
// false for an empty board.
func (b *Bitboard) Bounds() (rect Rect, ok bool) {
	minRow, maxRow := b.height, -1
	minCol, maxCol := b.width, -1
	for i, found := b.bits.NextSet(0); found; i, found = b.bits.NextSet(i + 1) {
		row, col := b.Cell(int(i))
		minRow, maxRow = min(minRow, row), max(maxRow, row)
		minCol, maxCol = min(minCol, col), max(maxCol, col)
	}
	if maxRow < 0 {
		return Rect{}, false
	}
	return Rect{
		Row:    minRow,
		Col:    minCol,
		Width:  maxCol - minCol + 1,
		Height: maxRow - minRow + 1,
	}, true
}

// Ring extracts the (2r+1) x (2r+1) neighbourhood centred on (row, col),
// keeping only the cells at Chebyshev distance r plus the centre itself.
// With wrap the neighbourhood wraps around the board edges; without it
// off-board cells stay empty.
func (b *Bitboard) Ring(row, col, radius int, wrap bool) (*Bitboard, error) {
	if radius < 0 || radius > MaxCells {
		return nil, fmt.Errorf("%w: ring radius %d", ErrInvalidDimensions, radius)
	}
	side := 2*radius + 1
	if err := checkDimensions(side, side); err != nil {
		return nil, fmt.Errorf("ring: %w", err)
	}
	out := newBoard(side, side, b.littleEndian)
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if abs(dr) != radius && abs(dc) != radius && (dr != 0 || dc != 0) {
				continue
			}
			rr, cc := row+dr, col+dc
			if wrap {
				rr, cc = floorMod(rr, b.height), floorMod(cc, b.width)
			}
			if b.IsFilled(rr, cc) {
				out.bits.Set(uint(out.Index(dr+radius, dc+radius)))
			}
		}
	}
	return out, nil
}

// Neighbors counts the set cells adjacent to (row, col), excluding the cell
// itself.
func (b *Bitboard) Neighbors(row, col int, wrap bool) int {
	ring, _ := b.Ring(row, col, 1, wrap)
	n := ring.Order()
	if wrap {
		row, col = floorMod(row, b.height), floorMod(col, b.width)
	}
	if b.IsFilled(row, col) {
		n--
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
