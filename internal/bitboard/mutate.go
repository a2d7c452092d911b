// path: internal/bitboard/mutate.go
package bitboard

// Order returns the number of set cells.
func (b *Bitboard) Order() int { return int(b.bits.Count()) }

func (b *Bitboard) Any() bool  { return b.bits.Any() }
func (b *Bitboard) None() bool { return b.bits.None() }

// IsFilled reports whether the cell is set. Off-board cells are never set.
func (b *Bitboard) IsFilled(row, col int) bool {
	return b.Contains(row, col) && b.bits.Test(uint(b.Index(row, col)))
}

func (b *Bitboard) IsEmpty(row, col int) bool { return !b.IsFilled(row, col) }

// Fill sets every cell.
func (b *Bitboard) Fill() *Bitboard {
	b.bits.ClearAll().FlipRange(0, uint(b.Size()))
	return b
}

// FillRow sets every cell of row. Off-board rows are ignored.
func (b *Bitboard) FillRow(row int) *Bitboard {
	return b.eachInRow(row, func(i uint) { b.bits.Set(i) })
}

// FillCell sets one cell. Off-board cells are ignored.
func (b *Bitboard) FillCell(row, col int) *Bitboard {
	if b.Contains(row, col) {
		b.bits.Set(uint(b.Index(row, col)))
	}
	return b
}

// Clear unsets every cell.
func (b *Bitboard) Clear() *Bitboard {
	b.bits.ClearAll()
	return b
}

func (b *Bitboard) ClearRow(row int) *Bitboard {
	return b.eachInRow(row, func(i uint) { b.bits.Clear(i) })
}

func (b *Bitboard) ClearCell(row, col int) *Bitboard {
	if b.Contains(row, col) {
		b.bits.Clear(uint(b.Index(row, col)))
	}
	return b
}

// Toggle flips every cell.
func (b *Bitboard) Toggle() *Bitboard {
	b.bits.FlipRange(0, uint(b.Size()))
	return b
}

func (b *Bitboard) ToggleRow(row int) *Bitboard {
	return b.eachInRow(row, func(i uint) { b.bits.Flip(i) })
}

func (b *Bitboard) ToggleCell(row, col int) *Bitboard {
	if b.Contains(row, col) {
		b.bits.Flip(uint(b.Index(row, col)))
	}
	return b
}

func (b *Bitboard) eachInRow(row int, fn func(i uint)) *Bitboard {
	if row < 0 || row >= b.height {
		return b
	}
	for col := 0; col < b.width; col++ {
		fn(uint(b.Index(row, col)))
	}
	return b
}
