package bitboard

// Index maps (row, col) to a bit position. The raw row-major position is
// row*width+col; big-endian boards mirror it to size-1-raw.
func (b *Bitboard) Index(row, col int) int {
	return b.indexIn(b.width, b.height, row, col)
}

// Cell is the inverse of Index.
func (b *Bitboard) Cell(bit int) (row, col int) {
	raw := bit
	if !b.littleEndian {
		raw = b.Size() - 1 - bit
	}
	return raw / b.width, raw % b.width
}

// Contains reports whether (row, col) lies on the board.
func (b *Bitboard) Contains(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// indexIn indexes a cell of a width x height grid laid out in the receiver's
// orientation. Transforms use it to address boards of a different shape.
func (b *Bitboard) indexIn(width, height, row, col int) int {
	raw := row*width + col
	if b.littleEndian {
		return raw
	}
	return width*height - 1 - raw
}

func (b *Bitboard) bitAt(row, col int) int {
	if b.bits.Test(uint(b.Index(row, col))) {
		return 1
	}
	return 0
}

// floorMod wraps v into [0, n) for negative v as well.
func floorMod(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
