// path: internal/bitboard/cells.go
package bitboard

import "iter"

// Cell is one record of an iteration: the coordinates and the bit (0 or 1).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
	Bit int `json:"bit"`
}

// Filter selects cells during iteration. It is implemented by BitFunc,
// BitValues and Where; a nil Filter admits every cell.
type Filter interface {
	admit(c Cell) bool
}

// BitFunc admits a cell when the predicate holds for its bit.
type BitFunc func(bit int) bool

func (f BitFunc) admit(c Cell) bool { return f(c.Bit) }

// BitValues admits a cell when its bit is one of the listed values.
type BitValues []int

func (v BitValues) admit(c Cell) bool {
	for _, bit := range v {
		if bit == c.Bit {
			return true
		}
	}
	return false
}

// Where admits a cell when every non-nil predicate holds.
type Where struct {
	Bit func(int) bool
	Row func(int) bool
	Col func(int) bool
}

func (w Where) admit(c Cell) bool {
	return (w.Bit == nil || w.Bit(c.Bit)) &&
		(w.Row == nil || w.Row(c.Row)) &&
		(w.Col == nil || w.Col(c.Col))
}

var (
	Filled Filter = BitValues{1}
	Vacant Filter = BitValues{0}
)

// Cells yields the admitted cells in row-major order. Each call starts a
// fresh sequence.
func (b *Bitboard) Cells(f Filter) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for row := 0; row < b.height; row++ {
			for col := 0; col < b.width; col++ {
				c := Cell{Row: row, Col: col, Bit: b.bitAt(row, col)}
				if f != nil && !f.admit(c) {
					continue
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// All yields every cell.
func (b *Bitboard) All() iter.Seq[Cell] { return b.Cells(nil) }

// Visit calls fn for every admitted cell.
func (b *Bitboard) Visit(fn func(Cell), f Filter) {
	for c := range b.Cells(f) {
		fn(c)
	}
}
