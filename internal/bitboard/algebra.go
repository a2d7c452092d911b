// path: internal/bitboard/algebra.go
package bitboard

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// And returns the intersection of b and other, other being re-fit to b's
// shape first.
func (b *Bitboard) And(other *Bitboard) *Bitboard {
	return b.combine(other.fitTo(b).bits, b.bits.Intersection)
}

func (b *Bitboard) Or(other *Bitboard) *Bitboard {
	return b.combine(other.fitTo(b).bits, b.bits.Union)
}

func (b *Bitboard) Xor(other *Bitboard) *Bitboard {
	return b.combine(other.fitTo(b).bits, b.bits.SymmetricDifference)
}

// AndNot returns the cells of b that are not set in other.
func (b *Bitboard) AndNot(other *Bitboard) *Bitboard {
	return b.combine(other.fitTo(b).bits, b.bits.Difference)
}

// Not returns the complement of b.
func (b *Bitboard) Not() *Bitboard {
	out := b.Clone()
	out.bits.FlipRange(0, uint(b.Size()))
	return out
}

// Fit re-stamps the set cells of b onto an empty width x height board with
// the given orientation. Cells that fall outside the new shape are dropped
// and counted.
func (b *Bitboard) Fit(width, height int, littleEndian bool) (*Bitboard, int, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, 0, fmt.Errorf("fit: %w", err)
	}
	fitted := newBoard(width, height, littleEndian)
	dropped := 0
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		row, col := b.Cell(int(i))
		if !fitted.Contains(row, col) {
			dropped++
			continue
		}
		fitted.bits.Set(uint(fitted.Index(row, col)))
	}
	return fitted, dropped, nil
}

// fitTo returns b unchanged when it already matches target, otherwise the
// re-fit copy. A warning is logged whenever the packed value changes, even
// if no cell was lost.
func (b *Bitboard) fitTo(target *Bitboard) *Bitboard {
	if b.width == target.width && b.height == target.height && b.littleEndian == target.littleEndian {
		return b
	}
	// target was built by this package, so its dimensions are valid.
	fitted, dropped, _ := b.Fit(target.width, target.height, target.littleEndian)
	from, to := b.Value(), fitted.Value()
	if from.Cmp(to) != 0 {
		warn("operand changed to fit dimensions",
			"from", from.String(),
			"to", to.String(),
			"width", target.width,
			"height", target.height,
			"dropped", dropped,
		)
	}
	return fitted
}

func (b *Bitboard) combine(operand *bitset.BitSet, op func(*bitset.BitSet) *bitset.BitSet) *Bitboard {
	out := b.derive()
	res := op(operand)
	for i, ok := res.NextSet(0); ok && int(i) < b.Size(); i, ok = res.NextSet(i + 1) {
		out.bits.Set(i)
	}
	return out
}
