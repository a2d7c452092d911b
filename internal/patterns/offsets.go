package patterns

import "bitboard_lab/internal/bitboard"

// Offset is a (row, col) displacement.
type Offset struct {
	DRow int
	DCol int
}

var KnightOffsets = []Offset{
	{-2, -1}, {-2, 1},
	{-1, -2}, {-1, 2},
	{1, -2}, {1, 2},
	{2, -1}, {2, 1},
}

var KingOffsets = []Offset{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Jumps marks every cell reachable from (row, col) by one of the offsets on
// a width x height big-endian board. Targets off the board are skipped
// unless wrap is set.
func Jumps(width, height, row, col int, offsets []Offset, wrap bool) (*bitboard.Bitboard, error) {
	b, err := bitboard.NewEmpty(width, height, false)
	if err != nil {
		return nil, err
	}
	origin := b.Clone().FillCell(row, col)
	for _, o := range offsets {
		b = b.Or(origin.Translate(o.DCol, o.DRow, wrap))
	}
	return b, nil
}
