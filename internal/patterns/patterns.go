// path: internal/patterns/patterns.go

// Package patterns holds named seed boards and jump offsets.
package patterns

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"bitboard_lab/internal/bitboard"
)

var ErrUnknownPattern = errors.New("unknown pattern")

// Seed is a named packed value with the shape it was drawn for.
type Seed struct {
	Name         string
	Description  string
	Value        *big.Int
	Width        int
	Height       int
	LittleEndian bool
}

// Board builds a fresh board for the seed.
func (s Seed) Board() (*bitboard.Bitboard, error) {
	return bitboard.New(bitboard.Config{
		Value:        s.Value,
		Width:        s.Width,
		Height:       s.Height,
		LittleEndian: s.LittleEndian,
	})
}

var (
	Glider = Seed{
		Name:        "glider",
		Description: "3x8 seed 0b111101111111111111101111",
		Value:       big.NewInt(16252911),
		Width:       3,
		Height:      8,
	}
	Knight = Seed{
		Name:        "knight",
		Description: "single knight at (5,5) on a 10x10 board",
		Value:       mustInt("17592186044416"),
		Width:       10,
		Height:      10,
	}
	KnightJumps = Seed{
		Name:        "knight-jumps",
		Description: "squares a knight at (5,5) attacks on a 10x10 board",
		Value:       mustInt("46193421450995564544"),
		Width:       10,
		Height:      10,
	}
	Blinker = Seed{
		Name:        "blinker",
		Description: "period-2 oscillator",
		Value:       big.NewInt(0b000111000),
		Width:       3,
		Height:      3,
	}
	Block = Seed{
		Name:        "block",
		Description: "2x2 still life",
		Value:       big.NewInt(0b1111),
		Width:       2,
		Height:      2,
	}
)

var catalog = map[string]Seed{
	Glider.Name:      Glider,
	Knight.Name:      Knight,
	KnightJumps.Name: KnightJumps,
	Blinker.Name:     Blinker,
	Block.Name:       Block,
}

// Lookup finds a seed by name.
func Lookup(name string) (Seed, error) {
	s, ok := catalog[name]
	if !ok {
		return Seed{}, fmt.Errorf("%w %q; valid: %v", ErrUnknownPattern, name, Names())
	}
	return s, nil
}

func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Centered moves a seed drawn around the centre of its board so that the
// centre lands on (row, col).
func Centered(seed *bitboard.Bitboard, row, col int, wrap bool) *bitboard.Bitboard {
	return seed.Translate(col-seed.Width()/2, row-seed.Height()/2, wrap)
}

func mustInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(fmt.Sprintf("patterns: bad integer %q", s))
	}
	return v
}
