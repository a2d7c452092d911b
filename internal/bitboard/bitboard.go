// path: internal/bitboard/bitboard.go

// Package bitboard implements a fixed-size two-dimensional grid of bits packed
// into a single wide bit vector.
//
// Bit i of the packed value is one cell of a width x height grid. In the
// default big-endian layout bit 0 is the bottom-right cell and bit size-1 the
// top-left one, so a binary literal reads row by row from the top-left corner.
// The little-endian layout maps bit 0 to the top-left cell instead.
//
// Methods fall into two groups. Transpose, Reflect, Rotate and the
// Fill/Clear/Toggle family mutate the receiver and return it for chaining.
// Everything else returns a new board. A Bitboard is not safe for concurrent
// mutation; clone it first.
package bitboard

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// DefaultWidth is used when a Config leaves Width unset.
const DefaultWidth = 8

// MaxCells bounds width*height for every board this package builds.
const MaxCells = 1 << 30

// Bitboard is a width x height grid of bits.
type Bitboard struct {
	bits         *bitset.BitSet
	width        int
	height       int
	littleEndian bool
	cropped      bool
}

// Config describes a board to build. Literal takes precedence over Value.
// A zero Width means DefaultWidth; a zero Height is derived from the bit
// length of the value.
type Config struct {
	Value        *big.Int
	Literal      string
	Width        int
	Height       int
	LittleEndian bool
}

// New resolves cfg into a normalized board. Values longer than
// width*height bits are cropped to the low-order bits; the board then
// reports Cropped and a warning is logged.
func New(cfg Config) (*Bitboard, error) {
	value := new(big.Int)
	switch {
	case cfg.Literal != "":
		v, err := parseLiteral(cfg.Literal)
		if err != nil {
			return nil, err
		}
		value = v
	case cfg.Value != nil:
		if cfg.Value.Sign() < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeValue, cfg.Value)
		}
		value.Set(cfg.Value)
	}

	width := cfg.Width
	if width == 0 {
		width = DefaultWidth
	}
	height := cfg.Height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if height == 0 {
		height = (bitLength(value) + width - 1) / width
		debug("computed height", "width", width, "height", height)
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	b := newBoard(width, height, cfg.LittleEndian)
	size := b.Size()
	if bitLength(value) > size {
		cropped := new(big.Int).And(value, maskOf(size))
		warn("value too long for dimensions, cropped",
			"width", width,
			"height", height,
			"original", value.Text(2),
			"cropped", padBinary(cropped, size),
		)
		value = cropped
		b.cropped = true
	}
	for i := 0; i < size; i++ {
		if value.Bit(i) == 1 {
			b.bits.Set(uint(i))
		}
	}
	return b, nil
}

// MustNew is like New but panics on error. Intended for package-level seeds.
func MustNew(cfg Config) *Bitboard {
	b, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

// NewEmpty returns an all-zero board.
func NewEmpty(width, height int, littleEndian bool) (*Bitboard, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return newBoard(width, height, littleEndian), nil
}

// checkDimensions rejects non-positive sides and grids above MaxCells,
// dividing first so width*height cannot overflow.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// FromUint64 builds a board from a machine word.
func FromUint64(v uint64, width, height int, littleEndian bool) (*Bitboard, error) {
	return New(Config{
		Value:        new(big.Int).SetUint64(v),
		Width:        width,
		Height:       height,
		LittleEndian: littleEndian,
	})
}

// Parse builds a big-endian board from a base-2 literal such as "0b100000100".
func Parse(literal string, width, height int) (*Bitboard, error) {
	return New(Config{Literal: literal, Width: width, Height: height})
}

// newBoard expects dimensions already accepted by checkDimensions.
func newBoard(width, height int, littleEndian bool) *Bitboard {
	return &Bitboard{
		bits:         bitset.New(uint(width * height)),
		width:        width,
		height:       height,
		littleEndian: littleEndian,
	}
}

// derive returns an empty board with the receiver's shape and orientation.
func (b *Bitboard) derive() *Bitboard {
	return newBoard(b.width, b.height, b.littleEndian)
}

func parseLiteral(s string) (*big.Int, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0b"), "0B")
	digits = strings.ReplaceAll(digits, "_", "")
	if digits == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	for _, r := range digits {
		if r != '0' && r != '1' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
	}
	v, ok := new(big.Int).SetString(digits, 2)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	return v, nil
}

// bitLength counts binary digits; zero is written "0" and so has length 1.
func bitLength(v *big.Int) int {
	if n := v.BitLen(); n > 0 {
		return n
	}
	return 1
}

func maskOf(size int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(size))
	return m.Sub(m, big.NewInt(1))
}

func padBinary(v *big.Int, size int) string {
	s := v.Text(2)
	if len(s) < size {
		s = strings.Repeat("0", size-len(s)) + s
	}
	return s
}

func (b *Bitboard) Width() int         { return b.width }
func (b *Bitboard) Height() int        { return b.height }
func (b *Bitboard) LittleEndian() bool { return b.littleEndian }

// Size is the number of cells, width*height.
func (b *Bitboard) Size() int { return b.width * b.height }

// Cropped reports whether construction had to drop high-order bits.
func (b *Bitboard) Cropped() bool { return b.cropped }

// Mask returns (1<<size)-1.
func (b *Bitboard) Mask() *big.Int { return maskOf(b.Size()) }

// Value returns the packed integer.
func (b *Bitboard) Value() *big.Int {
	v := new(big.Int)
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		v.SetBit(v, int(i), 1)
	}
	return v
}

// BinaryString renders the packed integer in base 2 without padding.
func (b *Bitboard) BinaryString() string { return b.Value().Text(2) }

// Rows renders the board as one zero-padded binary string per row, top row
// first, in display order regardless of orientation.
func (b *Bitboard) Rows() []string {
	rows := make([]string, b.height)
	var sb strings.Builder
	for row := 0; row < b.height; row++ {
		sb.Reset()
		for col := 0; col < b.width; col++ {
			if b.IsFilled(row, col) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

func (b *Bitboard) String() string {
	layout := "big-endian"
	if b.littleEndian {
		layout = "little-endian"
	}
	return fmt.Sprintf("Bitboard(%dx%d %s 0b%s)", b.width, b.height, layout, padBinary(b.Value(), b.Size()))
}

// Clone returns a deep copy. The cropped flag is not carried over.
func (b *Bitboard) Clone() *Bitboard {
	return &Bitboard{
		bits:         b.bits.Clone(),
		width:        b.width,
		height:       b.height,
		littleEndian: b.littleEndian,
	}
}

// Equal reports structural equality on bits, shape and orientation.
func (b *Bitboard) Equal(other *Bitboard) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.width != other.width || b.height != other.height || b.littleEndian != other.littleEndian {
		return false
	}
	return b.bits.SymmetricDifferenceCardinality(other.bits) == 0
}
