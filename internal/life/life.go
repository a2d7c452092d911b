// path: internal/life/life.go

// Package life steps Life-like cellular automata over bitboards.
package life

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bitboard_lab/internal/bitboard"
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule lists the neighbour counts that give birth to an empty cell and
// those that keep a live cell alive.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is B3/S23.
var Conway = MustParseRule("B3/S23")

// ParseRule reads the "B3/S23" notation. Either part may be empty ("B/S").
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return Rule{}, fmt.Errorf("%w %q", ErrInvalidRule, s)
	}
	for i, dst := range []*[9]bool{&r.Birth, &r.Survive} {
		for _, ch := range parts[i][1:] {
			n, err := strconv.Atoi(string(ch))
			if err != nil || n > 8 {
				return Rule{}, fmt.Errorf("%w %q", ErrInvalidRule, s)
			}
			dst[n] = true
		}
	}
	return r, nil
}

func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for n, ok := range r.Birth {
		if ok {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	sb.WriteString("/S")
	for n, ok := range r.Survive {
		if ok {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

// Step computes the next generation. The input board is not modified.
func Step(b *bitboard.Bitboard, rule Rule, wrap bool) *bitboard.Bitboard {
	next := b.Clone()
	for c := range b.All() {
		n := b.Neighbors(c.Row, c.Col, wrap)
		if c.Bit == 1 {
			if !rule.Survive[n] {
				next.ClearCell(c.Row, c.Col)
			}
		} else if rule.Birth[n] {
			next.FillCell(c.Row, c.Col)
		}
	}
	return next
}

// Run advances b by generations steps, calling fn after each one. It stops
// early when ctx is done or fn returns false, and returns the last board
// computed.
func Run(ctx context.Context, b *bitboard.Bitboard, rule Rule, wrap bool, generations int, fn func(gen int, b *bitboard.Bitboard) bool) (*bitboard.Bitboard, error) {
	cur := b
	for gen := 1; gen <= generations; gen++ {
		if err := ctx.Err(); err != nil {
			return cur, err
		}
		cur = Step(cur, rule, wrap)
		if fn != nil && !fn(gen, cur) {
			break
		}
	}
	return cur, nil
}
