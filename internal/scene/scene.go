// path: internal/scene/scene.go

// Package scene loads YAML descriptions of a board, the seeds stamped on
// it and how it is drawn.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"bitboard_lab/internal/bitboard"
	"bitboard_lab/internal/life"
	"bitboard_lab/internal/patterns"
	"bitboard_lab/internal/render"
)

var ErrInvalidScene = errors.New("invalid scene")

type Scene struct {
	Board  BoardConfig  `yaml:"board" json:"board"`
	Rule   string       `yaml:"rule,omitempty" json:"rule,omitempty"`
	Wrap   *bool        `yaml:"wrap,omitempty" json:"wrap,omitempty"`
	Seeds  []SeedConfig `yaml:"seeds,omitempty" json:"seeds,omitempty"`
	Render RenderConfig `yaml:"render,omitempty" json:"render,omitempty"`
}

type BoardConfig struct {
	Width        int  `yaml:"width" json:"width"`
	Height       int  `yaml:"height" json:"height"`
	LittleEndian bool `yaml:"littleEndian,omitempty" json:"littleEndian,omitempty"`
}

// SeedConfig is one seed. Exactly one of Pattern, Value and Literal is set.
// Value is a decimal string so that it can exceed 64 bits.
type SeedConfig struct {
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Value   string `yaml:"value,omitempty" json:"value,omitempty"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
	Width   int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int    `yaml:"height,omitempty" json:"height,omitempty"`
	DX      int    `yaml:"dx,omitempty" json:"dx,omitempty"`
	DY      int    `yaml:"dy,omitempty" json:"dy,omitempty"`
}

type RenderConfig struct {
	CellLength int    `yaml:"cellLength,omitempty" json:"cellLength,omitempty"`
	OriginX    int    `yaml:"originX,omitempty" json:"originX,omitempty"`
	OriginY    int    `yaml:"originY,omitempty" json:"originY,omitempty"`
	On         string `yaml:"on,omitempty" json:"on,omitempty"`
	Off        string `yaml:"off,omitempty" json:"off,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	GridColor  string `yaml:"gridColor,omitempty" json:"gridColor,omitempty"`
	Grid       bool   `yaml:"grid,omitempty" json:"grid,omitempty"`
	Labels     bool   `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default is the 20x20 Life scene with the glider seed at (8, 6).
func Default() *Scene {
	return &Scene{
		Board: BoardConfig{Width: 20, Height: 20},
		Rule:  life.Conway.String(),
		Seeds: []SeedConfig{{Pattern: patterns.Glider.Name, DX: 8, DY: 6}},
	}
}

func (s *Scene) Validate() error {
	if s.Board.Width <= 0 || s.Board.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidScene, s.Board.Width, s.Board.Height)
	}
	if _, err := s.LifeRule(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	for i, seed := range s.Seeds {
		set := 0
		for _, v := range []string{seed.Pattern, seed.Value, seed.Literal} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("%w: seed %d must set exactly one of pattern, value, literal", ErrInvalidScene, i)
		}
	}
	if s.Render.CellLength < 0 {
		return fmt.Errorf("%w: negative cell length", ErrInvalidScene)
	}
	return nil
}

// LifeRule parses Rule, defaulting to Conway.
func (s *Scene) LifeRule() (life.Rule, error) {
	if s.Rule == "" {
		return life.Conway, nil
	}
	return life.ParseRule(s.Rule)
}

// Wrapping reports whether Life and translations wrap around the edges.
// Defaults to true.
func (s *Scene) Wrapping() bool {
	return s.Wrap == nil || *s.Wrap
}

// Build stamps every seed on an empty board. Each seed is re-fit onto the
// board shape, translated by its offset and merged.
func (s *Scene) Build() (*bitboard.Bitboard, error) {
	board, err := bitboard.NewEmpty(s.Board.Width, s.Board.Height, s.Board.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	empty := board.Clone()
	for i, sc := range s.Seeds {
		seed, err := sc.board()
		if err != nil {
			return nil, fmt.Errorf("%w: seed %d: %v", ErrInvalidScene, i, err)
		}
		stamp := empty.Or(seed).Translate(sc.DX, sc.DY, s.Wrapping())
		board = board.Or(stamp)
	}
	return board, nil
}

func (sc SeedConfig) board() (*bitboard.Bitboard, error) {
	if sc.Pattern != "" {
		p, err := patterns.Lookup(sc.Pattern)
		if err != nil {
			return nil, err
		}
		if sc.Width != 0 {
			p.Width = sc.Width
		}
		if sc.Height != 0 {
			p.Height = sc.Height
		}
		return p.Board()
	}
	cfg := bitboard.Config{Literal: sc.Literal, Width: sc.Width, Height: sc.Height}
	if sc.Value != "" {
		v, ok := new(big.Int).SetString(sc.Value, 0)
		if !ok {
			return nil, fmt.Errorf("bad value %q", sc.Value)
		}
		cfg.Value = v
	}
	return bitboard.New(cfg)
}

// Style converts the render section, starting from render.DefaultStyle.
func (s *Scene) Style() (render.Style, error) {
	st := render.DefaultStyle()
	rc := s.Render
	if rc.CellLength > 0 {
		st.CellLength = rc.CellLength
	}
	st.Origin = image.Pt(rc.OriginX, rc.OriginY)
	st.Grid = rc.Grid
	st.Labels = rc.Labels
	for _, f := range []struct {
		in  string
		dst *color.Color
	}{
		{rc.On, &st.On},
		{rc.Off, &st.Off},
		{rc.Background, &st.Background},
		{rc.GridColor, &st.GridColor},
	} {
		if f.in == "" {
			continue
		}
		c, err := render.ParseColor(f.in)
		if err != nil {
			return render.Style{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		*f.dst = c
	}
	return st, nil
}

// Marshal encodes the scene back to YAML.
func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
