// cmd/bbdemo/main.go
// Terminal versions of the playground sketches.
//
//	bbdemo api
//	bbdemo shift -steps 12 -wrap=false
//	bbdemo knight -row 2 -col 7
//	bbdemo gol -scene scenes/glider.yaml -gens 8 -png out.png
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bitboard_lab/internal/bitboard"
	"bitboard_lab/internal/life"
	"bitboard_lab/internal/patterns"
	"bitboard_lab/internal/render"
	"bitboard_lab/internal/scene"
)

const usage = "usage: bbdemo <api|shift|knight|gol> [flags]"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	bitboard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "api":
		err = runAPI(os.Stdout)
	case "shift":
		err = runShift(os.Stdout, args)
	case "knight":
		err = runKnight(os.Stdout, args)
	case "gol":
		err = runLife(os.Stdout, args)
	default:
		err = fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runAPI lists the cells of the 3x3 board 0b100000100.
func runAPI(w io.Writer) error {
	b, err := bitboard.Parse("0b100000100", 3, 3)
	if err != nil {
		return err
	}
	for c := range b.All() {
		fmt.Fprintln(w, c.Row, c.Col, c.Bit)
	}
	for c := range b.Cells(bitboard.Vacant) {
		fmt.Fprintln(w, "Empty cell at", c.Row, c.Col)
	}
	return nil
}

func runShift(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("shift", flag.ContinueOnError)
	cols := fs.Int("cols", 10, "board width")
	rows := fs.Int("rows", 10, "board height")
	steps := fs.Int("steps", 5, "number of shifts")
	wrap := fs.Bool("wrap", true, "re-enter the overflowing bit at bit 0")
	little := fs.Bool("little-endian", false, "map bit 0 to the top-left cell")
	if err := fs.Parse(args); err != nil {
		return err
	}
	b, err := bitboard.NewEmpty(*cols, *rows, *little)
	if err != nil {
		return err
	}
	// Diagonal from the top-left corner, like the original shift sketch.
	for i := 0; i < min(*cols, *rows); i++ {
		b.FillCell(i, i)
	}
	for i := 0; i <= *steps; i++ {
		fmt.Fprintf(w, "step %d (%d set)\n%s\n", i, b.Order(), render.Text(b, '#', '.'))
		b = b.Shift(*wrap)
	}
	return nil
}

func runKnight(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("knight", flag.ContinueOnError)
	row := fs.Int("row", 5, "knight row")
	col := fs.Int("col", 5, "knight column")
	wrap := fs.Bool("wrap", true, "wrap jumps around the board edges")
	if err := fs.Parse(args); err != nil {
		return err
	}
	knight, err := patterns.Knight.Board()
	if err != nil {
		return err
	}
	jumps, err := patterns.KnightJumps.Board()
	if err != nil {
		return err
	}
	knight = patterns.Centered(knight, *row, *col, *wrap)
	jumps = patterns.Centered(jumps, *row, *col, *wrap)

	var sb strings.Builder
	for c := range knight.All() {
		switch {
		case c.Bit == 1:
			sb.WriteByte('N')
		case jumps.IsFilled(c.Row, c.Col):
			sb.WriteByte('*')
		default:
			sb.WriteByte('.')
		}
		if c.Col == knight.Width()-1 {
			sb.WriteByte('\n')
		}
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func runLife(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("gol", flag.ContinueOnError)
	scenePath := fs.String("scene", "", "YAML scene file (default: 20x20 glider)")
	gens := fs.Int("gens", 4, "generations to run")
	pngPath := fs.String("png", "", "write the last generation as PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sc := scene.Default()
	if *scenePath != "" {
		var err error
		if sc, err = scene.Load(*scenePath); err != nil {
			return err
		}
	}
	board, err := sc.Build()
	if err != nil {
		return err
	}
	rule, err := sc.LifeRule()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "gen 0 (%d set)\n%s\n", board.Order(), render.Text(board, '#', '.'))
	last, err := life.Run(context.Background(), board, rule, sc.Wrapping(), *gens, func(gen int, b *bitboard.Bitboard) bool {
		fmt.Fprintf(w, "gen %d (%d set)\n%s\n", gen, b.Order(), render.Text(b, '#', '.'))
		return true
	})
	if err != nil {
		return err
	}
	if *pngPath == "" {
		return nil
	}
	style, err := sc.Style()
	if err != nil {
		return err
	}
	f, err := os.Create(*pngPath)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, render.Image(last, style)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
