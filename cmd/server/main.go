// cmd/server/main.go
// Serves a local playground over one board loaded from a scene file, or the
// default glider scene when none is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/profile"

	"bitboard_lab/internal/bitboard"
	"bitboard_lab/internal/httpx"
	"bitboard_lab/internal/scene"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("BITBOARD_ADDR", ":8080"), "listen address")
	scenePath := flag.String("scene", getenv("BITBOARD_SCENE", ""), "YAML scene file (default: 20x20 glider)")
	play := flag.Duration("play", getenvDuration("BITBOARD_PLAY", 0), "autoplay interval, 0 disables")
	logLevel := flag.String("log-level", getenv("BITBOARD_LOG_LEVEL", "info"), "debug, info, warn or error")
	prof := flag.String("profile", getenv("BITBOARD_PROFILE", ""), "write a cpu or mem profile to the working directory")
	flag.Parse()

	logger := newLogger(*logLevel)
	slog.SetDefault(logger)
	bitboard.SetLogger(logger)

	profMode, err := parseProfile(*prof)
	fatalIf(logger, err, "profile")

	sc := scene.Default()
	if *scenePath != "" {
		sc, err = scene.Load(*scenePath)
		fatalIf(logger, err, "scene")
	}
	board, err := sc.Build()
	fatalIf(logger, err, "build board")
	rule, err := sc.LifeRule()
	fatalIf(logger, err, "rule")
	style, err := sc.Style()
	fatalIf(logger, err, "style")

	srv, err := httpx.NewServer(board, httpx.Options{
		Rule:   &rule,
		Wrap:   sc.Wrapping(),
		Style:  &style,
		Logger: logger,
	})
	fatalIf(logger, err, "http init")
	logger.Info("board ready", "width", board.Width(), "height", board.Height(), "order", board.Order(), "rule", rule.String())

	// Started after every fatal path: os.Exit would skip the deferred Stop.
	if profMode != nil {
		defer profile.Start(profMode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *play > 0 {
		go func() { _ = srv.Play(ctx, *play) }()
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	if err := srv.Listen(*addr); err != nil {
		logger.Error("listen", "err", err)
	}
}

// parseProfile maps the -profile flag to a pkg/profile mode; nil means off.
func parseProfile(name string) (func(*profile.Profile), error) {
	switch name {
	case "":
		return nil, nil
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	}
	return nil, fmt.Errorf("invalid profile %q; valid: cpu, mem", name)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func fatalIf(logger *slog.Logger, err error, label string) {
	if err != nil {
		fatal(logger, label, err)
	}
}

func fatal(logger *slog.Logger, label string, err error) {
	logger.Error(label, "err", err)
	os.Exit(1)
}
