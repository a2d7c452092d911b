// path: internal/httpx/server.go
package httpx

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"bitboard_lab/internal/bitboard"
	"bitboard_lab/internal/life"
	"bitboard_lab/internal/render"
)

//go:embed templates static
var assets embed.FS

// Server exposes one in-memory board to a local browser: the page shows the
// rendered frame, clicks toggle cells, buttons step Life or transform the
// board.
type Server struct {
	boardMu sync.Mutex
	board   *bitboard.Bitboard
	initial *bitboard.Bitboard
	gen     int
	rule    life.Rule
	wrap    bool
	style   render.Style
	tmpl    *template.Template
	logger  *slog.Logger
	srvMu   sync.Mutex
	srv     *http.Server
}

// Options configures a Server. Zero values fall back to Conway, the default
// render style and the default slog logger.
type Options struct {
	Rule   *life.Rule
	Wrap   bool
	Style  *render.Style
	Logger *slog.Logger
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	maxStepsPerCall        = 1000
	htmlCSP                = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'"
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server around a copy of board and parses templates.
func NewServer(board *bitboard.Bitboard, opts Options) (*Server, error) {
	if board == nil {
		return nil, errors.New("httpx: nil board")
	}
	t, err := template.ParseFS(assets, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{
		board:   board.Clone(),
		initial: board.Clone(),
		rule:    life.Conway,
		wrap:    opts.Wrap,
		style:   render.DefaultStyle(),
		tmpl:    t,
		logger:  opts.Logger,
	}
	if opts.Rule != nil {
		s.rule = *opts.Rule
	}
	if opts.Style != nil {
		s.style = *opts.Style
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.logger.Info("HTTP listening", "addr", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Play advances one generation per interval until ctx is done.
func (s *Server) Play(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.boardMu.Lock()
			s.stepLocked(1)
			s.boardMu.Unlock()
		}
	}
}

// routes configures the ServeMux with UI, JSON APIs, static files.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/frame.png", s.handleFrame)

	// JSON APIs
	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/toggle", s.withJSON(s.handleToggle))
	mux.HandleFunc("/api/step", s.withJSON(s.handleStep))
	mux.HandleFunc("/api/transform", s.withJSON(s.handleTransform))
	mux.HandleFunc("/api/reset", s.withJSON(s.handleReset))

	static, err := fs.Sub(assets, "static")
	if err == nil {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// BoardState is the JSON view of the board.
type BoardState struct {
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	LittleEndian bool           `json:"littleEndian"`
	Generation   int            `json:"generation"`
	Order        int            `json:"order"`
	Bounds       *bitboard.Rect `json:"bounds,omitempty"`
	Rows         []string       `json:"rows"`
	Binary       string         `json:"binary"`
	CellLength   int            `json:"cellLength"`
	OriginX      int            `json:"originX"`
	OriginY      int            `json:"originY"`
	Rule         string         `json:"rule"`
	Wrap         bool           `json:"wrap"`
}

func (s *Server) stateLocked() BoardState {
	st := BoardState{
		Width:        s.board.Width(),
		Height:       s.board.Height(),
		LittleEndian: s.board.LittleEndian(),
		Generation:   s.gen,
		Order:        s.board.Order(),
		Rows:         s.board.Rows(),
		Binary:       s.board.BinaryString(),
		CellLength:   s.style.CellLength,
		OriginX:      s.style.Origin.X,
		OriginY:      s.style.Origin.Y,
		Rule:         s.rule.String(),
		Wrap:         s.wrap,
	}
	if r, ok := s.board.Bounds(); ok {
		st.Bounds = &r
	}
	return st
}

func (s *Server) snapshot() BoardState {
	s.boardMu.Lock()
	defer s.boardMu.Unlock()
	return s.stateLocked()
}

func (s *Server) stepLocked(n int) {
	for i := 0; i < n; i++ {
		s.board = life.Step(s.board, s.rule, s.wrap)
		s.gen++
	}
}

// ---- UI ----

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	applyHTMLSecurityHeaders(w.Header())
	data := map[string]any{
		"Init": mustJSON(s.snapshot()),
	}
	if err := s.tmpl.ExecuteTemplate(w, "index", data); err != nil {
		s.logger.Error("template exec", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.boardMu.Lock()
	img := render.Image(s.board, s.style)
	s.boardMu.Unlock()

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		s.logger.Error("encode frame", "err", err)
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func mustJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return template.JS(b)
}

func applyHTMLSecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", htmlCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, map[string]any{"state": s.snapshot()})
}

// ---- API: toggle ----

// toggleBody addresses a cell either by row/col or by a pixel of the frame.
type toggleBody struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
	X   *int `json:"x"`
	Y   *int `json:"y"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body toggleBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.boardMu.Lock()
	defer s.boardMu.Unlock()

	var row, col int
	switch {
	case body.Row != nil && body.Col != nil:
		row, col = *body.Row, *body.Col
		if !s.board.Contains(row, col) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cell (%d,%d) is off the board", row, col))
			return
		}
	case body.X != nil && body.Y != nil:
		var ok bool
		row, col, ok = s.style.CellAt(s.board, *body.X, *body.Y)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("pixel (%d,%d) is off the board", *body.X, *body.Y))
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "expected row/col or x/y")
		return
	}
	s.board.ToggleCell(row, col)
	writeJSON(w, map[string]any{"state": s.stateLocked()})
}

// ---- API: step ----

type stepBody struct {
	Generations int `json:"generations"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body := stepBody{Generations: 1}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Generations < 1 || body.Generations > maxStepsPerCall {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("generations must be in [1,%d]", maxStepsPerCall))
		return
	}

	s.boardMu.Lock()
	defer s.boardMu.Unlock()
	s.stepLocked(body.Generations)
	writeJSON(w, map[string]any{"state": s.stateLocked()})
}

// ---- API: transform ----

type transformBody struct {
	Op   string `json:"op"`
	DX   int    `json:"dx"`
	DY   int    `json:"dy"`
	N    int    `json:"n"`
	Wrap *bool  `json:"wrap"`
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body transformBody
	if !decodeBody(w, r, &body) {
		return
	}
	wrap := body.Wrap == nil || *body.Wrap

	s.boardMu.Lock()
	defer s.boardMu.Unlock()

	b := s.board
	switch strings.ToLower(strings.TrimSpace(body.Op)) {
	case "rotate":
		b.Rotate()
	case "reflect":
		b.Reflect()
	case "transpose":
		b.Transpose()
	case "translate":
		s.board = b.Translate(body.DX, body.DY, wrap)
	case "shift":
		n := body.N
		if n == 0 {
			n = 1
		}
		shifted, err := b.ShiftBy(n, wrap)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.board = shifted
	case "not":
		s.board = b.Not()
	case "fill":
		b.Fill()
	case "clear":
		b.Clear()
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid op %q", body.Op))
		return
	}
	writeJSON(w, map[string]any{"state": s.stateLocked()})
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.boardMu.Lock()
	defer s.boardMu.Unlock()
	s.board = s.initial.Clone()
	s.gen = 0
	writeJSON(w, map[string]any{"state": s.stateLocked()})
}
