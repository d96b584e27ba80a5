// Package http exposes the script façades over a small REST API.
//
//	GET  /health                 liveness
//	GET  /info                   version
//	GET  /ops                    operation reference of both façades
//	GET  /maps                   open documents
//	POST /vym/ops/{op}           call an application operation
//	POST /maps/current/ops/{op}  call an operation on the focused document
//	GET  /events                 server-sent events, one per call
//
// Operation bodies are a JSON array of positional arguments or a JSON object of
// named arguments. An empty body calls without arguments.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/script"
)

// Server serves the façades of one application. Calls are serialized.
type Server struct {
	app     *script.App
	logger  *slog.Logger
	version string
	Streams *StreamManager

	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer creates a server for app.
func NewServer(app *script.App, opts ...Option) *Server {
	s := &Server{
		app:     app,
		logger:  logging.NewNop(),
		version: "dev",
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for app.
func NewHandler(app *script.App, opts ...Option) http.Handler {
	return NewServer(app, opts...).Routes()
}

// Routes builds the router. extra mounts additional handlers, e.g. /metrics.
func (s *Server) Routes(extra ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/ops", s.GetOps)
	r.Get("/maps", s.GetMaps)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/vym/ops/{op}", s.CallApp)
	r.Post("/maps/current/ops/{op}", s.CallMap)

	for _, mount := range extra {
		mount(r)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OpInfo describes one operation in /ops.
type OpInfo struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
	Selection bool   `json:"selection"`
}

// MapInfo describes one open document in /maps.
type MapInfo struct {
	Index    int    `json:"index"`
	FileName string `json:"fileName"`
	Title    string `json:"title"`
	Current  bool   `json:"current"`
}

// ErrorInfo is a reported script error.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CallResponse is the body of an operation response.
type CallResponse struct {
	Result any         `json:"result"`
	Errors []ErrorInfo `json:"errors,omitempty"`
}

// CallEvent is broadcast on /events after every call.
type CallEvent struct {
	Facade string      `json:"facade"`
	Op     string      `json:"op"`
	Errors []ErrorInfo `json:"errors,omitempty"`
	At     time.Time   `json:"at"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "vym-http",
		"version": strings.TrimSpace(s.version),
	}, s.logger)
}

// GetOps handles the GET /ops request.
func (s *Server) GetOps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]OpInfo{
		"vym": opInfos(script.AppOperations()),
		"map": opInfos(script.MapOperations()),
	}, s.logger)
}

func opInfos(specs []script.Spec) []OpInfo {
	out := make([]OpInfo, len(specs))
	for i, spec := range specs {
		out[i] = OpInfo{Name: spec.Name, Signature: spec.Signature(), Doc: spec.Doc, Selection: spec.Selection}
	}
	return out
}

// GetMaps handles the GET /maps request.
func (s *Server) GetMaps(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	host := s.app.Host()
	current := host.CurrentModel()
	models := host.Models()
	out := make([]MapInfo, len(models))
	for i, m := range models {
		out[i] = MapInfo{Index: i, FileName: m.FileName(), Title: m.Title(), Current: m == current}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out, s.logger)
}

// CallApp handles the POST /vym/ops/{op} request.
func (s *Server) CallApp(w http.ResponseWriter, r *http.Request) {
	s.call(w, r, "vym", script.AppOperations(), func(app *script.App) target { return app })
}

// CallMap handles the POST /maps/current/ops/{op} request.
func (s *Server) CallMap(w http.ResponseWriter, r *http.Request) {
	s.call(w, r, "map", script.MapOperations(), func(app *script.App) target {
		if m := app.CurrentMap(); m != nil {
			return m
		}
		return nil
	})
}

// target is what both façades offer.
type target interface {
	Call(ctx context.Context, name string, args ...any) any
	CallNamed(ctx context.Context, name string, named map[string]any) any
}

func (s *Server) call(w http.ResponseWriter, r *http.Request, facade string, specs []script.Spec, pick func(*script.App) target) {
	op := chi.URLParam(r, "op")
	if !known(specs, op) {
		http.Error(w, fmt.Sprintf("Unknown operation %s.%s", facade, op), http.StatusNotFound)
		return
	}

	positional, named, err := decodeArgs(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Call: Invalid request body", "op", op, "error", err)
		return
	}

	errs := &script.Errors{}
	s.mu.Lock()
	t := pick(s.app.Bind(errs))
	if t == nil {
		s.mu.Unlock()
		http.Error(w, "No map opened", http.StatusConflict)
		return
	}
	var res any
	if named != nil {
		res = t.CallNamed(r.Context(), op, named)
	} else {
		res = t.Call(r.Context(), op, positional...)
	}
	s.mu.Unlock()

	resp := CallResponse{Result: result(res), Errors: errorInfos(errs.List())}
	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}

	if payload, err := json.Marshal(CallEvent{Facade: facade, Op: op, Errors: resp.Errors, At: time.Now().UTC()}); err == nil {
		s.Streams.Broadcast(facade, string(payload))
	}
	writeJSON(w, status, resp, s.logger)
}

func known(specs []script.Spec, name string) bool {
	for _, spec := range specs {
		if spec.Name == name {
			return true
		}
	}
	return false
}

func decodeArgs(body io.Reader) ([]any, map[string]any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil, nil
	}
	if raw[0] == '{' {
		var named map[string]any
		if err := json.Unmarshal(raw, &named); err != nil {
			return nil, nil, err
		}
		return nil, named, nil
	}
	var positional []any
	if err := json.Unmarshal(raw, &positional); err != nil {
		return nil, nil, err
	}
	return positional, nil, nil
}

func result(v any) any {
	if m, ok := v.(*script.Map); ok {
		model := m.Model()
		return MapInfo{Index: -1, FileName: model.FileName(), Title: model.Title(), Current: true}
	}
	return v
}

func errorInfos(list []*domain.ScriptError) []ErrorInfo {
	if len(list) == 0 {
		return nil
	}
	out := make([]ErrorInfo, len(list))
	for i, se := range list {
		out[i] = ErrorInfo{Kind: se.Kind.String(), Message: se.Message}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
