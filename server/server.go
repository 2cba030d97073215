package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"agent_newsroom/agent"
	"agent_newsroom/pipeline"
	"agent_newsroom/store"
)

//go:embed web/dist
var embeddedStatic embed.FS

// DefaultRunTimeout bounds one article run started over HTTP.
const DefaultRunTimeout = 10 * time.Minute

type Server struct {
	orch       *pipeline.Orchestrator
	store      *store.Store
	hub        *Hub
	logger     *log.Logger
	staticFS   http.Handler
	runTimeout time.Duration
}

type Option func(*Server)

func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithRunTimeout(d time.Duration) Option {
	return func(s *Server) { s.runTimeout = d }
}

func New(orch *pipeline.Orchestrator, st *store.Store, opts ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("orchestrator required")
	}
	if st == nil {
		return nil, errors.New("store required")
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	s := &Server{
		orch:       orch,
		store:      st,
		hub:        NewHub(),
		staticFS:   http.FileServer(http.FS(sub)),
		runTimeout: DefaultRunTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s, nil
}

// Hub returns the event hub every run started by this server publishes to.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/ask", s.handleAsk)
	mux.HandleFunc("/api/logs", s.handleLogs)
	mux.HandleFunc("/api/pages", s.handlePages)
	mux.Handle(mountPoint(s.store.PagesDir()), http.StripPrefix(mountPoint(s.store.PagesDir()), http.FileServer(s.store.PagesFS())))
	mux.Handle(mountPoint(s.store.ImagesDir()), http.StripPrefix(mountPoint(s.store.ImagesDir()), http.FileServer(s.store.ImagesFS())))
	mux.Handle("/", s.staticHandler())
	return logMiddleware(s.logger, mux)
}

// mountPoint maps a store directory to its URL prefix, matching the paths the store hands out.
func mountPoint(dir string) string {
	return "/" + strings.Trim(path.Clean("/"+dir), "/") + "/"
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// FileServer serves index.html for "/" itself.
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		s.staticFS.ServeHTTP(w, r)
	})
}

// --- Handlers ---

type generateReq struct {
	Topic string `json:"topic"`
}

type askReq struct {
	Request string `json:"request"`
}

type askResp struct {
	Agent    string     `json:"agent"`
	Kind     agent.Kind `json:"kind"`
	Response string     `json:"response"`
}

type pagesResp struct {
	Pages []store.Entry `json:"pages"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeJSONStatus(w, http.StatusBadRequest, errorResp{Error: "topic is required"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.runTimeout)
	defer cancel()
	res := s.orch.Run(ctx, topic, s.hub)
	if res.Failed() {
		writeJSONStatus(w, http.StatusBadGateway, res)
		return
	}
	writeJSON(w, res)
}

// handleAsk routes a free-form request to the best matching capability. Each request
// works on a cloned registry, so no conversation state leaks between callers.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req askReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Request) == "" {
		writeJSONStatus(w, http.StatusBadRequest, errorResp{Error: "request is required"})
		return
	}
	c, err := s.orch.Registry().Clone().Route(req.Request)
	if err != nil {
		writeJSONStatus(w, http.StatusNotFound, errorResp{Error: err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.runTimeout)
	defer cancel()
	out, err := c.HandleRequest(ctx, req.Request)
	if err != nil {
		writeJSONStatus(w, http.StatusBadGateway, errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, askResp{Agent: c.Name(), Kind: c.Kind(), Response: out})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	hello, _ := encodeFrame("connected", map[string]string{"type": "connected"})
	if _, err := w.Write(hello); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame := <-ch:
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pages, err := s.store.ListPages()
	if err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	if pages == nil {
		pages = []store.Entry{}
	}
	writeJSON(w, pagesResp{Pages: pages})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func logMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		logger.Debug("http request", "method", r.Method, "path", path, "status", rec.status, "took", time.Since(start))
	})
}
