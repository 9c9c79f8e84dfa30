// Package server exposes the depviz pipeline over HTTP.
//
// The server mirrors the CLI exactly: one request runs one fetch → build
// → render pass and returns the artifact. It exists so depviz can be
// deployed once (with the API key held server-side) and used by clients
// that cannot talk to the Rosette API directly.
//
// Routes:
//
//	POST /v1/graph   → DOT digraph description (text/vnd.graphviz)
//	POST /v1/render  → rendered image, ?format=svg|pdf|png
//	GET  /healthz    → liveness probe
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/pipeline"
)

// Server handles HTTP requests against a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a Server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(recoverer(s.logger))

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/graph", s.handleGraph)
	r.Post("/v1/render", s.handleRender)

	return r
}

// graphRequest is the JSON request body for /v1/graph and /v1/render.
// A text/plain body is accepted as a shorthand for {"content": ...}.
type graphRequest struct {
	Content     string `json:"content,omitempty"`
	ContentURI  string `json:"contentUri,omitempty"`
	Language    string `json:"language,omitempty"`
	ShowIndices bool   `json:"showIndices,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Format = pipeline.FormatDOT

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(result.DOT))
}

// renderContentTypes maps output formats to response content types.
var renderContentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatPNG: "image/png",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts.Format = r.URL.Query().Get("format")
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	contentType, ok := renderContentTypes[opts.Format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %s (must be 'svg', 'pdf', or 'png')", opts.Format))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(result.Artifact)
}

// decodeOptions reads pipeline options from the request body. JSON bodies
// carry the full option set; any other content type is treated as raw
// document text.
func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req graphRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
		}
		opts = pipeline.Options{
			Content:     req.Content,
			ContentURI:  req.ContentURI,
			Language:    req.Language,
			ShowIndices: req.ShowIndices,
			Refresh:     req.Refresh,
		}
		return opts, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	opts.Content = string(body)
	return opts, nil
}

// errorEnvelope is the JSON error response body.
type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps structured error codes to HTTP status codes. Upstream
// service failures surface as 502 since the server acts as a gateway to
// the Rosette API.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLanguage:
		return http.StatusBadRequest
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnauthorized, errors.ErrCodeRemoteService,
		errors.ErrCodeStructural, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	s.logger.Error("Request failed",
		"request_id", requestIDFrom(r.Context()),
		"status", status,
		"error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error: errorDetail{Code: string(code), Message: errors.UserMessage(err)},
	})
}
