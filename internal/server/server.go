package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"car-persona-ai-bot/internal/gemini"
	"car-persona-ai-bot/internal/persona"
)

const maxBodyBytes = 20 << 20

type Options struct {
	Analyzer       *persona.Analyzer
	APIKey         string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type Server struct {
	analyzer *persona.Analyzer
	apiKey   string
	timeout  time.Duration
	logger   *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Server{
		analyzer: opts.Analyzer,
		apiKey:   opts.APIKey,
		timeout:  timeout,
		logger:   logger,
	}
}

type apiError struct {
	Error string `json:"error"`
}

type analyzeRequest struct {
	Image string `json:"image"`
}

type analyzeResponse struct {
	Analysis persona.Analysis `json:"analysis"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	return withLogging(mux, s.logger)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}

	// Checked before reading the body: a misconfigured server must not
	// issue outbound calls no matter what the request contains.
	if s.apiKey == "" {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "server API key is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}

	image := strings.TrimSpace(req.Image)
	if image == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "missing image data"})
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "image is not valid base64"})
		return
	}

	mimeType := http.DetectContentType(decoded)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	analysis, err := s.analyzer.Analyze(ctx, []gemini.ImageInput{{
		DataBase64: image,
		MimeType:   mimeType,
	}})
	if err != nil {
		s.logger.Error("analysis failed", "err", err)
		writeJSON(w, errorStatus(err), apiError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis})
}

// errorStatus echoes the upstream status code when the pipeline failed on the
// remote call itself; everything else is a plain 500.
func errorStatus(err error) int {
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
