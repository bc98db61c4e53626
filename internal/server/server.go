package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/metrics"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
)

// maxImageBytes caps uploaded images before they are inlined as data URLs
const maxImageBytes = 10 << 20

// Checker runs one verification; satisfied by pipeline.Pipeline
type Checker interface {
	Check(ctx context.Context, in pipeline.Input) (*model.VerificationResult, error)
}

// Server exposes the verification pipeline over HTTP
type Server struct {
	checker Checker
	logger  *zap.Logger
}

// NewServer creates an HTTP API server
func NewServer(checker Checker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		checker: checker,
		logger:  logger,
	}
}

// Router builds the chi router with all routes and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(2 * time.Minute))
	r.Use(metrics.Middleware())

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/factcheck", func(r chi.Router) {
		r.Post("/text", s.handleCheckText)
		r.Post("/url", s.handleCheckURL)
		r.Post("/image", s.handleCheckImage)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type textRequest struct {
	Text string `json:"text"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type imageRequest struct {
	ImageURL string `json:"image_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCheckText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.runCheck(w, r, pipeline.Input{Text: req.Text})
}

func (s *Server) handleCheckURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.runCheck(w, r, pipeline.Input{URL: req.URL})
}

// handleCheckImage accepts either a JSON body with an image_url or a
// multipart upload with a "file" part, which is inlined as a data URL.
func (s *Server) handleCheckImage(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file upload: "+err.Error())
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
			return
		}
		if len(data) > maxImageBytes {
			writeError(w, http.StatusBadRequest, "image too large")
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = http.DetectContentType(data)
		}
		if !strings.HasPrefix(mimeType, "image/") {
			writeError(w, http.StatusBadRequest, "upload is not an image")
			return
		}

		dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
		s.runCheck(w, r, pipeline.Input{ImageURL: dataURL})
		return
	}

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.runCheck(w, r, pipeline.Input{ImageURL: req.ImageURL})
}

// runCheck executes the pipeline and maps the error taxonomy onto HTTP
// status codes: invalid input is the caller's fault, upstream failures are
// a bad gateway.
func (s *Server) runCheck(w http.ResponseWriter, r *http.Request, in pipeline.Input) {
	result, err := s.checker.Check(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, model.ErrUpstream):
			s.logger.Warn("verification failed upstream", zap.Error(err))
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			s.logger.Error("verification failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
