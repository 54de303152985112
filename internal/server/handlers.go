package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/mosaic/internal/assembler"
	"github.com/MeKo-Tech/mosaic/internal/geometry"
	"github.com/MeKo-Tech/mosaic/internal/version"
)

// healthHandler responds to health check requests.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, resp)
}

// assembleHandler reconciles a detection payload into a document.
func (s *Server) assembleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyMB<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		assembleRequestsTotal.WithLabelValues("http", "error").Inc()
		writeJSON(w, http.StatusRequestEntityTooLarge, AssembleResponse{
			Success: false,
			Error:   "request body too large or unreadable",
		})
		return
	}

	in, err := assembler.ParseInput(data)
	if err != nil {
		assembleRequestsTotal.WithLabelValues("http", "error").Inc()
		writeJSON(w, http.StatusBadRequest, AssembleResponse{Success: false, Error: err.Error()})
		return
	}

	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	doc, err := s.assemblerFor(in.DetectionOrigin).AssembleParallel(ctx, in.Pages, assembler.ParallelConfig{
		MaxWorkers: s.maxWorkers,
	})
	if err != nil {
		assembleRequestsTotal.WithLabelValues("http", "error").Inc()
		writeJSON(w, statusForAssemblyError(err), AssembleResponse{Success: false, Error: err.Error()})
		return
	}

	assembleRequestsTotal.WithLabelValues("http", "success").Inc()
	assembleDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	assemblePages.Observe(float64(len(in.Pages)))
	assembleBlocks.Observe(float64(len(doc.Content)))

	writeJSON(w, http.StatusOK, AssembleResponse{
		Success: true,
		Result:  doc,
		Pages:   len(in.Pages),
		Blocks:  len(doc.Content),
	})
}

// statusForAssemblyError maps contract violations in the input data to
// 422 and everything else to 500.
func statusForAssemblyError(err error) int {
	switch {
	case errors.Is(err, assembler.ErrEmptyLineGeometry),
		errors.Is(err, assembler.ErrBlockConflict),
		errors.Is(err, geometry.ErrInvalidBox):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
