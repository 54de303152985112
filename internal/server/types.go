package server

import (
	"net/http"

	"github.com/MeKo-Tech/mosaic/internal/assembler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	assemblerCfg assembler.Config
	corsOrigin   string
	maxBodyMB    int64
	timeoutSec   int
	maxWorkers   int
}

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	CORSOrigin      string
	MaxBodyMB       int64
	TimeoutSec      int
	MaxWorkers      int
	AssemblerConfig assembler.Config
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// AssembleResponse wraps an assembled document or the error that
// prevented assembly.
type AssembleResponse struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	Pages   int    `json:"pages,omitempty"`
	Blocks  int    `json:"blocks,omitempty"`
}

// NewServer creates a new assembly server instance.
func NewServer(config Config) *Server {
	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Server{
		assemblerCfg: config.AssemblerConfig,
		corsOrigin:   config.CORSOrigin,
		maxBodyMB:    config.MaxBodyMB,
		timeoutSec:   config.TimeoutSec,
		maxWorkers:   maxWorkers,
	}
}

// assemblerFor builds an assembler for a request, honoring a per-request
// detection origin override.
func (s *Server) assemblerFor(origin string) *assembler.Assembler {
	cfg := s.assemblerCfg
	if origin != "" {
		cfg.Origin = origin
	}
	return assembler.New(cfg)
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/assemble", s.corsMiddleware(s.assembleHandler))
	mux.HandleFunc("/assemble/ws", s.assembleWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
