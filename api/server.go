package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
	"github.com/killallgit/dialogue-qc/pkg/config"
)

// Options configures the HTTP server and its middleware
type Options struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxHeaderBytes  int
	MaxUploadBytes  int64
	RateLimit       float64 // requests per second per client
	RateBurst       int
	EnableCORS      bool
	CORSOrigins     []string
	EnableAccessLog bool
}

// OptionsFromConfig builds server options from the application configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Address:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		MaxHeaderBytes:  cfg.Server.MaxHeaderBytes,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		RateLimit:       cfg.Server.RateLimit,
		RateBurst:       cfg.Server.RateBurst,
		EnableCORS:      cfg.Security.EnableCORS,
		CORSOrigins:     cfg.Security.CORSOrigins,
		EnableAccessLog: true,
	}
}

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	opts               Options
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(opts Options, deps *types.Dependencies) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.MaxHeaderBytes <= 0 {
		opts.MaxHeaderBytes = 1 << 20 // 1 MB
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		engine:       engine,
		opts:         opts,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           opts.Address,
			Handler:        engine,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: opts.MaxHeaderBytes,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return s.setupRoutes()
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	if s.opts.EnableAccessLog {
		s.engine.Use(RequestLogger(s.dependencies.Log()))
	}
	if s.opts.EnableCORS {
		s.engine.Use(CORS(s.opts.CORSOrigins))
	}
	s.engine.Use(RequestSizeLimitWithSize(s.opts.MaxUploadBytes))
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	limit := s.rateLimit()
	return RegisterRoutes(s.engine, s.dependencies, limit)
}

func (s *Server) rateLimit() gin.HandlerFunc {
	if s.opts.RateLimit <= 0 {
		return nil
	}
	burst := s.opts.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return PerClientRateLimit(s.rateLimiters, s.cleanupStop, &s.cleanupInitialized, s.opts.RateLimit, burst)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	return s.httpServer.Shutdown(ctx)
}
