package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// maxDocumentBytes bounds uploaded pack documents.
const maxDocumentBytes = 5 << 20

// Ports aggregates the driving ports the API serves.
type Ports struct {
	Packs   driving.PackService
	Compose driving.ComposeService

	// History is optional; without it the history route answers 404.
	History driving.HistoryService
}

// Config holds server options.
type Config struct {
	// AllowedOrigins are the CORS origins. Empty allows any origin.
	AllowedOrigins []string

	// Debug enables gin's debug mode and request logging.
	Debug bool
}

// Server is the HTTP API server.
type Server struct {
	ports  *Ports
	router *gin.Engine
}

// NewServer builds the router for ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if ports == nil || ports.Packs == nil || ports.Compose == nil {
		return nil, ErrMissingService
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if cfg.Debug {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// installs its middleware, so it must precede the routes
	ginprometheus.NewPrometheus("promptsmith").Use(router)

	s := &Server{ports: ports, router: router}
	s.registerRoutes()

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) registerRoutes() {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	s.router.GET("/health", health)
	s.router.HEAD("/health", health)

	v1 := s.router.Group("/v1")
	v1.GET("/packs", s.listPacks)
	v1.POST("/packs", s.importPack)
	v1.GET("/packs/:id", s.getPack)
	v1.DELETE("/packs/:id", s.removePack)
	v1.POST("/packs/:id/compose", s.compose)
	v1.POST("/packs/:id/expand", s.expand)
	v1.POST("/packs/:id/disabled", s.disabled)
	v1.POST("/packs/:id/lookup", s.lookup)
	v1.GET("/packs/:id/history", s.history)
}
