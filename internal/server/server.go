// Package server is the upload-and-download HTTP front end for the converter.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief"
)

// Config configures the HTTP front end.
type Config struct {
	// MaxUploadBytes caps request bodies.
	MaxUploadBytes int64
	// ReadTimeout and WriteTimeout bound each request.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Defaults seeds conversion options; form values override Brand, Weeks
	// and IncludeLaunches per request.
	Defaults dtcbrief.Options
}

// Server serves the conversion endpoints. Requests share no mutable state.
type Server struct {
	cfg    Config
	router *gin.Engine
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(), limitBody(cfg.MaxUploadBytes))

	s := &Server{cfg: cfg, router: router}
	router.GET("/healthz", s.health)
	api := router.Group("/api")
	api.POST("/weeks", s.weeks)
	api.POST("/convert", s.convert)
	return s
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
