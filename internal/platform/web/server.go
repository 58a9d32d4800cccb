// Package web serves a read-mostly HTTP inspector over stored snapshots:
// listing, raw JSON, display text, board PNGs, import and virus placement
// previews.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

// Server wires the HTTP routes to a snapshot store.
type Server struct {
	store  *storage.Store
	cfg    config.DrMarioConfig
	logger *log.Logger
	engine *gin.Engine
	addr   string
}

// NewServer creates an inspector bound to addr.
func NewServer(addr string, store *storage.Store, cfg config.DrMarioConfig, logger *log.Logger) *Server {
	s := &Server{
		store:  store,
		cfg:    cfg,
		logger: logger,
		addr:   addr,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	s.routes(engine)
	s.engine = engine
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/snapshots", s.listSnapshots)
	r.POST("/snapshots", s.importSnapshot)
	r.GET("/snapshots/:id", s.getSnapshot)
	r.DELETE("/snapshots/:id", s.deleteSnapshot)
	r.GET("/snapshots/:id/display", s.displaySnapshot)
	r.GET("/snapshots/:id/board.png", s.boardImage)
	r.GET("/stats", s.stats)
	r.GET("/placement", s.placement)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe runs until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP inspector", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP inspector")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request through charmbracelet/log.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// snapshotID parses the :id path parameter, writing a 400 on failure.
func snapshotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "snapshot id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// storeError maps a storage error to a response.
func (s *Server) storeError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("store failure", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func gameParam(c *gin.Context) string {
	return c.DefaultQuery("game", drmario.GameID)
}
