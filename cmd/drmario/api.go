package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drmario/internal/platform/web"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP snapshot inspector",
	Long: `Start an HTTP server for inspecting stored snapshots.

Endpoints:
  GET    /healthz
  GET    /snapshots                  - newest snapshots (?game=, ?limit=)
  POST   /snapshots                  - import a serialized snapshot
  GET    /snapshots/:id              - serialized snapshot
  DELETE /snapshots/:id
  GET    /snapshots/:id/display      - text summary
  GET    /snapshots/:id/board.png    - board image (?width=)
  GET    /stats                      - per-game counts and frame range
  GET    /placement                  - virus layout (?seed=, ?minY=, ?count=)

Examples:
  drmario api
  drmario api --http 127.0.0.1:9090`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig("")
	if err != nil {
		logger.Warn("config problem, continuing with defaults", "error", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(flagHTTPAddr, store, cfg, logger.WithPrefix("drmario-api"))
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		stop()
		store.Close()
		os.Exit(1)
	}
}
