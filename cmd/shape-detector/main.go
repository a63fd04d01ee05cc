package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironsheep/shape-detector/internal/config"
	"github.com/ironsheep/shape-detector/internal/detection"
	"github.com/ironsheep/shape-detector/internal/log"
	"github.com/ironsheep/shape-detector/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("shape-detector %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("shape-detector - classify camera frames into squares and circles")
			fmt.Println()
			fmt.Println("Usage: shape-detector [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  SHAPE_CONFIG=path.json       Load settings from a JSON file")
			fmt.Println("  SHAPE_LOG_LEVEL=debug        Log level (debug, info, warn, error)")
			fmt.Println("  SHAPE_LOG_FORMAT=json        Log format (text, json)")
			fmt.Println("  SHAPE_BACKEND=opencv         Detection backend (native, opencv)")
			fmt.Println("  SHAPE_WS_ADDR=:8090          Serve detections over WebSocket at /ws")
			fmt.Println("  SHAPE_DEBUG_DIR=/tmp/frames  Save each frame's edge mask")
			fmt.Println("  SHAPE_MAX_WIDTH=640          Downscale wider frames")
			fmt.Println()
			fmt.Println("Frames are read as JSON-RPC \"frame\" notifications on stdin;")
			fmt.Println("detected_shape and servo_angle notifications are written to stdout.")
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "shape-detector: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}

	// Logs go to stderr; stdout is for the protocol.
	logger := log.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	outliner, err := detection.NewOutliner(cfg.Backend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithOutliner(outliner),
		server.WithNormalize(cfg.Normalize()),
		server.WithDebugDir(cfg.DebugDir),
		server.WithVersion(Version),
	}

	if cfg.WebSocketAddr != "" {
		hub := server.NewHub(logger.With("component", "hub"))
		defer hub.Close()

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		httpSrv := &http.Server{Addr: cfg.WebSocketAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			logger.Info("websocket hub listening", "addr", cfg.WebSocketAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket hub failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx)
		}()

		opts = append(opts, server.WithHub(hub))
	}

	logger.Info("shape detector ready", "backend", cfg.Backend)
	return server.New(opts...).Run(ctx)
}
