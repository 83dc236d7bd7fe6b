package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"edgescout/internal/bridge"
	"edgescout/internal/config"
	"edgescout/internal/pipeline"
	"edgescout/internal/render"
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
			fmt.Printf("edgescout %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("edgescout - edge-based bounding box detector")
			fmt.Println()
			fmt.Println("Usage: edgescout [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  EDGESCOUT_THRESHOLD      Gradient magnitude threshold (default 100)")
			fmt.Println("  EDGESCOUT_STROKE_COLOR   Overlay color as #RRGGBB (default #FF0000)")
			fmt.Println("  EDGESCOUT_STROKE_WIDTH   Overlay stroke width (default 2)")
			fmt.Println("  EDGESCOUT_WORKERS        Row-parallel gradient workers (default 1)")
			fmt.Println("  EDGESCOUT_DRAW_EMPTY     Stroke the inverted box on empty detections")
			fmt.Println("  EDGESCOUT_BRIDGE         Trigger transport: stdin or socket (default stdin)")
			fmt.Println("  EDGESCOUT_LISTEN_ADDR    Socket bridge address (default :8990)")
			fmt.Println("  EDGESCOUT_SNAPSHOT_DIR   Save annotated frames to this directory")
			fmt.Println("  EDGESCOUT_LOG_LEVEL      debug, info, warn, or error (default info)")
			fmt.Println()
			fmt.Println("Triggers are image locators (file path, http(s) URL, or data: URI),")
			fmt.Println("one per line on stdin or one per WebSocket text message.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "edgescout: %v\n", err)
		os.Exit(1)
	}

	// Log to stderr; stdin belongs to the trigger bridge.
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	logger.Info("edgescout starting", "version", Version, "threshold", cfg.Threshold, "bridge", cfg.Bridge)

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("exiting", "error", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surface := render.NewCanvas(1, 1)
	loader := render.NewLoader(nil)
	detector := pipeline.New(surface, loader, pipeline.Config{
		Threshold: cfg.Threshold,
		Stroke: render.Stroke{
			Color: cfg.StrokeColor,
			Width: cfg.StrokeWidth,
		},
		Workers:     cfg.Workers,
		DrawEmpty:   cfg.DrawEmpty,
		SnapshotDir: cfg.SnapshotDir,
	}, logger)

	var src bridge.Bridge
	switch cfg.Bridge {
	case config.BridgeSocket:
		src = bridge.NewSocketBridge(cfg.ListenAddr, logger)
	default:
		src = bridge.NewLineBridge(os.Stdin, logger)
	}

	triggers := make(chan string)
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- detector.Serve(ctx, triggers)
	}()

	if err := src.Run(ctx, triggers); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bridge: %w", err)
	}
	close(triggers)
	return <-serveDone
}
