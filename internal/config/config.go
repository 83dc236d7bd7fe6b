// Package config loads runtime configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
)

// Bridge transports selectable via EDGESCOUT_BRIDGE.
const (
	BridgeStdin  = "stdin"
	BridgeSocket = "socket"
)

// Config carries every tunable the process exposes. The detection threshold
// is the only algorithmic knob; the rest is plumbing.
type Config struct {
	Threshold   float64     // gradient magnitude cutoff, strict greater-than
	StrokeColor color.Color // overlay pen color
	StrokeWidth float64     // overlay pen width in pixels
	Workers     int         // >1 enables row-parallel gradient computation
	DrawEmpty   bool        // stroke the inverted rectangle on empty detections
	Bridge      string      // trigger transport: "stdin" or "socket"
	ListenAddr  string      // socket bridge listen address
	SnapshotDir string      // when set, annotated frames are saved here
	LogLevel    string      // debug, info, warn, error
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Threshold:   getEnvAsFloat("EDGESCOUT_THRESHOLD", 100),
		StrokeWidth: getEnvAsFloat("EDGESCOUT_STROKE_WIDTH", 2),
		Workers:     getEnvAsInt("EDGESCOUT_WORKERS", 1),
		DrawEmpty:   getEnvAsBool("EDGESCOUT_DRAW_EMPTY", false),
		Bridge:      getEnv("EDGESCOUT_BRIDGE", BridgeStdin),
		ListenAddr:  getEnv("EDGESCOUT_LISTEN_ADDR", ":8990"),
		SnapshotDir: getEnv("EDGESCOUT_SNAPSHOT_DIR", ""),
		LogLevel:    getEnv("EDGESCOUT_LOG_LEVEL", "info"),
	}

	if cfg.Bridge != BridgeStdin && cfg.Bridge != BridgeSocket {
		return nil, fmt.Errorf("unknown bridge %q (want %q or %q)", cfg.Bridge, BridgeStdin, BridgeSocket)
	}

	hex := getEnv("EDGESCOUT_STROKE_COLOR", "#FF0000")
	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid stroke color %q: %w", hex, err)
	}
	cfg.StrokeColor = col

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
