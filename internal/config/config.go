// Package config loads shape-detector settings from a JSON file and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/shape-detector/internal/detection"
	"github.com/ironsheep/shape-detector/internal/imaging"
)

// Environment variables read by FromEnv.
const (
	EnvConfigFile = "SHAPE_CONFIG"
	EnvLogLevel   = "SHAPE_LOG_LEVEL"
	EnvLogFormat  = "SHAPE_LOG_FORMAT"
	EnvBackend    = "SHAPE_BACKEND"
	EnvWSAddr     = "SHAPE_WS_ADDR"
	EnvDebugDir   = "SHAPE_DEBUG_DIR"
	EnvMaxWidth   = "SHAPE_MAX_WIDTH"
)

// Config holds the application configuration.
//
// The edge thresholds and the polygon tolerance are fixed constants of the
// detection pipeline and deliberately absent here.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// LogFormat is text or json.
	LogFormat string `json:"log_format"`

	// Backend selects the outliner: native or opencv.
	Backend string `json:"backend"`

	// WebSocketAddr, when set, serves the detection hub at /ws on this
	// address (e.g. ":8090").
	WebSocketAddr string `json:"websocket_addr"`

	// DebugDir, when set, receives one edge-mask PNG per frame.
	DebugDir string `json:"debug_dir"`

	// MaxWidth downscales wider frames before detection. Zero disables it.
	MaxWidth int `json:"max_width"`

	// ROI restricts detection to a region of the frame. The zero region
	// keeps the whole frame.
	ROI imaging.Region `json:"roi"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Backend:   detection.BackendNative,
	}
}

// Load reads a JSON file over the defaults. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv overlays the SHAPE_* environment variables on cfg. Unset or
// empty variables leave the field unchanged.
func FromEnv(cfg *Config) error {
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnv(EnvLogFormat, cfg.LogFormat)
	cfg.Backend = getEnv(EnvBackend, cfg.Backend)
	cfg.WebSocketAddr = getEnv(EnvWSAddr, cfg.WebSocketAddr)
	cfg.DebugDir = getEnv(EnvDebugDir, cfg.DebugDir)

	if v := os.Getenv(EnvMaxWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxWidth, err)
		}
		cfg.MaxWidth = n
	}
	return nil
}

// Resolve builds the effective configuration: defaults, then the file
// named by SHAPE_CONFIG if set, then the remaining environment variables.
// The result is validated.
func Resolve() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := FromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json (got %q)", c.LogFormat)
	}

	switch c.Backend {
	case detection.BackendNative, detection.BackendOpenCV:
	default:
		return fmt.Errorf("backend must be %s or %s (got %q)", detection.BackendNative, detection.BackendOpenCV, c.Backend)
	}

	if c.MaxWidth < 0 {
		return fmt.Errorf("max_width must not be negative")
	}

	if c.ROI != (imaging.Region{}) {
		if c.ROI.X1 < 0 || c.ROI.Y1 < 0 || c.ROI.Empty() {
			return fmt.Errorf("roi must have non-negative origin and positive size")
		}
	}

	return nil
}

// Normalize returns the frame preprocessing options described by c.
func (c *Config) Normalize() imaging.NormalizeOptions {
	return imaging.NormalizeOptions{ROI: c.ROI, MaxWidth: c.MaxWidth}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
