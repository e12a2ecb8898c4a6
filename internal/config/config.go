package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/diagrammer/internal/editor"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	GridSize     float64 `envconfig:"EDITOR_GRID_SIZE" default:"8"`
	HitTolerance float64 `envconfig:"EDITOR_HIT_TOLERANCE" default:"4"`
	MinDrag      float64 `envconfig:"EDITOR_MIN_DRAG" default:"2"`
	CanvasWidth  float64 `envconfig:"EDITOR_CANVAS_WIDTH" default:"1280"`
	CanvasHeight float64 `envconfig:"EDITOR_CANVAS_HEIGHT" default:"720"`
	PixelRatio   float64 `envconfig:"EDITOR_PIXEL_RATIO" default:"1"`
	ZoomMin      float64 `envconfig:"EDITOR_ZOOM_MIN" default:"0.25"`
	ZoomMax      float64 `envconfig:"EDITOR_ZOOM_MAX" default:"4"`
	ZoomStep     float64 `envconfig:"EDITOR_ZOOM_STEP" default:"0.1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ZoomMin <= 0 || cfg.ZoomMax < cfg.ZoomMin {
		return nil, fmt.Errorf("invalid zoom bounds %v..%v", cfg.ZoomMin, cfg.ZoomMax)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Origins splits AllowedOrigins.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Editor derives the editor options.
func (c *Config) Editor() editor.Options {
	return editor.Options{
		GridSize:   c.GridSize,
		Tolerance:  c.HitTolerance,
		MinDrag:    c.MinDrag,
		Width:      c.CanvasWidth,
		Height:     c.CanvasHeight,
		PixelRatio: c.PixelRatio,
		ZoomMin:    c.ZoomMin,
		ZoomMax:    c.ZoomMax,
		ZoomStep:   c.ZoomStep,
	}
}
