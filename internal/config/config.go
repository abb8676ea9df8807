// Package config loads handbreaker settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the service settings.
type Config struct {
	Addr     string `env:"HANDBREAKER_ADDR" envDefault:":8080"`
	DataDir  string `env:"HANDBREAKER_DATA_DIR"`
	WebDir   string `env:"HANDBREAKER_WEB_DIR"`
	AssetDir string `env:"HANDBREAKER_ASSET_DIR"`

	CameraID int `env:"HANDBREAKER_CAMERA_ID" envDefault:"0"`
	// MotionThreshold is the percentage of changed pixels that switches
	// the camera to its active frame rate.
	MotionThreshold float64 `env:"HANDBREAKER_MOTION_THRESHOLD" envDefault:"1.0"`

	FPS       int `env:"HANDBREAKER_FPS" envDefault:"60"`
	StreamFPS int `env:"HANDBREAKER_STREAM_FPS" envDefault:"30"`

	Sound bool `env:"HANDBREAKER_SOUND" envDefault:"true"`
	Tray  bool `env:"HANDBREAKER_TRAY" envDefault:"false"`
}

// Load parses the environment and fills in directory defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FPS <= 0 || cfg.StreamFPS <= 0 {
		return Config{}, fmt.Errorf("frame rates must be positive: fps=%d stream=%d", cfg.FPS, cfg.StreamFPS)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".handbreaker")
	}
	if cfg.WebDir == "" {
		cfg.WebDir = findDir("web", cfg.DataDir)
	}
	if cfg.AssetDir == "" {
		cfg.AssetDir = findDir("assets", cfg.DataDir)
	}
	return cfg, nil
}

// DBPath is the score history database inside DataDir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "handbreaker.db")
}

// findDir searches for a directory named name relative to the working
// directory (".", "..", "../..") and then inside dataDir. Returns the
// first existing directory or empty string if none found.
func findDir(name, dataDir string) string {
	for _, p := range []string{name, filepath.Join("..", name), filepath.Join("..", "..", name)} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	p := filepath.Join(dataDir, name)
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return p
	}
	return ""
}
