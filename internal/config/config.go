// Package config loads the startup configuration for the air guitar
// application. The configuration surface is read once at startup and
// constant thereafter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the pipeline reads.
type Config struct {
	// FingerMargin is how far (normalized units) a fingertip must sit
	// above its PIP joint to count as extended.
	FingerMargin float64 `mapstructure:"finger_margin"`

	// ThumbMargin is the lateral distance threshold for thumb extension.
	ThumbMargin float64 `mapstructure:"thumb_margin"`

	// StrumThreshold is the wrist velocity (normalized units/second) that
	// registers a strum.
	StrumThreshold float64 `mapstructure:"strum_threshold"`

	// StrumCooldown is the minimum time between strum triggers.
	StrumCooldown time.Duration `mapstructure:"strum_cooldown"`

	// MinHandConfidence is the detection confidence floor; hands below it
	// are reported as absent.
	MinHandConfidence float64 `mapstructure:"min_hand_confidence"`

	// MotionThreshold is the percent of changed pixels that wakes the
	// pipeline from idle mode.
	MotionThreshold float64 `mapstructure:"motion_threshold"`

	CameraID   int    `mapstructure:"camera_id"`
	ListenAddr string `mapstructure:"listen_addr"`
	SamplesDir string `mapstructure:"samples_dir"`
	DataDir    string `mapstructure:"data_dir"`
}

// setDefaults registers the default tuning values.
func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("finger_margin", 0.02)
	v.SetDefault("thumb_margin", 0.04)
	v.SetDefault("strum_threshold", 0.15)
	v.SetDefault("strum_cooldown", 100*time.Millisecond)
	v.SetDefault("min_hand_confidence", 0.7)
	v.SetDefault("motion_threshold", 1.0)
	v.SetDefault("camera_id", 0)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("samples_dir", filepath.Join(home, ".airguitar", "samples"))
	v.SetDefault("data_dir", filepath.Join(home, ".airguitar"))
}

// Load reads configuration from ~/.airguitar/config.yaml (if present) and
// AIRGUITAR_* environment variables, then validates it. A missing config
// file is fine; an invalid one is not.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, home)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, ".airguitar"))
	v.SetEnvPrefix("airguitar")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	home, _ := os.UserHomeDir()
	v := viper.New()
	setDefaults(v, home)

	cfg := &Config{}
	v.Unmarshal(cfg)
	return cfg
}

// Validate rejects nonsensical thresholds at startup rather than at use
// time.
func (c *Config) Validate() error {
	if c.FingerMargin <= 0 {
		return fmt.Errorf("finger_margin must be positive, got %v", c.FingerMargin)
	}
	if c.ThumbMargin <= 0 {
		return fmt.Errorf("thumb_margin must be positive, got %v", c.ThumbMargin)
	}
	if c.StrumThreshold <= 0 {
		return fmt.Errorf("strum_threshold must be positive, got %v", c.StrumThreshold)
	}
	if c.StrumCooldown < 0 {
		return fmt.Errorf("strum_cooldown must not be negative, got %v", c.StrumCooldown)
	}
	if c.MinHandConfidence < 0 || c.MinHandConfidence > 1 {
		return fmt.Errorf("min_hand_confidence must be in [0,1], got %v", c.MinHandConfidence)
	}
	if c.MotionThreshold <= 0 {
		return fmt.Errorf("motion_threshold must be positive, got %v", c.MotionThreshold)
	}
	return nil
}
