package config

import (
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.StrumCooldown != 100*time.Millisecond {
		t.Errorf("strum cooldown = %v, want 100ms", cfg.StrumCooldown)
	}
	if cfg.FingerMargin != 0.02 {
		t.Errorf("finger margin = %v, want 0.02", cfg.FingerMargin)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative cooldown", func(c *Config) { c.StrumCooldown = -time.Second }},
		{"zero strum threshold", func(c *Config) { c.StrumThreshold = 0 }},
		{"negative finger margin", func(c *Config) { c.FingerMargin = -0.01 }},
		{"zero thumb margin", func(c *Config) { c.ThumbMargin = 0 }},
		{"confidence above one", func(c *Config) { c.MinHandConfidence = 1.5 }},
		{"negative confidence", func(c *Config) { c.MinHandConfidence = -0.1 }},
		{"zero motion threshold", func(c *Config) { c.MotionThreshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
