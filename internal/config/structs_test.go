package config

import (
	"testing"

	"github.com/MeKo-Tech/mosaic/internal/assembler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.InDelta(t, assembler.DefaultOverlapThreshold, cfg.Assembly.Threshold, 1e-9)
	assert.Equal(t, assembler.DefaultDetectionOrigin, cfg.Assembly.Origin)
	assert.Positive(t, cfg.Assembly.MaxWorkers)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 8080, cfg.Server.Port)

	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"threshold zero", func(c *Config) { c.Assembly.Threshold = 0 }},
		{"threshold one", func(c *Config) { c.Assembly.Threshold = 1 }},
		{"negative workers", func(c *Config) { c.Assembly.MaxWorkers = -1 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyMB = 0 }},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSec = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assembly.Threshold = 0.75
	cfg.Assembly.Origin = "paddle"
	cfg.Server.Port = 9090

	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}

func TestToAssemblerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assembly.Threshold = 0.8
	cfg.Assembly.Origin = "paddle"
	cfg.Assembly.CleanText = true

	acfg := cfg.ToAssemblerConfig()
	assert.InDelta(t, 0.8, acfg.Threshold, 1e-9)
	assert.Equal(t, "paddle", acfg.Origin)
	assert.True(t, acfg.CleanText)
}
