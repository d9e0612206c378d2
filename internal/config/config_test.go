package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20, cfg.Simulation.MaxAircraft)
	assert.Equal(t, 0.1, cfg.Simulation.SpawnRateHz)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.UpdateInterval())
	assert.InDelta(t, 0.1, cfg.Simulation.TickSeconds(), 1e-12)
	assert.Equal(t, 0.2, cfg.Simulation.SpeedVariation)

	assert.Equal(t, 50.0, cfg.Kinematics.JitterAlong)
	assert.Equal(t, 25.0, cfg.Kinematics.JitterAcross)
	assert.Equal(t, 100.0, cfg.Kinematics.SlowdownRadius)
	assert.Equal(t, 30.0, cfg.Kinematics.CriticalRadius)
	assert.Equal(t, 5.0, cfg.Kinematics.CriticalSpeedCap)

	assert.Equal(t, 30.0, cfg.Detection.HorizonSeconds)
	assert.Equal(t, 50.0, cfg.Detection.RadiusMeters)

	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rwsl.json")

	cfg := DefaultConfig()
	cfg.Simulation.MaxAircraft = 7
	cfg.Simulation.Seed = 42
	cfg.Detection.HorizonSeconds = 20
	cfg.Log.File = "rwsl.log"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rwsl.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"simulation": {"time_scale": 4}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Simulation.TimeScale)
	assert.Equal(t, 100, cfg.Simulation.UpdateIntervalMS)
	assert.InDelta(t, 0.4, cfg.Simulation.TickSeconds(), 1e-12)
	assert.Equal(t, 50.0, cfg.Detection.RadiusMeters)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"simulation": `), 0644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"simulation": {"update_interval_ms": 0}}`), 0644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("RWSL_SEED", "1234")
	t.Setenv("RWSL_TIME_SCALE", "2.5")
	t.Setenv("RWSL_LOG_LEVEL", "debug")
	t.Setenv("RWSL_LOG_FILE", "/tmp/rwsl.log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), cfg.Simulation.Seed)
	assert.Equal(t, 2.5, cfg.Simulation.TimeScale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/rwsl.log", cfg.Log.File)

	t.Setenv("RWSL_SEED", "not-a-number")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEnvironmentRejectsNonFiniteTimeScale(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("RWSL_TIME_SCALE", v)
			_, err := Load("")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative max aircraft", func(c *Config) { c.Simulation.MaxAircraft = -1 }},
		{"negative spawn rate", func(c *Config) { c.Simulation.SpawnRateHz = -0.1 }},
		{"zero update interval", func(c *Config) { c.Simulation.UpdateIntervalMS = 0 }},
		{"zero time scale", func(c *Config) { c.Simulation.TimeScale = 0 }},
		{"NaN time scale", func(c *Config) { c.Simulation.TimeScale = math.NaN() }},
		{"infinite time scale", func(c *Config) { c.Simulation.TimeScale = math.Inf(1) }},
		{"NaN spawn rate", func(c *Config) { c.Simulation.SpawnRateHz = math.NaN() }},
		{"infinite critical radius", func(c *Config) { c.Kinematics.CriticalRadius = math.Inf(1) }},
		{"NaN speed cap", func(c *Config) { c.Kinematics.CriticalSpeedCap = math.NaN() }},
		{"infinite horizon", func(c *Config) { c.Detection.HorizonSeconds = math.Inf(1) }},
		{"NaN detection radius", func(c *Config) { c.Detection.RadiusMeters = math.NaN() }},
		{"speed variation too wide", func(c *Config) { c.Simulation.SpeedVariation = 2 }},
		{"negative jitter", func(c *Config) { c.Kinematics.JitterAcross = -1 }},
		{"zero slowdown radius", func(c *Config) { c.Kinematics.SlowdownRadius = 0 }},
		{"zero detection radius", func(c *Config) { c.Detection.RadiusMeters = 0 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
