package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the complete simulator configuration, loaded from a JSON file
// and overridable from the environment.
type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Kinematics KinematicsConfig `json:"kinematics"`
	Detection  DetectionConfig  `json:"detection"`
	Log        LogConfig        `json:"log"`
}

// SimulationConfig controls the tick loop and traffic volume.
type SimulationConfig struct {
	// MaxAircraft caps the active aircraft count for random spawns.
	MaxAircraft int `json:"max_aircraft"`

	// SpawnRateHz is the expected number of spawns per simulated second.
	SpawnRateHz float64 `json:"spawn_rate_hz"`

	// UpdateIntervalMS is the wall-clock tick period in milliseconds.
	UpdateIntervalMS int `json:"update_interval_ms"`

	// TimeScale multiplies simulated seconds per wall-clock second.
	TimeScale float64 `json:"time_scale"`

	// SpeedVariation is the full width of the spawn speed jitter (0.2 = ±10%).
	SpeedVariation float64 `json:"speed_variation"`

	// Seed for the random source. 0 picks a seed from the wall clock.
	Seed uint64 `json:"seed"`
}

// KinematicsConfig holds spawn jitter and speed rule parameters, in meters
// and m/s.
type KinematicsConfig struct {
	JitterAlong      float64 `json:"jitter_along_m"`
	JitterAcross     float64 `json:"jitter_across_m"`
	SlowdownRadius   float64 `json:"slowdown_radius_m"`
	CriticalRadius   float64 `json:"critical_radius_m"`
	CriticalSpeedCap float64 `json:"critical_speed_cap_mps"`
	Acceleration     float64 `json:"acceleration_mps2"`
}

// DetectionConfig holds conflict prediction parameters.
type DetectionConfig struct {
	// HorizonSeconds is how far ahead positions are extrapolated.
	HorizonSeconds float64 `json:"horizon_seconds"`

	// RadiusMeters is the predicted distance below which a hot spot conflicts.
	RadiusMeters float64 `json:"radius_meters"`
}

// LogConfig controls log level and the optional rotated log file.
type LogConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR, OFF.
	Level string `json:"level"`

	// File is the log file path. Empty logs to stderr only.
	File string `json:"file"`

	MaxSizeMB  int  `json:"max_size_mb"`
	MaxBackups int  `json:"max_backups"`
	MaxAgeDays int  `json:"max_age_days"`
	Compress   bool `json:"compress"`
}

// UpdateInterval returns the tick period as a duration.
func (c SimulationConfig) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalMS) * time.Millisecond
}

// TickSeconds returns the simulated seconds advanced by one tick.
func (c SimulationConfig) TickSeconds() float64 {
	return float64(c.UpdateIntervalMS) / 1000 * c.TimeScale
}

// Load reads configuration from a JSON file on top of the defaults.
// If the file doesn't exist, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			MaxAircraft:      20,
			SpawnRateHz:      0.1,
			UpdateIntervalMS: 100,
			TimeScale:        1.0,
			SpeedVariation:   0.2,
		},
		Kinematics: KinematicsConfig{
			JitterAlong:      50,
			JitterAcross:     25,
			SlowdownRadius:   100,
			CriticalRadius:   30,
			CriticalSpeedCap: 5,
			Acceleration:     1,
		},
		Detection: DetectionConfig{
			HorizonSeconds: 30,
			RadiusMeters:   50,
		},
		Log: LogConfig{
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate reports the first out-of-range value, wrapping ErrInvalid.
func (c *Config) Validate() error {
	s, k, d := c.Simulation, c.Kinematics, c.Detection
	if !finite(s.SpawnRateHz, s.TimeScale, s.SpeedVariation,
		k.JitterAlong, k.JitterAcross, k.SlowdownRadius, k.CriticalRadius, k.CriticalSpeedCap, k.Acceleration,
		d.HorizonSeconds, d.RadiusMeters) {
		return fmt.Errorf("%w: values must be finite", ErrInvalid)
	}

	switch {
	case s.MaxAircraft < 0:
		return fmt.Errorf("%w: simulation.max_aircraft %d < 0", ErrInvalid, s.MaxAircraft)
	case s.SpawnRateHz < 0:
		return fmt.Errorf("%w: simulation.spawn_rate_hz %g < 0", ErrInvalid, s.SpawnRateHz)
	case s.UpdateIntervalMS <= 0:
		return fmt.Errorf("%w: simulation.update_interval_ms must be positive", ErrInvalid)
	case s.TimeScale <= 0:
		return fmt.Errorf("%w: simulation.time_scale must be positive", ErrInvalid)
	case s.SpeedVariation < 0 || s.SpeedVariation >= 2:
		return fmt.Errorf("%w: simulation.speed_variation %g outside [0, 2)", ErrInvalid, s.SpeedVariation)
	}

	if k.JitterAlong < 0 || k.JitterAcross < 0 {
		return fmt.Errorf("%w: kinematics jitter must not be negative", ErrInvalid)
	}
	if k.SlowdownRadius <= 0 || k.CriticalRadius < 0 || k.CriticalSpeedCap < 0 || k.Acceleration < 0 {
		return fmt.Errorf("%w: kinematics radii, caps and acceleration must not be negative", ErrInvalid)
	}

	if d.HorizonSeconds < 0 || d.RadiusMeters <= 0 {
		return fmt.Errorf("%w: detection horizon must be >= 0 and radius > 0", ErrInvalid)
	}

	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR", "OFF":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// applyEnvironmentOverrides lets a run be reseeded or rescaled without
// editing the config file.
func (c *Config) applyEnvironmentOverrides() error {
	if seed := os.Getenv("RWSL_SEED"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: RWSL_SEED: %v", ErrInvalid, err)
		}
		c.Simulation.Seed = v
	}
	if scale := os.Getenv("RWSL_TIME_SCALE"); scale != "" {
		v, err := strconv.ParseFloat(scale, 64)
		if err != nil {
			return fmt.Errorf("%w: RWSL_TIME_SCALE: %v", ErrInvalid, err)
		}
		c.Simulation.TimeScale = v
	}
	if level := os.Getenv("RWSL_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if file := os.Getenv("RWSL_LOG_FILE"); file != "" {
		c.Log.File = file
	}
	return nil
}
