package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/glimmer/parameter"
)

// Config is the YAML-tunable surface of the engine
// Zero values fall back to parameter defaults through Default()
type Config struct {
	// FPS caps the tick rate; 0 keeps the default ~60
	FPS int `yaml:"fps"`

	Trail     TrailConfig     `yaml:"trail"`
	Field     FieldConfig     `yaml:"field"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Proximity ProximityConfig `yaml:"proximity"`
}

type TrailConfig struct {
	PoolSize      int     `yaml:"pool_size"`
	DecayRate     float64 `yaml:"decay_rate"`
	SegmentSteps  int     `yaml:"segment_steps"`
	VelocityCarry float64 `yaml:"velocity_carry"`
}

type FieldConfig struct {
	PoolSize     int     `yaml:"pool_size"`
	DecayRate    float64 `yaml:"decay_rate"`
	SpawnBudget  float64 `yaml:"spawn_budget"`
	MinIntensity float64 `yaml:"min_intensity"`
	DriftSpeed   float64 `yaml:"drift_speed"`
}

type ScrollConfig struct {
	QuietMs          int `yaml:"quiet_ms"`
	AcquireTimeoutMs int `yaml:"acquire_timeout_ms"`
}

type ProximityConfig struct {
	Radius          float64 `yaml:"radius"`
	RevealThreshold float64 `yaml:"reveal_threshold"`
}

// Default returns the stock tuning mirrored from parameter
func Default() Config {
	return Config{
		FPS: int(time.Second / parameter.DefaultTickInterval),
		Trail: TrailConfig{
			PoolSize:      parameter.TrailPoolSize,
			DecayRate:     parameter.TrailDecayRateFloat,
			SegmentSteps:  parameter.TrailSegmentSteps,
			VelocityCarry: parameter.TrailVelocityCarryFloat,
		},
		Field: FieldConfig{
			PoolSize:     parameter.FieldPoolSize,
			DecayRate:    parameter.FieldDecayRateFloat,
			SpawnBudget:  parameter.FieldSpawnBudgetPerSecond,
			MinIntensity: parameter.FieldMinIntensity,
			DriftSpeed:   parameter.FieldDriftSpeedFloat,
		},
		Scroll: ScrollConfig{
			QuietMs:          int(parameter.ScrollQuietPeriod / time.Millisecond),
			AcquireTimeoutMs: int(parameter.SmoothScrollAcquireTimeout / time.Millisecond),
		},
		Proximity: ProximityConfig{
			Radius:          parameter.ProximityRadiusFloat,
			RevealThreshold: parameter.RevealThresholdFloat,
		},
	}
}

// Load reads path over the defaults; a missing file returns defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects tunings the engine cannot honor
func (c Config) Validate() error {
	if c.FPS < 0 {
		return fmt.Errorf("config: fps must not be negative, got %d", c.FPS)
	}
	if c.Trail.PoolSize <= 0 {
		return fmt.Errorf("config: trail.pool_size must be positive, got %d", c.Trail.PoolSize)
	}
	if c.Trail.DecayRate <= 0 {
		return fmt.Errorf("config: trail.decay_rate must be positive, got %v", c.Trail.DecayRate)
	}
	if c.Field.PoolSize <= 0 {
		return fmt.Errorf("config: field.pool_size must be positive, got %d", c.Field.PoolSize)
	}
	if c.Field.DecayRate <= 0 {
		return fmt.Errorf("config: field.decay_rate must be positive, got %v", c.Field.DecayRate)
	}
	if c.Field.MinIntensity < 0 || c.Field.MinIntensity > 1 {
		return fmt.Errorf("config: field.min_intensity must be in [0,1], got %v", c.Field.MinIntensity)
	}
	if c.Scroll.QuietMs < 0 {
		return fmt.Errorf("config: scroll.quiet_ms must not be negative, got %d", c.Scroll.QuietMs)
	}
	if c.Proximity.Radius <= 0 {
		return fmt.Errorf("config: proximity.radius must be positive, got %v", c.Proximity.Radius)
	}
	return nil
}

// TickInterval derives the scheduler interval from the FPS ceiling
func (c Config) TickInterval() time.Duration {
	if c.FPS <= 0 {
		return parameter.DefaultTickInterval
	}
	return time.Second / time.Duration(c.FPS)
}

// QuietPeriod returns the scroll debounce window
func (c Config) QuietPeriod() time.Duration {
	if c.Scroll.QuietMs <= 0 {
		return parameter.ScrollQuietPeriod
	}
	return time.Duration(c.Scroll.QuietMs) * time.Millisecond
}

// AcquireTimeout returns the smooth-scroll negotiation bound
func (c Config) AcquireTimeout() time.Duration {
	if c.Scroll.AcquireTimeoutMs <= 0 {
		return parameter.SmoothScrollAcquireTimeout
	}
	return time.Duration(c.Scroll.AcquireTimeoutMs) * time.Millisecond
}
