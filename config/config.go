// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	World       WorldConfig       `yaml:"world"`
	Population  PopulationConfig  `yaml:"population"`
	Entity      EntityConfig      `yaml:"entity"`
	Consumption ConsumptionConfig `yaml:"consumption"`
	Split       SplitConfig       `yaml:"split"`
	AI          AIConfig          `yaml:"ai"`
	Movement    MovementConfig    `yaml:"movement"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds arena dimensions in world units.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds spawn counts maintained by the spawn policy.
type PopulationConfig struct {
	Pellets      int `yaml:"pellets"`
	Agents       int `yaml:"agents"`
	Bosses       int `yaml:"bosses"`        // of Agents, spawned as the boss variant
	Bonuses      int `yaml:"bonuses"`       // rotating bonus structures
	PlayerGroups int `yaml:"player_groups"` // one starting body per group
}

// EntityConfig holds entity creation parameters.
type EntityConfig struct {
	PlayerStartMass float64 `yaml:"player_start_mass"`
	AgentMassMin    float64 `yaml:"agent_mass_min"`
	AgentMassMax    float64 `yaml:"agent_mass_max"`
	BossMass        float64 `yaml:"boss_mass"`
	PelletRadiusMin float64 `yaml:"pellet_radius_min"`
	PelletRadiusMax float64 `yaml:"pellet_radius_max"`
	BonusSizeMin    float64 `yaml:"bonus_size_min"`
	BonusSizeMax    float64 `yaml:"bonus_size_max"`
	BonusSpinMax    float64 `yaml:"bonus_spin_max"` // radians per tick
}

// ConsumptionConfig holds the consumption balancing rules.
// Yields are deliberate balancing factors: the remainder of a consumed
// entity's mass is discarded, not conserved.
type ConsumptionConfig struct {
	MassMargin  float64 `yaml:"mass_margin"`  // larger must exceed smaller * this
	BodyYield   float64 `yaml:"body_yield"`   // fraction of consumed body mass gained
	PelletYield float64 `yaml:"pellet_yield"` // gain = radius^2 * this
	BonusYield  float64 `yaml:"bonus_yield"`  // gain = size^2 * this
}

// SplitConfig holds split/merge controller parameters.
type SplitConfig struct {
	MinMass         float64 `yaml:"min_mass"`          // below this a body cannot split
	MaxPlayerBodies int     `yaml:"max_player_bodies"` // manual split cap per group
	Impulse         float64 `yaml:"impulse"`           // child impulse magnitude
	ImpulseDecay    float64 `yaml:"impulse_decay"`     // per-tick geometric decay
	MergeCooldownMs int64   `yaml:"merge_cooldown_ms"` // elapsed ms gating merges and agent re-splits
}

// AIConfig holds steering parameters for autonomous agents.
type AIConfig struct {
	DangerRange    float64 `yaml:"danger_range"`
	PreyRange      float64 `yaml:"prey_range"`
	BossPreyRange  float64 `yaml:"boss_prey_range"`
	SplitRange     float64 `yaml:"split_range"`
	FleeRatio      float64 `yaml:"flee_ratio"`       // opponent heavier than bot * this -> flee
	ChaseRatio     float64 `yaml:"chase_ratio"`      // opponent lighter than bot * this -> chase
	BossSplitRatio float64 `yaml:"boss_split_ratio"` // boss split threshold (non-boss uses 1/3)
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedMax       float64 `yaml:"speed_max"`
}

// MovementConfig holds per-tick movement parameters.
type MovementConfig struct {
	PlayerSpeedMax     float64 `yaml:"player_speed_max"`
	PlayerSpeedMin     float64 `yaml:"player_speed_min"`
	PlayerSpeedFalloff float64 `yaml:"player_speed_falloff"` // speed = max - radius/falloff
	DisplayEase        float64 `yaml:"display_ease"`         // display radius easing per tick
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32 float32
	WorldH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
