// Package main provides CMA-ES optimization over arena balance parameters.
package main

import (
	"github.com/softbody-labs/petri/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters:
// the consumption economy, agent steering ranges, split tuning, and
// population sizes. Arena and entity geometry stay fixed.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Consumption economy (mass_margin locked at 1.1)
			{Name: "body_yield", Path: "consumption.body_yield", Min: 0.3, Max: 0.7, Default: 0.5},
			{Name: "pellet_yield", Path: "consumption.pellet_yield", Min: 0.25, Max: 1.0, Default: 0.5},
			{Name: "bonus_yield", Path: "consumption.bonus_yield", Min: 0.75, Max: 2.25, Default: 1.5},
			// Steering ranges
			{Name: "danger_range", Path: "ai.danger_range", Min: 150, Max: 450, Default: 300},
			{Name: "prey_range", Path: "ai.prey_range", Min: 200, Max: 600, Default: 400},
			{Name: "boss_prey_range", Path: "ai.boss_prey_range", Min: 400, Max: 900, Default: 600},
			{Name: "split_range", Path: "ai.split_range", Min: 80, Max: 250, Default: 150},
			{Name: "agent_speed_max", Path: "ai.speed_max", Min: 1.0, Max: 3.0, Default: 2.0},
			// Split tuning
			{Name: "split_min_mass", Path: "split.min_mass", Min: 20, Max: 80, Default: 40},
			{Name: "split_impulse", Path: "split.impulse", Min: 10, Max: 40, Default: 20},
			{Name: "merge_cooldown_ms", Path: "split.merge_cooldown_ms", Min: 1000, Max: 5000, Default: 2500},
			// Population
			{Name: "agents", Path: "population.agents", Min: 20, Max: 80, Default: 40},
			{Name: "bosses", Path: "population.bosses", Min: 2, Max: 8, Default: 4},
			{Name: "pellets", Path: "population.pellets", Min: 500, Max: 2000, Default: 1000},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	// Consumption (mass_margin locked)
	cfg.Consumption.MassMargin = 1.1
	cfg.Consumption.BodyYield = clamped[i]
	i++
	cfg.Consumption.PelletYield = clamped[i]
	i++
	cfg.Consumption.BonusYield = clamped[i]
	i++

	// Steering
	cfg.AI.DangerRange = clamped[i]
	i++
	cfg.AI.PreyRange = clamped[i]
	i++
	cfg.AI.BossPreyRange = clamped[i]
	i++
	cfg.AI.SplitRange = clamped[i]
	i++
	cfg.AI.SpeedMax = clamped[i]
	i++

	// Split
	cfg.Split.MinMass = clamped[i]
	i++
	cfg.Split.Impulse = clamped[i]
	i++
	cfg.Split.MergeCooldownMs = int64(clamped[i])
	i++

	// Population
	cfg.Population.Agents = int(clamped[i])
	i++
	cfg.Population.Bosses = int(clamped[i])
	i++
	cfg.Population.Pellets = int(clamped[i])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Consumption.BodyYield,
		cfg.Consumption.PelletYield,
		cfg.Consumption.BonusYield,
		cfg.AI.DangerRange,
		cfg.AI.PreyRange,
		cfg.AI.BossPreyRange,
		cfg.AI.SplitRange,
		cfg.AI.SpeedMax,
		cfg.Split.MinMass,
		cfg.Split.Impulse,
		float64(cfg.Split.MergeCooldownMs),
		float64(cfg.Population.Agents),
		float64(cfg.Population.Bosses),
		float64(cfg.Population.Pellets),
	}
}
