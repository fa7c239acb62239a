package main

import (
	"math"
	"sync"

	"github.com/softbody-labs/petri/config"
	"github.com/softbody-labs/petri/game"
	"github.com/softbody-labs/petri/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 seconds per window
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Agents respawn so runs never end early; fitness is negative quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := fe.computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: -quality,
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run to maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	// Create a fresh config copy and apply parameters
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	g.Close()
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")

	cfg.Screen = fe.baseConfig.Screen
	cfg.World = fe.baseConfig.World
	cfg.Population = fe.baseConfig.Population
	cfg.Entity = fe.baseConfig.Entity
	cfg.Consumption = fe.baseConfig.Consumption
	cfg.Split = fe.baseConfig.Split
	cfg.AI = fe.baseConfig.AI
	cfg.Movement = fe.baseConfig.Movement
	cfg.Telemetry = fe.baseConfig.Telemetry

	return cfg
}

// Quality component weights.
const (
	qualityWeightPredation = 0.30
	qualityWeightChurn     = 0.25
	qualityWeightStability = 0.25
	qualityWeightSpread    = 0.20

	qualityWarmupWindows = 2 // skip first N windows (warmup)

	// Target rates per 10-second window for a lively but not
	// degenerate arena.
	targetAgentsEaten  = 4.0
	targetSplitActions = 6.0
	targetMassSpread   = 0.8 // stddev / mean of body masses
)

// computeQuality computes arena quality in [0, 1] from window stats.
//
// A balanced arena keeps agents getting eaten and respawning at a
// steady clip, keeps split/merge churn alive, holds the mass
// distribution steady over time, and keeps the spread of body masses
// wide enough that the arena is not a uniform soup nor a single
// runaway body.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var predationSum, churnSum, spreadSum float64
	var count int

	massMeans := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.AgentBodies == 0 || w.MassMean <= 0 {
			continue
		}

		massMeans = append(massMeans, w.MassMean)

		// 1. Predation rate score: agents eaten per window near target
		eaten := float64(w.AgentsEaten)
		logErr := math.Log((eaten + 1) / (targetAgentsEaten + 1))
		predationSum += math.Exp(-logErr * logErr)

		// 2. Split/merge churn score
		churn := float64(w.Splits + w.Merges)
		churnSum += 1.0 - math.Exp(-churn/targetSplitActions)

		// 3. Mass spread score
		spread := w.MassStdDev / w.MassMean
		spreadSum += math.Exp(-math.Pow((spread-targetMassSpread)/0.5, 2))

		count++
	}

	if count == 0 {
		return 0
	}

	n := float64(count)
	predationScore := predationSum / n
	churnScore := churnSum / n
	spreadScore := spreadSum / n

	// 4. Mass stability across the run (CV of per-window means)
	stabilityScore := 0.0
	if len(massMeans) >= 2 {
		c := cv(massMeans)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightPredation*predationScore +
		qualityWeightChurn*churnScore +
		qualityWeightStability*stabilityScore +
		qualityWeightSpread*spreadScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
