package telemetry

import "gonum.org/v1/gonum/stat"

// WindowStats is one row of telemetry.csv: event counts for the window
// plus a population snapshot taken when the window closed.
type WindowStats struct {
	WindowStart int32 `csv:"window_start_tick"`
	WindowEnd   int32 `csv:"window_end_tick"`

	PelletsEaten  int `csv:"pellets_eaten"`
	BonusesEaten  int `csv:"bonuses_eaten"`
	AgentsEaten   int `csv:"agents_eaten"`
	PlayersEaten  int `csv:"players_eaten"`
	Splits        int `csv:"splits"`
	Merges        int `csv:"merges"`
	AgentRespawns int `csv:"agent_respawns"`

	PlayerGains float64 `csv:"player_mass_gained"`

	// Snapshot fields
	PlayerBodies int     `csv:"player_bodies"`
	AgentBodies  int     `csv:"agent_bodies"`
	PlayerMass   float64 `csv:"player_mass"`
	MassMean     float64 `csv:"body_mass_mean"`
	MassStdDev   float64 `csv:"body_mass_stddev"`
}

// FillMassDistribution computes the body-mass distribution snapshot
// from all live body masses.
func (s *WindowStats) FillMassDistribution(masses []float64) {
	if len(masses) == 0 {
		return
	}
	s.MassMean = stat.Mean(masses, nil)
	if len(masses) > 1 {
		s.MassStdDev = stat.StdDev(masses, nil)
	}
}
