// Package components defines ECS components for the arena simulation.
package components

// Role classifies a body. The steering and split systems dispatch on it
// exhaustively; Boss is an agent variant with extended prey sensing and
// a looser split threshold.
type Role uint8

const (
	RolePlayer Role = iota
	RoleAgent
	RoleBoss
)

// String returns the role name for logs and telemetry.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleAgent:
		return "agent"
	case RoleBoss:
		return "boss"
	}
	return "unknown"
}

// IsAgent reports whether the role is steered by the agent AI.
func (r Role) IsAgent() bool {
	return r == RoleAgent || r == RoleBoss
}

// Identity holds a body's role and, for player bodies, the owner group
// it may merge within.
type Identity struct {
	Role  Role
	Group uint8 // meaningful for RolePlayer only
}

// SplitClock records the last split or merge time in injected clock
// milliseconds. It gates both future splits and merges.
type SplitClock struct {
	LastSplitMs int64
}

// Elapsed reports whether cooldownMs has strictly elapsed since the
// last split or merge.
func (c *SplitClock) Elapsed(nowMs, cooldownMs int64) bool {
	return nowMs-c.LastSplitMs > cooldownMs
}
