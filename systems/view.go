package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/components"
)

// BodyView is a per-tick view of one live body, handed to the pairwise
// systems (consumption, merge, steering). Component pointers stay valid
// because no structural ECS change happens while a view set is alive:
// consumed bodies are only marked Removed here and despawned after all
// passes, so a body eaten in an early pass is excluded from every later
// pass of the same tick.
type BodyView struct {
	Entity  ecs.Entity
	Pos     *components.Position
	Vel     *components.Velocity
	Imp     *components.Impulse
	Body    *components.Body
	ID      components.Identity
	Clock   *components.SplitClock
	Removed bool
}

// Overlaps reports whether two bodies' circles overlap. True radii are
// used; display radii are animation only.
func (v *BodyView) Overlaps(o *BodyView) bool {
	d := distance(v.Pos.X, v.Pos.Y, o.Pos.X, o.Pos.Y)
	return d < v.Body.Radius+o.Body.Radius
}
