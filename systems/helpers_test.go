package systems

import (
	"math"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/config"
)

var configLoaded bool

// testConfig returns the embedded default configuration, loading it on
// first use. Systems copy their parameters at construction time.
func testConfig() *config.Config {
	if !configLoaded {
		config.MustInit("")
		configLoaded = true
	}
	return config.Cfg()
}

// testView builds a standalone body view with fresh components, for
// tests that exercise the pairwise passes without an ECS world.
func testView(x, y, mass float32, role components.Role, group uint8, lastSplit int64) BodyView {
	body := components.NewBody(mass)
	return BodyView{
		Pos:   &components.Position{X: x, Y: y},
		Vel:   &components.Velocity{},
		Imp:   &components.Impulse{},
		Body:  &body,
		ID:    components.Identity{Role: role, Group: group},
		Clock: &components.SplitClock{LastSplitMs: lastSplit},
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.001
}
