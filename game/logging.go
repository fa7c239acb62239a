package game

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/softbody-labs/petri/components"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logWorldState emits a structured snapshot of the arena.
func (g *Game) logWorldState() {
	var playerMass, agentMass float64
	var players, agents, bosses int

	query := g.bodyFilter.Query()
	for query.Next() {
		_, _, _, body, id, _ := query.Get()
		switch id.Role {
		case components.RolePlayer:
			players++
			playerMass += float64(body.Mass)
		case components.RoleBoss:
			bosses++
			agentMass += float64(body.Mass)
		default:
			agents++
			agentMass += float64(body.Mass)
		}
	}

	slog.Info("world state",
		"tick", g.tick,
		"players", players,
		"agents", agents,
		"bosses", bosses,
		"player_mass", playerMass,
		"agent_mass", agentMass,
		"pellets", g.pellets.Count(),
		"bonuses", g.bonuses.Count(),
		"game_over", g.GameOver(),
	)
}
