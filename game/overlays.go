package game

import "github.com/softbody-labs/petri/ui"

// drawOverlays renders the control panel and the body inspector.
// The controls panel owns pause state and simulation speed while it
// is on screen; keyboard shortcuts write the same fields.
func (g *Game) drawOverlays() {
	state := g.controls.Draw(g.screenWidth, ui.ControlsState{
		Paused: g.paused,
		Speed:  g.stepsPerUpdate,
	})
	g.paused = state.Paused
	g.stepsPerUpdate = state.Speed

	g.inspect.Draw(g.world, g.posMap, g.velMap, g.bodyMap, g.idMap, g.clockMap,
		g.nowMs, g.cfg.Split.MergeCooldownMs)
}
