package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput captures the local player's pointer target and control
// keys. The pointer position is resampled every frame, so the target
// the simulation sees is always current.
func (g *Game) handleInput() {
	if g.cam == nil {
		return
	}

	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if g.GameOver() {
		if rl.IsKeyPressed(rl.KeyR) {
			g.Restart()
		}
		return
	}

	mouse := rl.GetMousePosition()
	wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
	g.SetTarget(LocalGroup, wx, wy)

	g.inspect.HandleInput(mouse.X, mouse.Y, wx, wy, g.bodyFilter)

	// Edge-triggered split request
	if rl.IsKeyPressed(rl.KeySpace) {
		g.RequestSplit(LocalGroup)
	}
}

// handleResize propagates window resizes to the camera.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.cam.Resize(w, h)
	g.inspect.Resize(int32(w))
}
