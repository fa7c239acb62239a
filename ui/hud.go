package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick         int32
	PlayerMass   float32
	PlayerBodies int
	AgentBodies  int
	Speed        int
	FPS          int32
	Paused       bool
	GameOver     bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Tick: %d", data.Tick), 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Mass: %.0f | Bodies: %d | Agents: %d", data.PlayerMass, data.PlayerBodies, data.AgentBodies),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Speed: %dx | FPS: %d", data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}

	if data.GameOver {
		msg := "GAME OVER - press R to restart"
		width := rl.MeasureText(msg, 40)
		rl.DrawText(msg, data.ScreenWidth/2-width/2, data.ScreenHeight/2-20, 40, rl.Red)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
