package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState holds the simulation controls the panel edits.
type ControlsState struct {
	Paused bool
	Speed  int // simulation steps per rendered frame
}

// ControlsPanel renders the simulation control panel in the top-right
// corner: pause toggle and speed slider.
type ControlsPanel struct {
	width    float32
	minSpeed int
	maxSpeed int
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(minSpeed, maxSpeed int) *ControlsPanel {
	return &ControlsPanel{
		width:    220,
		minSpeed: minSpeed,
		maxSpeed: maxSpeed,
	}
}

// Draw renders the panel and returns the possibly-updated state.
func (c *ControlsPanel) Draw(screenWidth float32, state ControlsState) ControlsState {
	panelX := screenWidth - c.width - 10
	panelY := float32(10)

	gui.Panel(rl.Rectangle{X: panelX, Y: panelY, Width: c.width, Height: 110}, "Simulation")

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panelX + 10, Y: panelY + 30, Width: c.width - 20, Height: 26}, label) {
		state.Paused = !state.Paused
	}

	speed := gui.SliderBar(
		rl.Rectangle{X: panelX + 60, Y: panelY + 66, Width: c.width - 110, Height: 18},
		"Speed",
		fmt.Sprintf("%dx", state.Speed),
		float32(state.Speed), float32(c.minSpeed), float32(c.maxSpeed),
	)
	state.Speed = int(speed + 0.5)
	if state.Speed < c.minSpeed {
		state.Speed = c.minSpeed
	}
	if state.Speed > c.maxSpeed {
		state.Speed = c.maxSpeed
	}

	return state
}
