package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/systems"
	"github.com/softbody-labs/petri/ui"
)

// Role colors
var (
	playerColor = rl.Color{R: 80, G: 170, B: 255, A: 255}
	agentColor  = rl.Color{R: 120, G: 220, B: 120, A: 255}
	bossColor   = rl.Color{R: 230, G: 90, B: 90, A: 255}
	pelletColor = rl.Color{R: 200, G: 200, B: 120, A: 255}
	bonusColor  = rl.Color{R: 240, G: 200, B: 60, A: 255}
	gridColor   = rl.Color{R: 40, G: 40, B: 48, A: 255}
)

const gridSpacing = 250

// Draw renders the current frame.
func (g *Game) Draw() {
	if g.cam == nil {
		return
	}

	g.followPlayer()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})

	g.drawGrid()
	g.drawPellets()
	g.drawBonuses()
	g.drawBodies()
	g.drawBursts()
	g.drawHUD()
	g.drawOverlays()

	rl.EndDrawing()
}

// followPlayer eases the camera toward the local group's mass centroid,
// zooming out as the bodies grow.
func (g *Game) followPlayer() {
	var cx, cy, mass, maxRadius float32

	query := g.bodyFilter.Query()
	for query.Next() {
		pos, _, _, body, id, _ := query.Get()
		if id.Role != components.RolePlayer || id.Group != LocalGroup {
			continue
		}
		cx += pos.X * body.Mass
		cy += pos.Y * body.Mass
		mass += body.Mass
		if body.Radius > maxRadius {
			maxRadius = body.Radius
		}
	}

	if mass == 0 {
		return
	}
	cx /= mass
	cy /= mass

	// Keep roughly eight body radii of context in view.
	span := maxRadius*8 + 200
	g.cam.Follow(cx, cy, g.screenHeight/span, 0.08)
}

// drawGrid draws the arena background grid and border.
func (g *Game) drawGrid() {
	minX, minY, maxX, maxY := g.cam.VisibleWorldBounds()

	startX := float32(math.Floor(float64(minX/gridSpacing))) * gridSpacing
	for x := startX; x <= maxX; x += gridSpacing {
		if x < 0 || x > g.bounds.Width {
			continue
		}
		sx, _ := g.cam.WorldToScreen(x, 0)
		rl.DrawLine(int32(sx), 0, int32(sx), int32(g.screenHeight), gridColor)
	}
	startY := float32(math.Floor(float64(minY/gridSpacing))) * gridSpacing
	for y := startY; y <= maxY; y += gridSpacing {
		if y < 0 || y > g.bounds.Height {
			continue
		}
		_, sy := g.cam.WorldToScreen(0, y)
		rl.DrawLine(0, int32(sy), int32(g.screenWidth), int32(sy), gridColor)
	}

	// Arena border
	x0, y0 := g.cam.WorldToScreen(0, 0)
	x1, y1 := g.cam.WorldToScreen(g.bounds.Width, g.bounds.Height)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.Gray)
}

func (g *Game) drawPellets() {
	for _, p := range g.pellets.Pellets() {
		if !g.cam.IsVisible(p.X, p.Y, p.Radius) {
			continue
		}
		sx, sy := g.cam.WorldToScreen(p.X, p.Y)
		rl.DrawCircle(int32(sx), int32(sy), p.Radius*g.cam.Zoom, pelletColor)
	}
}

func (g *Game) drawBonuses() {
	for _, b := range g.bonuses.Bonuses() {
		if !g.cam.IsVisible(b.X, b.Y, b.Size) {
			continue
		}
		sx, sy := g.cam.WorldToScreen(b.X, b.Y)
		center := rl.Vector2{X: sx, Y: sy}
		rotation := b.Angle * 180 / math.Pi
		rl.DrawPoly(center, 5, b.Size*g.cam.Zoom, rotation, bonusColor)
		rl.DrawPolyLines(center, 5, b.Size*g.cam.Zoom, rotation, rl.White)
	}
}

func (g *Game) drawBodies() {
	query := g.bodyFilter.Query()
	for query.Next() {
		pos, _, _, body, id, _ := query.Get()

		if !g.cam.IsVisible(pos.X, pos.Y, body.DisplayRadius) {
			continue
		}

		color := agentColor
		switch id.Role {
		case components.RolePlayer:
			color = playerColor
		case components.RoleBoss:
			color = bossColor
		}

		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y)
		r := body.DisplayRadius * g.cam.Zoom
		rl.DrawCircle(int32(sx), int32(sy), r, color)
		rl.DrawCircleLines(int32(sx), int32(sy), r, rl.White)
	}
}

// drawBursts renders the transient rings emitted by consumed bonus
// structures, expanding and fading with age.
func (g *Game) drawBursts() {
	for _, b := range g.bonuses.Bursts() {
		life := 1 - float32(b.Age)/float32(systems.BurstLifetime)
		if life <= 0 {
			continue
		}
		sx, sy := g.cam.WorldToScreen(b.X, b.Y)
		r := (b.Size + float32(b.Age)*2) * g.cam.Zoom
		color := bonusColor
		color.A = uint8(255 * life)
		rl.DrawCircleLines(int32(sx), int32(sy), r, color)
	}
}

func (g *Game) drawHUD() {
	g.hud.Draw(ui.HUDData{
		Tick:         g.tick,
		PlayerMass:   g.PlayerMass(LocalGroup),
		PlayerBodies: g.playerBodies[LocalGroup],
		AgentBodies:  g.agentBodies,
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		GameOver:     g.GameOver(),
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
		"Mouse: steer | Space: split | P: pause | </>: speed | Click: inspect")
}
