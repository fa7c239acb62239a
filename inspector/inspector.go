// Package inspector provides a click-to-inspect panel for arena bodies.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/ui"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 30
)

var (
	colorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	colorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
)

// BodyFilter is the component set the inspector can select over.
type BodyFilter = ecs.Filter6[
	components.Position,
	components.Velocity,
	components.Impulse,
	components.Body,
	components.Identity,
	components.SplitClock,
]

// Inspector manages body selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32

	renderer *ui.Renderer
}

// NewInspector creates a new inspector instance. The panel sits below
// the simulation controls in the top-right corner.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX:   screenWidth - PanelWidth - 10,
		panelY:   130,
		renderer: ui.NewRenderer(),
	}
}

// Resize repositions the panel after a window resize.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput processes click detection for body selection. Mouse
// coordinates are in screen space; world coordinates of the click are
// passed separately so the caller owns the camera transform.
func (ins *Inspector) HandleInput(mouseX, mouseY, worldX, worldY float32, filter *BodyFilter) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	// Close button and clicks inside the panel
	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	// Find the clicked body
	var closest ecs.Entity
	closestDist := float32(math.MaxFloat32)
	found := false

	query := filter.Query()
	for query.Next() {
		pos, _, _, body, _, _ := query.Get()

		dx := worldX - pos.X
		dy := worldY - pos.Y
		dist := dx*dx + dy*dy

		hitRadius := body.Radius + 5
		if dist < hitRadius*hitRadius && dist < closestDist {
			closest = query.Entity()
			closestDist = dist
			found = true
		}
	}

	if found {
		ins.selected = closest
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected body.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if a body is selected. nowMs and
// cooldownMs drive the merge cooldown bar.
func (ins *Inspector) Draw(
	world *ecs.World,
	posMap *ecs.Map1[components.Position],
	velMap *ecs.Map1[components.Velocity],
	bodyMap *ecs.Map1[components.Body],
	idMap *ecs.Map1[components.Identity],
	clockMap *ecs.Map1[components.SplitClock],
	nowMs, cooldownMs int64,
) {
	if !ins.hasSelected {
		return
	}

	// The body may have been consumed since selection
	if !world.Alive(ins.selected) {
		ins.Deselect()
		return
	}

	pos := posMap.Get(ins.selected)
	vel := velMap.Get(ins.selected)
	body := bodyMap.Get(ins.selected)
	id := idMap.Get(ins.selected)
	clock := clockMap.Get(ins.selected)
	if pos == nil || body == nil || id == nil {
		ins.Deselect()
		return
	}

	r := ins.renderer
	panelHeight := int32(HeaderHeight + PanelPadding*2 + 7*int(r.Theme.LineHeight) + 10)

	r.DrawPanel(ins.panelX, ins.panelY, PanelWidth, panelHeight)

	// Header with close button
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, colorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, rl.White)
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, colorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	width := int32(PanelWidth - PanelPadding*2)

	role := id.Role.String()
	if id.Role == components.RolePlayer {
		role = fmt.Sprintf("%s (group %d)", role, id.Group)
	}
	y = r.DrawLabelValue(x, y, "Role", role)
	y = r.DrawLabelValue(x, y, "Mass", fmt.Sprintf("%.1f", body.Mass))
	y = r.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.1f", body.Radius))
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", pos.X, pos.Y))
	if vel != nil {
		speed := float32(math.Hypot(float64(vel.X), float64(vel.Y)))
		y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f", speed))
	}

	if clock != nil && cooldownMs > 0 {
		elapsed := nowMs - clock.LastSplitMs
		ready := float32(elapsed) / float32(cooldownMs)
		if ready > 1 {
			ready = 1
		}
		r.DrawBar(x, y, "Merge", ready, width)
	}
}
