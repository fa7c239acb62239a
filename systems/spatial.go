// Package systems implements the simulation systems: movement, agent
// steering, collision/consumption resolution, split/merge control, and
// the pellet and bonus collectible fields.
package systems

// Grid provides O(1) index lookups over a bounded plane using a
// cell-based grid. It stores int32 indices into a caller-owned slice,
// so the pellet field can rebuild it cheaply every tick.
type Grid struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	height   float32
	cells    [][]int32
}

// NewGrid creates a grid covering the given world size.
func NewGrid(width, height, cellSize float32) *Grid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    cells,
	}
}

// Clear removes all indices from the grid, keeping capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an index to the grid at the given position.
func (g *Grid) Insert(idx int32, x, y float32) {
	i := g.cellIndex(x, y)
	g.cells[i] = append(g.cells[i], idx)
}

// QueryCircleInto appends all indices whose cell intersects the circle
// to dst and returns the updated slice. Candidates may lie outside the
// circle; the caller applies the exact overlap test. Reuse dst across
// calls to avoid allocations.
func (g *Grid) QueryCircleInto(dst []int32, x, y, radius float32) []int32 {
	cellRadius := int(radius/g.cellSize) + 1

	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}

	return dst
}

// cellIndex returns the flat index for a world position, clamped to the
// grid bounds.
func (g *Grid) cellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
