package systems

import "testing"

func containsIdx(s []int32, v int32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestGrid_QueryFindsNearbyIndices(t *testing.T) {
	g := NewGrid(1000, 1000, 100)
	g.Insert(1, 150, 150)
	g.Insert(2, 160, 155)
	g.Insert(3, 900, 900)

	got := g.QueryCircleInto(nil, 150, 150, 50)

	if !containsIdx(got, 1) || !containsIdx(got, 2) {
		t.Errorf("query = %v, want candidates 1 and 2", got)
	}
	if containsIdx(got, 3) {
		t.Errorf("query = %v, distant index 3 should not be a candidate", got)
	}
}

func TestGrid_QuerySpansCellBoundaries(t *testing.T) {
	g := NewGrid(1000, 1000, 100)
	g.Insert(7, 199, 100) // one cell left of the probe's cell
	g.Insert(8, 201, 100)

	got := g.QueryCircleInto(nil, 200, 100, 10)

	if !containsIdx(got, 7) || !containsIdx(got, 8) {
		t.Errorf("query = %v, want both neighbors across the cell boundary", got)
	}
}

func TestGrid_ClearKeepsStructure(t *testing.T) {
	g := NewGrid(1000, 1000, 100)
	g.Insert(1, 500, 500)
	g.Clear()

	if got := g.QueryCircleInto(nil, 500, 500, 200); len(got) != 0 {
		t.Errorf("query after clear = %v, want empty", got)
	}

	g.Insert(2, 500, 500)
	if got := g.QueryCircleInto(nil, 500, 500, 50); !containsIdx(got, 2) {
		t.Errorf("query = %v, want index 2 after reinsert", got)
	}
}

func TestGrid_ClampsOutOfBoundsPositions(t *testing.T) {
	g := NewGrid(1000, 1000, 100)
	g.Insert(1, -50, -50)
	g.Insert(2, 5000, 5000)

	if got := g.QueryCircleInto(nil, 0, 0, 60); !containsIdx(got, 1) {
		t.Errorf("query = %v, want clamped index 1 near the origin corner", got)
	}
	if got := g.QueryCircleInto(nil, 1000, 1000, 60); !containsIdx(got, 2) {
		t.Errorf("query = %v, want clamped index 2 near the far corner", got)
	}
}

func TestGrid_QueryReusesDestination(t *testing.T) {
	g := NewGrid(1000, 1000, 100)
	g.Insert(1, 100, 100)

	buf := make([]int32, 0, 16)
	got := g.QueryCircleInto(buf, 100, 100, 50)
	if !containsIdx(got, 1) {
		t.Fatalf("query = %v, want index 1", got)
	}

	got = g.QueryCircleInto(got[:0], 800, 800, 50)
	if len(got) != 0 {
		t.Errorf("query = %v, want empty in an unpopulated region", got)
	}
}
