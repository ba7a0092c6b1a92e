package grid

import "testing"

func TestContains(t *testing.T) {
	testCases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{7, 7, true},
		{7, 0, true},
		{-1, 0, false},
		{0, -1, false},
		{8, 0, false},
		{0, 8, false},
	}
	for _, test := range testCases {
		if got := Contains(8, 8, test.x, test.y); got != test.want {
			t.Errorf("Contains(8, 8, %d, %d) = %v, want %v",
				test.x, test.y, got, test.want)
		}
	}
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	const width, height = 5, 3
	for i := range width * height {
		x, y := Coords(width, i)
		if !Contains(width, height, x, y) {
			t.Errorf("Coords(%d, %d) = (%d, %d) is off the board", width, i, x, y)
		}
		if j := Index(width, x, y); j != i {
			t.Errorf("Index(Coords(%d)) = %d", i, j)
		}
	}
}

func TestForEachNeighborCorner(t *testing.T) {
	var got []Point
	ForEachNeighbor(8, 8, 0, 0, func(nx, ny int) {
		got = append(got, Point{nx, ny})
	})
	want := map[Point]bool{{1, 0}: true, {0, 1}: true, {1, 1}: true}
	if len(got) != len(want) {
		t.Fatalf("corner cell has %d neighbors, want %d: %v", len(got), len(want), got)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected neighbor %v", p)
		}
	}
}

func TestForEachNeighborCenter(t *testing.T) {
	count := 0
	ForEachNeighbor(8, 8, 4, 4, func(nx, ny int) {
		if nx == 4 && ny == 4 {
			t.Error("cell reported as its own neighbor")
		}
		count++
	})
	if count != 8 {
		t.Errorf("center cell has %d neighbors, want 8", count)
	}
}
