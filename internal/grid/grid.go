package grid

// Point is a zero-based cell coordinate. (0,0) is the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contains reports whether (x, y) lies on a width×height board.
func Contains(width, height, x, y int) bool {
	return 0 <= x && x < width && 0 <= y && y < height
}

// Index maps (x, y) to a flat row-major index.
func Index(width, x, y int) int {
	return y*width + x
}

// Coords is the inverse of [Index].
func Coords(width, i int) (x, y int) {
	return i % width, i / width
}

// ForEachNeighbor calls fn for every in-bounds cell 8-connected to (x, y).
func ForEachNeighbor(width, height, x, y int, fn func(nx, ny int)) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if Contains(width, height, nx, ny) {
				fn(nx, ny)
			}
		}
	}
}

// CountNeighbors returns the number of neighbors of (x, y) for which pred
// is true.
func CountNeighbors(width, height, x, y int, pred func(nx, ny int) bool) (count int) {
	ForEachNeighbor(width, height, x, y, func(nx, ny int) {
		if pred(nx, ny) {
			count++
		}
	})
	return
}
