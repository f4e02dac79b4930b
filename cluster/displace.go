package cluster

import (
	"github.com/brentp/intintmap"

	"github.com/gekko3d/sandforge/grid"
)

// Point is a grid cell coordinate.
type Point struct{ X, Y int }

// displaceDirs is the fixed priority order from spec §4.3
// "Displacement algorithm": down, down-left, down-right, left, right,
// up, up-left, up-right — biased toward falling.
var displaceDirs = [8]Point{
	{0, 1}, {-1, 1}, {1, 1},
	{-1, 0}, {1, 0},
	{0, -1}, {-1, -1}, {1, -1},
}

func packCoord(x, y int) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

func absI(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bfsFindEmpty runs a bounded breadth-first search from (x,y) over the
// 8-neighborhood, visiting cells within Manhattan radius `radius`, in
// the fixed direction priority order, and returns the first Air cell
// found.
func bfsFindEmpty(g *grid.Grid, x, y, radius int) (Point, bool) {
	visited := intintmap.New(64, 0.6)
	queue := make([]Point, 0, 64)
	queue = append(queue, Point{x, y})
	visited.Put(packCoord(x, y), 1)

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		manhattan := absI(p.X-x) + absI(p.Y-y)
		for _, d := range displaceDirs {
			np := Point{p.X + d.X, p.Y + d.Y}
			if absI(np.X-x)+absI(np.Y-y) > radius {
				continue
			}
			key := packCoord(np.X, np.Y)
			if _, ok := visited.Get(key); ok {
				continue
			}
			visited.Put(key, 1)
			if !g.InBounds(np.X, np.Y) {
				continue
			}
			if g.Cell(np.X, np.Y).IsAir() {
				return np, true
			}
			if manhattan < radius {
				queue = append(queue, np)
			}
		}
	}
	return Point{}, false
}
