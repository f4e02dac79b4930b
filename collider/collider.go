// Package collider implements the terrain collider bridge (spec
// §4.5): a marching-squares pass over each dirty chunk's
// static-material mask, producing polygons the external rigid-body
// world consumes as a static collider.
package collider

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

// Point is a 2D point in cell-space coordinates (fractional at cell
// boundaries, since marching squares interpolates along edges).
type Point struct{ X, Y float32 }

// Polygon is a closed loop of points describing one collider outline.
type Polygon []Point

// ChunkCollider is a host command: "add/replace collider for chunk
// (cx,cy) with polygon set P" (spec §4.5).
type ChunkCollider struct {
	ChunkX, ChunkY int
	Polygons       []Polygon
}

// Bridge produces terrain colliders for dirty chunks.
type Bridge struct {
	Grid *grid.Grid
}

func NewBridge(g *grid.Grid) *Bridge {
	return &Bridge{Grid: g}
}

// BuildDirtyColliders runs marching squares over every chunk flagged
// active this tick that contains static material, and returns one
// ChunkCollider per such chunk. Chunks with no static cells are
// omitted entirely (an empty polygon set, i.e. "remove collider", is
// the caller's responsibility to infer from absence).
func (b *Bridge) BuildDirtyColliders() []ChunkCollider {
	out := make([]ChunkCollider, 0)
	for _, cc := range b.Grid.ActiveDirtyChunks() {
		polys := b.marchChunk(cc.X, cc.Y)
		if len(polys) == 0 {
			continue
		}
		out = append(out, ChunkCollider{ChunkX: cc.X, ChunkY: cc.Y, Polygons: polys})
	}
	return out
}

// isStaticAt returns 1 if the cell at world coordinates (x,y) is a
// static-behavior material, else 0. Out-of-bounds treated as empty so
// chunk-boundary marching squares behaves like an open boundary.
func (b *Bridge) isStaticAt(x, y int) int {
	if !b.Grid.InBounds(x, y) {
		return 0
	}
	c := b.Grid.Cell(x, y)
	if c.IsAir() {
		return 0
	}
	if b.Grid.Materials().Behavior(c.MaterialID) == material.Static {
		return 1
	}
	return 0
}

// marchChunk runs a classic marching-squares pass over one chunk's
// static mask, at cell-corner resolution, and stitches per-cell
// segments into closed polygons.
func (b *Bridge) marchChunk(cx, cy int) []Polygon {
	x0, y0 := cx*grid.ChunkSize, cy*grid.ChunkSize
	segments := make([]segment, 0, 64)

	for ly := 0; ly < grid.ChunkSize; ly++ {
		for lx := 0; lx < grid.ChunkSize; lx++ {
			x, y := x0+lx, y0+ly
			tl := b.isStaticAt(x, y)
			tr := b.isStaticAt(x+1, y)
			bl := b.isStaticAt(x, y+1)
			br := b.isStaticAt(x+1, y+1)
			state := tl<<3 | tr<<2 | br<<1 | bl
			if state == 0 || state == 15 {
				continue
			}
			segments = append(segments, cellSegments(float32(x), float32(y), state)...)
		}
	}
	if len(segments) == 0 {
		return nil
	}
	return stitch(segments)
}

type segment struct{ A, B Point }

// cellSegments returns the marching-squares edge segment(s) for one
// cell given its corner occupancy state (4-bit, TL/TR/BR/BL order).
// Midpoints of each cell edge stand in for the interpolated crossing
// point — adequate for a uniform-density binary mask.
func cellSegments(x, y float32, state int) []segment {
	top := Point{x + 0.5, y}
	bottom := Point{x + 0.5, y + 1}
	left := Point{x, y + 0.5}
	right := Point{x + 1, y + 0.5}

	switch state {
	case 1, 14: // BL only / all-but-BL
		return []segment{{left, bottom}}
	case 2, 13: // BR only
		return []segment{{bottom, right}}
	case 3, 12: // BL+BR
		return []segment{{left, right}}
	case 4, 11: // TR only
		return []segment{{right, top}}
	case 5: // BL+TR (ambiguous saddle, resolve as two edges)
		return []segment{{left, top}, {bottom, right}}
	case 6, 9: // TR+BR
		return []segment{{bottom, top}}
	case 7, 8: // TL only (8) / all-but-TL (7)
		return []segment{{top, left}}
	case 10: // TL+BR (ambiguous saddle)
		return []segment{{top, right}, {left, bottom}}
	}
	return nil
}

// stitch chains segments sharing an endpoint into closed polygons.
// Segments are compared by exact float equality, which holds here
// since every endpoint lies on the half-integer grid produced by
// cellSegments.
func stitch(segments []segment) []Polygon {
	remaining := append([]segment(nil), segments...)
	var polys []Polygon

	for len(remaining) > 0 {
		cur := remaining[0]
		remaining = remaining[1:]
		poly := Polygon{cur.A, cur.B}
		head := cur.B
		for {
			found := -1
			for i, s := range remaining {
				if s.A == head {
					poly = append(poly, s.B)
					head = s.B
					found = i
					break
				}
				if s.B == head {
					poly = append(poly, s.A)
					head = s.A
					found = i
					break
				}
			}
			if found == -1 {
				break
			}
			remaining = append(remaining[:found], remaining[found+1:]...)
		}
		polys = append(polys, poly)
	}
	return polys
}
