// Package schedule partitions active chunks into the four checkerboard
// groups and dispatches per-chunk work across a worker pool (spec
// §4.1, §5).
package schedule

import "github.com/gekko3d/sandforge/grid"

// Groups holds the four checkerboard-disjoint chunk lists produced by
// SelectGroups. Group order (A, B, C, D) is processed serially; chunks
// within a group run concurrently.
type Groups [4][]grid.ChunkCoord

// SelectGroups implements select_active_chunks() (spec §4.1): a chunk
// is selected if IsDirty || HasStructure || ActiveLastFrame, then
// bucketed by (chunk_x&1) | ((chunk_y&1)<<1).
func SelectGroups(g *grid.Grid) Groups {
	var groups Groups
	for _, cc := range g.ActiveChunks() {
		gi := cc.Group()
		groups[gi] = append(groups[gi], cc)
	}
	return groups
}
