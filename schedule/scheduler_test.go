package schedule

import (
	"context"
	"sync"
	"testing"

	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

func TestSelectGroupsBucketsByCheckerboard(t *testing.T) {
	mats := material.NewTable()
	sand := mats.Register(material.Def{Name: "Sand", Behavior: material.Powder})
	g := grid.New(128, 128, mats)

	// Chunks (0,0), (1,0), (0,1), (1,1): one per checkerboard group.
	_ = g.SetCell(0, 0, sand)
	_ = g.SetCell(grid.ChunkSize, 0, sand)
	_ = g.SetCell(0, grid.ChunkSize, sand)
	_ = g.SetCell(grid.ChunkSize, grid.ChunkSize, sand)

	groups := SelectGroups(g)
	for i, group := range groups {
		if len(group) != 1 {
			t.Errorf("expected exactly one chunk in group %d, got %d", i, len(group))
		}
	}
}

func TestPoolRunDispatchesEveryChunk(t *testing.T) {
	p := NewPool()
	group := []grid.ChunkCoord{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}}

	var mu sync.Mutex
	seen := make(map[grid.ChunkCoord]bool)

	err := p.Run(context.Background(), group, func(cc grid.ChunkCoord) error {
		mu.Lock()
		seen[cc] = true
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if len(seen) != len(group) {
		t.Errorf("expected every chunk to be visited, got %d of %d", len(seen), len(group))
	}
}

func TestPoolRunPropagatesFirstError(t *testing.T) {
	p := NewPool()
	group := []grid.ChunkCoord{{X: 0, Y: 0}, {X: 1, Y: 0}}

	boom := errFake("boom")
	err := p.Run(context.Background(), group, func(cc grid.ChunkCoord) error {
		if cc.X == 1 {
			return boom
		}
		return nil
	})
	if err == nil {
		t.Errorf("expected Run to propagate the worker error")
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
