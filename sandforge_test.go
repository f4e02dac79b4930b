package sandforge

import (
	"context"
	"testing"

	"github.com/gekko3d/sandforge/cluster"
	"github.com/gekko3d/sandforge/material"
	"github.com/gekko3d/sandforge/structure"
)

func newTestWorld(t *testing.T) (*World, material.ID, material.ID) {
	t.Helper()
	mats := material.NewTable()
	sand := mats.Register(material.Def{Name: "Sand", Density: 100, Behavior: material.Powder})
	wall := mats.Register(material.Def{Name: "Wall", Density: 255, Behavior: material.Static})
	tiles := structure.Tiles{Belt: wall, Lift: wall, Wall: wall, Plate: wall}
	w := CreateWorld(64, 64, mats, tiles)
	return w, sand, wall
}

func TestCreateWorldAssignsUniqueHandle(t *testing.T) {
	mats := material.NewTable()
	w1 := CreateWorld(32, 32, mats, structure.Tiles{})
	w2 := CreateWorld(32, 32, mats, structure.Tiles{})
	if w1.Handle == w2.Handle {
		t.Errorf("expected distinct worlds to receive distinct handles")
	}
}

func TestSetCellGetCellRoundTrip(t *testing.T) {
	w, sand, _ := newTestWorld(t)
	if err := w.SetCell(4, 4, sand); err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}
	c, err := w.GetCell(4, 4)
	if err != nil {
		t.Fatalf("GetCell failed: %v", err)
	}
	if c.MaterialID != sand {
		t.Errorf("expected material %d at (4,4), got %d", sand, c.MaterialID)
	}
}

func TestTickAdvancesSandGrainDownward(t *testing.T) {
	w, sand, _ := newTestWorld(t)
	_ = w.SetCell(10, 0, sand)

	ctx := context.Background()
	for i := 0; i < 30; i++ {
		if _, err := w.Tick(ctx, 1.0/60.0); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	c, _ := w.GetCell(10, 63)
	if c.MaterialID != sand {
		t.Errorf("expected the grain to have settled at the floor after 30 ticks, found material %d", c.MaterialID)
	}
}

func TestPlaceBeltThenTickTransportsSand(t *testing.T) {
	w, sand, _ := newTestWorld(t)
	if _, err := w.PlaceBelt(0, 40, structure.Right, 1); err != nil {
		t.Fatalf("PlaceBelt failed: %v", err)
	}
	_ = w.SetCell(0, 39, sand)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := w.Tick(ctx, 1.0/60.0); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	c, _ := w.GetCell(0, 39)
	if c.MaterialID == sand {
		t.Errorf("expected the sand to have moved off its starting column after riding the belt")
	}
}

func TestCreateClusterAndTickStampsGrid(t *testing.T) {
	w, _, wall := newTestWorld(t)
	id, err := w.CreateCluster([]cluster.Pixel{{MaterialID: wall}}, cluster.Pose{X: 20, Y: 20}, 1)
	if err != nil {
		t.Fatalf("CreateCluster failed: %v", err)
	}

	ctx := context.Background()
	if _, err := w.Tick(ctx, 1.0/60.0); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	c, _ := w.GetCell(20, 20)
	if c.OwnerID != uint16(id) {
		t.Errorf("expected cluster %d to have stamped (20,20), got owner %d", id, c.OwnerID)
	}
}

func TestActiveDirtyChunksReflectsWrites(t *testing.T) {
	w, sand, _ := newTestWorld(t)
	_ = w.SetCell(1, 1, sand)
	if len(w.ActiveDirtyChunks()) == 0 {
		t.Errorf("expected at least one active dirty chunk after a write")
	}
}
