// Command sandforge-demo drives a small world for a fixed number of
// ticks through three scenarios (falling sand, a spreading water
// column, and a belt carrying a sand pile) with no renderer attached —
// a headless smoke test for the core (spec §8). It logs the start of
// each scenario and checks an outcome only for the first one (whether
// the grain settled on the floor).
package main

import (
	"context"
	"fmt"

	"github.com/gekko3d/sandforge"
	"github.com/gekko3d/sandforge/material"
	"github.com/gekko3d/sandforge/orchestrator"
	"github.com/gekko3d/sandforge/structure"
)

func main() {
	logger := orchestrator.NewDefaultLogger()

	mats := material.NewTable()
	sand := mats.Register(material.Def{Name: "Sand", Density: 100, Behavior: material.Powder, Flags: 0})
	water := mats.Register(material.Def{Name: "Water", Density: 50, Behavior: material.Liquid, DispersionRate: 5})
	beltDecor := mats.Register(material.Def{Name: "BeltSurface", Density: 255, Behavior: material.Static})
	liftDecor := mats.Register(material.Def{Name: "LiftSurface", Density: 255, Behavior: material.Static, Flags: material.FlagPassable})
	wallMat := mats.Register(material.Def{Name: "Wall", Density: 255, Behavior: material.Static})
	plateMat := mats.Register(material.Def{Name: "Plate", Density: 255, Behavior: material.Static})

	tiles := structure.Tiles{Belt: beltDecor, Lift: liftDecor, Wall: wallMat, Plate: plateMat}
	w := sandforge.CreateWorld(128, 128, mats, tiles)
	w.SetLogger(logger)

	logger.Infof("scenario 1: single sand grain")
	if err := w.SetCell(10, 0, sand); err != nil {
		logger.Errorf("set_cell failed: %v", err)
		return
	}
	runTicks(w, 40, logger)
	if c, _ := w.GetCell(10, 127); c.MaterialID == sand {
		logger.Infof("grain settled at the floor (10,127) as expected")
	} else {
		logger.Warnf("grain did not settle where expected; found material %d", c.MaterialID)
	}

	logger.Infof("scenario 2: water column spreads")
	for y := 0; y < 4; y++ {
		_ = w.SetCell(60, y, water)
	}
	runTicks(w, 60, logger)

	logger.Infof("scenario 3: belt transports a sand pile")
	if _, err := w.PlaceBelt(20, 50, structure.Right, 2); err != nil {
		logger.Errorf("place_belt failed: %v", err)
	}
	// The belt snaps to the block at y=48; row 47 is just above its surface.
	for x := 20; x < 28; x++ {
		_ = w.SetCell(x, 47, sand)
	}
	runTicks(w, 80, logger)

	logger.Infof("demo complete")
}

func runTicks(w *sandforge.World, n int, logger orchestrator.Logger) {
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := w.Tick(ctx, 1.0/60.0); err != nil {
			logger.Errorf("tick %d failed: %v", i, err)
			return
		}
	}
	fmt.Println() // separate scenario output visually
}
