package cluster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

// Integrator is a minimal 2D rigid-body step standing in for the
// "external rigid-body engine" spec §2 treats as an out-of-core
// collaborator. Reduced from the teacher's full 3D sub-stepped
// impulse solver (physics.go) to the handful of contact shapes
// clusters need: gravity, Euler integration, and penalty-based
// resolution against static terrain found under a cluster's own
// footprint. A production host is expected to supply its own rigid
// body engine and feed poses back into the Manager instead.
type Integrator struct {
	Gravity        float32 // grid-space acceleration, +Y down
	Substeps       int
	RestitutionBias float32 // Baumgarte stabilization factor
}

func NewIntegrator() *Integrator {
	return &Integrator{Gravity: 20, Substeps: 4, RestitutionBias: 0.2}
}

// Step advances every non-sleeping cluster by dt, split into Substeps
// sub-steps for stability, mirroring the teacher's sub-stepped
// integrate-then-resolve loop.
func (ig *Integrator) Step(clusters []*Cluster, dt float32) {
	if ig.Substeps < 1 {
		ig.Substeps = 1
	}
	sub := dt / float32(ig.Substeps)
	for i := 0; i < ig.Substeps; i++ {
		for _, c := range clusters {
			if c.IsSleeping {
				continue
			}
			ig.integrateOne(c, sub)
		}
	}
}

func (ig *Integrator) integrateOne(c *Cluster, dt float32) {
	if !c.IsMachinePart {
		c.LinearVelocity = c.LinearVelocity.Add(mgl32.Vec2{0, ig.Gravity * dt})
	}
	c.Pose.X += c.LinearVelocity.X() * dt
	c.Pose.Y += c.LinearVelocity.Y() * dt
	c.Pose.Rotation += c.AngularVelocity * dt
}

// ResolveAgainstStatic nudges a cluster out of any static-terrain cell
// its footprint currently overlaps, zeroing the velocity component
// driving the overlap (Baumgarte-style partial correction, as
// physics.go does for its 3D contacts, reduced to axis-aligned
// push-out on a 2D cell grid).
func (ig *Integrator) ResolveAgainstStatic(g *grid.Grid, c *Cluster) {
	mats := g.Materials()
	penetration := float32(0)
	count := 0
	for _, p := range c.Pixels {
		x, y := c.LocalToWorldCell(p)
		if !g.InBounds(x, y) {
			continue
		}
		cell := g.Cell(x, y)
		if cell.OwnerID == uint16(c.ID) {
			continue
		}
		if mats.Behavior(cell.MaterialID) == material.Static && !cell.IsAir() {
			penetration++
			count++
		}
	}
	c.ContactCount = count
	if count == 0 {
		return
	}
	correction := penetration / float32(count) * ig.RestitutionBias
	c.Pose.Y -= correction
	if c.LinearVelocity.Y() > 0 {
		c.LinearVelocity = mgl32.Vec2{c.LinearVelocity.X(), 0}
	}
}
