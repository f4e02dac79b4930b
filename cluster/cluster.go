// Package cluster bridges the external rigid-body world and the cell
// grid: it owns clusters, stamps their pixels into the grid, displaces
// conflicting loose cells, and manages sleep (spec §4.3).
package cluster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sandforge/material"
)

// Pixel is one cell of a cluster, in local coordinates relative to the
// cluster's center of mass.
type Pixel struct {
	LocalX, LocalY int16
	MaterialID     material.ID
}

// Pose is the cluster's world transform, owned by the rigid-body step.
type Pose struct {
	X, Y     float32
	Rotation float32 // radians
}

// ID uniquely identifies a live cluster. 0 is never valid.
type ID uint16

// Cluster mirrors spec §3 "Cluster".
type Cluster struct {
	ID     ID
	Pixels []Pixel

	Pose           Pose
	LinearVelocity mgl32.Vec2
	AngularVelocity float32
	Mass           float32

	IsSleeping    bool
	IsOnBelt      bool
	IsOnLift      bool
	IsMachinePart bool

	LowVelocityFrames uint32
	LastSyncedPose    Pose
	IsPixelsSynced    bool

	// ContactCount is the number of the cluster's own pixels currently
	// overlapping foreign static terrain, refreshed each tick by
	// ResolveAgainstStatic. Zero means the cluster is airborne.
	ContactCount int
}

// LocalToWorldCell computes the world cell coordinates of a pixel
// given the cluster's current pose (spec §4.3 "local_to_world_cell"):
// rotate then translate, rounding to the nearest cell. Pose and
// velocities are kept in grid cell space (Y increases downward, as the
// Integrator's gravity does), so Pose.Y is added without a flip.
func (c *Cluster) LocalToWorldCell(p Pixel) (x, y int) {
	sin, cos := sinCos(c.Pose.Rotation)
	lx, ly := float32(p.LocalX), float32(p.LocalY)
	wx := lx*cos - ly*sin + c.Pose.X
	wy := lx*sin + ly*cos + c.Pose.Y
	return roundToInt(wx), roundToInt(wy)
}

func sinCos(rad float32) (sin, cos float32) {
	s, c := math.Sincos(float64(rad))
	return float32(s), float32(c)
}

func roundToInt(f float32) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}

// poseDelta reports whether the pose has moved beyond the sleep-skip
// tolerances (spec §4.3 "Sleep-skip"): 0.01 world units position,
// 0.1° rotation.
func poseDelta(a, b Pose, posTol, rotTolDeg float32) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx*dx+dy*dy > posTol*posTol {
		return true
	}
	dr := a.Rotation - b.Rotation
	rotTolRad := rotTolDeg * (3.14159265 / 180)
	if dr < -rotTolRad || dr > rotTolRad {
		return true
	}
	return false
}
