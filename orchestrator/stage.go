package orchestrator

// Stage names the fixed phases of one tick (spec §5 "Ordering
// guarantees"). No code in this module references these values —
// unlike the teacher's schedule.go, there is no per-stage system
// registry here; World.Tick calls each subsystem directly in this order.
type Stage string

const (
	StageForceInject    Stage = "force_inject"
	StageRigidBodyStep  Stage = "rigid_body_step"
	StageClusterStamp   Stage = "cluster_stamp"
	StageCellSim        Stage = "cell_sim"
	StageBeltMove       Stage = "belt_move"
	StageGhostActivate  Stage = "ghost_activate"
	StageDirtyDecay     Stage = "dirty_decay"
	StageColliderPublish Stage = "collider_publish"
)
