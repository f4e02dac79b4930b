// Package config loads the engine's environment constants (spec §6)
// from embedded YAML defaults, overridable by a host-supplied file,
// grounded on the teacher's config.Config (defaults.yaml + go:embed +
// yaml.v3) pattern.
package config

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type GridConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Halo      int `yaml:"halo"`
}

type CellSimConfig struct {
	MaxVelocity    int8 `yaml:"max_velocity"`
	GravityPerTick int8 `yaml:"gravity_per_tick"`
}

type ClusterConfig struct {
	DisplacementSearchRadius int     `yaml:"displacement_search_radius"`
	SleepPosTolerance        float32 `yaml:"sleep_pos_tolerance"`
	SleepRotToleranceDeg     float32 `yaml:"sleep_rot_tolerance_deg"`
	LowVelFramesToSleep      uint32  `yaml:"low_vel_frames_to_sleep"`
	MomentumFactor           float32 `yaml:"momentum_factor"`
}

type StructureConfig struct {
	BeltBlock          int     `yaml:"belt_block"`
	LiftBlock          int     `yaml:"lift_block"`
	PistonBlock        int     `yaml:"piston_block"`
	PistonCycleSeconds float32 `yaml:"piston_cycle_seconds"`
	PistonDwell        float32 `yaml:"piston_dwell"`
	BeltCarrySpeed     float32 `yaml:"belt_carry_speed"`
	LiftMult           float32 `yaml:"lift_mult"`
}

// Config mirrors spec §6's named environment constants.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	CellSim   CellSimConfig   `yaml:"cellsim"`
	Cluster   ClusterConfig   `yaml:"cluster"`
	Structure StructureConfig `yaml:"structure"`
}

// Load parses the embedded defaults. Pass a non-nil override to merge
// host-supplied YAML on top (fields present in override replace the
// corresponding default field).
func Load(override []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse defaults")
	}
	if override != nil {
		if err := yaml.Unmarshal(override, &cfg); err != nil {
			return nil, errors.Wrap(err, "config: parse override")
		}
	}
	return &cfg, nil
}
