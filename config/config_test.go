package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Grid.ChunkSize != 32 {
		t.Errorf("expected default chunk_size=32, got %d", cfg.Grid.ChunkSize)
	}
	if cfg.Structure.PistonCycleSeconds != 3.0 {
		t.Errorf("expected default piston_cycle_seconds=3.0, got %f", cfg.Structure.PistonCycleSeconds)
	}
}

func TestLoadOverrideMergesOverDefaults(t *testing.T) {
	override := []byte("cellsim:\n  max_velocity: 32\n")
	cfg, err := Load(override)
	if err != nil {
		t.Fatalf("Load with override failed: %v", err)
	}
	if cfg.CellSim.MaxVelocity != 32 {
		t.Errorf("expected override to raise max_velocity to 32, got %d", cfg.CellSim.MaxVelocity)
	}
	if cfg.Grid.ChunkSize != 32 {
		t.Errorf("expected untouched fields to keep their default, got chunk_size=%d", cfg.Grid.ChunkSize)
	}
}

func TestLoadRejectsMalformedOverride(t *testing.T) {
	if _, err := Load([]byte("cellsim: [this is not a map]")); err == nil {
		t.Errorf("expected malformed override YAML to fail to parse")
	}
}
