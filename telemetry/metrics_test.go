package telemetry

import "testing"

func TestNewMetricsCollectorsNonNil(t *testing.T) {
	m := NewMetrics("sandforge_test")
	cols := m.Collectors()
	if len(cols) != 6 {
		t.Fatalf("expected 6 collectors, got %d", len(cols))
	}
	for i, c := range cols {
		if c == nil {
			t.Errorf("collector at index %d is nil", i)
		}
	}
}

func TestMetricsCountersAccumulate(t *testing.T) {
	m := NewMetrics("sandforge_test2")
	m.DisplacementLost.Add(3)
	m.PistonStalls.Inc()
	m.CellsSimulated.Add(10)
	// No panic and no error is the meaningful assertion here; the
	// prometheus client doesn't expose simple getters on these types
	// without pulling in the full registry/gather path.
}
