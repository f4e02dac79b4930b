package hashutil

import "testing"

func TestHashIsDeterministic(t *testing.T) {
	a := Hash(10, 20, 5)
	b := Hash(10, 20, 5)
	if a != b {
		t.Errorf("expected identical inputs to hash identically, got %d vs %d", a, b)
	}
}

func TestHashVariesWithFrame(t *testing.T) {
	a := Hash(10, 20, 5)
	b := Hash(10, 20, 6)
	if a == b {
		t.Errorf("expected different frames to produce different hashes")
	}
}

func TestIntnRange(t *testing.T) {
	for frame := uint16(0); frame < 50; frame++ {
		v := Intn(3, 4, frame, 7)
		if v < 0 || v >= 7 {
			t.Fatalf("Intn out of range: %d", v)
		}
	}
}

func TestIntnZeroIsZero(t *testing.T) {
	if v := Intn(1, 1, 1, 0); v != 0 {
		t.Errorf("expected Intn(n=0) to return 0, got %d", v)
	}
}

func TestSignedJitterBounds(t *testing.T) {
	for frame := uint16(0); frame < 100; frame++ {
		v := SignedJitter(int32(frame), 0, frame)
		if v < -1 || v > 1 {
			t.Fatalf("SignedJitter out of range: %d", v)
		}
	}
}

func TestBoolIsStableAcrossCalls(t *testing.T) {
	if Bool(1, 2, 3) != Bool(1, 2, 3) {
		t.Errorf("expected Bool to be pure in its inputs")
	}
}
