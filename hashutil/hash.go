// Package hashutil supplies the deterministic position+frame hash that
// the cell simulator uses for every tie-break, so that simulation
// stays reproducible for fixed inputs (spec §4.2, §5 "Determinism").
package hashutil

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Mixing primes for the position+frame hash, chosen the way the spec
// names them (P1, P2, P3) — large odd constants to spread bits before
// the bytes reach xxhash.
const (
	p1 uint64 = 0x9E3779B97F4A7C15
	p2 uint64 = 0xC2B2AE3D27D4EB4F
	p3 uint64 = 0x165667B19E3779F9
)

// Mix combines a cell position and the current tick into a single
// uint64 ready for hashing. Matches spec's `h = mix(x*P1 + y*P2 + frame*P3)`.
func Mix(x, y int32, frame uint16) uint64 {
	return uint64(x)*p1 + uint64(y)*p2 + uint64(frame)*p3
}

// Hash produces a well-distributed 64-bit value for (x, y, frame),
// used for all per-cell random tie-breaking (diagonal fallback order,
// spread direction parity, free-fall vx seeding).
func Hash(x, y int32, frame uint16) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], Mix(x, y, frame))
	return xxhash.Sum64(buf[:])
}

// Bool returns a deterministic boolean derived from (x, y, frame),
// e.g. to pick left-vs-right diagonal preference.
func Bool(x, y int32, frame uint16) bool {
	return Hash(x, y, frame)&1 == 1
}

// Intn returns a deterministic value in [0, n) derived from (x, y, frame).
func Intn(x, y int32, frame uint16, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Hash(x, y, frame) % uint64(n))
}

// SignedJitter returns a deterministic value in {-1, 0, +1}.
func SignedJitter(x, y int32, frame uint16) int {
	return Intn(x, y, frame, 3) - 1
}
