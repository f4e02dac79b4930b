package orchestrator

// Clock tracks the fixed-step frame counter and elapsed time, mirroring
// the teacher's mod_time.go Time resource but driven by a fixed dt
// rather than wall-clock delta, since spec §5 requires determinism.
type Clock struct {
	Frame    uint16
	Elapsed  float64
	Dt       float64
}

func NewClock(dt float64) *Clock {
	return &Clock{Dt: dt}
}

// Advance moves the clock forward one tick, wrapping Frame
// monotonically as spec §3 describes for Cell.FrameUpdated.
func (c *Clock) Advance() {
	c.Elapsed += c.Dt
	c.Frame++
}
