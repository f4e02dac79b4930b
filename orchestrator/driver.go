package orchestrator

import (
	"context"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

// TickFunc is one fixed-step advance of the core, invoked once per
// driver tick. Returning an error stops the driver.
type TickFunc func(dt float64) error

// Driver runs TickFunc at a fixed interval until its context is
// cancelled, using channerics' context-cancellable ticker channel —
// the same primitive the pack's dashboard client uses to drive its
// periodic send loop.
type Driver struct {
	Interval time.Duration
	Logger   Logger
}

func NewDriver(interval time.Duration, logger Logger) *Driver {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Driver{Interval: interval, Logger: logger}
}

// Run blocks, calling fn once per tick, until ctx is cancelled or fn
// returns an error.
func (d *Driver) Run(ctx context.Context, fn TickFunc) error {
	dt := d.Interval.Seconds()
	for range channerics.NewTicker(ctx.Done(), d.Interval) {
		if err := fn(dt); err != nil {
			d.Logger.Errorf("tick failed: %v", err)
			return err
		}
	}
	return ctx.Err()
}
