package schedule

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gekko3d/sandforge/grid"
)

// ChunkFunc processes one chunk's core region (and conditionally its
// halo). Implementations must confine their writes to that chunk's
// extended region; the checkerboard spacing guarantees two chunks in
// the same group never have overlapping extended regions.
type ChunkFunc func(cc grid.ChunkCoord) error

// Pool dispatches chunk work across a bounded set of goroutines,
// following the snapshot/parallel-compute/apply shape used for
// entity-chunk dispatch elsewhere in the pack: callers build any
// needed read-only snapshot before calling Run, and apply results
// (if any) after it returns, keeping the concurrent phase itself free
// of cross-goroutine aggregation.
type Pool struct {
	workers int
}

// NewPool creates a dispatch pool sized to the host's GOMAXPROCS,
// matching the teacher's particle worker-pool sizing.
func NewPool() *Pool {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return &Pool{workers: n}
}

// Run dispatches fn over every chunk in group concurrently, bounded to
// the pool's worker count, and returns the first error encountered (if
// any). A group is safe to run fully in parallel because SelectGroups
// guarantees its members' extended write regions never overlap.
func (p *Pool) Run(ctx context.Context, group []grid.ChunkCoord, fn ChunkFunc) error {
	if len(group) == 0 {
		return nil
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for _, cc := range group {
		cc := cc
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return fn(cc)
		})
	}
	return eg.Wait()
}

// RunIndependent dispatches fn over a slice of independent work items
// (e.g. belt runs) with no spatial-disjointness assumption beyond
// "the caller guarantees these do not conflict". Nothing in this
// module calls it: the belt cell-move job (structure.BeltCellMoveJob)
// processes its runs serially on the calling goroutine.
func RunIndependent[T any](ctx context.Context, p *Pool, items []T, fn func(T) error) error {
	if len(items) == 0 {
		return nil
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for _, item := range items {
		item := item
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return fn(item)
		})
	}
	return eg.Wait()
}
