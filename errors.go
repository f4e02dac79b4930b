package sandforge

import "github.com/pkg/errors"

// Error taxonomy (spec §7). World.CreateCluster wraps
// ErrClusterLimitExceeded; World.SetCell/GetCell/MarkChunkDirtyAt
// return errors wrapping grid.ErrOutOfBounds, and the Place* methods
// return structure.ErrInvalidPlacement, so errors.Is against
// ErrOutOfBounds or ErrInvalidPlacement here does not match them.
// CreateWorld panics when width or height is not a positive multiple
// of grid.ChunkSize (see grid.New).
var (
	ErrOutOfBounds          = errors.New("sandforge: out of bounds")
	ErrInvalidPlacement     = errors.New("sandforge: invalid placement")
	ErrClusterLimitExceeded = errors.New("sandforge: cluster limit exceeded")
)
