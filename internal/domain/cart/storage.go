package cart

import "context"

// Storage is the persisted slot a cart survives restarts in. The slot
// is exclusively owned by the cart service; no other component reads
// or writes it directly.
//
// Load returns (nil, nil) when nothing has been persisted yet. A
// malformed persisted payload is reported as an error; callers degrade
// to an empty cart rather than failing.
type Storage interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}
