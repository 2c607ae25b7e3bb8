package mock

import (
	"context"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.Regenerator = (*Regenerator)(nil)

// Regenerator is a mock implementation of storyseq.Regenerator.
type Regenerator struct {
	ExpandFn func(ctx context.Context, frameNumber int, aspect storyseq.AspectClass) error
}

func (r *Regenerator) Expand(ctx context.Context, frameNumber int, aspect storyseq.AspectClass) error {
	return r.ExpandFn(ctx, frameNumber, aspect)
}
