package mock

import (
	"context"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of storyseq.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, session *storyseq.Session) error
}

func (v *Viewer) View(ctx context.Context, session *storyseq.Session) error {
	return v.ViewFn(ctx, session)
}
