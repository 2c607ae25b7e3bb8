// Package mock provides test doubles for storyseq interfaces.
package mock

import (
	"context"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.Transformer = (*Transformer)(nil)

// Transformer is a mock implementation of storyseq.Transformer.
type Transformer struct {
	TransformFn func(ctx context.Context, req storyseq.TransformRequest) (*storyseq.TransformResult, error)
}

func (t *Transformer) Transform(ctx context.Context, req storyseq.TransformRequest) (*storyseq.TransformResult, error) {
	return t.TransformFn(ctx, req)
}
