package mock

import "github.com/storyseq/storyseq"

// Compile-time interface verification.
var _ storyseq.WordDiffer = (*WordDiffer)(nil)

// WordDiffer is a mock implementation of storyseq.WordDiffer.
type WordDiffer struct {
	DiffFn func(old, new string) (oldSegs, newSegs []storyseq.Segment)
}

func (d *WordDiffer) Diff(old, new string) (oldSegs, newSegs []storyseq.Segment) {
	return d.DiffFn(old, new)
}
