package mock

import "github.com/storyseq/storyseq"

// Compile-time interface verification.
var _ storyseq.Highlighter = (*Highlighter)(nil)

// Highlighter is a mock implementation of storyseq.Highlighter.
type Highlighter struct {
	HighlightFn func(source, language string) (string, error)
}

func (h *Highlighter) Highlight(source, language string) (string, error) {
	return h.HighlightFn(source, language)
}
