// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"fmt"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.Highlighter = (*Highlighter)(nil)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "catppuccin-mocha"

// Highlighter renders source text with ANSI syntax highlighting for
// terminal display. Used for the export preview.
type Highlighter struct {
	style     *chromalib.Style
	formatter chromalib.Formatter
}

// HighlighterOption configures a Highlighter.
type HighlighterOption func(*Highlighter)

// WithStyle selects a chroma style by name. Unknown names fall back to
// the chroma default.
func WithStyle(name string) HighlighterOption {
	return func(h *Highlighter) {
		h.style = styles.Get(name)
	}
}

// NewHighlighter creates a new chroma-based highlighter.
func NewHighlighter(opts ...HighlighterOption) *Highlighter {
	h := &Highlighter{
		style:     styles.Get(DefaultStyle),
		formatter: formatters.Get("terminal16m"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.style == nil {
		h.style = styles.Fallback
	}
	return h
}

// Highlight renders source in the given language with ANSI escape
// sequences. Unknown languages pass the source through unchanged.
func (h *Highlighter) Highlight(source, language string) (string, error) {
	if source == "" {
		return "", nil
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return source, nil
	}

	// Coalesce for better performance with consecutive tokens of the same type
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("chroma: tokenise: %w", err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("chroma: format: %w", err)
	}
	return b.String(), nil
}
