package chroma_test

import (
	"strings"
	"testing"

	"github.com/storyseq/storyseq"
	"github.com/storyseq/storyseq/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("implements the Highlighter interface", func(t *testing.T) {
		t.Parallel()
		var _ storyseq.Highlighter = chroma.NewHighlighter()
	})

	t.Run("highlights JSON with ANSI escapes", func(t *testing.T) {
		t.Parallel()

		h := chroma.NewHighlighter()
		out, err := h.Highlight(`{"frameNumber": 1, "prompt": "the dunes"}`, "json")
		require.NoError(t, err)
		assert.Contains(t, out, "frameNumber")
		assert.Contains(t, out, "\x1b[")
	})

	t.Run("unknown language passes source through", func(t *testing.T) {
		t.Parallel()

		h := chroma.NewHighlighter()
		out, err := h.Highlight("plain text", "no-such-language")
		require.NoError(t, err)
		assert.Equal(t, "plain text", out)
	})

	t.Run("empty source returns empty string", func(t *testing.T) {
		t.Parallel()

		h := chroma.NewHighlighter()
		out, err := h.Highlight("", "json")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("preserves line structure", func(t *testing.T) {
		t.Parallel()

		h := chroma.NewHighlighter()
		source := "{\n  \"a\": 1\n}"
		out, err := h.Highlight(source, "json")
		require.NoError(t, err)
		assert.Equal(t, strings.Count(source, "\n"), strings.Count(out, "\n"))
	})

	t.Run("unknown style falls back", func(t *testing.T) {
		t.Parallel()

		h := chroma.NewHighlighter(chroma.WithStyle("no-such-style"))
		out, err := h.Highlight(`{"a": 1}`, "json")
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}
