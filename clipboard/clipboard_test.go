package clipboard_test

import (
	"testing"

	"github.com/storyseq/storyseq/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_CopyPaste(t *testing.T) {
	t.Parallel()

	cb := clipboard.NewSystem()
	testContent := "test clipboard content from storyseq"

	// Skip if no clipboard command is available (headless CI).
	if err := cb.Copy(testContent); err != nil {
		t.Skipf("clipboard unavailable: %v", err)
	}

	out, err := cb.Paste()
	require.NoError(t, err)
	assert.Equal(t, testContent, out)
}
