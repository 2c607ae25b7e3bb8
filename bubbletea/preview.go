package bubbletea

import (
	"encoding/json"
	"fmt"

	"github.com/storyseq/storyseq"
)

// exportJSON renders the canonical export document as indented JSON,
// syntax-highlighted when a highlighter is available.
func exportJSON(seq *storyseq.Sequence, highlighter storyseq.Highlighter) (string, error) {
	doc := storyseq.BuildExport("", seq)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export document: %w", err)
	}
	if highlighter == nil {
		return string(data), nil
	}
	highlighted, err := highlighter.Highlight(string(data), "json")
	if err != nil {
		// Highlighting is cosmetic; fall back to plain JSON.
		return string(data), nil
	}
	return highlighted, nil
}
