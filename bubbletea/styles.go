package bubbletea

import "github.com/storyseq/storyseq"

// defaultStyles returns the styles used when no theme is provided
// (Catppuccin Mocha).
func defaultStyles() storyseq.Styles {
	return storyseq.Styles{
		SceneHeader:     storyseq.ColorPair{Foreground: "#cdd6f4", Background: "#313244"},
		SceneContext:    storyseq.ColorPair{Foreground: "#9399b2"},
		Card:            storyseq.ColorPair{Foreground: "#cdd6f4"},
		CardSelected:    storyseq.ColorPair{Foreground: "#cdd6f4", Background: "#45475a"},
		CardFocused:     storyseq.ColorPair{Foreground: "#1e1e2e", Background: "#89b4fa"},
		Modified:        storyseq.ColorPair{Foreground: "#f9e2af"},
		ChangedText:     storyseq.ColorPair{Foreground: "#1e1e2e", Background: "#f9e2af"},
		ShotInstruction: storyseq.ColorPair{Foreground: "#6c7086"},
		EntityTag:       storyseq.ColorPair{Foreground: "#94e2d5"},
		StatusBar:       storyseq.ColorPair{Foreground: "#cdd6f4", Background: "#313244"},
		StatusBarDim:    storyseq.ColorPair{Foreground: "#6c7086", Background: "#313244"},
	}
}
