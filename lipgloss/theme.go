// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/storyseq/storyseq"

// Compile-time interface verification.
var _ storyseq.Theme = (*Theme)(nil)

// Theme implements storyseq.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles storyseq.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() storyseq.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: storyseq.Styles{
			SceneHeader: storyseq.ColorPair{
				Foreground: "#cdd6f4", // Text
				Background: "#313244", // Dark surface
			},
			SceneContext: storyseq.ColorPair{
				Foreground: "#a6adc8", // Subtext
			},
			Card: storyseq.ColorPair{
				Foreground: "#cdd6f4", // Text
			},
			CardSelected: storyseq.ColorPair{
				Foreground: "#a6e3a1", // Green
			},
			CardFocused: storyseq.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#89b4fa", // Blue
			},
			Modified: storyseq.ColorPair{
				Foreground: "#f9e2af", // Yellow
			},
			ChangedText: storyseq.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f9e2af", // Yellow highlight
			},
			ShotInstruction: storyseq.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			EntityTag: storyseq.ColorPair{
				Foreground: "#cba6f7", // Mauve
			},
			StatusBar: storyseq.ColorPair{
				Foreground: "#cdd6f4",
				Background: "#313244",
			},
			StatusBarDim: storyseq.ColorPair{
				Foreground: "#6c7086",
				Background: "#313244",
			},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: storyseq.Styles{
			SceneHeader: storyseq.ColorPair{
				Foreground: "#4c4f69", // Text
				Background: "#e6e9ef", // Light surface
			},
			SceneContext: storyseq.ColorPair{
				Foreground: "#6c6f85", // Subtext
			},
			Card: storyseq.ColorPair{
				Foreground: "#4c4f69", // Text
			},
			CardSelected: storyseq.ColorPair{
				Foreground: "#40a02b", // Green
			},
			CardFocused: storyseq.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#1e66f5", // Blue
			},
			Modified: storyseq.ColorPair{
				Foreground: "#df8e1d", // Yellow
			},
			ChangedText: storyseq.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#df8e1d", // Yellow highlight
			},
			ShotInstruction: storyseq.ColorPair{
				Foreground: "#9ca0b0", // Muted gray
			},
			EntityTag: storyseq.ColorPair{
				Foreground: "#8839ef", // Mauve
			},
			StatusBar: storyseq.ColorPair{
				Foreground: "#4c4f69",
				Background: "#e6e9ef",
			},
			StatusBarDim: storyseq.ColorPair{
				Foreground: "#9ca0b0",
				Background: "#e6e9ef",
			},
		},
	}
}
