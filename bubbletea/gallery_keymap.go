package bubbletea

import "github.com/charmbracelet/bubbles/key"

// GalleryKeyMap defines the key bindings for the output gallery.
type GalleryKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	ToggleCheck     key.Binding
	SelectLandscape key.Binding
	SelectPortrait  key.Binding
	SelectSquare    key.Binding
	SelectNone      key.Binding

	ToggleScene     key.Binding
	ToggleAllScenes key.Binding

	ExpandFrame key.Binding
	ZipExport   key.Binding
	Quit        key.Binding
}

// DefaultGalleryKeyMap returns the default gallery key bindings.
func DefaultGalleryKeyMap() GalleryKeyMap {
	return GalleryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		ToggleCheck: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "check image"),
		),
		SelectLandscape: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "check landscape"),
		),
		SelectPortrait: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "check portrait"),
		),
		SelectSquare: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "check square"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "check none"),
		),
		ToggleScene: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse scene"),
		),
		ToggleAllScenes: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "toggle all scenes"),
		),
		ExpandFrame: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "expand image"),
		),
		ZipExport: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zip export"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
