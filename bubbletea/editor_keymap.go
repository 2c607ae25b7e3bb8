package bubbletea

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the key bindings for the sequence editor.
type EditorKeyMap struct {
	// Navigation
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	SwitchPane   key.Binding
	Reveal       key.Binding

	// Selection
	ToggleCheck     key.Binding
	SelectAll       key.Binding
	SelectNone      key.Binding
	InvertSelection key.Binding
	SelectScene     key.Binding
	SelectOnly      key.Binding
	SelectRange     key.Binding

	// Collapse
	ToggleCard      key.Binding
	ToggleAllCards  key.Binding
	ToggleScene     key.Binding
	ToggleAllScenes key.Binding
	ToggleContext   key.Binding

	// Structure (disabled while linked)
	AddFrame    key.Binding
	AddScene    key.Binding
	DeleteFrame key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	MoveToStart key.Binding
	MoveToEnd   key.Binding
	ClearText   key.Binding
	ClearAll    key.Binding

	// Editing
	EditPrompt key.Binding
	EditVideo  key.Binding
	EditTags   key.Binding
	CycleShot  key.Binding

	// View toggles
	ToggleVideo key.Binding
	FlatView    key.Binding

	// Modified list
	MoveToSource    key.Binding
	MoveAllToSource key.Binding
	ClearModified   key.Binding

	// Export / session
	Preview    key.Binding
	CopyExport key.Binding
	ToggleLink key.Binding
	Quit       key.Binding
}

// DefaultEditorKeyMap returns the default vim-style key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "reveal frame"),
		),
		ToggleCheck: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "check frame"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "check all"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "check none"),
		),
		InvertSelection: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invert checks"),
		),
		SelectScene: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "check scene"),
		),
		SelectOnly: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "check only this frame"),
		),
		SelectRange: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "mark/apply range check"),
		),
		ToggleCard: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/collapse card"),
		),
		ToggleAllCards: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "toggle all cards"),
		),
		ToggleScene: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse scene"),
		),
		ToggleAllScenes: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "toggle all scenes"),
		),
		ToggleContext: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "expand context"),
		),
		AddFrame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add frame"),
		),
		AddScene: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "add scene"),
		),
		DeleteFrame: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete frame"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move frame up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move frame down"),
		),
		MoveToStart: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "move to start"),
		),
		MoveToEnd: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "move to end"),
		),
		ClearText: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "clear prompt text"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "clear all frames"),
		),
		EditPrompt: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit prompt"),
		),
		EditVideo: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit video prompt"),
		),
		EditTags: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "edit character tags"),
		),
		CycleShot: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle shot type"),
		),
		ToggleVideo: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "show video prompts"),
		),
		FlatView: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flat view"),
		),
		MoveToSource: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to source"),
		),
		MoveAllToSource: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "move all to source"),
		),
		ClearModified: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear modified"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "export preview"),
		),
		CopyExport: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy export"),
		),
		ToggleLink: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "link/unlink"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
