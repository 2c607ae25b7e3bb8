package storyseq

// ColorPair represents a foreground and background color combination.
// Colors are hex strings in "#RRGGBB" format. Empty strings indicate no
// override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of the editor.
type Styles struct {
	SceneHeader     ColorPair // scene header rows
	SceneContext    ColorPair // scene context rows
	Card            ColorPair // frame card body
	CardSelected    ColorPair // checked frame cards
	CardFocused     ColorPair // the card under the cursor
	Modified        ColorPair // modified-list rows and indicators
	ChangedText     ColorPair // word-diff changed segments
	ShotInstruction ColorPair // shot-type instruction line
	EntityTag       ColorPair // entity tag badges
	StatusBar       ColorPair // bottom status bar
	StatusBarDim    ColorPair // dimmed status bar text
}

// Theme provides styles for rendering the editor. Implementations can
// provide light/dark variants.
type Theme interface {
	Styles() Styles
}
