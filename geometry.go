package storyseq

// Geometry holds the fixed row heights used by the layout engine. Heights
// are in abstract vertical units: pixels for the canonical geometry,
// terminal rows for the TUI geometry. A Geometry is pure data.
type Geometry struct {
	SceneHeaderHeight           int
	SceneContextHeight          int // context editor open
	SceneContextCollapsedHeight int // context editor closed
	SceneContextMargin          int // added below every context row
	CardCollapsedHeight         int
	CardExpandedHeight          int // video prompt field shown
	CardExpandedHeightNoVideo   int
	ShotInstructionHeight       int // added when the shot type has an instruction
	RowMargin                   int // added below every prompt row
	Buffer                      int // over-scan margin around the visible window
	DefaultViewportHeight       int // fallback when the container size is unknown
}

// DefaultGeometry returns the canonical pixel geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		SceneHeaderHeight:           48,
		SceneContextHeight:          140,
		SceneContextCollapsedHeight: 36,
		SceneContextMargin:          8,
		CardCollapsedHeight:         56,
		CardExpandedHeight:          420,
		CardExpandedHeightNoVideo:   320,
		ShotInstructionHeight:       30,
		RowMargin:                   16,
		Buffer:                      800,
		DefaultViewportHeight:       600,
	}
}

// TerminalGeometry returns a geometry expressed in terminal rows, used by
// the TUI adapter.
func TerminalGeometry() Geometry {
	return Geometry{
		SceneHeaderHeight:           1,
		SceneContextHeight:          4,
		SceneContextCollapsedHeight: 1,
		SceneContextMargin:          0,
		CardCollapsedHeight:         1,
		CardExpandedHeight:          8,
		CardExpandedHeightNoVideo:   6,
		ShotInstructionHeight:       1,
		RowMargin:                   1,
		Buffer:                      16,
		DefaultViewportHeight:       40,
	}
}

// shotInstructions maps each shot type to the instruction line shown on an
// expanded card. Unknown shot types have no instruction and render nothing.
var shotInstructions = map[ShotType]string{
	ShotWide:         "Wide shot: frame the full scene, subjects small in the environment.",
	ShotMedium:       "Medium shot: frame subjects from the waist up.",
	ShotCloseUp:      "Close-up: fill the frame with the subject's face.",
	ShotExtremeClose: "Extreme close-up: isolate a single detail (eyes, hands, object).",
	ShotLong:         "Long shot: full body visible with surrounding context.",
}

// Instruction returns the instruction text for the shot type, or empty if
// it has none.
func (t ShotType) Instruction() string {
	return shotInstructions[t]
}

// Valid reports whether t is one of the known shot types.
func (t ShotType) Valid() bool {
	switch t {
	case ShotWide, ShotMedium, ShotCloseUp, ShotExtremeClose, ShotLong:
		return true
	}
	return false
}
