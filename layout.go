package storyseq

// RowKind identifies what a layout row renders.
type RowKind int

// Row kinds.
const (
	RowSceneHeader RowKind = iota
	RowSceneContext
	RowPrompt
)

// Row is one absolutely positioned entry of a computed layout.
type Row struct {
	Kind    RowKind
	Scene   int        // scene number this row belongs to
	Title   string     // scene title (header rows)
	Context string     // scene context text (context rows)
	Item    PromptItem // the frame (prompt rows)
	Top     int
	Height  int
}

// Frame returns the row's frame number, or 0 for non-prompt rows.
func (r Row) Frame() int {
	if r.Kind == RowPrompt {
		return r.Item.FrameNumber
	}
	return 0
}

// LayoutInput is everything the layout engine needs to position rows.
type LayoutInput struct {
	Items                 []PromptItem
	CollapsedScenes       []int
	ShowVideoPrompts      bool
	ShowSceneHeaders      bool // false = flat view: no headers, nothing collapsed
	SceneContexts         map[string]string
	ExpandedSceneContexts []int
}

// Layout is the positioned row list for one input. It is immutable once
// computed; any input change requires a fresh Compute.
type Layout struct {
	Rows        []Row
	TotalHeight int
	geo         Geometry
}

// ComputeLayout converts a variable-height, scene-grouped prompt list into
// absolutely positioned rows. It is pure and deterministic: identical
// inputs always produce identical layouts.
func ComputeLayout(geo Geometry, in LayoutInput) *Layout {
	l := &Layout{geo: geo}

	y := 0
	for _, scene := range Scenes(in.Items) {
		if in.ShowSceneHeaders {
			h := clampHeight(geo.SceneHeaderHeight)
			l.Rows = append(l.Rows, Row{
				Kind:   RowSceneHeader,
				Scene:  scene.Scene,
				Title:  scene.Title,
				Top:    y,
				Height: h,
			})
			y += h
		}

		// Hidden headers behave as "never collapsed".
		collapsed := in.ShowSceneHeaders && ContainsInt(in.CollapsedScenes, scene.Scene)
		if collapsed {
			continue
		}

		ctxHeight := geo.SceneContextCollapsedHeight
		if ContainsInt(in.ExpandedSceneContexts, scene.Scene) {
			ctxHeight = geo.SceneContextHeight
		}
		h := clampHeight(ctxHeight + geo.SceneContextMargin)
		l.Rows = append(l.Rows, Row{
			Kind:    RowSceneContext,
			Scene:   scene.Scene,
			Context: in.SceneContexts[sceneKey(scene.Scene)],
			Top:     y,
			Height:  h,
		})
		y += h

		for _, item := range scene.Prompts {
			h := promptRowHeight(geo, item, in.ShowVideoPrompts)
			l.Rows = append(l.Rows, Row{
				Kind:   RowPrompt,
				Scene:  scene.Scene,
				Item:   item,
				Top:    y,
				Height: h,
			})
			y += h
		}
	}

	l.TotalHeight = y
	return l
}

// promptRowHeight returns the height of one frame card row including its
// bottom margin.
func promptRowHeight(geo Geometry, item PromptItem, showVideo bool) int {
	var h int
	if item.IsCollapsed {
		h = geo.CardCollapsedHeight
	} else {
		if showVideo {
			h = geo.CardExpandedHeight
		} else {
			h = geo.CardExpandedHeightNoVideo
		}
		if item.ShotType.Instruction() != "" {
			h += geo.ShotInstructionHeight
		}
	}
	return clampHeight(h + geo.RowMargin)
}

// Visible returns the rows whose [Top, Top+Height) interval intersects the
// buffered scroll window [scrollTop-Buffer, scrollTop+viewportHeight+Buffer).
// A non-positive viewportHeight falls back to the geometry default.
func (l *Layout) Visible(scrollTop, viewportHeight int) []Row {
	if viewportHeight <= 0 {
		viewportHeight = l.geo.DefaultViewportHeight
	}
	lo := scrollTop - l.geo.Buffer
	hi := scrollTop + viewportHeight + l.geo.Buffer

	var out []Row
	for _, r := range l.Rows {
		if r.Top+r.Height > lo && r.Top < hi {
			out = append(out, r)
		}
	}
	return out
}

// FrameOffset returns the top offset of the given frame's row. The second
// result is false when the frame is absent or its row is not laid out
// (collapsed scene).
func (l *Layout) FrameOffset(frame int) (int, bool) {
	for _, r := range l.Rows {
		if r.Kind == RowPrompt && r.Item.FrameNumber == frame {
			return r.Top, true
		}
	}
	return 0, false
}

// SceneOffset returns the top offset of the given scene's header row, or
// false when headers are hidden or the scene is absent.
func (l *Layout) SceneOffset(scene int) (int, bool) {
	for _, r := range l.Rows {
		if r.Kind == RowSceneHeader && r.Scene == scene {
			return r.Top, true
		}
	}
	return 0, false
}

// clampHeight guards against a negative height corrupting scroll math. A
// zero-height row still occupies a position but contributes nothing.
func clampHeight(h int) int {
	if h < 0 {
		return 0
	}
	return h
}
