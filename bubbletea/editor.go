// Package bubbletea provides the terminal UI for editing prompt sequences
// using the Bubble Tea framework.
package bubbletea

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/storyseq/storyseq"
)

// noticeTimeout is how long a transient notice stays in the status bar.
const noticeTimeout = 3 * time.Second

// pane identifies which list has focus.
type pane int

const (
	paneSource pane = iota
	paneModified
)

// ReconcileMsg delivers an upstream payload to a running editor. It is
// ignored while the user is typing or a transform is in flight.
type ReconcileMsg struct {
	Payload []byte
}

// noticeExpiredMsg clears a transient notice.
type noticeExpiredMsg struct {
	seq int
}

// shotCycle is the order CycleShot steps through.
var shotCycle = []storyseq.ShotType{
	storyseq.ShotWide,
	storyseq.ShotMedium,
	storyseq.ShotCloseUp,
	storyseq.ShotExtremeClose,
	storyseq.ShotLong,
}

// EditorModel is the Bubble Tea model for the sequence editor. All content
// mutations funnel through the session so every commit reads the latest
// snapshot; the model itself only holds view state.
type EditorModel struct {
	session *storyseq.Session
	geo     storyseq.Geometry

	keymap      EditorKeyMap
	styles      storyseq.Styles
	renderer    *lipgloss.Renderer
	wordDiffer  storyseq.WordDiffer
	highlighter storyseq.Highlighter
	clipboard   storyseq.Clipboard
	notifier    storyseq.Notifier

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	pane        pane
	srcCursor   int // frame number under the cursor, source pane
	modCursor   int // frame number under the cursor, modified pane
	showVideo   bool
	flatView    bool
	pendingKey  string
	rangeAnchor int // first endpoint of an in-progress range check, 0 when unset

	editor cardEditor
	tags   tagEditor

	showPreview bool
	notice      string
	noticeSeq   int
}

// EditorOption configures an EditorModel.
type EditorOption func(*editorConfig)

type editorConfig struct {
	renderer    *lipgloss.Renderer
	theme       storyseq.Theme
	wordDiffer  storyseq.WordDiffer
	highlighter storyseq.Highlighter
	clipboard   storyseq.Clipboard
	notifier    storyseq.Notifier
	keymap      *EditorKeyMap
	showVideo   bool
}

// WithEditorRenderer sets a custom lipgloss renderer for the model.
func WithEditorRenderer(r *lipgloss.Renderer) EditorOption {
	return func(cfg *editorConfig) {
		cfg.renderer = r
	}
}

// WithEditorTheme sets the theme for the model.
func WithEditorTheme(t storyseq.Theme) EditorOption {
	return func(cfg *editorConfig) {
		cfg.theme = t
	}
}

// WithEditorWordDiffer sets the differ used to highlight modified prompts.
func WithEditorWordDiffer(d storyseq.WordDiffer) EditorOption {
	return func(cfg *editorConfig) {
		cfg.wordDiffer = d
	}
}

// WithEditorHighlighter sets the syntax highlighter for the export preview.
func WithEditorHighlighter(h storyseq.Highlighter) EditorOption {
	return func(cfg *editorConfig) {
		cfg.highlighter = h
	}
}

// WithEditorClipboard sets the clipboard used by the copy-export action.
func WithEditorClipboard(c storyseq.Clipboard) EditorOption {
	return func(cfg *editorConfig) {
		cfg.clipboard = c
	}
}

// WithEditorNotifier mirrors transient notices to an external notifier,
// e.g. a desktop toast bridge.
func WithEditorNotifier(n storyseq.Notifier) EditorOption {
	return func(cfg *editorConfig) {
		cfg.notifier = n
	}
}

// WithEditorKeyMap replaces the default key bindings.
func WithEditorKeyMap(km EditorKeyMap) EditorOption {
	return func(cfg *editorConfig) {
		cfg.keymap = &km
	}
}

// WithShowVideoPrompts starts the editor with video prompt fields visible.
func WithShowVideoPrompts() EditorOption {
	return func(cfg *editorConfig) {
		cfg.showVideo = true
	}
}

// NewEditorModel creates an editor over the given session.
func NewEditorModel(session *storyseq.Session, opts ...EditorOption) EditorModel {
	cfg := &editorConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}
	keymap := DefaultEditorKeyMap()
	if cfg.keymap != nil {
		keymap = *cfg.keymap
	}

	m := EditorModel{
		session:     session,
		geo:         storyseq.TerminalGeometry(),
		keymap:      keymap,
		styles:      styles,
		renderer:    cfg.renderer,
		wordDiffer:  cfg.wordDiffer,
		highlighter: cfg.highlighter,
		clipboard:   cfg.clipboard,
		notifier:    cfg.notifier,
		showVideo:   cfg.showVideo,
		editor:      newCardEditor(),
	}
	if frames := storyseq.FrameNumbers(session.Snapshot().SourcePrompts); len(frames) > 0 {
		m.srcCursor = frames[0]
	}
	return m
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		statusBarHeight := 1
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
		m.refresh()
		return m, nil

	case flushEditMsg:
		if m.editor.active && !m.editor.stale(msg) {
			m.flushEdit()
			m.refresh()
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case ReconcileMsg:
		// Typing suppresses resync so a mid-edit value never gets clobbered.
		if m.editor.active {
			return m, nil
		}
		if m.session.Reconcile(msg.Payload) {
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m EditorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor.active {
		if msg.Type == tea.KeyEsc {
			m.flushEdit()
			m.editor.close()
			m.refresh()
			return m, nil
		}
		cmd := m.editor.update(msg)
		return m, cmd
	}

	if m.tags.active {
		return m.updateTagKey(msg)
	}

	// Multi-key gg sequence.
	if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = ""
		m.cursorToEdge(true)
		return m, nil
	}
	if key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = "g"
		return m, nil
	}
	m.pendingKey = ""

	if m.showPreview {
		switch {
		case key.Matches(msg, m.keymap.Preview), key.Matches(msg, m.keymap.Quit):
			m.showPreview = false
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.GotoBottom):
		m.cursorToEdge(false)
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keymap.SwitchPane):
		m.switchPane()
	case key.Matches(msg, m.keymap.Reveal):
		m.revealCursor()

	case key.Matches(msg, m.keymap.ToggleCheck):
		return m.sourceOnly(func(m *EditorModel) {
			frame := m.srcCursor
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = storyseq.ToggleInt(seq.CheckedFrameNumbers, frame)
				return seq
			})
		})
	case key.Matches(msg, m.keymap.SelectAll):
		return m.sourceOnly(func(m *EditorModel) {
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = storyseq.SelectAll(seq.SourcePrompts)
				return seq
			})
		})
	case key.Matches(msg, m.keymap.SelectNone):
		return m.sourceOnly(func(m *EditorModel) {
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = nil
				return seq
			})
		})
	case key.Matches(msg, m.keymap.InvertSelection):
		return m.sourceOnly(func(m *EditorModel) {
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = storyseq.InvertSelection(seq.CheckedFrameNumbers, seq.SourcePrompts)
				return seq
			})
		})
	case key.Matches(msg, m.keymap.SelectScene):
		return m.sourceOnly(func(m *EditorModel) {
			scene := m.cursorScene()
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = storyseq.SceneFrameNumbers(seq.SourcePrompts, scene)
				// Focus the view on the selected scene.
				seq.CollapsedScenes = storyseq.CollapseOtherScenes(seq.SourcePrompts, scene)
				return seq
			})
		})
	case key.Matches(msg, m.keymap.SelectOnly):
		return m.sourceOnly(func(m *EditorModel) {
			frame := m.srcCursor
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = storyseq.SelectOnly(frame)
				return seq
			})
		})
	case key.Matches(msg, m.keymap.SelectRange):
		return m.sourceOnly(func(m *EditorModel) {
			if m.rangeAnchor == 0 {
				m.rangeAnchor = m.srcCursor
				m.notice = fmt.Sprintf("range from frame %d", m.rangeAnchor)
				return
			}
			start, end := m.rangeAnchor, m.srcCursor
			if start > end {
				start, end = end, start
			}
			m.rangeAnchor = 0
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.CheckedFrameNumbers = storyseq.SelectRange(seq.SourcePrompts, start, end)
				return seq
			})
		})

	case key.Matches(msg, m.keymap.ToggleCard):
		m.toggleCard()
	case key.Matches(msg, m.keymap.ToggleAllCards):
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			if m.pane == paneModified {
				seq.ModifiedPrompts = storyseq.ToggleAllCards(seq.ModifiedPrompts)
			} else {
				seq.SourcePrompts = storyseq.ToggleAllCards(seq.SourcePrompts)
			}
			return seq
		})
	case key.Matches(msg, m.keymap.ToggleScene):
		m.toggleScene()
	case key.Matches(msg, m.keymap.ToggleAllScenes):
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			if m.pane == paneModified {
				seq.CollapsedModifiedScenes = storyseq.ToggleAllScenes(seq.CollapsedModifiedScenes, seq.ModifiedPrompts)
			} else {
				seq.CollapsedScenes = storyseq.ToggleAllScenes(seq.CollapsedScenes, seq.SourcePrompts)
			}
			return seq
		})
	case key.Matches(msg, m.keymap.ToggleContext):
		scene := m.cursorScene()
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			seq.ExpandedSceneContexts = storyseq.ToggleInt(seq.ExpandedSceneContexts, scene)
			return seq
		})

	case key.Matches(msg, m.keymap.AddFrame):
		return m.structural(func(m *EditorModel) {
			after := m.srcCursor
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.SourcePrompts = storyseq.AddFrameAfter(seq.SourcePrompts, after)
				return seq
			})
			m.cursorToNewFrame(after)
		})
	case key.Matches(msg, m.keymap.AddScene):
		return m.structural(func(m *EditorModel) {
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.SourcePrompts = storyseq.AddScene(seq.SourcePrompts)
				return seq
			})
			m.cursorToEdge(false)
		})
	case key.Matches(msg, m.keymap.DeleteFrame):
		return m.structural(func(m *EditorModel) {
			frame := m.srcCursor
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.SourcePrompts = storyseq.DeleteFrame(seq.SourcePrompts, frame)
				return seq
			})
			m.clampCursor()
		})
	case key.Matches(msg, m.keymap.MoveUp):
		return m.moveFrame(storyseq.MoveUp)
	case key.Matches(msg, m.keymap.MoveDown):
		return m.moveFrame(storyseq.MoveDown)
	case key.Matches(msg, m.keymap.MoveToStart):
		return m.moveFrame(storyseq.MoveToStart)
	case key.Matches(msg, m.keymap.MoveToEnd):
		return m.moveFrame(storyseq.MoveToEnd)
	case key.Matches(msg, m.keymap.ClearText):
		return m.structural(func(m *EditorModel) {
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				seq.SourcePrompts = storyseq.ClearText(seq.SourcePrompts)
				return seq
			})
		})
	case key.Matches(msg, m.keymap.ClearAll):
		return m.structural(func(m *EditorModel) {
			m.apply(storyseq.ClearAll)
			m.srcCursor = 0
			m.modCursor = 0
			m.pane = paneSource
		})

	case key.Matches(msg, m.keymap.EditPrompt):
		return m.editCursor(fieldPrompt)
	case key.Matches(msg, m.keymap.EditVideo):
		return m.editCursor(fieldVideo)
	case key.Matches(msg, m.keymap.EditTags):
		return m.sourceOnly(func(m *EditorModel) {
			if storyseq.FrameByNumber(m.session.Snapshot().SourcePrompts, m.srcCursor) < 0 {
				return
			}
			m.tags = tagEditor{active: true, frame: m.srcCursor}
		})
	case key.Matches(msg, m.keymap.CycleShot):
		return m.sourceOnly(func(m *EditorModel) {
			frame := m.srcCursor
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				idx := storyseq.FrameByNumber(seq.SourcePrompts, frame)
				if idx < 0 {
					return nil
				}
				seq.SourcePrompts[idx] = storyseq.SetShotType(seq.SourcePrompts[idx], nextShot(seq.SourcePrompts[idx].ShotType))
				return seq
			})
		})

	case key.Matches(msg, m.keymap.ToggleVideo):
		m.showVideo = !m.showVideo
		m.refresh()
	case key.Matches(msg, m.keymap.FlatView):
		m.flatView = !m.flatView
		m.refresh()

	case key.Matches(msg, m.keymap.MoveToSource):
		if m.pane == paneModified {
			frame := m.modCursor
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				return storyseq.MoveToSource(seq, frame)
			})
			m.clampCursor()
		}
	case key.Matches(msg, m.keymap.MoveAllToSource):
		if m.pane == paneModified {
			m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
				return storyseq.MoveAllToSource(seq)
			})
			m.pane = paneSource
		}
	case key.Matches(msg, m.keymap.ClearModified):
		if m.pane == paneModified {
			m.apply(storyseq.ClearModified)
			m.pane = paneSource
		}

	case key.Matches(msg, m.keymap.Preview):
		m.openPreview()
	case key.Matches(msg, m.keymap.CopyExport):
		return m.copyExport()
	case key.Matches(msg, m.keymap.ToggleLink):
		m.session.SetLinked(!m.session.Linked())
		m.refresh()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m EditorModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.editor.active {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(), m.editor.area.View(), m.statusBarView())
	}
	if m.tags.active {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(), m.tagBarView(), m.statusBarView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// apply commits a content update through the session and re-renders.
func (m *EditorModel) apply(update func(*storyseq.Sequence) *storyseq.Sequence) {
	m.session.Apply(update)
	m.refresh()
}

// sourceOnly runs fn on the source pane and notifies otherwise.
func (m EditorModel) sourceOnly(fn func(*EditorModel)) (tea.Model, tea.Cmd) {
	if m.pane != paneSource {
		return m, m.notify("modified list is read-only")
	}
	fn(&m)
	return m, nil
}

// structural runs a structural edit unless the session is linked.
func (m EditorModel) structural(fn func(*EditorModel)) (tea.Model, tea.Cmd) {
	if m.pane != paneSource {
		return m, m.notify("modified list is read-only")
	}
	if m.session.Linked() {
		return m, m.notify("unlink (L) to edit structure")
	}
	fn(&m)
	return m, nil
}

func (m EditorModel) moveFrame(dir storyseq.MoveDirection) (tea.Model, tea.Cmd) {
	return m.structural(func(m *EditorModel) {
		frame := m.srcCursor
		var moved int
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			idx := storyseq.FrameByNumber(seq.SourcePrompts, frame)
			if idx < 0 {
				return nil
			}
			seq.SourcePrompts = storyseq.MoveFrame(seq.SourcePrompts, idx, dir)
			switch dir {
			case storyseq.MoveUp:
				moved = frame - 1
			case storyseq.MoveDown:
				moved = frame + 1
			case storyseq.MoveToStart:
				moved = 1
			case storyseq.MoveToEnd:
				moved = len(seq.SourcePrompts)
			}
			return seq
		})
		if moved > 0 {
			m.srcCursor = moved
			m.clampCursor()
		}
	})
}

func (m EditorModel) editCursor(field editField) (tea.Model, tea.Cmd) {
	if m.pane != paneSource {
		return m, m.notify("modified list is read-only")
	}
	seq := m.session.Snapshot()
	idx := storyseq.FrameByNumber(seq.SourcePrompts, m.srcCursor)
	if idx < 0 {
		return m, nil
	}
	text := seq.SourcePrompts[idx].Prompt
	if field == fieldVideo {
		text = seq.SourcePrompts[idx].VideoPrompt
	}
	cmd := m.editor.open(m.srcCursor, field, text, m.width)
	return m, cmd
}

// flushEdit commits pending card text through the session against the
// latest snapshot.
func (m *EditorModel) flushEdit() {
	if !m.editor.dirty {
		return
	}
	frame := m.editor.frame
	field := m.editor.field
	text := m.editor.area.Value()
	m.session.Apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		idx := storyseq.FrameByNumber(seq.SourcePrompts, frame)
		if idx < 0 {
			return nil
		}
		if field == fieldVideo {
			seq.SourcePrompts[idx] = storyseq.SetVideoPrompt(seq.SourcePrompts[idx], text)
		} else {
			seq.SourcePrompts[idx] = storyseq.SetPromptText(seq.SourcePrompts[idx], text)
		}
		return seq
	})
	m.editor.dirty = false
}

// updateTagKey handles keys while the tag mini editor owns the keyboard.
// Every mutation goes through card-level operations so the prompt text and
// the characters list stay consistent.
func (m EditorModel) updateTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.tagList())
	switch s := msg.String(); {
	case s == "esc" || s == "T" || s == "q":
		m.tags = tagEditor{}
	case s == "left" || s == "h":
		m.tags.pos--
		m.tags.digits = ""
	case s == "right" || s == "l":
		m.tags.pos++
		m.tags.digits = ""
	case s == "+" || s == "a":
		m.applyTag(storyseq.AddCharacterSlot)
		m.tags.pos = count // the appended slot
	case s == "d" || s == "backspace":
		pos := m.tags.pos
		m.applyTag(func(item storyseq.PromptItem) storyseq.PromptItem {
			return storyseq.RemoveCharacter(item, pos)
		})
	case s == "i":
		pos := m.tags.pos
		m.applyTag(func(item storyseq.PromptItem) storyseq.PromptItem {
			return storyseq.InsertCharacterRef(item, pos)
		})
	case s == "enter":
		if n, err := strconv.Atoi(m.tags.digits); err == nil {
			pos := m.tags.pos
			m.applyTag(func(item storyseq.PromptItem) storyseq.PromptItem {
				return storyseq.RenumberCharacter(item, pos, n)
			})
		}
		m.tags.digits = ""
	case len(s) == 1 && s[0] >= '0' && s[0] <= '9':
		m.tags.digits += s
	}
	m.tags.clampPos(len(m.tagList()))
	m.refresh()
	return m, nil
}

// applyTag commits a card-level tag operation against the tag editor's frame.
func (m *EditorModel) applyTag(op func(storyseq.PromptItem) storyseq.PromptItem) {
	frame := m.tags.frame
	m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		idx := storyseq.FrameByNumber(seq.SourcePrompts, frame)
		if idx < 0 {
			return nil
		}
		seq.SourcePrompts[idx] = op(seq.SourcePrompts[idx])
		return seq
	})
}

// tagList returns the tag editor frame's characters from the latest snapshot.
func (m *EditorModel) tagList() []string {
	seq := m.session.Snapshot()
	if idx := storyseq.FrameByNumber(seq.SourcePrompts, m.tags.frame); idx >= 0 {
		return seq.SourcePrompts[idx].Characters
	}
	return nil
}

// tagBarView renders the tag mini editor line shown above the status bar.
func (m EditorModel) tagBarView() string {
	tagStyle := styleFromColorPair(m.styles.EntityTag, m.renderer)
	dimStyle := styleFromColorPair(m.styles.StatusBarDim, m.renderer)

	seq := m.session.Snapshot()
	tags := m.tagList()
	parts := make([]string, 0, len(tags))
	for i, tag := range tags {
		label := tag
		if name := storyseq.CharacterName(seq.UsedCharacters, tag); name != "" {
			label += ":" + name
		}
		if i == m.tags.pos {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	line := "tags: " + strings.Join(parts, "  ")
	if len(tags) == 0 {
		line = "tags: (none)"
	}
	if m.tags.digits != "" {
		line += "  #" + m.tags.digits
	}
	return tagStyle.Render(line) +
		dimStyle.Render("  h/l:select  +:add  d:remove  i:insert ref  <n>enter:renumber  esc:done")
}

func (m *EditorModel) toggleCard() {
	frame := m.cursor()
	m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		if m.pane == paneModified {
			seq.ModifiedPrompts = storyseq.ToggleCard(seq.ModifiedPrompts, frame)
		} else {
			seq.SourcePrompts = storyseq.ToggleCard(seq.SourcePrompts, frame)
		}
		return seq
	})
}

func (m *EditorModel) toggleScene() {
	scene := m.cursorScene()
	m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		if m.pane == paneModified {
			seq.CollapsedModifiedScenes = storyseq.ToggleInt(seq.CollapsedModifiedScenes, scene)
		} else {
			seq.CollapsedScenes = storyseq.ToggleInt(seq.CollapsedScenes, scene)
		}
		return seq
	})
}

// revealCursor expands the cursor frame's scene and card, then scrolls its
// row into view.
func (m *EditorModel) revealCursor() {
	frame := m.cursor()
	m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		if m.pane == paneModified {
			item := storyseq.FrameByNumber(seq.ModifiedPrompts, frame)
			if item < 0 {
				return nil
			}
			seq.CollapsedModifiedScenes = storyseq.RemoveInt(seq.CollapsedModifiedScenes, seq.ModifiedPrompts[item].SceneNumber)
			seq.ModifiedPrompts[item].IsCollapsed = false
		} else {
			item := storyseq.FrameByNumber(seq.SourcePrompts, frame)
			if item < 0 {
				return nil
			}
			seq.CollapsedScenes = storyseq.RemoveInt(seq.CollapsedScenes, seq.SourcePrompts[item].SceneNumber)
			seq.SourcePrompts[item].IsCollapsed = false
		}
		return seq
	})
	m.scrollToCursor()
}

func (m *EditorModel) switchPane() {
	if m.pane == paneSource {
		if len(m.session.Snapshot().ModifiedPrompts) == 0 {
			m.notice = "no modified prompts"
			return
		}
		m.pane = paneModified
		if m.modCursor == 0 {
			if frames := storyseq.FrameNumbers(m.session.Snapshot().ModifiedPrompts); len(frames) > 0 {
				m.modCursor = frames[0]
			}
		}
	} else {
		m.pane = paneSource
	}
	m.refresh()
}

// cursor returns the active pane's cursor frame number.
func (m *EditorModel) cursor() int {
	if m.pane == paneModified {
		return m.modCursor
	}
	return m.srcCursor
}

func (m *EditorModel) setCursor(frame int) {
	if m.pane == paneModified {
		m.modCursor = frame
	} else {
		m.srcCursor = frame
	}
}

// paneItems returns the active pane's prompt list from the latest snapshot.
func (m *EditorModel) paneItems() []storyseq.PromptItem {
	seq := m.session.Snapshot()
	if m.pane == paneModified {
		return seq.ModifiedPrompts
	}
	return seq.SourcePrompts
}

func (m *EditorModel) cursorScene() int {
	items := m.paneItems()
	if idx := storyseq.FrameByNumber(items, m.cursor()); idx >= 0 {
		return items[idx].SceneNumber
	}
	return storyseq.DefaultSceneNumber
}

// moveCursor steps the cursor through the prompt rows the layout actually
// positions, skipping frames hidden by collapsed scenes.
func (m *EditorModel) moveCursor(delta int) {
	frames := m.layoutFrames()
	if len(frames) == 0 {
		return
	}
	idx := -1
	for i, f := range frames {
		if f == m.cursor() {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.setCursor(frames[0])
	} else {
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(frames) {
			idx = len(frames) - 1
		}
		m.setCursor(frames[idx])
	}
	m.refresh()
	m.scrollToCursor()
}

func (m *EditorModel) cursorToEdge(top bool) {
	frames := m.layoutFrames()
	if len(frames) == 0 {
		m.viewport.GotoTop()
		return
	}
	if top {
		m.setCursor(frames[0])
	} else {
		m.setCursor(frames[len(frames)-1])
	}
	m.refresh()
	m.scrollToCursor()
}

// cursorToNewFrame places the cursor on the frame created by AddFrameAfter.
func (m *EditorModel) cursorToNewFrame(after int) {
	items := m.session.Snapshot().SourcePrompts
	if idx := storyseq.FrameByNumber(items, after); idx >= 0 && idx < len(items)-1 {
		m.srcCursor = items[idx+1].FrameNumber
	} else if len(items) > 0 {
		m.srcCursor = items[len(items)-1].FrameNumber
	}
	m.refresh()
	m.scrollToCursor()
}

func (m *EditorModel) clampCursor() {
	frames := m.layoutFrames()
	if len(frames) == 0 {
		m.setCursor(0)
		return
	}
	cur := m.cursor()
	best := frames[0]
	for _, f := range frames {
		if f <= cur {
			best = f
		}
	}
	m.setCursor(best)
	m.refresh()
}

func (m *EditorModel) layoutFrames() []int {
	layout := m.layout(m.session.Snapshot())
	var frames []int
	for _, row := range layout.Rows {
		if row.Kind == storyseq.RowPrompt {
			frames = append(frames, row.Item.FrameNumber)
		}
	}
	return frames
}

// layout computes the active pane's layout from a snapshot.
func (m *EditorModel) layout(seq *storyseq.Sequence) *storyseq.Layout {
	in := storyseq.LayoutInput{
		ShowVideoPrompts:      m.showVideo,
		ShowSceneHeaders:      !m.flatView,
		ExpandedSceneContexts: seq.ExpandedSceneContexts,
	}
	if m.pane == paneModified {
		in.Items = seq.ModifiedPrompts
		in.CollapsedScenes = seq.CollapsedModifiedScenes
		in.SceneContexts = storyseq.MergedSceneContexts(seq)
	} else {
		in.Items = seq.SourcePrompts
		in.CollapsedScenes = seq.CollapsedScenes
		in.SceneContexts = seq.SceneContexts
	}
	return storyseq.ComputeLayout(m.geo, in)
}

// refresh recomputes the virtualized content for the active pane.
func (m *EditorModel) refresh() {
	if !m.ready {
		return
	}
	if m.showPreview {
		return
	}
	seq := m.session.Snapshot()
	layout := m.layout(seq)
	visible := layout.Visible(m.viewport.YOffset, m.viewport.Height)

	rc := rowContext{
		styles:    m.styles,
		renderer:  m.renderer,
		width:     m.width,
		showVideo: m.showVideo,
		checked:   seq.CheckedFrameNumbers,
		cursor:    m.cursor(),
	}
	if m.pane == paneModified {
		rc.collapsedScenes = seq.CollapsedModifiedScenes
		rc.wordDiffer = m.wordDiffer
		rc.sourceByFrame = itemsByFrame(seq.SourcePrompts)
		rc.modifiedContexts = modifiedContextScenes(seq)
		rc.checked = nil
	} else {
		rc.collapsedScenes = seq.CollapsedScenes
	}

	m.viewport.SetContent(renderWindow(layout, visible, rc))
}

// scrollToCursor adjusts the viewport so the cursor row is in view.
func (m *EditorModel) scrollToCursor() {
	layout := m.layout(m.session.Snapshot())
	top, ok := layout.FrameOffset(m.cursor())
	if !ok {
		return
	}
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top - m.viewport.Height + 1)
	}
	m.refresh()
}

func (m *EditorModel) openPreview() {
	seq := m.session.Snapshot()
	text, err := exportJSON(seq, m.highlighter)
	if err != nil {
		m.notice = "export failed: " + err.Error()
		return
	}
	m.showPreview = true
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

func (m EditorModel) copyExport() (tea.Model, tea.Cmd) {
	if m.clipboard == nil {
		return m, m.notify("no clipboard available")
	}
	doc := storyseq.BuildExport("", m.session.Snapshot())
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return m, m.notify("export failed: " + err.Error())
	}
	if err := m.clipboard.Copy(string(data)); err != nil {
		return m, m.notify("copy failed: " + err.Error())
	}
	return m, m.notify("export copied to clipboard")
}

// notify sets a transient status-bar notice.
func (m *EditorModel) notify(message string) tea.Cmd {
	if m.notifier != nil {
		m.notifier.Notify(message, storyseq.SeverityInfo)
	}
	m.notice = message
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// statusBarView renders the bottom status bar.
func (m EditorModel) statusBarView() string {
	barStyle := styleFromColorPair(m.styles.StatusBar, m.renderer)
	dimStyle := styleFromColorPair(m.styles.StatusBarDim, m.renderer)
	sep := dimStyle.Render(" │ ")

	seq := m.session.Snapshot()
	items := seq.SourcePrompts
	paneName := "source"
	if m.pane == paneModified {
		items = seq.ModifiedPrompts
		paneName = "modified"
	}

	frameIdx, frameTotal := m.currentFrame(items)
	w := digitWidth(frameTotal)
	framePos := fmt.Sprintf("frame %*d/%-*d", w, frameIdx, w, frameTotal)

	content := barStyle.Render(paneName) + sep + barStyle.Render(framePos) + sep
	if n := len(seq.CheckedFrameNumbers); n > 0 && m.pane == paneSource {
		content += barStyle.Render(fmt.Sprintf("%d checked", n)) + sep
	}
	if m.session.Linked() {
		content += barStyle.Render("linked") + sep
	}
	if m.session.Busy() {
		content += barStyle.Render("working…") + sep
	}
	content += barStyle.Render(m.scrollPosition()) + sep

	if m.notice != "" {
		content += barStyle.Render(m.notice)
	} else {
		content += dimStyle.Render("j/k:move  space:check  enter:card  tab:pane  e:edit  p:preview  q:quit")
	}

	if pad := m.width - lipgloss.Width(content); pad > 0 {
		content += barStyle.Render(strings.Repeat(" ", pad))
	}
	return content
}

// currentFrame returns the cursor's 1-based position among the pane's
// frames and the total count.
func (m EditorModel) currentFrame(items []storyseq.PromptItem) (current, total int) {
	total = len(items)
	if total == 0 {
		return 0, 0
	}
	cur := m.srcCursor
	if m.pane == paneModified {
		cur = m.modCursor
	}
	if idx := storyseq.FrameByNumber(items, cur); idx >= 0 {
		return idx + 1, total
	}
	return 1, total
}

// scrollPosition returns a string indicating the scroll position.
func (m EditorModel) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	return fmt.Sprintf("%2d%%", int(m.viewport.ScrollPercent()*100))
}

// nextShot returns the shot type after t in the cycle.
func nextShot(t storyseq.ShotType) storyseq.ShotType {
	for i, s := range shotCycle {
		if s == t {
			return shotCycle[(i+1)%len(shotCycle)]
		}
	}
	return shotCycle[0]
}

// itemsByFrame indexes items by frame number.
func itemsByFrame(items []storyseq.PromptItem) map[int]storyseq.PromptItem {
	out := make(map[int]storyseq.PromptItem, len(items))
	for _, item := range items {
		out[item.FrameNumber] = item
	}
	return out
}

// modifiedContextScenes returns the scene numbers whose context the
// modified overlay overrides.
func modifiedContextScenes(seq *storyseq.Sequence) map[int]bool {
	out := make(map[int]bool, len(seq.ModifiedSceneContexts))
	for _, scene := range storyseq.SceneNumbers(seq.ModifiedPrompts) {
		if storyseq.ContextModified(seq, scene) {
			out[scene] = true
		}
	}
	return out
}
