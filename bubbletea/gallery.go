package bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/storyseq/storyseq"
)

// galleryCellWidth is the terminal width of one thumbnail cell including
// its padding.
const galleryCellWidth = 18

// DimensionMsg reports the rendered pixel dimensions of a frame's image.
// Dimensions arrive asynchronously as images finish loading.
type DimensionMsg struct {
	Frame int
	Dim   storyseq.Dimension
}

// zipDoneMsg carries the result of a background zip export.
type zipDoneMsg struct {
	count int
	err   error
}

// expandDoneMsg carries the result of a background image expansion.
type expandDoneMsg struct {
	frame int
	err   error
}

// ZipFunc exports the given frames' images as an archive.
type ZipFunc func(ctx context.Context, frames []int) error

// GalleryModel is the Bubble Tea model for the output image gallery: the
// same scene grouping as the editor panes, rendered as a thumbnail grid.
type GalleryModel struct {
	session     *storyseq.Session
	keymap      GalleryKeyMap
	styles      storyseq.Styles
	renderer    *lipgloss.Renderer
	zip         ZipFunc
	regenerator storyseq.Regenerator

	dims map[int]storyseq.Dimension

	viewport  viewport.Model
	width     int
	height    int
	ready     bool
	cursor    int // frame number under the cursor
	notice    string
	noticeSeq int
}

// GalleryOption configures a GalleryModel.
type GalleryOption func(*GalleryModel)

// WithGalleryRenderer sets a custom lipgloss renderer.
func WithGalleryRenderer(r *lipgloss.Renderer) GalleryOption {
	return func(m *GalleryModel) {
		m.renderer = r
	}
}

// WithGalleryTheme sets the theme.
func WithGalleryTheme(t storyseq.Theme) GalleryOption {
	return func(m *GalleryModel) {
		m.styles = t.Styles()
	}
}

// WithGalleryZip sets the archive exporter for the zip action.
func WithGalleryZip(fn ZipFunc) GalleryOption {
	return func(m *GalleryModel) {
		m.zip = fn
	}
}

// WithGalleryRegenerator sets the image expansion backend.
func WithGalleryRegenerator(r storyseq.Regenerator) GalleryOption {
	return func(m *GalleryModel) {
		m.regenerator = r
	}
}

// NewGalleryModel creates a gallery over the given session.
func NewGalleryModel(session *storyseq.Session, opts ...GalleryOption) GalleryModel {
	m := GalleryModel{
		session: session,
		keymap:  DefaultGalleryKeyMap(),
		styles:  defaultStyles(),
		dims:    make(map[int]storyseq.Dimension),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if frames := storyseq.FrameNumbers(session.Snapshot().SourcePrompts); len(frames) > 0 {
		m.cursor = frames[0]
	}
	return m
}

// Init implements tea.Model.
func (m GalleryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m GalleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case DimensionMsg:
		m.dims[msg.Frame] = msg.Dim
		m.refresh()
		return m, nil

	case zipDoneMsg:
		if msg.err != nil {
			return m, m.notify("zip export failed: " + msg.err.Error())
		}
		return m, m.notify(fmt.Sprintf("exported %d images", msg.count))

	case expandDoneMsg:
		if msg.err != nil {
			return m, m.notify("expand failed: " + msg.err.Error())
		}
		return m, m.notify(fmt.Sprintf("frame %d expanded", msg.frame))

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m GalleryModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-m.columns())
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(m.columns())
	case key.Matches(msg, m.keymap.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keymap.ToggleCheck):
		frame := m.cursor
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			seq.CheckedFrameNumbers = storyseq.ToggleInt(seq.CheckedFrameNumbers, frame)
			return seq
		})
	case key.Matches(msg, m.keymap.SelectLandscape):
		return m.selectAspect(storyseq.AspectLandscape)
	case key.Matches(msg, m.keymap.SelectPortrait):
		return m.selectAspect(storyseq.AspectPortrait)
	case key.Matches(msg, m.keymap.SelectSquare):
		return m.selectAspect(storyseq.AspectSquare)
	case key.Matches(msg, m.keymap.SelectNone):
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			seq.CheckedFrameNumbers = nil
			return seq
		})

	case key.Matches(msg, m.keymap.ToggleScene):
		scene := m.cursorScene()
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			seq.CollapsedOutputScenes = storyseq.ToggleInt(seq.CollapsedOutputScenes, scene)
			return seq
		})
	case key.Matches(msg, m.keymap.ToggleAllScenes):
		m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
			seq.CollapsedOutputScenes = storyseq.ToggleAllScenes(seq.CollapsedOutputScenes, seq.SourcePrompts)
			return seq
		})

	case key.Matches(msg, m.keymap.ExpandFrame):
		return m.expandCursor()
	case key.Matches(msg, m.keymap.ZipExport):
		return m.zipExport()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m GalleryModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

func (m *GalleryModel) apply(update func(*storyseq.Sequence) *storyseq.Sequence) {
	m.session.Apply(update)
	m.refresh()
}

// selectAspect replaces the checked set with frames matching the aspect
// class. An empty match surfaces a notice instead of committing.
func (m GalleryModel) selectAspect(class storyseq.AspectClass) (tea.Model, tea.Cmd) {
	seq := m.session.Snapshot()
	matched := storyseq.SelectByAspect(seq.SourcePrompts, m.dims, class)
	if len(matched) == 0 {
		return m, m.notify(fmt.Sprintf("no %s images", class))
	}
	m.apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		seq.CheckedFrameNumbers = matched
		return seq
	})
	return m, nil
}

// expandCursor re-renders the cursor frame's image at its classified
// aspect in the background.
func (m GalleryModel) expandCursor() (tea.Model, tea.Cmd) {
	if m.regenerator == nil {
		return m, m.notify("no expansion backend")
	}
	frame := m.cursor
	dim, ok := m.dims[frame]
	if !ok {
		return m, m.notify("no reported dimensions")
	}
	class := storyseq.ClassifyAspect(dim)
	return m, func() tea.Msg {
		err := m.regenerator.Expand(context.Background(), frame, class)
		return expandDoneMsg{frame: frame, err: err}
	}
}

// zipExport archives the checked frames, or every frame when none are
// checked, in the background.
func (m GalleryModel) zipExport() (tea.Model, tea.Cmd) {
	if m.zip == nil {
		return m, m.notify("no archive exporter")
	}
	seq := m.session.Snapshot()
	frames := seq.CheckedFrameNumbers
	if len(frames) == 0 {
		frames = storyseq.FrameNumbers(seq.SourcePrompts)
	}
	if len(frames) == 0 {
		return m, m.notify("nothing to export")
	}
	return m, func() tea.Msg {
		err := m.zip(context.Background(), frames)
		return zipDoneMsg{count: len(frames), err: err}
	}
}

// columns returns the grid column count derived from the container width.
func (m GalleryModel) columns() int {
	cols := m.width / galleryCellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// visibleFrames returns the frames shown in grid order, skipping collapsed
// scenes.
func (m GalleryModel) visibleFrames() []int {
	seq := m.session.Snapshot()
	var frames []int
	for _, scene := range storyseq.Scenes(seq.SourcePrompts) {
		if storyseq.ContainsInt(seq.CollapsedOutputScenes, scene.Scene) {
			continue
		}
		for _, item := range scene.Prompts {
			frames = append(frames, item.FrameNumber)
		}
	}
	return frames
}

func (m *GalleryModel) moveCursor(delta int) {
	frames := m.visibleFrames()
	if len(frames) == 0 {
		return
	}
	idx := -1
	for i, f := range frames {
		if f == m.cursor {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.cursor = frames[0]
	} else {
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(frames) {
			idx = len(frames) - 1
		}
		m.cursor = frames[idx]
	}
	m.refresh()
}

func (m GalleryModel) cursorScene() int {
	items := m.session.Snapshot().SourcePrompts
	if idx := storyseq.FrameByNumber(items, m.cursor); idx >= 0 {
		return items[idx].SceneNumber
	}
	return storyseq.DefaultSceneNumber
}

// refresh re-renders the thumbnail grid.
func (m *GalleryModel) refresh() {
	if !m.ready {
		return
	}
	seq := m.session.Snapshot()
	headerStyle := styleFromColorPair(m.styles.SceneHeader, m.renderer)

	var sb strings.Builder
	for _, scene := range storyseq.Scenes(seq.SourcePrompts) {
		collapsed := storyseq.ContainsInt(seq.CollapsedOutputScenes, scene.Scene)
		marker := "▾"
		if collapsed {
			marker = "▸"
		}
		title := scene.Title
		if title == "" {
			title = fmt.Sprintf("Scene %d", scene.Scene)
		}
		sb.WriteString(headerStyle.Render(padLine(fmt.Sprintf("%s %s (%d)", marker, title, len(scene.Prompts)), m.width)))
		sb.WriteString("\n")
		if collapsed {
			continue
		}
		sb.WriteString(m.renderGrid(scene.Prompts, seq.CheckedFrameNumbers))
	}
	m.viewport.SetContent(strings.TrimSuffix(sb.String(), "\n"))
}

// renderGrid renders one scene's thumbnails in rows of m.columns() cells.
func (m GalleryModel) renderGrid(items []storyseq.PromptItem, checked []int) string {
	cols := m.columns()
	var sb strings.Builder
	for start := 0; start < len(items); start += cols {
		end := start + cols
		if end > len(items) {
			end = len(items)
		}
		var cells []string
		for _, item := range items[start:end] {
			cells = append(cells, m.renderCell(item, checked))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderCell renders one thumbnail placeholder with its frame metadata.
func (m GalleryModel) renderCell(item storyseq.PromptItem, checked []int) string {
	frame := item.FrameNumber
	mark := " "
	if storyseq.ContainsInt(checked, frame) {
		mark = "x"
	}
	aspect := "…"
	if dim, ok := m.dims[frame]; ok {
		aspect = storyseq.ClassifyAspect(dim).String()
	}

	style := styleFromColorPair(m.styles.Card, m.renderer)
	if frame == m.cursor {
		style = styleFromColorPair(m.styles.CardFocused, m.renderer)
	} else if mark == "x" {
		style = styleFromColorPair(m.styles.CardSelected, m.renderer)
	}

	inner := galleryCellWidth - 2
	lines := []string{
		padLine(fmt.Sprintf("[%s] %d", mark, frame), inner),
		padLine(fmt.Sprintf("%s %.1fs", item.ShotType, item.Duration), inner),
		padLine(aspect, inner),
	}
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(style.Render(" " + l + " "))
	}
	return sb.String()
}

func (m *GalleryModel) notify(message string) tea.Cmd {
	m.notice = message
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// statusBarView renders the gallery status bar.
func (m GalleryModel) statusBarView() string {
	barStyle := styleFromColorPair(m.styles.StatusBar, m.renderer)
	dimStyle := styleFromColorPair(m.styles.StatusBarDim, m.renderer)
	sep := dimStyle.Render(" │ ")

	seq := m.session.Snapshot()
	content := barStyle.Render("gallery") + sep +
		barStyle.Render(fmt.Sprintf("%d frames", len(seq.SourcePrompts))) + sep
	if n := len(seq.CheckedFrameNumbers); n > 0 {
		content += barStyle.Render(fmt.Sprintf("%d checked", n)) + sep
	}
	if m.notice != "" {
		content += barStyle.Render(m.notice)
	} else {
		content += dimStyle.Render("hjkl:move  space:check  1/2/3:aspect  z:zip  x:expand  q:quit")
	}
	if pad := m.width - lipgloss.Width(content); pad > 0 {
		content += barStyle.Render(strings.Repeat(" ", pad))
	}
	return content
}
