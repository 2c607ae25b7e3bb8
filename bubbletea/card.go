package bubbletea

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// editDebounce is how long the card editor waits after the last keystroke
// before committing the pending text.
const editDebounce = 500 * time.Millisecond

// editField selects which text field of a card is being edited.
type editField int

const (
	fieldPrompt editField = iota
	fieldVideo
)

// flushEditMsg asks the editor to commit pending card text. The seq token
// discards ticks superseded by later keystrokes.
type flushEditMsg struct {
	seq int
}

// cardEditor holds the state of an in-place card text edit. While active it
// owns the keyboard and suppresses upstream reconciliation; pending text is
// committed after a debounce interval or immediately on blur.
type cardEditor struct {
	area   textarea.Model
	frame  int
	field  editField
	active bool
	seq    int
	dirty  bool
}

func newCardEditor() cardEditor {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return cardEditor{area: ta}
}

// open starts editing the given frame's field with the given initial text.
func (e *cardEditor) open(frame int, field editField, text string, width int) tea.Cmd {
	e.frame = frame
	e.field = field
	e.active = true
	e.dirty = false
	e.area.SetWidth(width)
	e.area.SetHeight(4)
	e.area.SetValue(text)
	return e.area.Focus()
}

// close blurs the editor. The caller is responsible for flushing first.
func (e *cardEditor) close() {
	e.active = false
	e.dirty = false
	e.area.Blur()
}

// update forwards a message to the textarea. When the text changed it marks
// the edit dirty and returns a debounce tick alongside the textarea command.
func (e *cardEditor) update(msg tea.Msg) tea.Cmd {
	before := e.area.Value()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	if e.area.Value() == before {
		return cmd
	}

	e.dirty = true
	e.seq++
	seq := e.seq
	debounce := tea.Tick(editDebounce, func(time.Time) tea.Msg {
		return flushEditMsg{seq: seq}
	})
	return tea.Batch(cmd, debounce)
}

// stale reports whether a flush message was superseded by later keystrokes.
func (e *cardEditor) stale(msg flushEditMsg) bool {
	return msg.seq != e.seq
}

// tagEditor is the modal mini editor over one card's character tags. It
// only holds the selected position and pending renumber digits; the tag
// list itself is always read from the latest session snapshot.
type tagEditor struct {
	active bool
	frame  int
	pos    int
	digits string
}

// clampPos keeps the selected position inside the tag list.
func (e *tagEditor) clampPos(count int) {
	if e.pos >= count {
		e.pos = count - 1
	}
	if e.pos < 0 {
		e.pos = 0
	}
}
