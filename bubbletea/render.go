package bubbletea

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/storyseq/storyseq"
)

const tabWidth = 8

// rowContext carries everything needed to render layout rows into styled
// terminal lines.
type rowContext struct {
	styles          storyseq.Styles
	renderer        *lipgloss.Renderer
	width           int
	showVideo       bool
	checked         []int
	cursor          int
	collapsedScenes []int

	// Modified-pane rendering: source items by frame number for word-level
	// diffing, and the differ itself. Both nil on the source pane.
	wordDiffer    storyseq.WordDiffer
	sourceByFrame map[int]storyseq.PromptItem

	// Scene numbers whose context is overridden by the modified overlay.
	modifiedContexts map[int]bool
}

// renderWindow paints only the visible rows into a canvas of the layout's
// full height. Off-window rows stay as blank lines so scroll offsets line up
// with the layout's absolute positions.
func renderWindow(layout *storyseq.Layout, visible []storyseq.Row, rc rowContext) string {
	if layout.TotalHeight == 0 {
		return ""
	}
	lines := make([]string, layout.TotalHeight)
	for _, row := range visible {
		rendered := rc.renderRow(row)
		for i := 0; i < row.Height && i < len(rendered); i++ {
			if row.Top+i < len(lines) {
				lines[row.Top+i] = rendered[i]
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one layout row into exactly row.Height lines.
func (rc rowContext) renderRow(row storyseq.Row) []string {
	switch row.Kind {
	case storyseq.RowSceneHeader:
		return rc.renderSceneHeader(row)
	case storyseq.RowSceneContext:
		return rc.renderSceneContext(row)
	default:
		return rc.renderPrompt(row)
	}
}

func (rc rowContext) renderSceneHeader(row storyseq.Row) []string {
	marker := "▾"
	if storyseq.ContainsInt(rc.collapsedScenes, row.Scene) {
		marker = "▸"
	}
	title := row.Title
	if title == "" {
		title = fmt.Sprintf("Scene %d", row.Scene)
	}
	style := rc.style(rc.styles.SceneHeader)
	line := style.Render(padLine(fmt.Sprintf("%s %s", marker, title), rc.width))

	out := make([]string, row.Height)
	if row.Height > 0 {
		out[0] = line
	}
	return out
}

func (rc rowContext) renderSceneContext(row storyseq.Row) []string {
	style := rc.style(rc.styles.SceneContext)

	text := row.Context
	if text == "" {
		text = "(no scene context)"
	}
	label := "context:"
	if rc.modifiedContexts[row.Scene] {
		label = "context*:"
	}

	out := make([]string, row.Height)
	wrapped := wrapText(expandTabs(text), rc.width-len(label)-1)
	for i := 0; i < row.Height; i++ {
		switch {
		case i == 0 && len(wrapped) > 0:
			out[i] = style.Render(padLine(label+" "+wrapped[0], rc.width))
		case i < len(wrapped):
			out[i] = style.Render(padLine(strings.Repeat(" ", len(label)+1)+wrapped[i], rc.width))
		default:
			out[i] = ""
		}
	}
	return out
}

func (rc rowContext) renderPrompt(row storyseq.Row) []string {
	item := row.Item
	style := rc.cardStyle(item.FrameNumber)

	out := make([]string, row.Height)
	if row.Height == 0 {
		return out
	}

	if item.IsCollapsed {
		out[0] = style.Render(padLine(rc.collapsedLine(item), rc.width))
		return out
	}

	line := 0
	put := func(s string) {
		if line < row.Height {
			out[line] = s
			line++
		}
	}

	put(style.Render(padLine(rc.cardHeader(item), rc.width)))

	// Reserve trailing lines for the instruction, the video prompt and the
	// bottom margin before filling the body with prompt text.
	reserved := 1 // margin
	instruction := item.ShotType.Instruction()
	if instruction != "" {
		reserved++
	}
	if rc.showVideo {
		reserved++
	}
	body := row.Height - 1 - reserved
	if body < 1 {
		body = 1
	}

	if src, ok := rc.diffSource(item); ok {
		put(rc.renderDiffLine(src.Prompt, item.Prompt, style))
		body--
	}
	for _, l := range clampLines(wrapText(expandTabs(item.Prompt), rc.width-2), body) {
		put(style.Render(padLine("  "+l, rc.width)))
	}

	if instruction != "" {
		put(rc.style(rc.styles.ShotInstruction).Render(padLine("  "+instruction, rc.width)))
	}
	if rc.showVideo {
		video := item.VideoPrompt
		if video == "" {
			video = "(no video prompt)"
		}
		put(style.Render(padLine("  video: "+truncateWidth(expandTabs(video), rc.width-10), rc.width)))
	}
	return out
}

// diffSource returns the source counterpart of a modified item when
// word-level diffing applies.
func (rc rowContext) diffSource(item storyseq.PromptItem) (storyseq.PromptItem, bool) {
	if rc.wordDiffer == nil || rc.sourceByFrame == nil {
		return storyseq.PromptItem{}, false
	}
	src, ok := rc.sourceByFrame[item.FrameNumber]
	if !ok || src.Prompt == item.Prompt {
		return storyseq.PromptItem{}, false
	}
	return src, true
}

// renderDiffLine renders the modified prompt as one line with changed
// segments highlighted.
func (rc rowContext) renderDiffLine(oldText, newText string, base lipgloss.Style) string {
	_, newSegs := rc.wordDiffer.Diff(oldText, newText)
	changed := rc.style(rc.styles.ChangedText)

	var sb strings.Builder
	sb.WriteString(base.Render("  "))
	used := 2
	for _, seg := range newSegs {
		text := truncateWidth(expandTabs(seg.Text), rc.width-used)
		if text == "" {
			break
		}
		if seg.Changed {
			sb.WriteString(changed.Render(text))
		} else {
			sb.WriteString(base.Render(text))
		}
		used += lipgloss.Width(text)
	}
	if used < rc.width {
		sb.WriteString(base.Render(strings.Repeat(" ", rc.width-used)))
	}
	return sb.String()
}

func (rc rowContext) collapsedLine(item storyseq.PromptItem) string {
	return fmt.Sprintf("▸ %s %3d %-3s %s",
		rc.checkbox(item.FrameNumber), item.FrameNumber, item.ShotType,
		truncateWidth(expandTabs(firstLine(item.Prompt)), rc.width-14))
}

func (rc rowContext) cardHeader(item storyseq.PromptItem) string {
	header := fmt.Sprintf("▾ %s Frame %d · %s · %.1fs",
		rc.checkbox(item.FrameNumber), item.FrameNumber, item.ShotType, item.Duration)
	if len(item.Characters) > 0 {
		header += " · " + strings.Join(item.Characters, " ")
	}
	return truncateWidth(header, rc.width)
}

func (rc rowContext) checkbox(frame int) string {
	if storyseq.ContainsInt(rc.checked, frame) {
		return "[x]"
	}
	return "[ ]"
}

func (rc rowContext) cardStyle(frame int) lipgloss.Style {
	switch {
	case frame == rc.cursor:
		return rc.style(rc.styles.CardFocused)
	case storyseq.ContainsInt(rc.checked, frame):
		return rc.style(rc.styles.CardSelected)
	default:
		return rc.style(rc.styles.Card)
	}
}

func (rc rowContext) style(cp storyseq.ColorPair) lipgloss.Style {
	return styleFromColorPair(cp, rc.renderer)
}

// styleFromColorPair creates a lipgloss style from a ColorPair. A nil
// renderer uses the default lipgloss renderer.
func styleFromColorPair(cp storyseq.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// expandTabs replaces tab characters with spaces at 8-column stops so width
// math stays consistent with the rendered output.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			stop := ((col / tabWidth) + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", stop-col))
			col = stop
			continue
		}
		sb.WriteRune(r)
		col += lipgloss.Width(string(r))
	}
	return sb.String()
}

// firstLine returns the text up to the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// wrapText breaks text into lines no wider than width, splitting on spaces
// where possible. Newlines in the input force breaks.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			switch {
			case line == "":
				line = word
			case lipgloss.Width(line)+1+lipgloss.Width(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
			for lipgloss.Width(line) > width {
				head := truncateWidth(line, width)
				if head == "" {
					// A single rune wider than the window still has to be
					// consumed or the loop never terminates.
					_, size := utf8.DecodeRuneInString(line)
					head = line[:size]
				}
				out = append(out, head)
				line = line[len(head):]
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// clampLines limits a line slice to at most n entries.
func clampLines(lines []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// truncateWidth cuts a string to the given display width.
func truncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String()
}

// padLine pads a line with spaces to the given display width. Wider lines
// are returned unchanged.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
