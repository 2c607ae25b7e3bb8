package bubbletea

import (
	"strings"
	"testing"

	"github.com/storyseq/storyseq"
	"github.com/storyseq/storyseq/worddiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutFixture(items []storyseq.PromptItem) *storyseq.Layout {
	return storyseq.ComputeLayout(storyseq.TerminalGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})
}

func renderFixtureItems() []storyseq.PromptItem {
	a := storyseq.NewPromptItem(1, 1)
	a.Prompt = "a lone rider crosses the dunes"
	b := storyseq.NewPromptItem(2, 1)
	b.Prompt = "the rider dismounts at the well"
	b.IsCollapsed = true
	return []storyseq.PromptItem{a, b}
}

func TestRenderWindow_LineCountMatchesTotalHeight(t *testing.T) {
	t.Parallel()

	layout := layoutFixture(renderFixtureItems())
	rc := rowContext{styles: defaultStyles(), width: 60}

	content := renderWindow(layout, layout.Rows, rc)
	lines := strings.Split(content, "\n")
	assert.Len(t, lines, layout.TotalHeight)
}

func TestRenderWindow_EmptyLayout(t *testing.T) {
	t.Parallel()

	layout := layoutFixture(nil)
	assert.Empty(t, renderWindow(layout, nil, rowContext{width: 60}))
}

func TestRenderWindow_RowsAtAbsolutePositions(t *testing.T) {
	t.Parallel()

	layout := layoutFixture(renderFixtureItems())
	rc := rowContext{styles: defaultStyles(), width: 60}
	lines := strings.Split(renderWindow(layout, layout.Rows, rc), "\n")

	// Scene header occupies the first line.
	assert.Contains(t, lines[0], "Scene 1")

	// Each frame row starts exactly at its layout offset.
	top, ok := layout.FrameOffset(1)
	require.True(t, ok)
	assert.Contains(t, lines[top], "Frame 1")

	top, ok = layout.FrameOffset(2)
	require.True(t, ok)
	assert.Contains(t, lines[top], "the rider dismounts")
}

func TestRenderWindow_OffWindowRowsStayBlank(t *testing.T) {
	t.Parallel()

	layout := layoutFixture(renderFixtureItems())
	rc := rowContext{styles: defaultStyles(), width: 60}

	// Render only the scene header; everything below must be blank so scroll
	// offsets still line up with the layout.
	lines := strings.Split(renderWindow(layout, layout.Rows[:1], rc), "\n")
	require.Len(t, lines, layout.TotalHeight)
	assert.Contains(t, lines[0], "Scene 1")
	for _, line := range lines[layout.Rows[1].Top:] {
		assert.Empty(t, line)
	}
}

func TestRenderWindow_CollapsedSceneMarker(t *testing.T) {
	t.Parallel()

	items := renderFixtureItems()
	layout := storyseq.ComputeLayout(storyseq.TerminalGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
		CollapsedScenes:  []int{1},
	})
	rc := rowContext{styles: defaultStyles(), width: 60, collapsedScenes: []int{1}}

	lines := strings.Split(renderWindow(layout, layout.Rows, rc), "\n")
	assert.Contains(t, lines[0], "▸")
}

func TestRenderRow_HeightContract(t *testing.T) {
	t.Parallel()

	layout := layoutFixture(renderFixtureItems())
	rc := rowContext{styles: defaultStyles(), width: 60, showVideo: false}

	for _, row := range layout.Rows {
		assert.Len(t, rc.renderRow(row), row.Height)
	}
}

func TestRenderPrompt_ShowsCheckboxAndShotInstruction(t *testing.T) {
	t.Parallel()

	items := renderFixtureItems()
	layout := layoutFixture(items)
	rc := rowContext{styles: defaultStyles(), width: 60, checked: []int{1}}

	content := renderWindow(layout, layout.Rows, rc)
	assert.Contains(t, content, "[x]")
	assert.Contains(t, content, "Wide shot:")
}

func TestRenderDiffLine_MarksChangedSegments(t *testing.T) {
	t.Parallel()

	rc := rowContext{
		styles:     defaultStyles(),
		width:      60,
		wordDiffer: worddiff.NewDiffer(),
	}
	line := rc.renderDiffLine(
		"the rider walks across the dunes",
		"the rider runs across the dunes",
		rc.style(rc.styles.Card))

	assert.Contains(t, line, "runs")
	assert.NotContains(t, line, "walks")
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			input: "short text",
			width: 20,
			want:  []string{"short text"},
		},
		{
			name:  "breaks on spaces",
			input: "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "newline forces break",
			input: "one\ntwo",
			width: 20,
			want:  []string{"one", "two"},
		},
		{
			name:  "hard splits an overlong word",
			input: "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			// A double-width rune never fits at width 1; each rune still
			// has to land on its own row instead of looping forever.
			name:  "double-width rune wider than the window",
			input: "世界",
			width: 1,
			want:  []string{"世", "界"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapText(tt.input, tt.width))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no tabs", expandTabs("no tabs"))
	assert.Equal(t, "a       b", expandTabs("a\tb"))
	assert.Equal(t, "        x", expandTabs("\tx"))
	assert.Equal(t, "12345678        y", expandTabs("12345678\ty"))
}

func TestTruncateWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncateWidth("abc", 10))
	assert.Equal(t, "ab", truncateWidth("abcdef", 2))
	assert.Equal(t, "", truncateWidth("abc", 0))
	// Multibyte runes are cut on rune boundaries.
	assert.Equal(t, "hél", truncateWidth("héllo", 3))
}

func TestPadLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", padLine("ab", 5))
	assert.Equal(t, "abcdef", padLine("abcdef", 3))
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "one", firstLine("one\ntwo"))
	assert.Equal(t, "plain", firstLine("plain"))
}

func TestDigitWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, digitWidth(0))
	assert.Equal(t, 1, digitWidth(9))
	assert.Equal(t, 2, digitWidth(10))
	assert.Equal(t, 3, digitWidth(999))
}
