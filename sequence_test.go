package storyseq_test

import (
	"testing"

	"github.com/storyseq/storyseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frames builds a minimal prompt list with the given scene numbers, one
// frame per entry, numbered densely from 1.
func frames(scenes ...int) []storyseq.PromptItem {
	items := make([]storyseq.PromptItem, len(scenes))
	for i, s := range scenes {
		items[i] = storyseq.NewPromptItem(i+1, s)
	}
	return items
}

func TestScenes_PositionalGrouping(t *testing.T) {
	t.Parallel()

	// Scene membership is positional: non-contiguous runs sharing a scene
	// number must NOT merge into one group.
	items := frames(1, 1, 2, 1)
	scenes := storyseq.Scenes(items)

	require.Len(t, scenes, 3)
	assert.Equal(t, 1, scenes[0].Scene)
	assert.Len(t, scenes[0].Prompts, 2)
	assert.Equal(t, 2, scenes[1].Scene)
	assert.Len(t, scenes[1].Prompts, 1)
	assert.Equal(t, 1, scenes[2].Scene)
	assert.Len(t, scenes[2].Prompts, 1)
}

func TestScenes_SortsByFrameNumber(t *testing.T) {
	t.Parallel()

	items := []storyseq.PromptItem{
		storyseq.NewPromptItem(3, 2),
		storyseq.NewPromptItem(1, 1),
		storyseq.NewPromptItem(2, 1),
	}
	scenes := storyseq.Scenes(items)

	require.Len(t, scenes, 2)
	assert.Equal(t, []int{1, 2}, []int{scenes[0].Prompts[0].FrameNumber, scenes[0].Prompts[1].FrameNumber})
}

func TestScenes_TitleFromFirstItemOfRun(t *testing.T) {
	t.Parallel()

	items := frames(1, 1)
	items[0].SceneTitle = "Opening"
	items[1].SceneTitle = "ignored"

	scenes := storyseq.Scenes(items)
	require.Len(t, scenes, 1)
	assert.Equal(t, "Opening", scenes[0].Title)
}

func TestScenes_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, storyseq.Scenes(nil))
}

func TestAddFrameAfter_Append(t *testing.T) {
	t.Parallel()

	// End-to-end scenario: a single frame with a tagged prompt, then add a
	// frame after it. Frame 1's content must not be renumbered or touched.
	items := []storyseq.PromptItem{
		{FrameNumber: 1, SceneNumber: 1, Prompt: "(Entity-1) walking", ShotType: storyseq.ShotWide, Duration: 3},
	}
	out := storyseq.AddFrameAfter(items, 1)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].FrameNumber)
	assert.Equal(t, "(Entity-1) walking", out[0].Prompt)
	assert.Equal(t, 2, out[1].FrameNumber)
	assert.Equal(t, 1, out[1].SceneNumber)
	assert.Equal(t, storyseq.DefaultShotType, out[1].ShotType)
	assert.Equal(t, storyseq.DefaultDuration, out[1].Duration)
}

func TestAddFrameAfter_MidListRenumbers(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2)
	items[0].Prompt = "first"
	items[2].Prompt = "third"

	out := storyseq.AddFrameAfter(items, 1)

	require.Len(t, out, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, storyseq.FrameNumbers(out))
	assert.Equal(t, "first", out[0].Prompt)
	assert.Equal(t, "", out[1].Prompt)      // inserted frame
	assert.Equal(t, 1, out[1].SceneNumber)  // inherits neighbor's scene
	assert.Equal(t, "third", out[3].Prompt) // old frame 3 is now frame 4
}

func TestAddFrameAfter_UnknownFrameAppends(t *testing.T) {
	t.Parallel()

	items := frames(1, 1)
	out := storyseq.AddFrameAfter(items, 99)

	require.Len(t, out, 3)
	assert.Equal(t, 3, out[2].FrameNumber)
}

func TestAddScene(t *testing.T) {
	t.Parallel()

	items := frames(1, 3)
	out := storyseq.AddScene(items)

	require.Len(t, out, 3)
	added := out[2]
	assert.Equal(t, 3, added.FrameNumber)
	assert.Equal(t, 4, added.SceneNumber)
	assert.Equal(t, "Scene 4", added.SceneTitle)
}

func TestAddScene_Empty(t *testing.T) {
	t.Parallel()

	out := storyseq.AddScene(nil)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].FrameNumber)
	assert.Equal(t, 1, out[0].SceneNumber)
	assert.Equal(t, "Scene 1", out[0].SceneTitle)
}

func TestDeleteFrame_Renumbers(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2, 2)
	items[1].Prompt = "second"
	items[2].Prompt = "third"

	out := storyseq.DeleteFrame(items, 2)

	require.Len(t, out, 3)
	assert.Equal(t, []int{1, 2, 3}, storyseq.FrameNumbers(out))
	assert.Equal(t, "third", out[1].Prompt)
	// Scene numbers are never renumbered by structural ops.
	assert.Equal(t, 2, out[1].SceneNumber)
}

func TestDeleteFrame_MissingIsNoop(t *testing.T) {
	t.Parallel()

	items := frames(1, 1)
	out := storyseq.DeleteFrame(items, 42)
	assert.Equal(t, items, out)
}

func TestMoveFrame(t *testing.T) {
	t.Parallel()

	prompts := func(items []storyseq.PromptItem) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.Prompt
		}
		return out
	}

	base := frames(1, 1, 1, 1)
	for i := range base {
		base[i].Prompt = string(rune('a' + i))
	}

	cases := []struct {
		name  string
		index int
		dir   storyseq.MoveDirection
		want  []string
	}{
		{"up", 2, storyseq.MoveUp, []string{"a", "c", "b", "d"}},
		{"down", 1, storyseq.MoveDown, []string{"a", "c", "b", "d"}},
		{"to start", 2, storyseq.MoveToStart, []string{"c", "a", "b", "d"}},
		{"to end", 1, storyseq.MoveToEnd, []string{"a", "c", "d", "b"}},
		{"up at top is noop", 0, storyseq.MoveUp, []string{"a", "b", "c", "d"}},
		{"down at bottom is noop", 3, storyseq.MoveDown, []string{"a", "b", "c", "d"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := storyseq.MoveFrame(base, tc.index, tc.dir)
			assert.Equal(t, tc.want, prompts(out))
			assert.Equal(t, []int{1, 2, 3, 4}, storyseq.FrameNumbers(out))
		})
	}

	t.Run("out of range is noop", func(t *testing.T) {
		t.Parallel()

		out := storyseq.MoveFrame(base, 17, storyseq.MoveUp)
		assert.Equal(t, base, out)
	})
}

func TestDenseRenumbering_AfterOperationChains(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2, 2, 3)
	items = storyseq.DeleteFrame(items, 3)
	items = storyseq.AddFrameAfter(items, 2)
	items = storyseq.MoveFrame(items, 0, storyseq.MoveToEnd)
	items = storyseq.DeleteFrame(items, 1)

	assert.Equal(t, []int{1, 2, 3, 4}, storyseq.FrameNumbers(items))
}

func TestToggleAllCards_MajorityFlip(t *testing.T) {
	t.Parallel()

	collapsedStates := func(items []storyseq.PromptItem) []bool {
		out := make([]bool, len(items))
		for i, item := range items {
			out[i] = item.IsCollapsed
		}
		return out
	}

	t.Run("all expanded collapses all", func(t *testing.T) {
		t.Parallel()

		out := storyseq.ToggleAllCards(frames(1, 1, 2))
		assert.Equal(t, []bool{true, true, true}, collapsedStates(out))
	})

	t.Run("mixed expands all", func(t *testing.T) {
		t.Parallel()

		items := frames(1, 1, 2)
		items[0].IsCollapsed = true
		out := storyseq.ToggleAllCards(items)
		assert.Equal(t, []bool{false, false, false}, collapsedStates(out))
	})

	t.Run("all collapsed expands all", func(t *testing.T) {
		t.Parallel()

		items := frames(1, 1)
		items[0].IsCollapsed = true
		items[1].IsCollapsed = true
		out := storyseq.ToggleAllCards(items)
		assert.Equal(t, []bool{false, false}, collapsedStates(out))
	})
}

func TestToggleAllScenes_MajorityFlip(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2, 3)

	t.Run("none collapsed collapses all", func(t *testing.T) {
		t.Parallel()

		out := storyseq.ToggleAllScenes(nil, items)
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("partially collapsed collapses all", func(t *testing.T) {
		t.Parallel()

		out := storyseq.ToggleAllScenes([]int{2}, items)
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("all collapsed expands all", func(t *testing.T) {
		t.Parallel()

		out := storyseq.ToggleAllScenes([]int{1, 2, 3}, items)
		assert.Nil(t, out)
	})
}

func TestClearText_PreservesStructure(t *testing.T) {
	t.Parallel()

	items := frames(1, 2)
	items[0].Prompt = "(Entity-1) runs"
	items[0].VideoPrompt = "pan left"
	items[0].ShotType = storyseq.ShotCloseUp
	items[0].Characters = []string{"Entity-1"}
	items[0].Duration = 5

	out := storyseq.ClearText(items)

	assert.Equal(t, "", out[0].Prompt)
	assert.Equal(t, "", out[0].VideoPrompt)
	assert.Equal(t, storyseq.DefaultShotType, out[0].ShotType)
	assert.Equal(t, []string{"Entity-1"}, out[0].Characters)
	assert.Equal(t, 5.0, out[0].Duration)
	assert.Equal(t, []int{1, 2}, storyseq.FrameNumbers(out))
}

func TestToggleCard(t *testing.T) {
	t.Parallel()

	items := frames(1, 1)
	out := storyseq.ToggleCard(items, 2)
	assert.True(t, out[1].IsCollapsed)
	assert.False(t, out[0].IsCollapsed)

	out = storyseq.ToggleCard(out, 2)
	assert.False(t, out[1].IsCollapsed)

	same := storyseq.ToggleCard(items, 42)
	assert.Equal(t, items, same)
}
