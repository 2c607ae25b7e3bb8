package storyseq_test

import (
	"testing"

	"github.com/storyseq/storyseq"
	"github.com/stretchr/testify/assert"
)

func TestToggleInt_Idempotent(t *testing.T) {
	t.Parallel()

	set := []int{1, 3, 5}
	once := storyseq.ToggleInt(set, 4)
	twice := storyseq.ToggleInt(once, 4)

	assert.Equal(t, []int{1, 3, 4, 5}, once)
	assert.Equal(t, set, twice)

	removed := storyseq.ToggleInt(set, 3)
	assert.Equal(t, []int{1, 5}, removed)
	assert.Equal(t, set, storyseq.ToggleInt(removed, 3))
}

func TestSelectOnly_Exclusive(t *testing.T) {
	t.Parallel()

	// Shift-click replaces the entire selection with the clicked frame.
	assert.Equal(t, []int{7}, storyseq.SelectOnly(7))
}

func TestSelectRange(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)

	t.Run("inclusive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []int{3, 4, 5, 6, 7}, storyseq.SelectRange(items, 3, 7))
	})

	t.Run("clips to bounds", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []int{8, 9, 10}, storyseq.SelectRange(items, 8, 99))
		assert.Equal(t, []int{1, 2}, storyseq.SelectRange(items, -5, 2))
	})

	t.Run("start past end is noop", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, storyseq.SelectRange(items, 7, 3))
	})
}

func TestCollapseOtherScenes(t *testing.T) {
	t.Parallel()

	// Positional grouping: scene 1 appears as two disjoint runs.
	items := frames(1, 1, 2, 1)

	assert.Equal(t, []int{2}, storyseq.CollapseOtherScenes(items, 1))
	assert.Equal(t, []int{1}, storyseq.CollapseOtherScenes(items, 2))
	// An absent scene collapses everything else, deduplicated.
	assert.Equal(t, []int{1, 2}, storyseq.CollapseOtherScenes(items, 9))
}

func TestInvertSelection(t *testing.T) {
	t.Parallel()

	// Range-select 3-7 on a 10-frame sequence, then invert.
	items := frames(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	sel := storyseq.SelectRange(items, 3, 7)
	inverted := storyseq.InvertSelection(sel, items)

	assert.Equal(t, []int{1, 2, 8, 9, 10}, inverted)
}

func TestSelectAll(t *testing.T) {
	t.Parallel()

	items := frames(1, 2, 2)
	assert.Equal(t, []int{1, 2, 3}, storyseq.SelectAll(items))
	assert.Nil(t, storyseq.SelectAll(nil))
}

func TestSceneFrameNumbers_IncludesDisjointRuns(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2, 1)
	assert.Equal(t, []int{1, 2, 4}, storyseq.SceneFrameNumbers(items, 1))
	assert.Equal(t, []int{3}, storyseq.SceneFrameNumbers(items, 2))
	assert.Nil(t, storyseq.SceneFrameNumbers(items, 9))
}

func TestClassifyAspect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		dim  storyseq.Dimension
		want storyseq.AspectClass
	}{
		{"landscape", storyseq.Dimension{Width: 1920, Height: 1080}, storyseq.AspectLandscape},
		{"portrait", storyseq.Dimension{Width: 1080, Height: 1920}, storyseq.AspectPortrait},
		{"square", storyseq.Dimension{Width: 1024, Height: 1024}, storyseq.AspectSquare},
		{"just above landscape bound", storyseq.Dimension{Width: 121, Height: 100}, storyseq.AspectLandscape},
		{"at landscape bound stays square", storyseq.Dimension{Width: 120, Height: 100}, storyseq.AspectSquare},
		{"just below portrait bound", storyseq.Dimension{Width: 84, Height: 100}, storyseq.AspectPortrait},
		{"at portrait bound stays square", storyseq.Dimension{Width: 85, Height: 100}, storyseq.AspectSquare},
		{"zero height is square", storyseq.Dimension{}, storyseq.AspectSquare},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, storyseq.ClassifyAspect(tc.dim))
		})
	}
}

func TestSelectByAspect(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 1)
	dims := map[int]storyseq.Dimension{
		1: {Width: 1920, Height: 1080},
		2: {Width: 512, Height: 512},
		// frame 3 has no reported dimensions and never matches
	}

	assert.Equal(t, []int{1}, storyseq.SelectByAspect(items, dims, storyseq.AspectLandscape))
	assert.Equal(t, []int{2}, storyseq.SelectByAspect(items, dims, storyseq.AspectSquare))
	assert.Nil(t, storyseq.SelectByAspect(items, dims, storyseq.AspectPortrait))
}
