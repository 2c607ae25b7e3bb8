package storyseq_test

import (
	"testing"

	"github.com/storyseq/storyseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeometry() storyseq.Geometry {
	return storyseq.Geometry{
		SceneHeaderHeight:           10,
		SceneContextHeight:          40,
		SceneContextCollapsedHeight: 5,
		SceneContextMargin:          2,
		CardCollapsedHeight:         20,
		CardExpandedHeight:          100,
		CardExpandedHeightNoVideo:   80,
		ShotInstructionHeight:       30,
		RowMargin:                   4,
		Buffer:                      50,
		DefaultViewportHeight:       200,
	}
}

func TestComputeLayout_RowSequenceAndHeights(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2)
	items[0].IsCollapsed = true
	// items[1] and [2] expanded, default shot WS has an instruction

	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
		ShowVideoPrompts: true,
	})

	require.Len(t, l.Rows, 7)
	kinds := make([]storyseq.RowKind, len(l.Rows))
	for i, r := range l.Rows {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []storyseq.RowKind{
		storyseq.RowSceneHeader, storyseq.RowSceneContext, storyseq.RowPrompt, storyseq.RowPrompt,
		storyseq.RowSceneHeader, storyseq.RowSceneContext, storyseq.RowPrompt,
	}, kinds)

	// header 10, context 5+2, collapsed card 20+4, expanded 100+30+4
	assert.Equal(t, 10, l.Rows[0].Height)
	assert.Equal(t, 7, l.Rows[1].Height)
	assert.Equal(t, 24, l.Rows[2].Height)
	assert.Equal(t, 134, l.Rows[3].Height)
}

func TestComputeLayout_PositionInvariants(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2, 2, 3, 1)
	items[1].IsCollapsed = true
	items[4].IsCollapsed = true

	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:                 items,
		ShowSceneHeaders:      true,
		CollapsedScenes:       []int{2},
		ExpandedSceneContexts: []int{3},
	})

	// Each row's top equals the sum of all prior rows' heights, rows never
	// overlap, and the heights sum to the total.
	sum := 0
	for _, r := range l.Rows {
		assert.Equal(t, sum, r.Top)
		sum += r.Height
	}
	assert.Equal(t, sum, l.TotalHeight)
}

func TestComputeLayout_CollapsedSceneOmitsBody(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2)
	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
		CollapsedScenes:  []int{1},
	})

	// Scene 1 contributes only its header.
	require.Len(t, l.Rows, 4)
	assert.Equal(t, storyseq.RowSceneHeader, l.Rows[0].Kind)
	assert.Equal(t, storyseq.RowSceneHeader, l.Rows[1].Kind)
	assert.Equal(t, 2, l.Rows[1].Scene)
}

func TestComputeLayout_FlatViewIgnoresCollapse(t *testing.T) {
	t.Parallel()

	// Hidden headers = flat view: no header rows and collapse state ignored.
	items := frames(1, 2)
	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:           items,
		CollapsedScenes: []int{1, 2},
	})

	for _, r := range l.Rows {
		assert.NotEqual(t, storyseq.RowSceneHeader, r.Kind)
	}
	count := 0
	for _, r := range l.Rows {
		if r.Kind == storyseq.RowPrompt {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestComputeLayout_Empty(t *testing.T) {
	t.Parallel()

	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{ShowSceneHeaders: true})
	assert.Empty(t, l.Rows)
	assert.Zero(t, l.TotalHeight)
	assert.Empty(t, l.Visible(0, 500))
}

func TestLayout_VisibleWindow(t *testing.T) {
	t.Parallel()

	// Enough frames that some rows fall outside any given window.
	var scenes []int
	for i := 0; i < 40; i++ {
		scenes = append(scenes, i/5+1)
	}
	items := frames(scenes...)

	geo := testGeometry()
	l := storyseq.ComputeLayout(geo, storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})

	scrollTop, height := 300, 200
	visible := l.Visible(scrollTop, height)
	require.NotEmpty(t, visible)

	// Exactness: a row is visible iff its interval intersects the buffered
	// window.
	lo, hi := scrollTop-geo.Buffer, scrollTop+height+geo.Buffer
	wantCount := 0
	for _, r := range l.Rows {
		if r.Top+r.Height > lo && r.Top < hi {
			wantCount++
		}
	}
	assert.Len(t, visible, wantCount)
	for _, r := range visible {
		assert.Greater(t, r.Top+r.Height, lo)
		assert.Less(t, r.Top, hi)
	}
}

func TestLayout_VisibleFallbackViewport(t *testing.T) {
	t.Parallel()

	items := frames(1, 1)
	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})

	// Unknown container height falls back to the geometry default.
	assert.Equal(t, l.Visible(0, 200), l.Visible(0, 0))
}

func TestLayout_FrameOffset(t *testing.T) {
	t.Parallel()

	items := frames(1, 1, 2)
	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})

	top, ok := l.FrameOffset(2)
	require.True(t, ok)
	wantTop := l.Rows[0].Height + l.Rows[1].Height + l.Rows[2].Height
	assert.Equal(t, wantTop, top)

	_, ok = l.FrameOffset(99)
	assert.False(t, ok)

	// A frame inside a collapsed scene has no laid-out position.
	collapsed := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
		CollapsedScenes:  []int{1},
	})
	_, ok = collapsed.FrameOffset(1)
	assert.False(t, ok)
}

func TestLayout_SceneOffset(t *testing.T) {
	t.Parallel()

	items := frames(1, 2)
	l := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})

	top, ok := l.SceneOffset(1)
	require.True(t, ok)
	assert.Zero(t, top)

	_, ok = l.SceneOffset(7)
	assert.False(t, ok)

	// Headers hidden: no scene positions exist.
	flat := storyseq.ComputeLayout(testGeometry(), storyseq.LayoutInput{Items: items})
	_, ok = flat.SceneOffset(1)
	assert.False(t, ok)
}

func TestComputeLayout_ExpandedContextHeight(t *testing.T) {
	t.Parallel()

	items := frames(1)
	geo := testGeometry()

	collapsed := storyseq.ComputeLayout(geo, storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})
	expanded := storyseq.ComputeLayout(geo, storyseq.LayoutInput{
		Items:                 items,
		ShowSceneHeaders:      true,
		ExpandedSceneContexts: []int{1},
	})

	assert.Equal(t, geo.SceneContextCollapsedHeight+geo.SceneContextMargin, collapsed.Rows[1].Height)
	assert.Equal(t, geo.SceneContextHeight+geo.SceneContextMargin, expanded.Rows[1].Height)
}

func TestComputeLayout_NoVideoHeightAndUnknownShot(t *testing.T) {
	t.Parallel()

	items := frames(1, 1)
	items[1].ShotType = storyseq.ShotType("pan") // unmapped: no instruction line

	geo := testGeometry()
	l := storyseq.ComputeLayout(geo, storyseq.LayoutInput{
		Items:            items,
		ShowSceneHeaders: true,
	})

	assert.Equal(t, geo.CardExpandedHeightNoVideo+geo.ShotInstructionHeight+geo.RowMargin, l.Rows[2].Height)
	assert.Equal(t, geo.CardExpandedHeightNoVideo+geo.RowMargin, l.Rows[3].Height)
}

func TestComputeLayout_Deterministic(t *testing.T) {
	t.Parallel()

	in := storyseq.LayoutInput{
		Items:                 frames(1, 1, 2, 1),
		ShowSceneHeaders:      true,
		CollapsedScenes:       []int{2},
		ExpandedSceneContexts: []int{1},
	}
	a := storyseq.ComputeLayout(testGeometry(), in)
	b := storyseq.ComputeLayout(testGeometry(), in)
	assert.Equal(t, a, b)
}
