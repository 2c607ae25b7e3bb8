package bubbletea_test

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/storyseq/storyseq"
	"github.com/storyseq/storyseq/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gallerySession builds a session with frames split across two scenes.
func gallerySession() *storyseq.Session {
	items := []storyseq.PromptItem{
		storyseq.NewPromptItem(1, 1),
		storyseq.NewPromptItem(2, 1),
		storyseq.NewPromptItem(3, 2),
	}
	return storyseq.NewSession(&storyseq.Sequence{SourcePrompts: items})
}

func galleryStep(t *testing.T, m bubbletea.GalleryModel, msg tea.Msg) (bubbletea.GalleryModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(bubbletea.GalleryModel)
	require.True(t, ok)
	return next, cmd
}

func TestGalleryModel_RendersGrid(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewGalleryModel(gallerySession())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Scene 1 (2)")) &&
			bytes.Contains(out, []byte("Scene 2 (1)")) &&
			bytes.Contains(out, []byte("gallery"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestGalleryModel_ToggleCheck(t *testing.T) {
	t.Parallel()

	session := gallerySession()
	m := bubbletea.NewGalleryModel(session)
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = galleryStep(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []int{1}, session.Snapshot().CheckedFrameNumbers)

	// Move right, check frame 2 too.
	m, _ = galleryStep(t, m, keyRunes("l"))
	m, _ = galleryStep(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []int{1, 2}, session.Snapshot().CheckedFrameNumbers)
}

func TestGalleryModel_SelectByAspect(t *testing.T) {
	t.Parallel()

	session := gallerySession()
	m := bubbletea.NewGalleryModel(session)
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = galleryStep(t, m, bubbletea.DimensionMsg{Frame: 1, Dim: storyseq.Dimension{Width: 1920, Height: 1080}})
	m, _ = galleryStep(t, m, bubbletea.DimensionMsg{Frame: 2, Dim: storyseq.Dimension{Width: 800, Height: 1000}})
	m, _ = galleryStep(t, m, bubbletea.DimensionMsg{Frame: 3, Dim: storyseq.Dimension{Width: 1000, Height: 1000}})

	m, _ = galleryStep(t, m, keyRunes("1"))
	assert.Equal(t, []int{1}, session.Snapshot().CheckedFrameNumbers)

	m, _ = galleryStep(t, m, keyRunes("2"))
	assert.Equal(t, []int{2}, session.Snapshot().CheckedFrameNumbers)

	m, _ = galleryStep(t, m, keyRunes("3"))
	assert.Equal(t, []int{3}, session.Snapshot().CheckedFrameNumbers)

	m, _ = galleryStep(t, m, keyRunes("A"))
	assert.Empty(t, session.Snapshot().CheckedFrameNumbers)
}

func TestGalleryModel_SelectByAspectEmptyMatch(t *testing.T) {
	t.Parallel()

	session := gallerySession()
	session.Apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		seq.CheckedFrameNumbers = []int{1}
		return seq
	})

	m := bubbletea.NewGalleryModel(session)
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	// No dimensions reported yet, so nothing matches and the current
	// selection stays untouched.
	_, cmd := galleryStep(t, m, keyRunes("1"))
	assert.NotNil(t, cmd)
	assert.Equal(t, []int{1}, session.Snapshot().CheckedFrameNumbers)
}

func TestGalleryModel_ZipExportUsesCheckedFrames(t *testing.T) {
	t.Parallel()

	var captured []int
	zip := func(ctx context.Context, frames []int) error {
		captured = frames
		return nil
	}

	session := gallerySession()
	session.Apply(func(seq *storyseq.Sequence) *storyseq.Sequence {
		seq.CheckedFrameNumbers = []int{1, 3}
		return seq
	})

	m := bubbletea.NewGalleryModel(session, bubbletea.WithGalleryZip(zip))
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := galleryStep(t, m, keyRunes("z"))
	require.NotNil(t, cmd)
	cmd() // run the background export synchronously
	assert.Equal(t, []int{1, 3}, captured)
}

func TestGalleryModel_ZipExportFallsBackToAllFrames(t *testing.T) {
	t.Parallel()

	var captured []int
	zip := func(ctx context.Context, frames []int) error {
		captured = frames
		return nil
	}

	m := bubbletea.NewGalleryModel(gallerySession(), bubbletea.WithGalleryZip(zip))
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := galleryStep(t, m, keyRunes("z"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []int{1, 2, 3}, captured)
}

func TestGalleryModel_ExpandFrame(t *testing.T) {
	t.Parallel()

	regen := &captureRegenerator{}
	m := bubbletea.NewGalleryModel(gallerySession(), bubbletea.WithGalleryRegenerator(regen))
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = galleryStep(t, m, bubbletea.DimensionMsg{Frame: 1, Dim: storyseq.Dimension{Width: 1920, Height: 1080}})
	m, cmd := galleryStep(t, m, keyRunes("x"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, regen.frame)
	assert.Equal(t, storyseq.AspectLandscape, regen.aspect)
}

func TestGalleryModel_CollapsedSceneSkipsFrames(t *testing.T) {
	t.Parallel()

	session := gallerySession()
	m := bubbletea.NewGalleryModel(session)
	m, _ = galleryStep(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = galleryStep(t, m, keyRunes("c")) // collapse scene 1 (cursor is on frame 1)
	assert.Equal(t, []int{1}, session.Snapshot().CollapsedOutputScenes)

	// Cursor movement lands on scene 2's frame, the only visible one.
	m, _ = galleryStep(t, m, keyRunes("j"))
	m, _ = galleryStep(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []int{3}, session.Snapshot().CheckedFrameNumbers)
}

// captureRegenerator records the last Expand call.
type captureRegenerator struct {
	frame  int
	aspect storyseq.AspectClass
}

func (r *captureRegenerator) Expand(ctx context.Context, frameNumber int, aspect storyseq.AspectClass) error {
	r.frame = frameNumber
	r.aspect = aspect
	return nil
}
