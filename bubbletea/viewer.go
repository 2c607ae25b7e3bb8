package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.Viewer = (*Viewer)(nil)

// Viewer implements storyseq.Viewer using a Bubble Tea TUI.
type Viewer struct {
	programOpts []tea.ProgramOption
	modelOpts   []EditorOption
}

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithProgramOptions adds Bubble Tea program options, e.g. custom IO for
// tests.
func WithProgramOptions(opts ...tea.ProgramOption) ViewerOption {
	return func(v *Viewer) {
		v.programOpts = append(v.programOpts, opts...)
	}
}

// WithModelOptions adds editor model options.
func WithModelOptions(opts ...EditorOption) ViewerOption {
	return func(v *Viewer) {
		v.modelOpts = append(v.modelOpts, opts...)
	}
}

// NewViewer creates a new Viewer.
func NewViewer(opts ...ViewerOption) *Viewer {
	v := &Viewer{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View displays the editing session and blocks until the user exits or the
// context is cancelled.
func (v *Viewer) View(ctx context.Context, session *storyseq.Session) error {
	m := NewEditorModel(session, v.modelOpts...)
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, v.programOpts...)
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}

// Compile-time interface verification.
var _ storyseq.Viewer = (*GalleryViewer)(nil)

// GalleryViewer implements storyseq.Viewer with the output image gallery
// instead of the editor panes.
type GalleryViewer struct {
	programOpts []tea.ProgramOption
	modelOpts   []GalleryOption
}

// GalleryViewerOption configures a GalleryViewer.
type GalleryViewerOption func(*GalleryViewer)

// WithGalleryProgramOptions adds Bubble Tea program options.
func WithGalleryProgramOptions(opts ...tea.ProgramOption) GalleryViewerOption {
	return func(v *GalleryViewer) {
		v.programOpts = append(v.programOpts, opts...)
	}
}

// WithGalleryModelOptions adds gallery model options.
func WithGalleryModelOptions(opts ...GalleryOption) GalleryViewerOption {
	return func(v *GalleryViewer) {
		v.modelOpts = append(v.modelOpts, opts...)
	}
}

// NewGalleryViewer creates a new GalleryViewer.
func NewGalleryViewer(opts ...GalleryViewerOption) *GalleryViewer {
	v := &GalleryViewer{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View displays the gallery and blocks until the user exits or the context
// is cancelled.
func (v *GalleryViewer) View(ctx context.Context, session *storyseq.Session) error {
	m := NewGalleryModel(session, v.modelOpts...)
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, v.programOpts...)
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}
