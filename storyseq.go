// Package storyseq provides domain types for editing scene-grouped
// generative-AI prompt sequences.
package storyseq

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a named entry does not exist.
var ErrNotFound = errors.New("storyseq: not found")

// ShotType identifies the camera framing of a frame prompt.
type ShotType string

// Shot types.
const (
	ShotWide         ShotType = "WS"
	ShotMedium       ShotType = "MS"
	ShotCloseUp      ShotType = "CU"
	ShotExtremeClose ShotType = "ECU"
	ShotLong         ShotType = "LS"
)

// Defaults applied when a field is missing from an incoming payload.
const (
	DefaultShotType    = ShotWide
	DefaultDuration    = 3.0
	DefaultSceneNumber = 1
)

// PromptItem is one frame of a sequence: the atomic editable unit.
// Frame numbers are positional, not sticky IDs - structural edits renumber
// the whole list densely from 1.
type PromptItem struct {
	FrameNumber int      `json:"frameNumber"`
	SceneNumber int      `json:"sceneNumber"`
	SceneTitle  string   `json:"sceneTitle,omitempty"`
	Prompt      string   `json:"prompt"`
	VideoPrompt string   `json:"videoPrompt,omitempty"`
	ShotType    ShotType `json:"shotType"`
	Characters  []string `json:"characters"`
	Duration    float64  `json:"duration"`
	IsCollapsed bool     `json:"isCollapsed"`
}

// Scene is a contiguous run of frames sharing a scene number in authored
// order. Derived from the prompt list, never stored.
type Scene struct {
	Scene   int
	Title   string
	Prompts []PromptItem
}

// UsedCharacter is one entry of the declared-character registry used for
// cross-reference validation of entity tags.
type UsedCharacter struct {
	Index string `json:"index"` // canonical tag, e.g. "Entity-1"
	Name  string `json:"name"`
}

// Dimension holds reported pixel dimensions of a generated image.
type Dimension struct {
	Width  int
	Height int
}

// Segment represents a portion of text within a prompt for word-level
// diffing between source and modified versions.
type Segment struct {
	Text    string // The text content of this segment
	Changed bool   // True if this segment differs between old/new versions
}

// WordDiffer computes word-level differences between two strings.
type WordDiffer interface {
	// Diff returns segments for both the old and new strings,
	// marking which portions changed between them.
	Diff(old, new string) (oldSegs, newSegs []Segment)
}

// TransformRequest carries the frames and context handed to an AI rewrite
// step.
type TransformRequest struct {
	Prompts        []PromptItem
	SceneContexts  map[string]string
	UsedCharacters []UsedCharacter
	StyleOverride  string
	Instruction    string
}

// TransformResult is the modified overlay produced by a rewrite step. Items
// are matched back to the source list by frame number.
type TransformResult struct {
	Prompts       []PromptItem
	SceneContexts map[string]string
}

// Transformer rewrites prompt text, producing an overlay for review.
type Transformer interface {
	Transform(ctx context.Context, req TransformRequest) (*TransformResult, error)
}

// CatalogEntry describes one saved sequence in a catalog.
type CatalogEntry struct {
	Name    string    `json:"name"`
	Frames  int       `json:"frames"`
	SavedAt time.Time `json:"savedAt"`
}

// CatalogStore persists named sequences.
type CatalogStore interface {
	List(ctx context.Context) ([]CatalogEntry, error)
	Save(ctx context.Context, name string, seq *Sequence) error
	Load(ctx context.Context, name string) (*Sequence, error)
	Delete(ctx context.Context, name string) error
}

// DocumentStore loads and saves exchange documents on disk.
type DocumentStore interface {
	// Load reads and normalizes an external payload into canonical form.
	Load(path string) (*Ingest, error)
	// Save writes the canonical export document.
	Save(path string, doc *ExportDocument) error
}

// Clipboard provides system clipboard access.
type Clipboard interface {
	Copy(content string) error
	Paste() (string, error)
}

// Severity classifies a user-facing notification.
type Severity int

// Notification severities.
const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// Notifier surfaces transient, non-fatal notices to the user.
type Notifier interface {
	Notify(message string, severity Severity)
}

// ImageCache is a side-table of full-resolution images keyed by node and
// slot. The editor never assumes an entry is present and falls back to the
// thumbnail embedded in the canonical value on a miss.
type ImageCache interface {
	Get(nodeID string, slot int) ([]byte, bool)
	Set(nodeID string, slot int, data []byte) error
	// Purge removes all entries for a node; called when the node is deleted.
	Purge(nodeID string) error
}

// Highlighter renders source text with syntax highlighting for terminal
// display.
type Highlighter interface {
	Highlight(source, language string) (string, error)
}

// Regenerator re-renders a frame's image at a new aspect class. The actual
// generation pipeline lives outside this module.
type Regenerator interface {
	Expand(ctx context.Context, frameNumber int, aspect AspectClass) error
}

// Viewer displays an editing session and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, session *Session) error
}
