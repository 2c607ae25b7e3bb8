// Package gemini provides the AI prompt-rewrite step using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.Transformer = (*Transformer)(nil)

// DefaultTimeout bounds one rewrite call. Batch callers set their own
// deadline on the parent context instead.
const DefaultTimeout = 2 * time.Minute

// Transformer implements storyseq.Transformer using Google Gemini. It
// rewrites frame prompts per a style instruction and returns the result as
// a modified overlay matched back to the source by frame number.
type Transformer struct {
	client  GenerativeClient
	model   string
	timeout time.Duration
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithModel overrides the default model.
func WithModel(model string) TransformerOption {
	return func(t *Transformer) {
		t.model = model
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) TransformerOption {
	return func(t *Transformer) {
		t.timeout = d
	}
}

// NewTransformer creates a new Transformer.
func NewTransformer(client GenerativeClient, opts ...TransformerOption) *Transformer {
	t := &Transformer{
		client:  client,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// transformResponse is the JSON shape the model is asked to produce.
type transformResponse struct {
	Prompts []struct {
		FrameNumber int    `json:"frameNumber"`
		Prompt      string `json:"prompt"`
		VideoPrompt string `json:"videoPrompt"`
	} `json:"prompts"`
	SceneContexts map[string]string `json:"sceneContexts"`
}

// Transform rewrites the requested frames' prompts. Returned frames that
// match no requested frame number are dropped; characters lists are
// reconciled against the rewritten text so entity tags stay consistent.
func (t *Transformer) Transform(ctx context.Context, req storyseq.TransformRequest) (*storyseq.TransformResult, error) {
	if len(req.Prompts) == 0 {
		return &storyseq.TransformResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	contents := []*Content{{
		Parts: []*Part{{Text: BuildPrompt(req)}},
	}}

	resp, err := t.client.GenerateContent(ctx, t.model, contents, BuildConfig())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	var out transformResponse
	if err := json.Unmarshal([]byte(resp.Text), &out); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	rewrites := make(map[int]struct{ prompt, video string }, len(out.Prompts))
	for _, p := range out.Prompts {
		rewrites[p.FrameNumber] = struct{ prompt, video string }{p.Prompt, p.VideoPrompt}
	}

	result := &storyseq.TransformResult{SceneContexts: out.SceneContexts}
	for _, src := range req.Prompts {
		rw, ok := rewrites[src.FrameNumber]
		if !ok || rw.prompt == "" {
			continue
		}
		item := storyseq.SetPromptText(src, rw.prompt)
		if rw.video != "" {
			item = storyseq.SetVideoPrompt(item, rw.video)
		}
		result.Prompts = append(result.Prompts, item)
	}
	return result, nil
}

// BuildPrompt creates the user prompt for the Gemini API.
func BuildPrompt(req storyseq.TransformRequest) string {
	var sb strings.Builder
	sb.WriteString("You are rewriting image-generation prompts for a frame sequence.\n\n")

	if req.Instruction != "" {
		sb.WriteString("## Instruction\n\n")
		sb.WriteString(req.Instruction)
		sb.WriteString("\n\n")
	}
	if req.StyleOverride != "" {
		fmt.Fprintf(&sb, "## Style\n\n%s\n\n", req.StyleOverride)
	}

	if len(req.UsedCharacters) > 0 {
		sb.WriteString("## Characters\n\n")
		sb.WriteString("Refer to characters only by their parenthesized tag, e.g. (Entity-1).\n")
		for _, c := range req.UsedCharacters {
			fmt.Fprintf(&sb, "- (%s): %s\n", c.Index, c.Name)
		}
		sb.WriteString("\n")
	}

	if len(req.SceneContexts) > 0 {
		sb.WriteString("## Scene contexts\n\n")
		keys := make([]string, 0, len(req.SceneContexts))
		for k := range req.SceneContexts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "Scene %s: %s\n", k, req.SceneContexts[k])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Frames\n\n")
	for _, p := range req.Prompts {
		fmt.Fprintf(&sb, "[frame %d · scene %d · %s]\n%s\n\n",
			p.FrameNumber, p.SceneNumber, p.ShotType, p.Prompt)
	}

	sb.WriteString("## Task\n\n")
	sb.WriteString("Rewrite every frame's prompt per the instruction, keeping frame numbers,\n")
	sb.WriteString("shot framing and character tags intact. Update scene contexts only when\n")
	sb.WriteString("the instruction changes the setting.\n\n")
	sb.WriteString("Respond with JSON matching this schema:\n")
	sb.WriteString(`{
  "prompts": [{"frameNumber": 1, "prompt": "...", "videoPrompt": "..."}],
  "sceneContexts": {"1": "..."}
}
`)

	return sb.String()
}

// BuildConfig returns the GenerateContentConfig for rewrite calls.
func BuildConfig() *GenerateContentConfig {
	temp := float32(0.4)
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are a cinematic prompt writer. Your role is to rewrite image-generation prompts for frame sequences while preserving their structure.

Keep every (Entity-N) character tag exactly as written, honor the per-frame shot type, and never invent or drop frames.`,
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &Schema{
			Type:     "object",
			Required: []string{"prompts"},
			Properties: map[string]*Schema{
				"prompts": {
					Type: "array",
					Items: &Schema{
						Type:             "object",
						Required:         []string{"frameNumber", "prompt"},
						PropertyOrdering: []string{"frameNumber", "prompt", "videoPrompt"},
						Properties: map[string]*Schema{
							"frameNumber": {Type: "integer"},
							"prompt":      {Type: "string"},
							"videoPrompt": {Type: "string"},
						},
					},
				},
				"sceneContexts": {
					Type:        "object",
					Description: "Scene context text keyed by scene number.",
				},
			},
		},
	}
}

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

// Content represents a message in a Gemini conversation.
type Content struct {
	Parts []*Part
}

// Part represents a part of a message.
type Part struct {
	Text string
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction *Content
	Temperature       *float32
	ResponseMIMEType  string
	ResponseSchema    *Schema
	ThinkingLevel     string // "", "MINIMAL", "LOW", "MEDIUM", "HIGH"
}

// Schema represents the structure for controlled JSON generation.
type Schema struct {
	Type             string             // object, array, string, integer, number, boolean
	Properties       map[string]*Schema // For object types
	Items            *Schema            // For array types
	Enum             []string           // For string enums
	Required         []string           // Required property names
	PropertyOrdering []string           // Order of properties in output
	Description      string             // Field description
}

// GenerateContentResponse holds the response from content generation.
type GenerateContentResponse struct {
	Text string
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, model, contents, config)
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}
