package storyseq

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Sequence is the canonical persisted value of one editing session. It is
// serialized as a single JSON object; every interactive edit is a
// read-modify-write of the whole document. Unknown fields round-trip
// unchanged through Extra.
type Sequence struct {
	SourcePrompts           []PromptItem      `json:"sourcePrompts"`
	ModifiedPrompts         []PromptItem      `json:"modifiedPrompts,omitempty"`
	CheckedFrameNumbers     []int             `json:"checkedFrameNumbers,omitempty"`
	CollapsedScenes         []int             `json:"collapsedScenes,omitempty"`
	CollapsedModifiedScenes []int             `json:"collapsedModifiedScenes,omitempty"`
	CollapsedOutputScenes   []int             `json:"collapsedOutputScenes,omitempty"`
	SceneContexts           map[string]string `json:"sceneContexts,omitempty"`
	ModifiedSceneContexts   map[string]string `json:"modifiedSceneContexts,omitempty"`
	ExpandedSceneContexts   []int             `json:"expandedSceneContexts,omitempty"`
	UsedCharacters          []UsedCharacter   `json:"usedCharacters,omitempty"`
	StyleOverride           string            `json:"styleOverride,omitempty"`
	SourcePaneWidth         int               `json:"sourcePaneWidth,omitempty"`
	ModifiedPaneWidth       int               `json:"modifiedPaneWidth,omitempty"`
	Model                   string            `json:"model,omitempty"`
	FrameStatus             map[string]string `json:"frameStatus,omitempty"`

	// Extra preserves fields this editor does not understand.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownSequenceKeys are the JSON keys owned by Sequence; everything else
// is passed through via Extra. Read aliases map legacy key names used by
// other node types onto the canonical fields.
var knownSequenceKeys = map[string]bool{
	"sourcePrompts": true, "prompts": true,
	"modifiedPrompts":     true,
	"checkedFrameNumbers": true, "checkedSourceFrameNumbers": true,
	"collapsedScenes": true, "collapsedSourceScenes": true,
	"collapsedModifiedScenes": true,
	"collapsedOutputScenes":   true,
	"sceneContexts":           true,
	"modifiedSceneContexts":   true,
	"expandedSceneContexts":   true,
	"usedCharacters":          true,
	"styleOverride":           true,
	"sourcePaneWidth":         true,
	"modifiedPaneWidth":       true,
	"model":                   true,
	"frameStatus":             true,
}

// unmarshalInto decodes raw into v. A nil or malformed fragment leaves v
// at its zero value; field-level parse failures never propagate.
func unmarshalInto(raw json.RawMessage, v any) {
	if raw == nil {
		return
	}
	_ = json.Unmarshal(raw, v)
}

// NewSequence returns the documented empty default value.
func NewSequence() *Sequence {
	return &Sequence{}
}

// ParseSequence is the single deserialization entry point for a persisted
// value. Malformed input recovers to the empty default - parse failures
// never propagate. Missing item fields are defaulted.
func ParseSequence(data []byte) *Sequence {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewSequence()
	}
	var seq Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return NewSequence()
	}
	return &seq
}

// UnmarshalJSON fills the sequence from a JSON object, capturing unknown
// fields and accepting legacy key aliases.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	get := func(keys ...string) json.RawMessage {
		for _, k := range keys {
			if v, ok := raw[k]; ok {
				return v
			}
		}
		return nil
	}

	*s = Sequence{}
	unmarshalInto(get("sourcePrompts", "prompts"), &s.SourcePrompts)
	unmarshalInto(get("modifiedPrompts"), &s.ModifiedPrompts)
	unmarshalInto(get("checkedFrameNumbers", "checkedSourceFrameNumbers"), &s.CheckedFrameNumbers)
	unmarshalInto(get("collapsedScenes", "collapsedSourceScenes"), &s.CollapsedScenes)
	unmarshalInto(get("collapsedModifiedScenes"), &s.CollapsedModifiedScenes)
	unmarshalInto(get("collapsedOutputScenes"), &s.CollapsedOutputScenes)
	unmarshalInto(get("sceneContexts"), &s.SceneContexts)
	unmarshalInto(get("modifiedSceneContexts"), &s.ModifiedSceneContexts)
	unmarshalInto(get("expandedSceneContexts"), &s.ExpandedSceneContexts)
	unmarshalInto(get("usedCharacters"), &s.UsedCharacters)
	unmarshalInto(get("styleOverride"), &s.StyleOverride)
	unmarshalInto(get("sourcePaneWidth"), &s.SourcePaneWidth)
	unmarshalInto(get("modifiedPaneWidth"), &s.ModifiedPaneWidth)
	unmarshalInto(get("model"), &s.Model)
	unmarshalInto(get("frameStatus"), &s.FrameStatus)

	for k, v := range raw {
		if knownSequenceKeys[k] {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[k] = v
	}

	s.SourcePrompts = NormalizeItems(s.SourcePrompts)
	s.ModifiedPrompts = NormalizeItems(s.ModifiedPrompts)
	return nil
}

// MarshalJSON serializes known fields over the preserved unknown fields.
func (s Sequence) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+16)
	for k, v := range s.Extra {
		out[k] = v
	}

	put := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}

	if err := put("sourcePrompts", s.SourcePrompts); err != nil {
		return nil, err
	}
	optional := []struct {
		key   string
		v     any
		empty bool
	}{
		{"modifiedPrompts", s.ModifiedPrompts, len(s.ModifiedPrompts) == 0},
		{"checkedFrameNumbers", s.CheckedFrameNumbers, len(s.CheckedFrameNumbers) == 0},
		{"collapsedScenes", s.CollapsedScenes, len(s.CollapsedScenes) == 0},
		{"collapsedModifiedScenes", s.CollapsedModifiedScenes, len(s.CollapsedModifiedScenes) == 0},
		{"collapsedOutputScenes", s.CollapsedOutputScenes, len(s.CollapsedOutputScenes) == 0},
		{"sceneContexts", s.SceneContexts, len(s.SceneContexts) == 0},
		{"modifiedSceneContexts", s.ModifiedSceneContexts, len(s.ModifiedSceneContexts) == 0},
		{"expandedSceneContexts", s.ExpandedSceneContexts, len(s.ExpandedSceneContexts) == 0},
		{"usedCharacters", s.UsedCharacters, len(s.UsedCharacters) == 0},
		{"styleOverride", s.StyleOverride, s.StyleOverride == ""},
		{"sourcePaneWidth", s.SourcePaneWidth, s.SourcePaneWidth == 0},
		{"modifiedPaneWidth", s.ModifiedPaneWidth, s.ModifiedPaneWidth == 0},
		{"model", s.Model, s.Model == ""},
		{"frameStatus", s.FrameStatus, len(s.FrameStatus) == 0},
	}
	for _, f := range optional {
		if f.empty {
			continue
		}
		if err := put(f.key, f.v); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// Clone returns a deep copy, safe to mutate independently.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return NewSequence()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return NewSequence()
	}
	out := ParseSequence(data)
	return out
}

// Equal reports value equality via serialized comparison. Used as the
// guard that prevents reconciliation from committing a no-change update.
func Equal(a, b *Sequence) bool {
	if a == nil {
		a = NewSequence()
	}
	if b == nil {
		b = NewSequence()
	}
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// NormalizeItem fills defaults on a single prompt item read from an
// external payload: shot type WS, duration 3, scene number 1.
func NormalizeItem(item PromptItem) PromptItem {
	if item.ShotType == "" {
		item.ShotType = DefaultShotType
	}
	if item.Duration <= 0 {
		item.Duration = DefaultDuration
	}
	if item.SceneNumber <= 0 {
		item.SceneNumber = DefaultSceneNumber
	}
	return item
}

// NormalizeItems applies NormalizeItem to every item.
func NormalizeItems(items []PromptItem) []PromptItem {
	if items == nil {
		return nil
	}
	out := make([]PromptItem, len(items))
	for i, item := range items {
		out[i] = NormalizeItem(item)
	}
	return out
}

// sceneKey is the map key form of a scene number in sceneContexts.
func sceneKey(scene int) string {
	return strconv.Itoa(scene)
}

// SceneKey exposes the scene-context map key for a scene number.
func SceneKey(scene int) string {
	return sceneKey(scene)
}
