package storyseq

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
)

// DocumentType is the type discriminator of the canonical exchange shape.
const DocumentType = "script-prompt-modifier-data"

// ErrUnknownShape is returned when a payload matches none of the accepted
// exchange shapes. Callers treat it as "ignore, don't update" rather than
// a hard failure.
var ErrUnknownShape = errors.New("storyseq: unrecognized payload shape")

// Ingest is the normalized result of reading an external payload.
type Ingest struct {
	Prompts        []PromptItem
	SceneContexts  map[string]string
	UsedCharacters []UsedCharacter
	StyleOverride  string
}

// ExportPrompt is one frame in the canonical export document.
type ExportPrompt struct {
	FrameNumber int      `json:"frameNumber"`
	SceneNumber int      `json:"sceneNumber"`
	SceneTitle  string   `json:"sceneTitle,omitempty"`
	Characters  []string `json:"characters"`
	Duration    float64  `json:"duration"`
	Prompt      string   `json:"prompt"`
	ShotType    ShotType `json:"shotType"`
}

// ExportVideoPrompt is one video-prompt entry in the export document.
type ExportVideoPrompt struct {
	SceneNumber int      `json:"sceneNumber"`
	SceneTitle  string   `json:"sceneTitle,omitempty"`
	FrameNumber int      `json:"frameNumber"`
	VideoPrompt string   `json:"videoPrompt"`
	ShotType    ShotType `json:"shotType"`
}

// ExportDocument is the canonical exchange document written by save and
// export actions and accepted back by ingestion.
type ExportDocument struct {
	Type           string              `json:"type"`
	Title          string              `json:"title,omitempty"`
	UsedCharacters []UsedCharacter     `json:"usedCharacters"`
	SceneContexts  map[string]string   `json:"sceneContexts,omitempty"`
	FinalPrompts   []ExportPrompt      `json:"finalPrompts"`
	VideoPrompts   []ExportVideoPrompt `json:"videoPrompts"`
}

// BuildExport assembles the canonical export document from a sequence.
func BuildExport(title string, seq *Sequence) *ExportDocument {
	doc := &ExportDocument{
		Type:           DocumentType,
		Title:          title,
		UsedCharacters: seq.UsedCharacters,
		SceneContexts:  seq.SceneContexts,
	}
	for _, item := range seq.SourcePrompts {
		doc.FinalPrompts = append(doc.FinalPrompts, ExportPrompt{
			FrameNumber: item.FrameNumber,
			SceneNumber: item.SceneNumber,
			SceneTitle:  item.SceneTitle,
			Characters:  item.Characters,
			Duration:    item.Duration,
			Prompt:      item.Prompt,
			ShotType:    item.ShotType,
		})
		doc.VideoPrompts = append(doc.VideoPrompts, ExportVideoPrompt{
			SceneNumber: item.SceneNumber,
			SceneTitle:  item.SceneTitle,
			FrameNumber: item.FrameNumber,
			VideoPrompt: item.VideoPrompt,
			ShotType:    item.ShotType,
		})
	}
	return doc
}

// promptPayload is a prompt-like object from any exchange shape, with
// pointer fields distinguishing "absent" from zero values.
type promptPayload struct {
	FrameNumber int       `json:"frameNumber"`
	SceneNumber *int      `json:"sceneNumber"`
	SceneTitle  string    `json:"sceneTitle"`
	Prompt      string    `json:"prompt"`
	VideoPrompt string    `json:"videoPrompt"`
	ShotType    ShotType  `json:"shotType"`
	Characters  []string  `json:"characters"`
	Duration    *float64  `json:"duration"`
	IsCollapsed *bool     `json:"isCollapsed"`
}

// documentPayload covers the object exchange shapes for sniffing.
type documentPayload struct {
	Type            string            `json:"type"`
	Title           string            `json:"title"`
	FinalPrompts    []promptPayload   `json:"finalPrompts"`
	Prompts         []promptPayload   `json:"prompts"`
	VideoPrompts    []promptPayload   `json:"videoPrompts"`
	SourcePrompts   []promptPayload   `json:"sourcePrompts"`
	ModifiedPrompts []promptPayload   `json:"modifiedPrompts"`
	StyleOverride   string            `json:"styleOverride"`
	UsedCharacters  []UsedCharacter   `json:"usedCharacters"`
	SceneContexts   map[string]string `json:"sceneContexts"`
}

// ParsePayload detects one of the accepted exchange shapes and normalizes
// it to canonical prompt items. In precedence order: the typed
// script-prompt-modifier-data document, a source+modified overlay, a bare
// prompt array, and a {prompts:[...]} wrapper. Per-frame collapse state is
// preserved from the existing local items where frame numbers match, and
// defaults to collapsed otherwise.
func ParsePayload(data []byte, existing []PromptItem) (*Ingest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrUnknownShape
	}

	collapse := collapseStates(existing)

	// Bare array of prompt-like objects.
	if trimmed[0] == '[' {
		var raw []promptPayload
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, ErrUnknownShape
		}
		return &Ingest{Prompts: normalizePayload(raw, collapse)}, nil
	}

	var doc documentPayload
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, ErrUnknownShape
	}

	switch {
	case doc.Type == DocumentType:
		prompts := doc.FinalPrompts
		if len(prompts) == 0 {
			prompts = doc.Prompts
		}
		items := normalizePayload(prompts, collapse)
		items = mergeVideoPrompts(items, doc.VideoPrompts)
		return &Ingest{
			Prompts:        items,
			SceneContexts:  doc.SceneContexts,
			UsedCharacters: doc.UsedCharacters,
			StyleOverride:  doc.StyleOverride,
		}, nil

	case doc.SourcePrompts != nil || doc.ModifiedPrompts != nil:
		items := normalizePayload(doc.SourcePrompts, collapse)
		overlay := normalizePayload(doc.ModifiedPrompts, collapse)
		for _, mod := range overlay {
			if idx := FrameByNumber(items, mod.FrameNumber); idx >= 0 {
				items[idx] = mod
			}
		}
		return &Ingest{Prompts: items, SceneContexts: doc.SceneContexts}, nil

	case doc.Prompts != nil:
		return &Ingest{Prompts: normalizePayload(doc.Prompts, collapse)}, nil
	}

	return nil, ErrUnknownShape
}

// normalizePayload converts raw prompt-like objects to canonical items,
// defaulting missing fields and sorting by frame number.
func normalizePayload(raw []promptPayload, collapse map[int]bool) []PromptItem {
	if raw == nil {
		return nil
	}
	items := make([]PromptItem, 0, len(raw))
	for _, p := range raw {
		item := PromptItem{
			FrameNumber: p.FrameNumber,
			SceneNumber: DefaultSceneNumber,
			SceneTitle:  p.SceneTitle,
			Prompt:      p.Prompt,
			VideoPrompt: p.VideoPrompt,
			ShotType:    p.ShotType,
			Characters:  p.Characters,
			Duration:    DefaultDuration,
			IsCollapsed: true,
		}
		if p.SceneNumber != nil && *p.SceneNumber > 0 {
			item.SceneNumber = *p.SceneNumber
		}
		if p.Duration != nil && *p.Duration > 0 {
			item.Duration = *p.Duration
		}
		// Local collapse state wins over whatever the payload carries.
		if state, ok := collapse[p.FrameNumber]; ok {
			item.IsCollapsed = state
		} else if p.IsCollapsed != nil {
			item.IsCollapsed = *p.IsCollapsed
		}
		items = append(items, NormalizeItem(item))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].FrameNumber < items[j].FrameNumber
	})
	return items
}

// mergeVideoPrompts attaches video prompt text to items by frame number.
func mergeVideoPrompts(items []PromptItem, videos []promptPayload) []PromptItem {
	for _, v := range videos {
		if v.VideoPrompt == "" {
			continue
		}
		if idx := FrameByNumber(items, v.FrameNumber); idx >= 0 {
			items[idx].VideoPrompt = v.VideoPrompt
		}
	}
	return items
}

// collapseStates indexes existing per-frame collapse state by frame number.
func collapseStates(items []PromptItem) map[int]bool {
	if len(items) == 0 {
		return nil
	}
	out := make(map[int]bool, len(items))
	for _, item := range items {
		out[item.FrameNumber] = item.IsCollapsed
	}
	return out
}
