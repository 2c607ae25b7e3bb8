package storyseq

// MoveToSource merges the modified item with the given frame number over
// the matching source item and removes it from the modified list. When no
// source item matches, the source list is left unchanged but the modified
// item is still dropped - orphans never append as new frames.
func MoveToSource(seq *Sequence, frame int) *Sequence {
	idx := FrameByNumber(seq.ModifiedPrompts, frame)
	if idx < 0 {
		return seq
	}
	out := seq.Clone()
	mod := out.ModifiedPrompts[idx]
	if srcIdx := FrameByNumber(out.SourcePrompts, frame); srcIdx >= 0 {
		out.SourcePrompts[srcIdx] = overlayItem(out.SourcePrompts[srcIdx], mod)
	}
	out.ModifiedPrompts = append(out.ModifiedPrompts[:idx], out.ModifiedPrompts[idx+1:]...)
	if len(out.ModifiedPrompts) == 0 {
		out.ModifiedPrompts = nil
	}
	return out
}

// MoveAllToSource merges every modified item into its matching source item
// by frame number (orphans are silently dropped), merges the modified
// scene contexts over the source map with modified values winning, then
// clears the modified list and overlay entirely.
func MoveAllToSource(seq *Sequence) *Sequence {
	out := seq.Clone()
	for _, mod := range out.ModifiedPrompts {
		if srcIdx := FrameByNumber(out.SourcePrompts, mod.FrameNumber); srcIdx >= 0 {
			out.SourcePrompts[srcIdx] = overlayItem(out.SourcePrompts[srcIdx], mod)
		}
	}
	if len(out.ModifiedSceneContexts) > 0 {
		if out.SceneContexts == nil {
			out.SceneContexts = make(map[string]string, len(out.ModifiedSceneContexts))
		}
		for k, v := range out.ModifiedSceneContexts {
			out.SceneContexts[k] = v
		}
	}
	out.ModifiedPrompts = nil
	out.ModifiedSceneContexts = nil
	return out
}

// ClearModified empties the modified list and overlay without touching the
// source.
func ClearModified(seq *Sequence) *Sequence {
	out := seq.Clone()
	out.ModifiedPrompts = nil
	out.ModifiedSceneContexts = nil
	return out
}

// ClearAll wipes the source list and everything derived from it: the
// modified overlay, selection, collapse sets and scene contexts. Unknown
// persisted fields still round-trip via Extra.
func ClearAll(seq *Sequence) *Sequence {
	out := seq.Clone()
	out.SourcePrompts = nil
	out.ModifiedPrompts = nil
	out.CheckedFrameNumbers = nil
	out.CollapsedScenes = nil
	out.CollapsedModifiedScenes = nil
	out.CollapsedOutputScenes = nil
	out.SceneContexts = nil
	out.ModifiedSceneContexts = nil
	out.ExpandedSceneContexts = nil
	return out
}

// MergedSceneContexts returns the display view of scene contexts: the
// modified overlay merged over the source map, modified values winning.
func MergedSceneContexts(seq *Sequence) map[string]string {
	out := make(map[string]string, len(seq.SceneContexts)+len(seq.ModifiedSceneContexts))
	for k, v := range seq.SceneContexts {
		out[k] = v
	}
	for k, v := range seq.ModifiedSceneContexts {
		out[k] = v
	}
	return out
}

// ContextModified reports whether a scene's context is overridden by the
// modified overlay, for the "modified" indicator.
func ContextModified(seq *Sequence, scene int) bool {
	_, ok := seq.ModifiedSceneContexts[sceneKey(scene)]
	return ok
}

// overlayItem merges a modified item's fields over a source item,
// field-by-field with modified winning. Per-pane collapse state stays with
// the source item: it is view state, not content.
func overlayItem(src, mod PromptItem) PromptItem {
	mod.IsCollapsed = src.IsCollapsed
	return mod
}
