package storyseq

import "github.com/storyseq/storyseq/entitytag"

// ReindexLocalCharacters renumbers locally added character concepts so
// they start at the first index past the highest upstream-provided one and
// increment sequentially. Locals never claim an index already used
// upstream. Called whenever the local list changes (add/delete/move).
func ReindexLocalCharacters(upstream, local []UsedCharacter) []UsedCharacter {
	base := 0
	for _, c := range upstream {
		if n, ok := entitytag.Number(c.Index); ok && n > base {
			base = n
		}
	}
	out := make([]UsedCharacter, len(local))
	for i, c := range local {
		c.Index = entitytag.Normalize(base + i + 1)
		out[i] = c
	}
	return out
}

// MergeCharacters combines an upstream character registry with the current
// local one. Upstream entries come through unchanged; current entries whose
// index matches no upstream entry are treated as locally added, reindexed
// past the upstream maximum, and appended.
func MergeCharacters(upstream, current []UsedCharacter) []UsedCharacter {
	if len(current) == 0 {
		return upstream
	}
	claimed := make(map[int]bool, len(upstream))
	for _, c := range upstream {
		if n, ok := entitytag.Number(c.Index); ok {
			claimed[n] = true
		}
	}
	var local []UsedCharacter
	for _, c := range current {
		if n, ok := entitytag.Number(c.Index); ok && claimed[n] {
			continue
		}
		local = append(local, c)
	}
	if len(local) == 0 {
		return upstream
	}
	out := make([]UsedCharacter, 0, len(upstream)+len(local))
	out = append(out, upstream...)
	return append(out, ReindexLocalCharacters(upstream, local)...)
}

// CharacterName resolves a tag to its registered display name, or empty if
// the tag is unregistered.
func CharacterName(registry []UsedCharacter, tag string) string {
	n, ok := entitytag.Number(tag)
	if !ok {
		return ""
	}
	for _, c := range registry {
		if cn, ok := entitytag.Number(c.Index); ok && cn == n {
			return c.Name
		}
	}
	return ""
}
