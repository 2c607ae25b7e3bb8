package storyseq_test

import (
	"testing"

	"github.com/storyseq/storyseq"
	"github.com/stretchr/testify/assert"
)

func TestReindexLocalCharacters(t *testing.T) {
	t.Parallel()

	upstream := []storyseq.UsedCharacter{
		{Index: "Entity-1", Name: "Mara"},
		{Index: "Entity-2", Name: "Joon"},
	}
	local := []storyseq.UsedCharacter{
		{Index: "Entity-1", Name: "Extra A"}, // stale local index
		{Index: "Entity-9", Name: "Extra B"},
	}

	out := storyseq.ReindexLocalCharacters(upstream, local)

	// Locals start past the highest upstream index and never collide.
	assert.Equal(t, []storyseq.UsedCharacter{
		{Index: "Entity-3", Name: "Extra A"},
		{Index: "Entity-4", Name: "Extra B"},
	}, out)
}

func TestReindexLocalCharacters_NoUpstream(t *testing.T) {
	t.Parallel()

	local := []storyseq.UsedCharacter{{Index: "Entity-5", Name: "Solo"}}
	out := storyseq.ReindexLocalCharacters(nil, local)
	assert.Equal(t, "Entity-1", out[0].Index)
}

func TestMergeCharacters(t *testing.T) {
	t.Parallel()

	upstream := []storyseq.UsedCharacter{
		{Index: "Entity-1", Name: "Mara"},
		{Index: "Entity-2", Name: "Joon"},
	}
	current := []storyseq.UsedCharacter{
		{Index: "Entity-1", Name: "Mara"},    // mirrors upstream, dropped
		{Index: "Entity-5", Name: "Extra A"}, // locally added
	}

	out := storyseq.MergeCharacters(upstream, current)

	// Upstream entries lead unchanged; the local one reindexes past them.
	assert.Equal(t, []storyseq.UsedCharacter{
		{Index: "Entity-1", Name: "Mara"},
		{Index: "Entity-2", Name: "Joon"},
		{Index: "Entity-3", Name: "Extra A"},
	}, out)

	assert.Equal(t, upstream, storyseq.MergeCharacters(upstream, nil))
	assert.Equal(t, upstream, storyseq.MergeCharacters(upstream, upstream))
}

func TestCharacterName(t *testing.T) {
	t.Parallel()

	registry := []storyseq.UsedCharacter{{Index: "Entity-2", Name: "Joon"}}

	assert.Equal(t, "Joon", storyseq.CharacterName(registry, "Entity-2"))
	assert.Equal(t, "Joon", storyseq.CharacterName(registry, "character-2"))
	assert.Empty(t, storyseq.CharacterName(registry, "Entity-8"))
	assert.Empty(t, storyseq.CharacterName(registry, "garbled"))
}
