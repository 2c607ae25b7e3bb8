package storyseq

import "github.com/storyseq/storyseq/entitytag"

// Card presentation logic: keeps one frame's prompt text and its
// characters list mutually consistent. All operations are pure and return
// the updated item; invalid inputs are no-ops.

// SetPromptText replaces the prompt text and reconciles the characters
// list. Edits that leave the tag signature unchanged keep the existing
// characters slice untouched.
func SetPromptText(item PromptItem, text string) PromptItem {
	item.Characters = entitytag.Reconcile(item.Prompt, text, item.Characters)
	item.Prompt = text
	return item
}

// SetVideoPrompt replaces the companion video prompt text.
func SetVideoPrompt(item PromptItem, text string) PromptItem {
	item.VideoPrompt = text
	return item
}

// SetShotType replaces the shot type. Unknown values are a no-op.
func SetShotType(item PromptItem, t ShotType) PromptItem {
	if !t.Valid() {
		return item
	}
	item.ShotType = t
	return item
}

// RenumberCharacter changes the tag at the given position to the new
// number and rewrites every parenthesized occurrence in the prompt text.
// Numbers below 1, out-of-range positions and malformed existing tags are
// no-ops.
func RenumberCharacter(item PromptItem, position, newNumber int) PromptItem {
	if newNumber < 1 || position < 0 || position >= len(item.Characters) {
		return item
	}
	old, ok := entitytag.Number(item.Characters[position])
	if !ok {
		return item
	}
	chars := make([]string, len(item.Characters))
	copy(chars, item.Characters)
	chars[position] = entitytag.Normalize(newNumber)
	item.Characters = chars
	item.Prompt = entitytag.Renumber(item.Prompt, old, newNumber)
	return item
}

// RemoveCharacter deletes the tag at the given position and strips its
// parenthesized occurrences from the prompt text.
func RemoveCharacter(item PromptItem, position int) PromptItem {
	if position < 0 || position >= len(item.Characters) {
		return item
	}
	n, ok := entitytag.Number(item.Characters[position])
	chars := make([]string, 0, len(item.Characters)-1)
	chars = append(chars, item.Characters[:position]...)
	chars = append(chars, item.Characters[position+1:]...)
	if len(chars) == 0 {
		chars = nil
	}
	item.Characters = chars
	if ok {
		item.Prompt = entitytag.Remove(item.Prompt, n)
	}
	return item
}

// InsertCharacterRef prepends the insertion marker for the tag at the
// given position to the prompt text. The characters list is untouched:
// the tag is already registered.
func InsertCharacterRef(item PromptItem, position int) PromptItem {
	if position < 0 || position >= len(item.Characters) {
		return item
	}
	n, ok := entitytag.Number(item.Characters[position])
	if !ok {
		return item
	}
	item.Prompt = entitytag.Insert(item.Prompt, n)
	return item
}

// AddCharacterSlot appends a new tag using the smallest unused number.
// The prompt text is untouched until the user inserts a reference.
func AddCharacterSlot(item PromptItem) PromptItem {
	n := entitytag.NextSlot(item.Characters)
	chars := make([]string, 0, len(item.Characters)+1)
	chars = append(chars, item.Characters...)
	chars = append(chars, entitytag.Normalize(n))
	item.Characters = chars
	return item
}
