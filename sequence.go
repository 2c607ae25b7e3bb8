package storyseq

import (
	"fmt"
	"sort"
)

// Scenes groups prompts into scenes. Grouping is positional: items are
// sorted by frame number and a new scene starts whenever the scene number
// changes from the previous item. Non-contiguous runs sharing a scene
// number stay separate groups - a scene is a contiguous run in authored
// order, not a value group.
func Scenes(items []PromptItem) []Scene {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]PromptItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FrameNumber < sorted[j].FrameNumber
	})

	var scenes []Scene
	for _, item := range sorted {
		if len(scenes) == 0 || scenes[len(scenes)-1].Scene != item.SceneNumber {
			scenes = append(scenes, Scene{
				Scene: item.SceneNumber,
				Title: item.SceneTitle, // first item of the run owns the title
			})
		}
		last := &scenes[len(scenes)-1]
		last.Prompts = append(last.Prompts, item)
	}
	return scenes
}

// SceneNumbers returns the distinct scene numbers present, in group order.
func SceneNumbers(items []PromptItem) []int {
	var nums []int
	for _, s := range Scenes(items) {
		nums = append(nums, s.Scene)
	}
	return nums
}

// FrameNumbers returns every frame number in list order.
func FrameNumbers(items []PromptItem) []int {
	nums := make([]int, len(items))
	for i, item := range items {
		nums[i] = item.FrameNumber
	}
	return nums
}

// FrameByNumber returns the index of the item with the given frame number,
// or -1 if absent.
func FrameByNumber(items []PromptItem, frame int) int {
	for i, item := range items {
		if item.FrameNumber == frame {
			return i
		}
	}
	return -1
}

// Renumber assigns dense frame numbers 1..len in current list order.
func Renumber(items []PromptItem) []PromptItem {
	out := make([]PromptItem, len(items))
	for i, item := range items {
		item.FrameNumber = i + 1
		out[i] = item
	}
	return out
}

// NewPromptItem returns a frame with default fields.
func NewPromptItem(frame, scene int) PromptItem {
	return PromptItem{
		FrameNumber: frame,
		SceneNumber: scene,
		ShotType:    DefaultShotType,
		Duration:    DefaultDuration,
	}
}

// AddFrameAfter inserts a new default frame immediately after the item with
// the given frame number. When after is zero or not found the new frame is
// appended with number max+1 and no renumbering; a mid-list insert
// renumbers the whole list densely.
func AddFrameAfter(items []PromptItem, after int) []PromptItem {
	idx := FrameByNumber(items, after)
	if idx < 0 || idx == len(items)-1 {
		scene := DefaultSceneNumber
		if len(items) > 0 {
			scene = items[len(items)-1].SceneNumber
		}
		item := NewPromptItem(maxFrameNumber(items)+1, scene)
		out := make([]PromptItem, 0, len(items)+1)
		out = append(out, items...)
		return append(out, item)
	}

	item := NewPromptItem(0, items[idx].SceneNumber)
	out := make([]PromptItem, 0, len(items)+1)
	out = append(out, items[:idx+1]...)
	out = append(out, item)
	out = append(out, items[idx+1:]...)
	return Renumber(out)
}

// AddScene appends a new frame opening a fresh scene, titled "Scene {n}".
func AddScene(items []PromptItem) []PromptItem {
	next := maxSceneNumber(items) + 1
	item := NewPromptItem(maxFrameNumber(items)+1, next)
	item.SceneTitle = fmt.Sprintf("Scene %d", next)
	out := make([]PromptItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// DeleteFrame removes the item with the given frame number and renumbers
// the remainder densely. A missing frame number is a no-op.
func DeleteFrame(items []PromptItem, frame int) []PromptItem {
	idx := FrameByNumber(items, frame)
	if idx < 0 {
		return items
	}
	out := make([]PromptItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return Renumber(out)
}

// MoveDirection selects how MoveFrame repositions an item.
type MoveDirection int

// Move directions.
const (
	MoveUp MoveDirection = iota
	MoveDown
	MoveToStart
	MoveToEnd
)

// MoveFrame repositions the item at the given array index and renumbers
// densely. Out-of-range indexes and moves past either end are no-ops.
func MoveFrame(items []PromptItem, index int, dir MoveDirection) []PromptItem {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]PromptItem, len(items))
	copy(out, items)

	switch dir {
	case MoveUp:
		if index == 0 {
			return items
		}
		out[index-1], out[index] = out[index], out[index-1]
	case MoveDown:
		if index == len(out)-1 {
			return items
		}
		out[index], out[index+1] = out[index+1], out[index]
	case MoveToStart:
		if index == 0 {
			return items
		}
		item := out[index]
		copy(out[1:index+1], out[:index])
		out[0] = item
	case MoveToEnd:
		if index == len(out)-1 {
			return items
		}
		item := out[index]
		copy(out[index:], out[index+1:])
		out[len(out)-1] = item
	default:
		return items
	}
	return Renumber(out)
}

// ToggleCard flips the collapse state of a single frame.
func ToggleCard(items []PromptItem, frame int) []PromptItem {
	idx := FrameByNumber(items, frame)
	if idx < 0 {
		return items
	}
	out := make([]PromptItem, len(items))
	copy(out, items)
	out[idx].IsCollapsed = !out[idx].IsCollapsed
	return out
}

// ToggleAllCards applies the majority-flip rule: if every item is currently
// collapsed, expand all; otherwise collapse all.
func ToggleAllCards(items []PromptItem) []PromptItem {
	if len(items) == 0 {
		return items
	}
	allCollapsed := true
	for _, item := range items {
		if !item.IsCollapsed {
			allCollapsed = false
			break
		}
	}
	out := make([]PromptItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].IsCollapsed = !allCollapsed
	}
	return out
}

// ToggleAllScenes applies the majority-flip rule over the distinct scene
// numbers present: if every scene is collapsed, expand all (empty set);
// otherwise collapse all.
func ToggleAllScenes(collapsed []int, items []PromptItem) []int {
	scenes := SceneNumbers(items)
	if len(scenes) == 0 {
		return collapsed
	}
	allCollapsed := true
	for _, s := range scenes {
		if !ContainsInt(collapsed, s) {
			allCollapsed = false
			break
		}
	}
	if allCollapsed {
		return nil
	}
	out := make([]int, len(scenes))
	copy(out, scenes)
	sort.Ints(out)
	return dedupInts(out)
}

// ClearText blanks prompt and video text and resets the shot type while
// preserving frame/scene structure, characters and duration.
func ClearText(items []PromptItem) []PromptItem {
	out := make([]PromptItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Prompt = ""
		out[i].VideoPrompt = ""
		out[i].ShotType = DefaultShotType
	}
	return out
}

func maxFrameNumber(items []PromptItem) int {
	max := 0
	for _, item := range items {
		if item.FrameNumber > max {
			max = item.FrameNumber
		}
	}
	return max
}

func maxSceneNumber(items []PromptItem) int {
	max := 0
	for _, item := range items {
		if item.SceneNumber > max {
			max = item.SceneNumber
		}
	}
	return max
}
