package storyseq

import "sort"

// Selection sets are plain sorted int slices so they serialize as JSON
// arrays and compare by value. All operations return new slices.

// ContainsInt reports set membership.
func ContainsInt(set []int, v int) bool {
	for _, n := range set {
		if n == v {
			return true
		}
	}
	return false
}

// ToggleInt adds v if absent, removes it if present. Toggling twice
// restores the original membership.
func ToggleInt(set []int, v int) []int {
	if ContainsInt(set, v) {
		out := make([]int, 0, len(set)-1)
		for _, n := range set {
			if n != v {
				out = append(out, n)
			}
		}
		return out
	}
	out := make([]int, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, v)
	sort.Ints(out)
	return out
}

// AddInt adds v to the set if absent.
func AddInt(set []int, v int) []int {
	if ContainsInt(set, v) {
		return set
	}
	out := make([]int, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, v)
	sort.Ints(out)
	return out
}

// RemoveInt removes v from the set if present.
func RemoveInt(set []int, v int) []int {
	if !ContainsInt(set, v) {
		return set
	}
	out := make([]int, 0, len(set)-1)
	for _, n := range set {
		if n != v {
			out = append(out, n)
		}
	}
	return out
}

// SelectOnly replaces the whole selection with the single given frame
// (exclusive-select, the shift-click behavior).
func SelectOnly(frame int) []int {
	return []int{frame}
}

// SelectRange returns the frame numbers in [start,end] inclusive, clipped
// to the frames actually present. start > end is a no-op and returns nil.
func SelectRange(items []PromptItem, start, end int) []int {
	if start > end {
		return nil
	}
	if start < 1 {
		start = 1
	}
	if end > len(items) {
		end = len(items)
	}
	var out []int
	for _, item := range items {
		if item.FrameNumber >= start && item.FrameNumber <= end {
			out = append(out, item.FrameNumber)
		}
	}
	sort.Ints(out)
	return out
}

// SelectAll returns every frame number.
func SelectAll(items []PromptItem) []int {
	out := FrameNumbers(items)
	sort.Ints(out)
	return out
}

// InvertSelection complements the selection against the full frame-number
// universe of the list.
func InvertSelection(set []int, items []PromptItem) []int {
	var out []int
	for _, item := range items {
		if !ContainsInt(set, item.FrameNumber) {
			out = append(out, item.FrameNumber)
		}
	}
	sort.Ints(out)
	return out
}

// SceneFrameNumbers returns the frame numbers belonging to the given scene
// group. Because grouping is positional, a scene number reused by a
// disjoint run yields every matching run's frames.
func SceneFrameNumbers(items []PromptItem, scene int) []int {
	var out []int
	for _, s := range Scenes(items) {
		if s.Scene != scene {
			continue
		}
		for _, p := range s.Prompts {
			out = append(out, p.FrameNumber)
		}
	}
	sort.Ints(out)
	return out
}

// CollapseOtherScenes returns a collapse set covering every scene number
// present except the given one, so a scene-scoped selection can focus the
// view on that scene alone.
func CollapseOtherScenes(items []PromptItem, scene int) []int {
	var out []int
	for _, s := range SceneNumbers(items) {
		if s != scene {
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return dedupInts(out)
}

// AspectClass classifies an image by its width/height ratio.
type AspectClass int

// Aspect classes.
const (
	AspectLandscape AspectClass = iota
	AspectPortrait
	AspectSquare
)

// String returns the lowercase name of the aspect class.
func (a AspectClass) String() string {
	switch a {
	case AspectLandscape:
		return "landscape"
	case AspectPortrait:
		return "portrait"
	case AspectSquare:
		return "square"
	}
	return "unknown"
}

// ClassifyAspect buckets a dimension: landscape above 1.2, portrait below
// 0.85, square in between. Zero or negative heights classify as square.
func ClassifyAspect(d Dimension) AspectClass {
	if d.Height <= 0 || d.Width <= 0 {
		return AspectSquare
	}
	ratio := float64(d.Width) / float64(d.Height)
	switch {
	case ratio > 1.2:
		return AspectLandscape
	case ratio < 0.85:
		return AspectPortrait
	default:
		return AspectSquare
	}
}

// SelectByAspect replaces the selection with the frames whose reported
// dimensions match the class. Frames with no reported dimensions never
// match. An empty result means "no images match" and the caller should
// surface a notice rather than commit it.
func SelectByAspect(items []PromptItem, dims map[int]Dimension, class AspectClass) []int {
	var out []int
	for _, item := range items {
		d, ok := dims[item.FrameNumber]
		if !ok {
			continue
		}
		if ClassifyAspect(d) == class {
			out = append(out, item.FrameNumber)
		}
	}
	sort.Ints(out)
	return out
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, n := range sorted[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return out
}
