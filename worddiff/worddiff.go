// Package worddiff computes word-level differences between source and
// modified prompt text for the review pane.
package worddiff

import (
	"strings"

	"github.com/storyseq/storyseq"
	"github.com/storyseq/storyseq/difflib"
)

// Compile-time interface verification.
var _ storyseq.WordDiffer = (*Differ)(nil)

// similarityThreshold is the minimum token overlap ratio for word-level
// diffing. Below it, texts are treated as complete replacements.
const similarityThreshold = 0.4

// Differ tokenizes prompt text and computes word-level diffs.
type Differ struct {
	tokenizer *difflib.Tokenizer
}

// NewDiffer creates a new Differ instance.
func NewDiffer() *Differ {
	return &Differ{tokenizer: difflib.NewTokenizer()}
}

// Diff returns segments for both the old and new strings, marking which
// portions changed between them.
func (d *Differ) Diff(old, new string) (oldSegs, newSegs []storyseq.Segment) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == "" {
		return nil, []storyseq.Segment{{Text: new, Changed: true}}
	}
	if new == "" {
		return []storyseq.Segment{{Text: old, Changed: true}}, nil
	}
	if old == new {
		seg := storyseq.Segment{Text: old, Changed: false}
		return []storyseq.Segment{seg}, []storyseq.Segment{seg}
	}

	oldTokens := d.tokenizer.Tokenize(old)
	newTokens := d.tokenizer.Tokenize(new)

	if !hasSufficientSimilarity(oldTokens, newTokens) {
		return []storyseq.Segment{{Text: old, Changed: true}},
			[]storyseq.Segment{{Text: new, Changed: true}}
	}

	return lcsSegments(oldTokens, newTokens)
}

// hasSufficientSimilarity checks if tokens overlap enough to warrant a
// word-level diff, using a simple common-token count as an upper bound.
func hasSufficientSimilarity(oldTokens, newTokens []string) bool {
	oldLen, newLen := len(oldTokens), len(newTokens)
	if oldLen == 0 || newLen == 0 {
		return false
	}

	counts := make(map[string]int, oldLen)
	for _, t := range oldTokens {
		counts[t]++
	}
	common := 0
	for _, t := range newTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}

	return float64(2*common)/float64(oldLen+newLen) >= similarityThreshold
}

// lcsSegments computes the longest common subsequence of two token
// sequences and returns merged diff segments. O(n*m) dynamic programming
// over a flat table.
func lcsSegments(oldTokens, newTokens []string) (oldSegs, newSegs []storyseq.Segment) {
	m, n := len(oldTokens), len(newTokens)
	table := make([]int, (m+1)*(n+1))
	stride := n + 1

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldTokens[i-1] == newTokens[j-1] {
				table[i*stride+j] = table[(i-1)*stride+j-1] + 1
			} else if table[(i-1)*stride+j] > table[i*stride+j-1] {
				table[i*stride+j] = table[(i-1)*stride+j]
			} else {
				table[i*stride+j] = table[i*stride+j-1]
			}
		}
	}

	if table[m*stride+n] == 0 {
		return []storyseq.Segment{{Text: strings.Join(oldTokens, ""), Changed: true}},
			[]storyseq.Segment{{Text: strings.Join(newTokens, ""), Changed: true}}
	}

	// Backtrack to find matched token positions.
	type match struct{ oldIdx, newIdx int }
	var matches []match
	i, j := m, n
	for i > 0 && j > 0 {
		if oldTokens[i-1] == newTokens[j-1] {
			matches = append(matches, match{i - 1, j - 1})
			i--
			j--
		} else if table[(i-1)*stride+j] > table[i*stride+j-1] {
			i--
		} else {
			j--
		}
	}
	for l, r := 0, len(matches)-1; l < r; l, r = l+1, r-1 {
		matches[l], matches[r] = matches[r], matches[l]
	}

	// Emit segments, merging adjacent runs with the same changed status.
	var oldBuf, newBuf strings.Builder
	oldChanged, newChanged := false, false
	haveOld, haveNew := false, false

	flushOld := func() {
		if haveOld {
			oldSegs = append(oldSegs, storyseq.Segment{Text: oldBuf.String(), Changed: oldChanged})
			oldBuf.Reset()
			haveOld = false
		}
	}
	flushNew := func() {
		if haveNew {
			newSegs = append(newSegs, storyseq.Segment{Text: newBuf.String(), Changed: newChanged})
			newBuf.Reset()
			haveNew = false
		}
	}
	addOld := func(text string, changed bool) {
		if haveOld && oldChanged != changed {
			flushOld()
		}
		oldBuf.WriteString(text)
		oldChanged = changed
		haveOld = true
	}
	addNew := func(text string, changed bool) {
		if haveNew && newChanged != changed {
			flushNew()
		}
		newBuf.WriteString(text)
		newChanged = changed
		haveNew = true
	}

	oldPos, newPos := 0, 0
	for _, mt := range matches {
		for ; oldPos < mt.oldIdx; oldPos++ {
			addOld(oldTokens[oldPos], true)
		}
		for ; newPos < mt.newIdx; newPos++ {
			addNew(newTokens[newPos], true)
		}
		addOld(oldTokens[oldPos], false)
		addNew(newTokens[newPos], false)
		oldPos++
		newPos++
	}
	for ; oldPos < m; oldPos++ {
		addOld(oldTokens[oldPos], true)
	}
	for ; newPos < n; newPos++ {
		addNew(newTokens[newPos], true)
	}
	flushOld()
	flushNew()

	return oldSegs, newSegs
}
