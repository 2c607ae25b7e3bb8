// Package entitytag parses, normalizes and rewrites character entity tags
// embedded in free-form prompt text. Tags read as case-insensitive
// "Entity-N" or "Character-N", optionally wrapped in square brackets
// (insertion marker) or parentheses (inline reference), and always
// normalize to "Entity-N" on write.
package entitytag

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`(?i)(?:character|entity)-(\d+)`)
	suffixPattern = regexp.MustCompile(`-(\d+)\s*$`)
)

// Normalize returns the canonical form "Entity-N" (no leading zeros) for
// the given tag number.
func Normalize(n int) string {
	return fmt.Sprintf("Entity-%d", n)
}

// Number extracts the numeric suffix of a tag string. Malformed tags
// lacking a parseable suffix return ok=false and are skipped by callers,
// never treated as fatal.
func Number(tag string) (int, bool) {
	m := suffixPattern.FindStringSubmatch(tag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Extract returns the de-duplicated tags found in text, normalized, in
// first-seen order.
func Extract(text string) []string {
	var out []string
	seen := make(map[int]bool)
	for _, m := range tagPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, Normalize(n))
	}
	return out
}

// Signature returns an order-insensitive fingerprint of the tags present
// in text: the sorted, lower-cased, de-duplicated tag list joined by "|".
// Two texts with equal signatures reference the same set of entities.
func Signature(text string) string {
	tags := Extract(text)
	lowered := make([]string, len(tags))
	for i, t := range tags {
		lowered[i] = strings.ToLower(t)
	}
	sort.Strings(lowered)
	return strings.Join(lowered, "|")
}

// Reconcile returns the character list that should accompany newText after
// an edit from prevText. When the tag signature is unchanged the existing
// list is returned untouched (same slice), so pure text edits never
// rebuild or reorder the characters. When it changed, the list is replaced
// by the tags extracted from the new text.
func Reconcile(prevText, newText string, characters []string) []string {
	if Signature(prevText) == Signature(newText) {
		return characters
	}
	return Extract(newText)
}

// Renumber rewrites every parenthesized occurrence "(Entity-old)" (or the
// Character- synonym, case-insensitively) to "(Entity-new)".
func Renumber(text string, old, new int) string {
	re := regexp.MustCompile(`(?i)\((?:character|entity)-` + strconv.Itoa(old) + `\)`)
	return re.ReplaceAllString(text, "("+Normalize(new)+")")
}

// Remove strips occurrences of optional leading whitespace followed by
// "(Entity-n)" from text, then trims trailing whitespace and a single
// trailing comma left dangling.
func Remove(text string, n int) string {
	re := regexp.MustCompile(`(?i)\s*\((?:character|entity)-` + strconv.Itoa(n) + `\)`)
	out := re.ReplaceAllString(text, "")
	out = strings.TrimRight(out, " \t\n")
	out = strings.TrimSuffix(out, ",")
	return out
}

// Insert prepends the insertion marker "[Entity-n] " to text. The caller
// is responsible for the tag already being registered in the character
// list.
func Insert(text string, n int) string {
	return "[" + Normalize(n) + "] " + text
}

// NextSlot returns the smallest positive integer not used by any numeric
// suffix in the character list.
func NextSlot(characters []string) int {
	used := make(map[int]bool, len(characters))
	for _, c := range characters {
		if n, ok := Number(c); ok {
			used[n] = true
		}
	}
	for n := 1; ; n++ {
		if !used[n] {
			return n
		}
	}
}
