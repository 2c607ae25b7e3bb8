// Package difflib provides prose tokenization for word-level diffing of
// prompt text.
package difflib

import "regexp"

// Tokenizer splits prose into diffable tokens.
type Tokenizer struct {
	tokenPattern *regexp.Regexp
}

// NewTokenizer creates a Tokenizer tuned for prompt prose: words (with
// inner apostrophes and hyphens, so entity tags like "Entity-3" stay
// whole), numbers, whitespace runs and single punctuation marks.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		tokenPattern: regexp.MustCompile(
			`[A-Za-z_][A-Za-z0-9_]*(?:[-'][A-Za-z0-9_]+)*|` + // words, tags, contractions
				`[0-9]+\.?[0-9]*|` + // numbers
				`\s+|` + // whitespace runs
				`.`, // any remaining character
		),
	}
}

// Tokenize splits a string into tokens. The concatenation of the tokens
// reproduces the input exactly.
func (t *Tokenizer) Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	return t.tokenPattern.FindAllString(s, -1)
}
