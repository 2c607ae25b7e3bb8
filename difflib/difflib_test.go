package difflib_test

import (
	"strings"
	"testing"

	"github.com/storyseq/storyseq/difflib"
	"github.com/stretchr/testify/assert"
)

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	tok := difflib.NewTokenizer()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "simple words",
			input: "a quiet street",
			want:  []string{"a", " ", "quiet", " ", "street"},
		},
		{
			name:  "entity tag stays whole",
			input: "(Entity-3) waits",
			want:  []string{"(", "Entity-3", ")", " ", "waits"},
		},
		{
			name:  "contraction stays whole",
			input: "she doesn't move",
			want:  []string{"she", " ", "doesn't", " ", "move"},
		},
		{
			name:  "numbers with decimals",
			input: "hold for 3.5 seconds",
			want:  []string{"hold", " ", "for", " ", "3.5", " ", "seconds"},
		},
		{
			name:  "punctuation split individually",
			input: "rain, then fog...",
			want:  []string{"rain", ",", " ", "then", " ", "fog", ".", ".", "."},
		},
		{
			name:  "whitespace runs kept as one token",
			input: "a  b\n\tc",
			want:  []string{"a", "  ", "b", "\n\t", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tok.Tokenize(tt.input))
		})
	}
}

func TestTokenizer_RoundTrip(t *testing.T) {
	t.Parallel()

	tok := difflib.NewTokenizer()
	inputs := []string{
		"(Entity-1) crosses the bridge at dawn, camera low.",
		"tabs\tand\nnewlines   survive",
		"unicode: café — street",
	}
	for _, in := range inputs {
		assert.Equal(t, in, strings.Join(tok.Tokenize(in), ""))
	}
}
