package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	t.Run("empty and whitespace-only input produce no tokens", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("   \t\n  "))
	})

	t.Run("bare words become keywords", func(t *testing.T) {
		tokens := Tokenize("quantum neural networks")

		require.Len(t, tokens, 3)
		assert.Equal(t, []Kind{KindKeyword, KindKeyword, KindKeyword}, kinds(tokens))
		assert.Equal(t, []string{"quantum", "neural", "networks"}, values(tokens))
	})

	t.Run("positions are non-decreasing", func(t *testing.T) {
		tokens := Tokenize(`@smith #cs.AI "deep learning" quantum | -x (a b)`)

		prev := -1
		for _, tok := range tokens {
			assert.GreaterOrEqual(t, tok.Position, prev, "token %s", tok)
			prev = tok.Position
		}
	})

	t.Run("unicode keywords pass through", func(t *testing.T) {
		tokens := Tokenize("量子 コンピュータ")

		require.Len(t, tokens, 2)
		assert.Equal(t, "量子", tokens[0].Value)
		assert.Equal(t, KindKeyword, tokens[0].Kind)
	})
}

func TestTokenizeFieldPrefixes(t *testing.T) {
	t.Run("unquoted prefixes", func(t *testing.T) {
		tokens := Tokenize("@einstein #cs.AI *neural $quantum")

		require.Len(t, tokens, 4)
		assert.Equal(t, []Kind{KindAuthor, KindCategory, KindAllFields, KindAbstract}, kinds(tokens))
		assert.Equal(t, []string{"einstein", "cs.AI", "neural", "quantum"}, values(tokens))
	})

	t.Run("quoted prefixes strip quotes and keep spaces", func(t *testing.T) {
		tokens := Tokenize(`@"Albert Einstein" $"machine learning"`)

		require.Len(t, tokens, 2)
		assert.Equal(t, KindAuthor, tokens[0].Kind)
		assert.Equal(t, "Albert Einstein", tokens[0].Value)
		assert.Equal(t, KindAbstract, tokens[1].Kind)
		assert.Equal(t, "machine learning", tokens[1].Value)
	})

	t.Run("unclosed quote after prefix falls back to unquoted capture", func(t *testing.T) {
		tokens := Tokenize(`@"smith`)

		require.Len(t, tokens, 1)
		assert.Equal(t, KindAuthor, tokens[0].Kind)
		assert.Equal(t, `"smith`, tokens[0].Value)
	})

	t.Run("prefix before parenthesis swallows the open paren", func(t *testing.T) {
		tokens := Tokenize("@(einstein bohr)")

		require.Len(t, tokens, 3)
		assert.Equal(t, []Kind{KindAuthor, KindKeyword, KindRParen}, kinds(tokens))
		assert.Equal(t, "(einstein", tokens[0].Value)
	})
}

func TestTokenizePhrases(t *testing.T) {
	t.Run("quoted phrase", func(t *testing.T) {
		tokens := Tokenize(`"deep learning" quantum`)

		require.Len(t, tokens, 2)
		assert.Equal(t, KindPhrase, tokens[0].Kind)
		assert.Equal(t, "deep learning", tokens[0].Value)
		assert.Equal(t, KindKeyword, tokens[1].Kind)
	})

	t.Run("unclosed quote becomes part of a word", func(t *testing.T) {
		tokens := Tokenize(`"abc`)

		require.Len(t, tokens, 1)
		assert.Equal(t, KindKeyword, tokens[0].Kind)
		assert.Equal(t, `"abc`, tokens[0].Value)
	})
}

func TestTokenizeDates(t *testing.T) {
	t.Run("accepted digit lengths", func(t *testing.T) {
		for _, input := range []string{">20240101", ">202401011430", ">20240101143000"} {
			tokens := Tokenize(input)
			require.Len(t, tokens, 1, "input %q", input)
			assert.Equal(t, KindDateSince, tokens[0].Kind)
			assert.Equal(t, input[1:], tokens[0].Value)
		}
	})

	t.Run("until bound", func(t *testing.T) {
		tokens := Tokenize("<20241231")

		require.Len(t, tokens, 1)
		assert.Equal(t, KindDateUntil, tokens[0].Kind)
		assert.Equal(t, "20241231", tokens[0].Value)
	})

	t.Run("other digit-run lengths fall through to keywords", func(t *testing.T) {
		for _, input := range []string{">2024", ">202401011", ">202401011430001"} {
			tokens := Tokenize(input)
			require.Len(t, tokens, 1, "input %q", input)
			assert.Equal(t, KindKeyword, tokens[0].Kind, "input %q", input)
			assert.Equal(t, input, tokens[0].Value)
		}
	})

	t.Run("letters after the digits reject the date match", func(t *testing.T) {
		tokens := Tokenize(">20240101xy")

		require.Len(t, tokens, 1)
		assert.Equal(t, KindKeyword, tokens[0].Kind)
		assert.Equal(t, ">20240101xy", tokens[0].Value)
	})

	t.Run("until bound requires whitespace after the digits", func(t *testing.T) {
		tokens := Tokenize("<20240101)")

		require.Len(t, tokens, 2)
		assert.Equal(t, KindKeyword, tokens[0].Kind)
		assert.Equal(t, "<20240101", tokens[0].Value)
		assert.Equal(t, KindRParen, tokens[1].Kind)
	})

	t.Run("since bound tolerates a following non-word character", func(t *testing.T) {
		tokens := Tokenize(">20240101)")

		require.Len(t, tokens, 2)
		assert.Equal(t, KindDateSince, tokens[0].Kind)
		assert.Equal(t, KindRParen, tokens[1].Kind)
	})
}

func TestTokenizeOperators(t *testing.T) {
	t.Run("operators and parentheses", func(t *testing.T) {
		tokens := Tokenize("a | b -c (d)")

		assert.Equal(t, []Kind{
			KindKeyword, KindOr, KindKeyword, KindNot, KindKeyword,
			KindLParen, KindKeyword, KindRParen,
		}, kinds(tokens))
	})

	t.Run("trailing minus still emits a NOT token", func(t *testing.T) {
		tokens := Tokenize("quantum -")

		require.Len(t, tokens, 2)
		assert.Equal(t, KindNot, tokens[1].Kind)
	})

	t.Run("hyphen splits bare words", func(t *testing.T) {
		tokens := Tokenize("cond-mat")

		assert.Equal(t, []Kind{KindKeyword, KindNot, KindKeyword}, kinds(tokens))
	})

	t.Run("prefixed values keep hyphens", func(t *testing.T) {
		tokens := Tokenize("#cond-mat.str-el")

		require.Len(t, tokens, 1)
		assert.Equal(t, "cond-mat.str-el", tokens[0].Value)
	})
}

func TestClassifyWord(t *testing.T) {
	t.Run("all-digit runs are numbers", func(t *testing.T) {
		tokens := Tokenize("42")

		require.Len(t, tokens, 1)
		assert.Equal(t, KindNumber, tokens[0].Kind)
	})

	t.Run("sort codes are case-insensitive and stored lowercase", func(t *testing.T) {
		for _, input := range []string{"sd", "SD", "Sd", "s", "S", "R", "L", "la", "RA"} {
			tokens := Tokenize(input)
			require.Len(t, tokens, 1, "input %q", input)
			assert.Equal(t, KindSort, tokens[0].Kind, "input %q", input)
		}
		assert.Equal(t, "sd", Tokenize("SD")[0].Value)
		assert.Equal(t, "r", Tokenize("R")[0].Value)
	})

	t.Run("non-sort words stay keywords", func(t *testing.T) {
		tokens := Tokenize("sdx")

		require.Len(t, tokens, 1)
		assert.Equal(t, KindKeyword, tokens[0].Kind)
	})
}
