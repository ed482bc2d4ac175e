package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field prefix characters of the chat mini-language.
const (
	prefixAuthor    = '@'
	prefixCategory  = '#'
	prefixAllFields = '*'
	prefixAbstract  = '$'
)

// Tokenize scans a raw query string into tokens in a single left-to-right
// pass. At each non-whitespace position the patterns are tried from highest
// to lowest priority and the first match wins. Tokenize is total: characters
// that match nothing are skipped, and semantic checks are left to Validate.
func Tokenize(input string) []Token {
	var tokens []Token

	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		if tok, next, ok := scanToken(input, pos); ok {
			tokens = append(tokens, tok)
			pos = next
			continue
		}

		// Unrecognized character, skip it.
		pos += size
	}

	return tokens
}

// scanToken attempts to match one token at pos. It returns the token, the
// offset just past the match, and whether anything matched.
func scanToken(input string, pos int) (Token, int, bool) {
	c := input[pos]

	// Quoted field-prefixed terms: @"...", #"...", *"...", $"...".
	if kind, ok := prefixKind(c); ok {
		if value, next, found := scanQuoted(input, pos+1); found {
			return Token{Kind: kind, Value: value, Position: pos}, next, true
		}
	}

	// Bare quoted phrase.
	if c == '"' {
		if value, next, found := scanQuoted(input, pos); found {
			return Token{Kind: KindPhrase, Value: value, Position: pos}, next, true
		}
	}

	// Date bounds: > or < followed by exactly 8, 12 or 14 digits. Other
	// digit-run lengths deliberately fall through to the word rule so the
	// validator can report a precise "invalid date format" error.
	if c == '>' || c == '<' {
		if value, next, found := scanDate(input, pos); found {
			kind := KindDateSince
			if c == '<' {
				kind = KindDateUntil
			}
			return Token{Kind: kind, Value: value, Position: pos}, next, true
		}
	}

	// Unquoted field-prefixed terms: prefix followed by a run of
	// non-whitespace, operators and quotes included.
	if kind, ok := prefixKind(c); ok {
		end := scanNonSpace(input, pos+1)
		if end > pos+1 {
			return Token{Kind: kind, Value: input[pos+1 : end], Position: pos}, end, true
		}
	}

	// Single-character operators and grouping.
	switch c {
	case '|':
		return Token{Kind: KindOr, Value: "|", Position: pos}, pos + 1, true
	case '-':
		return Token{Kind: KindNot, Value: "-", Position: pos}, pos + 1, true
	case '(':
		return Token{Kind: KindLParen, Value: "(", Position: pos}, pos + 1, true
	case ')':
		return Token{Kind: KindRParen, Value: ")", Position: pos}, pos + 1, true
	}

	// Fallback: a maximal run of word characters.
	end := scanWord(input, pos)
	if end > pos {
		word := input[pos:end]
		return classifyWord(word, pos), end, true
	}

	return Token{}, pos, false
}

// prefixKind maps a field prefix character to its token kind.
func prefixKind(c byte) (Kind, bool) {
	switch c {
	case prefixAuthor:
		return KindAuthor, true
	case prefixCategory:
		return KindCategory, true
	case prefixAllFields:
		return KindAllFields, true
	case prefixAbstract:
		return KindAbstract, true
	}
	return 0, false
}

// scanQuoted matches a double-quoted run starting at pos and returns the
// interior with the quotes stripped. The interior must be non-empty.
func scanQuoted(input string, pos int) (string, int, bool) {
	if pos >= len(input) || input[pos] != '"' {
		return "", 0, false
	}
	end := strings.IndexByte(input[pos+1:], '"')
	if end <= 0 {
		// No closing quote, or nothing between the quotes.
		return "", 0, false
	}
	close := pos + 1 + end
	return input[pos+1 : close], close + 1, true
}

// scanDate matches a date bound at pos (input[pos] is '<' or '>'). The digit
// run must be exactly 8, 12 or 14 long. After the digits, '>' requires a
// non-word boundary; '<' is stricter and requires whitespace or end of input
// so that mention-like tokens are not misread as date bounds.
func scanDate(input string, pos int) (string, int, bool) {
	start := pos + 1
	end := start
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}

	switch end - start {
	case 8, 12, 14:
	default:
		return "", 0, false
	}

	if end < len(input) {
		r, _ := utf8.DecodeRuneInString(input[end:])
		if input[pos] == '<' {
			if !unicode.IsSpace(r) {
				return "", 0, false
			}
		} else if isWordRune(r) {
			return "", 0, false
		}
	}

	return input[start:end], end, true
}

// scanNonSpace returns the offset just past the run of non-whitespace
// starting at pos.
func scanNonSpace(input string, pos int) int {
	end := pos
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return end
}

// scanWord returns the offset just past the run of word characters starting
// at pos. A word character is anything except whitespace and the operator
// characters | - ( ).
func scanWord(input string, pos int) int {
	end := pos
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) || r == '|' || r == '-' || r == '(' || r == ')' {
			break
		}
		end += size
	}
	return end
}

// classifyWord applies the secondary word rules: an all-digit run is a
// result-count number, a known sort code becomes a sort directive with the
// value normalized to lowercase, and everything else is a bare keyword.
func classifyWord(word string, pos int) Token {
	if isAllDigits(word) {
		return Token{Kind: KindNumber, Value: word, Position: pos}
	}
	if lower := strings.ToLower(word); isSortCode(lower) {
		return Token{Kind: KindSort, Value: lower, Position: pos}
	}
	return Token{Kind: KindKeyword, Value: word, Position: pos}
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// isWordRune reports whether r is a word character in the regexp \w sense.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
