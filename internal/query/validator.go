package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result-count bounds for the number directive.
const (
	DefaultResultCount = 10
	ResultCountLimit   = 1000
)

const dateFormatHint = "Use YYYYMMDD, YYYYMMDDHHMM, or YYYYMMDDHHMMSS"

// categoryPattern accepts one or more letter groups separated by '.' or '-',
// where groups after the first may also be a bare '*' wildcard.
// Matches cs, cs.AI, cond-mat.str-el, cs.*.
var categoryPattern = regexp.MustCompile(`^[a-zA-Z]+([.\-]([a-zA-Z]+|\*))*$`)

// Malformed date-bound shapes that the tokenizer intentionally left as bare
// keywords: an operator prefix with digits running into letters, or an
// all-digit run whose length is not one of the three accepted formats.
var (
	malformedDateMixed  = regexp.MustCompile(`^[<>][0-9]+[A-Za-z][0-9A-Za-z]*$`)
	malformedDateDigits = regexp.MustCompile(`^[<>][0-9]+$`)
)

// Validate inspects a full token sequence and returns nil if it is
// well-formed, or the first violation found. Rules run in a fixed order so
// the reported error is deterministic for a given input.
func Validate(tokens []Token) *Error {
	if len(tokens) == 0 {
		return newError(ErrEmptyQuery, "Empty query")
	}

	for _, tok := range tokens {
		if tok.Kind != KindNumber {
			continue
		}
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return newError(ErrInvalidNumber, fmt.Sprintf("Invalid number: %s", tok.Value))
		}
		if n < 1 || n > ResultCountLimit {
			return newError(ErrNumberOutOfRange,
				fmt.Sprintf("Number of results must be between 1-%d", ResultCountLimit))
		}
	}

	for _, tok := range tokens {
		if tok.Kind != KindDateSince && tok.Kind != KindDateUntil {
			continue
		}
		if _, ok := parseDateValue(tok.Value); !ok {
			return newError(ErrInvalidDateFormat,
				fmt.Sprintf("Invalid date format: %s. %s", tok.Value, dateFormatHint))
		}
	}

	for _, tok := range tokens {
		if tok.Kind != KindCategory {
			continue
		}
		if !validCategoryValue(tok.Value) {
			return newError(ErrInvalidCategoryFormat,
				fmt.Sprintf("Invalid category format: %s. Use format like 'cs.AI' or 'physics'", tok.Value))
		}
	}

	// Malformed date bounds that the tokenizer under-matched on purpose so
	// a precise error can be reported here instead of a silent keyword.
	for _, tok := range tokens {
		if tok.Kind != KindKeyword {
			continue
		}
		if looksLikeMalformedDate(tok.Value) {
			return newError(ErrInvalidDateFormat,
				fmt.Sprintf("Invalid date format: %s. %s", tok.Value, dateFormatHint))
		}
	}

	// Empty pairs are reported before balance tracking consumes them.
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind == KindLParen && tokens[i+1].Kind == KindRParen {
			return newError(ErrEmptyParentheses, "Empty parentheses")
		}
	}

	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case KindLParen:
			depth++
		case KindRParen:
			depth--
			if depth < 0 {
				return newError(ErrUnbalancedParentheses, "Unbalanced parentheses")
			}
		}
	}
	if depth != 0 {
		return newError(ErrUnbalancedParentheses, "Unbalanced parentheses")
	}

	for i, tok := range tokens {
		if tok.Kind != KindOr {
			continue
		}
		if i == 0 || i == len(tokens)-1 {
			return newError(ErrInvalidOrPlacement, "Invalid OR operator placement")
		}
		prev, next := tokens[i-1], tokens[i+1]
		if !validOrOperand(prev.Kind, false) || !validOrOperand(next.Kind, true) {
			return newError(ErrInvalidOrUsage, "Invalid OR operator usage")
		}
	}

	for i, tok := range tokens {
		if tok.Kind != KindNot {
			continue
		}
		if i == len(tokens)-1 {
			return newError(ErrInvalidNotUsage, "NOT operator must be followed by a term")
		}
		if !validNotOperand(tokens[i+1].Kind) {
			return newError(ErrInvalidNotUsage, "NOT operator must be followed by a valid term")
		}
	}

	return nil
}

// validCategoryValue checks the structural category pattern. Quoted values
// (anything with a space or an embedded quote) pass through unconditionally;
// existence against the known-category tables is deliberately not required,
// so unknown categories reach the arXiv API untouched.
func validCategoryValue(value string) bool {
	if strings.ContainsAny(value, " \"") {
		return true
	}
	return categoryPattern.MatchString(value)
}

// looksLikeMalformedDate reports whether a bare keyword is a date bound the
// tokenizer refused: digits mixed with letters after the operator, or a
// digit run whose length is not 8, 12 or 14. Short runs such as >2024 are
// left alone and become ordinary title terms.
func looksLikeMalformedDate(value string) bool {
	if malformedDateMixed.MatchString(value) {
		return true
	}
	if malformedDateDigits.MatchString(value) {
		switch len(value) - 1 {
		case 8, 12, 14:
			return false
		default:
			return len(value)-1 > 8
		}
	}
	return false
}

// validOrOperand reports whether kind may neighbor an OR operator. RParen
// is a valid neighbor on either side: it closes the left-hand group before
// the operator and, after it, ends the enclosing group with the OR's
// right-hand side left implicit. A following LParen opens the right-hand
// group; a preceding LParen is invalid.
func validOrOperand(kind Kind, following bool) bool {
	switch kind {
	case KindKeyword, KindAuthor, KindCategory, KindAllFields, KindAbstract, KindPhrase, KindRParen:
		return true
	case KindLParen:
		return following
	}
	return false
}

// validNotOperand reports whether kind may follow a NOT operator.
func validNotOperand(kind Kind) bool {
	switch kind {
	case KindKeyword, KindAuthor, KindCategory, KindAllFields, KindAbstract, KindPhrase, KindLParen:
		return true
	}
	return false
}

// dateLayouts maps accepted digit-run lengths to their time layouts.
var dateLayouts = map[int]string{
	8:  "20060102",
	12: "200601021504",
	14: "20060102150405",
}

// parseDateValue parses a digit run as a calendar date in one of the three
// accepted formats. It rejects lengths outside {8, 12, 14} and values that
// do not form a real date, such as month 13 or February 30.
func parseDateValue(value string) (time.Time, bool) {
	layout, ok := dateLayouts[len(value)]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
