package query

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

// Token kinds emitted by the tokenizer. Keyword, Author, Category,
// AllFields, Abstract, Phrase, Number and Sort carry a payload value;
// the operator and parenthesis kinds do not.
const (
	KindKeyword Kind = iota
	KindAuthor
	KindCategory
	KindAllFields
	KindAbstract
	KindPhrase
	KindNumber
	KindSort
	KindOr
	KindNot
	KindLParen
	KindRParen
	KindDateSince
	KindDateUntil
	// KindArxivField is reserved for raw arXiv field syntax (ti:, au:, ...)
	// passed through in detailed query mode. The chat mini-language never
	// emits it; raw field text falls through to KindKeyword.
	KindArxivField
)

// String returns the token kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "Keyword"
	case KindAuthor:
		return "Author"
	case KindCategory:
		return "Category"
	case KindAllFields:
		return "AllFields"
	case KindAbstract:
		return "Abstract"
	case KindPhrase:
		return "Phrase"
	case KindNumber:
		return "Number"
	case KindSort:
		return "Sort"
	case KindOr:
		return "Or"
	case KindNot:
		return "Not"
	case KindLParen:
		return "LParen"
	case KindRParen:
		return "RParen"
	case KindDateSince:
		return "DateSince"
	case KindDateUntil:
		return "DateUntil"
	case KindArxivField:
		return "ArxivField"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit of a query. Position is the byte offset of
// the token in the original input and is used only for diagnostics.
type Token struct {
	Kind     Kind
	Value    string
	Position int
}

// String implements fmt.Stringer for debug output.
func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, pos=%d)", t.Kind, t.Value, t.Position)
}

// isField reports whether the token is a field-prefixed term
// (author, category, all-fields or abstract).
func (t Token) isField() bool {
	switch t.Kind {
	case KindAuthor, KindCategory, KindAllFields, KindAbstract:
		return true
	}
	return false
}

// fieldCode returns the arXiv query field code for a field token,
// or the empty string for non-field tokens.
func (t Token) fieldCode() string {
	switch t.Kind {
	case KindAuthor:
		return "au"
	case KindCategory:
		return "cat"
	case KindAllFields:
		return "all"
	case KindAbstract:
		return "abs"
	}
	return ""
}
