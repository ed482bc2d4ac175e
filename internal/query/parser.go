// Package query implements the chat-style mini-language used to search
// arXiv: field-scoped terms (@author, #category, *all, $abstract), quoted
// phrases, OR (|) and NOT (-) operators, parenthesized grouping, result
// count and sort directives, and inclusive date bounds (>YYYYMMDD,
// <YYYYMMDD). A query is tokenized, validated, and transformed into the
// arXiv API's own field-query syntax plus control parameters.
package query

import (
	"fmt"
	"time"
)

// Result is the outcome of parsing one query. On success Query holds the
// arXiv field-query string with any date clause already folded in, and the
// control fields hold the extracted directives or their defaults. On
// failure Err carries the user-facing diagnostic.
type Result struct {
	Success       bool
	Query         string
	MaxResults    int
	SortCriterion SortCriterion
	SortOrder     SortOrder
	SinceDate     time.Time
	UntilDate     time.Time
	Err           *Error
}

// Parser parses mini-language queries. It holds only immutable
// configuration and is safe for concurrent use.
type Parser struct {
	loc *time.Location
}

// Option configures a Parser.
type Option func(*Parser)

// WithTimezoneOffset sets the fixed UTC offset, in hours, used to interpret
// and render date bounds.
func WithTimezoneOffset(hours int) Option {
	return func(p *Parser) {
		p.loc = fixedZone(hours)
	}
}

// New creates a Parser. Date bounds are interpreted in a fixed UTC offset
// of DefaultTimezoneOffset hours; override with WithTimezoneOffset.
func New(opts ...Option) *Parser {
	p := &Parser{loc: fixedZone(DefaultTimezoneOffset)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func fixedZone(hours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
}

// Parse runs the full pipeline: tokenize, validate, extract control data,
// build the query string. It is total: every input produces a Result and
// internal faults are converted to a generic parse error rather than a
// panic escaping to the caller.
func (p *Parser) Parse(input string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(newError(ErrInternal, fmt.Sprintf("Parse error: %v", r)))
		}
	}()

	tokens := Tokenize(input)

	if err := Validate(tokens); err != nil {
		return failure(err)
	}

	control, content := extractControlData(tokens, p.loc)

	return Result{
		Success:       true,
		Query:         buildQuery(content, control, p.loc),
		MaxResults:    control.MaxResults,
		SortCriterion: control.SortCriterion,
		SortOrder:     control.SortOrder,
		SinceDate:     control.SinceDate,
		UntilDate:     control.UntilDate,
	}
}

func failure(err *Error) Result {
	return Result{
		Success:       false,
		MaxResults:    DefaultResultCount,
		SortCriterion: DefaultSortCriterion,
		SortOrder:     DefaultSortOrder,
		Err:           err,
	}
}
