package query

import (
	"fmt"
	"strconv"
	"time"
)

// Timezone offset, in hours from UTC, used when none is configured. The bot
// this language was built for serves a Japanese audience.
const DefaultTimezoneOffset = -9

// Sentinel bounds used when only one end of a date range is given.
var (
	minSentinelDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxSentinelDate = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
)

// ControlData holds the query directives that configure the search rather
// than contribute search text: result count, sort, and date bounds.
type ControlData struct {
	MaxResults    int
	SortCriterion SortCriterion
	SortOrder     SortOrder
	SinceDate     time.Time
	UntilDate     time.Time
}

// newControlData returns control data with all defaults applied.
func newControlData() ControlData {
	return ControlData{
		MaxResults:    DefaultResultCount,
		SortCriterion: DefaultSortCriterion,
		SortOrder:     DefaultSortOrder,
	}
}

// extractControlData splits the token stream into control data and the
// remaining content tokens, preserving content order. When the same
// directive appears more than once the last occurrence wins. Date bounds
// are interpreted at the given fixed-offset location; a date-only until
// bound is pushed forward one day so it reads as "through the end of that
// day".
func extractControlData(tokens []Token, loc *time.Location) (ControlData, []Token) {
	control := newControlData()
	content := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		switch tok.Kind {
		case KindNumber:
			if n, err := strconv.Atoi(tok.Value); err == nil {
				control.MaxResults = n
			}
		case KindSort:
			if m, ok := sortMappings[tok.Value]; ok {
				control.SortCriterion = m.criterion
				control.SortOrder = m.order
			}
		case KindDateSince:
			if t, ok := parseDateValue(tok.Value); ok {
				control.SinceDate = rebase(t, loc)
			}
		case KindDateUntil:
			if t, ok := parseDateValue(tok.Value); ok {
				control.UntilDate = rebase(t, loc)
				if len(tok.Value) == 8 {
					control.UntilDate = control.UntilDate.AddDate(0, 0, 1)
				}
			}
		default:
			content = append(content, tok)
		}
	}

	return control, content
}

// rebase reinterprets the wall-clock fields of t in loc. parseDateValue
// returns UTC times; the user's digits are meant in the configured zone.
func rebase(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// buildDateQuery renders the submittedDate range clause for the control
// data, or "" when neither bound is set. A missing bound is filled with a
// far-past or far-future sentinel so a single-ended range still renders as
// a closed interval.
func buildDateQuery(control ControlData, loc *time.Location) string {
	since, until := control.SinceDate, control.UntilDate
	if since.IsZero() && until.IsZero() {
		return ""
	}
	if since.IsZero() {
		since = rebase(minSentinelDate, loc)
	}
	if until.IsZero() {
		until = rebase(maxSentinelDate, loc)
	}

	const stamp = "20060102150405"
	return fmt.Sprintf("submittedDate:[%s TO %s]",
		since.In(loc).Format(stamp), until.In(loc).Format(stamp))
}
