package query

import (
	"strings"
	"time"
)

// buildQuery converts content tokens plus control data into the final arXiv
// query string. Content tokens are reduced with parentheses collapsed first,
// then the date clause is appended; a non-empty content query is wrapped in
// parentheses so the date bound applies to the whole expression.
func buildQuery(content []Token, control ControlData, loc *time.Location) string {
	expr := buildExpression(processParens(content))
	dateClause := buildDateQuery(control, loc)

	switch {
	case dateClause == "":
		return expr
	case expr == "":
		return dateClause
	default:
		return "(" + expr + ") AND " + dateClause
	}
}

// buildExpression reduces a flat item stream to a query string. OR binds
// looser than the implicit AND, so the stream is split on OR items first
// and each group is AND-joined. No parentheses are added around the OR
// alternatives here; a group that needs them is already wrapped by its
// groupedExpression.
func buildExpression(items []item) string {
	if len(items) == 0 {
		return ""
	}

	orGroups := splitByOr(items)
	if len(orGroups) == 1 {
		return buildAndExpression(orGroups[0])
	}

	parts := make([]string, 0, len(orGroups))
	for _, group := range orGroups {
		if s := buildAndExpression(group); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " OR ")
}

// splitByOr partitions the item stream on OR operators.
func splitByOr(items []item) [][]item {
	var groups [][]item
	var current []item

	for _, it := range items {
		if it.group == nil && it.tok.Kind == KindOr {
			if len(current) > 0 {
				groups = append(groups, current)
				current = nil
			}
			continue
		}
		current = append(current, it)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	if len(groups) == 0 {
		return [][]item{nil}
	}
	return groups
}

// buildAndExpression AND-joins a run of items, resolving prefix NOT. A NOT
// consumes itself and the following operand; a trailing NOT with nothing
// after it is dropped here, though validation already rejects that shape.
func buildAndExpression(items []item) string {
	var parts []string

	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.group == nil && it.tok.Kind == KindNot {
			if i+1 < len(items) {
				if frag, ok := itemFragment(items[i+1]); ok {
					parts = append(parts, "NOT "+frag)
				}
				i++
			}
			continue
		}
		if frag, ok := itemFragment(it); ok {
			parts = append(parts, frag)
		}
	}

	return strings.Join(parts, " AND ")
}

// itemFragment renders one item as an arXiv query fragment.
func itemFragment(it item) (string, bool) {
	if it.group != nil {
		return it.group.render(), true
	}
	return tokenFragment(it.tok)
}

// tokenFragment converts a single content token to an arXiv query fragment.
// Operators and parentheses are not content and report false.
func tokenFragment(tok Token) (string, bool) {
	switch tok.Kind {
	case KindKeyword:
		// An already-parenthesized value is a reduced group carried in a
		// token; pass it through verbatim.
		if strings.HasPrefix(tok.Value, "(") && strings.HasSuffix(tok.Value, ")") {
			return tok.Value, true
		}
		return "ti:" + tok.Value, true

	case KindPhrase:
		return `ti:"` + tok.Value + `"`, true

	case KindAuthor, KindCategory, KindAllFields, KindAbstract:
		value := tok.Value
		if tok.Kind == KindCategory {
			value = normalizeCategory(value)
		}
		return tok.fieldCode() + ":" + quoteIfNeeded(value), true
	}

	return "", false
}

// quoteIfNeeded wraps a value in double quotes when it contains a space or
// an embedded quote, unless it is already wrapped.
func quoteIfNeeded(value string) string {
	if !strings.ContainsAny(value, ` "`) {
		return value
	}
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		return value
	}
	return `"` + value + `"`
}
