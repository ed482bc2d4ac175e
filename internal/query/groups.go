package query

// groupedExpression is a fully-reduced parenthesized subquery. It re-enters
// the reduction stream as an opaque unit so the surrounding AND/OR/NOT logic
// treats the whole group as a single operand.
type groupedExpression struct {
	fieldPrefix string // arXiv field code scoping the group, "" if none
	content     string
	position    int
}

// render emits the group in arXiv syntax, applying the field prefix to the
// whole group when present, e.g. au:(smith OR jones).
func (g groupedExpression) render() string {
	if g.fieldPrefix != "" {
		return g.fieldPrefix + ":(" + g.content + ")"
	}
	return "(" + g.content + ")"
}

// item is one element of the reduction stream: a plain token, or a grouped
// expression produced by parenthesis processing.
type item struct {
	tok   Token
	group *groupedExpression
}

func tokenItem(tok Token) item {
	return item{tok: tok}
}

// groupFrame records an open parenthesis: where its contents begin in the
// output, the field prefix absorbed from just before it, and its position
// in the input.
type groupFrame struct {
	start       int
	fieldPrefix string
	position    int
}

// processParens reduces matched parentheses bottom-up with an explicit
// stack keyed by output length, so nesting depth is bounded by the heap
// rather than the call stack. Each closed group is collapsed into a single
// groupedExpression item. A field token immediately before an open
// parenthesis is absorbed as the group's prefix.
func processParens(tokens []Token) []item {
	hasParens := false
	for _, tok := range tokens {
		if tok.Kind == KindLParen || tok.Kind == KindRParen {
			hasParens = true
			break
		}
	}

	result := make([]item, 0, len(tokens))
	if !hasParens {
		for _, tok := range tokens {
			result = append(result, tokenItem(tok))
		}
		return result
	}

	var stack []groupFrame

	for _, tok := range tokens {
		switch tok.Kind {
		case KindLParen:
			prefix := ""
			if n := len(result); n > 0 && result[n-1].group == nil && result[n-1].tok.isField() {
				prefix = result[n-1].tok.fieldCode()
				result = result[:n-1]
			}
			stack = append(stack, groupFrame{start: len(result), fieldPrefix: prefix, position: tok.Position})

		case KindRParen:
			if len(stack) == 0 {
				// Stray close; validation rejects these before we run.
				result = append(result, tokenItem(tok))
				continue
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			inner := result[frame.start:]
			content := buildExpression(inner)
			result = result[:frame.start]
			if content != "" {
				result = append(result, item{group: &groupedExpression{
					fieldPrefix: frame.fieldPrefix,
					content:     content,
					position:    frame.position,
				}})
			}

		default:
			result = append(result, tokenItem(tok))
		}
	}

	// Unmatched opens are unreachable after validation; re-emit them as
	// literal tokens rather than dropping input.
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		reinserted := []item{tokenItem(Token{Kind: KindLParen, Value: "(", Position: frame.position})}
		if frame.fieldPrefix != "" {
			reinserted = append([]item{tokenItem(fieldTokenFromCode(frame.fieldPrefix, frame.position))}, reinserted...)
		}
		result = append(result[:frame.start], append(reinserted, result[frame.start:]...)...)
	}

	return result
}

// fieldTokenFromCode rebuilds a field token from its arXiv field code, used
// only when re-emitting an absorbed prefix for an unmatched parenthesis.
func fieldTokenFromCode(code string, position int) Token {
	kind := KindKeyword
	switch code {
	case "au":
		kind = KindAuthor
	case "cat":
		kind = KindCategory
	case "all":
		kind = KindAllFields
	case "abs":
		kind = KindAbstract
	}
	return Token{Kind: kind, Value: code, Position: position}
}
