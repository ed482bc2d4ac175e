package query

// ErrorCode classifies a parse failure. The user-visible message is the
// authoritative surface; codes exist for programmatic handling and metrics.
type ErrorCode int

// Parse failure classes.
const (
	ErrEmptyQuery ErrorCode = iota
	ErrInvalidNumber
	ErrNumberOutOfRange
	ErrInvalidDateFormat
	ErrInvalidCategoryFormat
	ErrUnbalancedParentheses
	ErrEmptyParentheses
	ErrInvalidOrPlacement
	ErrInvalidOrUsage
	ErrInvalidNotUsage
	ErrInternal
)

// String returns the code name, used as a metrics label.
func (c ErrorCode) String() string {
	switch c {
	case ErrEmptyQuery:
		return "empty_query"
	case ErrInvalidNumber:
		return "invalid_number"
	case ErrNumberOutOfRange:
		return "number_out_of_range"
	case ErrInvalidDateFormat:
		return "invalid_date_format"
	case ErrInvalidCategoryFormat:
		return "invalid_category_format"
	case ErrUnbalancedParentheses:
		return "unbalanced_parentheses"
	case ErrEmptyParentheses:
		return "empty_parentheses"
	case ErrInvalidOrPlacement:
		return "invalid_or_placement"
	case ErrInvalidOrUsage:
		return "invalid_or_usage"
	case ErrInvalidNotUsage:
		return "invalid_not_usage"
	default:
		return "internal"
	}
}

// Error is a parse or validation failure with a user-facing message.
// The message is surfaced verbatim to the user who typed the query.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}
