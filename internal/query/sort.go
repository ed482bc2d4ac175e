package query

// SortCriterion selects the arXiv API field used to order results.
type SortCriterion int

// Sort criteria supported by the arXiv search API.
const (
	SortSubmittedDate SortCriterion = iota
	SortRelevance
	SortLastUpdatedDate
)

// String returns the arXiv API value for the criterion.
func (c SortCriterion) String() string {
	switch c {
	case SortRelevance:
		return "relevance"
	case SortLastUpdatedDate:
		return "lastUpdatedDate"
	default:
		return "submittedDate"
	}
}

// SortOrder selects the direction results are ordered in.
type SortOrder int

// Sort orders supported by the arXiv search API.
const (
	SortDescending SortOrder = iota
	SortAscending
)

// String returns the arXiv API value for the order.
func (o SortOrder) String() string {
	if o == SortAscending {
		return "ascending"
	}
	return "descending"
}

// Default sort: newest submissions first.
const (
	DefaultSortCriterion = SortSubmittedDate
	DefaultSortOrder     = SortDescending
)

// sortMappings maps a lowercase sort code to its criterion and order. Codes
// are matched case-insensitively during tokenization, which also covers the
// legacy single-uppercase-letter forms S, R and L. The single-letter codes
// default to descending.
var sortMappings = map[string]struct {
	criterion SortCriterion
	order     SortOrder
}{
	"sd": {SortSubmittedDate, SortDescending},
	"sa": {SortSubmittedDate, SortAscending},
	"rd": {SortRelevance, SortDescending},
	"ra": {SortRelevance, SortAscending},
	"ld": {SortLastUpdatedDate, SortDescending},
	"la": {SortLastUpdatedDate, SortAscending},
	"s":  {SortSubmittedDate, SortDescending},
	"r":  {SortRelevance, SortDescending},
	"l":  {SortLastUpdatedDate, SortDescending},
}

// isSortCode reports whether the lowercase word is a known sort code.
func isSortCode(lower string) bool {
	_, ok := sortMappings[lower]
	return ok
}
