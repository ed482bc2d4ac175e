// Package arxiv is a narrow client for the arXiv export API's query
// endpoint. It takes an already-built field query plus control parameters
// and returns domain papers parsed from the Atom feed.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arxivq/arxiv-query-service/internal/domain"
	"github.com/arxivq/arxiv-query-service/internal/httpclient"
)

const (
	// DefaultBaseURL is the default arXiv API base URL.
	DefaultBaseURL = "https://export.arxiv.org/api"

	// DefaultRateLimit is one request every three seconds, the politeness
	// bound arXiv documents for API clients.
	DefaultRateLimit = 1.0 / 3.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 1

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the default maximum results per search request.
	DefaultMaxResults = 10

	// sourceName is the human-readable name for this source.
	sourceName = "arXiv"
)

// arxivIDRegex extracts the arXiv ID from the full URL.
// Matches patterns like "http://arxiv.org/abs/2301.12345v1" or
// "http://arxiv.org/abs/hep-th/9901001v1".
var arxivIDRegex = regexp.MustCompile(`arxiv\.org/abs/(.+?)(?:v\d+)?$`)

// Config holds configuration for the arXiv client.
type Config struct {
	// BaseURL is the arXiv API base URL.
	BaseURL string

	// Timeout is the request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxResults is the fallback result count when a request sets none.
	MaxResults int

	// Metrics, when set, receives per-request outcome observations.
	Metrics MetricsRecorder
}

// MetricsRecorder observes arXiv API request outcomes.
// *observability.Metrics satisfies it.
type MetricsRecorder interface {
	RecordArxivRequest(durationSeconds float64)
	RecordArxivRequestFailed(errorType string)
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
}

// SearchRequest is one call to the query endpoint. Query is a complete
// arXiv field query ("cat:cs.AI AND ti:quantum"); SortBy and SortOrder use
// the API's own vocabulary (submittedDate/relevance/lastUpdatedDate,
// ascending/descending).
type SearchRequest struct {
	Query      string
	MaxResults int
	Start      int
	SortBy     string
	SortOrder  string
}

// SearchResult contains the outcome of a search.
type SearchResult struct {
	Papers []*domain.Paper

	// TotalResults is the feed's total match count for the query,
	// regardless of pagination.
	TotalResults int

	// HasMore indicates more results exist past this page; NextStart is
	// the start offset for the next page when it does.
	HasMore   bool
	NextStart int

	// SearchDuration covers the HTTP round trip and feed parsing.
	SearchDuration time.Duration
}

// Client calls the arXiv export API.
type Client struct {
	config     Config
	httpClient *httpclient.Client
	metrics    MetricsRecorder
}

// New creates an arXiv client with its own rate-limited HTTP client.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	return &Client{
		config:  cfg,
		metrics: cfg.Metrics,
		httpClient: httpclient.New(httpclient.Config{
			Timeout:   cfg.Timeout,
			RateLimit: cfg.RateLimit,
			BurstSize: cfg.BurstSize,
		}),
	}
}

// NewWithHTTPClient creates an arXiv client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *httpclient.Client) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		metrics:    cfg.Metrics,
		httpClient: httpClient,
	}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// Search executes a query against the arXiv API.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	startTime := time.Now()

	searchURL, err := c.buildSearchURL(req)
	if err != nil {
		return nil, fmt.Errorf("building search URL: %w", err)
	}

	feed, err := c.fetchFeed(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	papers := make([]*domain.Paper, 0, len(feed.Entries))
	for i := range feed.Entries {
		if paper := entryToPaper(&feed.Entries[i]); paper != nil {
			papers = append(papers, paper)
		}
	}

	nextStart := req.Start + len(papers)

	return &SearchResult{
		Papers:         papers,
		TotalResults:   feed.TotalResults,
		HasMore:        nextStart < feed.TotalResults,
		NextStart:      nextStart,
		SearchDuration: time.Since(startTime),
	}, nil
}

// GetByID retrieves a specific paper by its arXiv ID.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	endpoint, err := c.queryEndpoint()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("id_list", id)
	endpoint.RawQuery = query.Encode()

	feed, err := c.fetchFeed(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	if len(feed.Entries) == 0 {
		return nil, domain.NewNotFoundError("paper", id)
	}

	paper := entryToPaper(&feed.Entries[0])
	if paper == nil {
		return nil, domain.NewNotFoundError("paper", id)
	}

	return paper, nil
}

// fetchFeed performs the HTTP request and decodes the Atom feed.
func (c *Client) fetchFeed(ctx context.Context, searchURL string) (*Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure("network_error")
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure("http_error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, domain.NewExternalAPIError(sourceName, resp.StatusCode, string(body), nil)
	}

	// Limit the body to 10MB; a page of results is far smaller.
	var feed Feed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&feed); err != nil {
		c.recordFailure("decode_error")
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if c.metrics != nil {
		c.metrics.RecordArxivRequest(time.Since(start).Seconds())
	}
	return &feed, nil
}

func (c *Client) recordFailure(errorType string) {
	if c.metrics != nil {
		c.metrics.RecordArxivRequestFailed(errorType)
	}
}

func (c *Client) queryEndpoint() (*url.URL, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	baseURL.Path = strings.TrimRight(baseURL.Path, "/") + "/query"
	return baseURL, nil
}

// buildSearchURL constructs the arXiv search API URL.
func (c *Client) buildSearchURL(req SearchRequest) (string, error) {
	endpoint, err := c.queryEndpoint()
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("search_query", req.Query)

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = c.config.MaxResults
	}
	query.Set("max_results", strconv.Itoa(maxResults))

	if req.Start > 0 {
		query.Set("start", strconv.Itoa(req.Start))
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "submittedDate"
	}
	sortOrder := req.SortOrder
	if sortOrder == "" {
		sortOrder = "descending"
	}
	query.Set("sortBy", sortBy)
	query.Set("sortOrder", sortOrder)

	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}

// entryToPaper converts an arXiv Atom entry to a domain Paper.
func entryToPaper(entry *Entry) *domain.Paper {
	if entry == nil {
		return nil
	}

	arxivID := extractArXivID(entry.ID)
	if arxivID == "" {
		return nil
	}

	var published, updated time.Time
	if entry.Published != "" {
		if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
			published = t
		}
	}
	if entry.Updated != "" {
		if t, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
			updated = t
		}
	}

	authors := make([]domain.Author, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		authors = append(authors, domain.Author{
			Name:        name,
			Affiliation: strings.TrimSpace(a.Affiliation),
		})
	}

	// arXiv wraps titles and abstracts with newlines and padding.
	title := normalizeWhitespace(entry.Title)
	summary := normalizeWhitespace(entry.Summary)

	pdfURL := ""
	for _, link := range entry.Links {
		if link.Title == "pdf" || link.Type == "application/pdf" {
			pdfURL = link.Href
			break
		}
	}
	if pdfURL == "" {
		pdfURL = "http://arxiv.org/pdf/" + arxivID
	}

	categories := make([]string, 0, len(entry.Categories))
	for _, cat := range entry.Categories {
		if cat.Term != "" {
			categories = append(categories, cat.Term)
		}
	}

	return &domain.Paper{
		ArxivID:         arxivID,
		Title:           title,
		Summary:         summary,
		Authors:         authors,
		Categories:      categories,
		PrimaryCategory: entry.PrimaryCategory.Term,
		Published:       published,
		Updated:         updated,
		AbsURL:          entry.ID,
		PDFURL:          pdfURL,
		DOI:             strings.TrimSpace(entry.DOI),
		JournalRef:      strings.TrimSpace(entry.JournalRef),
		Comment:         strings.TrimSpace(entry.Comment),
	}
}

// extractArXivID extracts the arXiv ID from the full entry URL.
// Input: "http://arxiv.org/abs/2301.12345v1" -> "2301.12345"
func extractArXivID(entryURL string) string {
	matches := arxivIDRegex.FindStringSubmatch(entryURL)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// normalizeWhitespace trims and collapses runs of whitespace, including
// newlines, into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
