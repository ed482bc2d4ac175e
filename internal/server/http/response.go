package httpserver

import (
	"time"

	"github.com/arxivq/arxiv-query-service/internal/arxiv"
	"github.com/arxivq/arxiv-query-service/internal/domain"
	"github.com/arxivq/arxiv-query-service/internal/query"
)

// Response types for JSON serialization.

type parseResponse struct {
	Query      string    `json:"query"`
	MaxResults int       `json:"max_results"`
	SortBy     string    `json:"sort_by"`
	SortOrder  string    `json:"sort_order"`
	SinceDate  time.Time `json:"since_date,omitzero"`
	UntilDate  time.Time `json:"until_date,omitzero"`
}

type parseErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type searchResponse struct {
	Query        string          `json:"query"`
	Papers       []paperResponse `json:"papers"`
	TotalResults int             `json:"total_results"`
	HasMore      bool            `json:"has_more"`
	NextStart    int             `json:"next_start,omitempty"`
	MaxResults   int             `json:"max_results"`
	SortBy       string          `json:"sort_by"`
	SortOrder    string          `json:"sort_order"`
}

type paperResponse struct {
	ArxivID         string           `json:"arxiv_id"`
	Title           string           `json:"title"`
	Summary         string           `json:"summary,omitempty"`
	Authors         []authorResponse `json:"authors,omitempty"`
	Categories      []string         `json:"categories,omitempty"`
	PrimaryCategory string           `json:"primary_category,omitempty"`
	Published       time.Time        `json:"published"`
	Updated         time.Time        `json:"updated"`
	AbsURL          string           `json:"abs_url,omitempty"`
	PDFURL          string           `json:"pdf_url,omitempty"`
	DOI             string           `json:"doi,omitempty"`
	JournalRef      string           `json:"journal_ref,omitempty"`
	Comment         string           `json:"comment,omitempty"`
}

type authorResponse struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

// Converter functions

func parseResultToResponse(r query.Result) parseResponse {
	return parseResponse{
		Query:      r.Query,
		MaxResults: r.MaxResults,
		SortBy:     r.SortCriterion.String(),
		SortOrder:  r.SortOrder.String(),
		SinceDate:  r.SinceDate,
		UntilDate:  r.UntilDate,
	}
}

func searchResultToResponse(parsed query.Result, sr *arxiv.SearchResult) searchResponse {
	papers := make([]paperResponse, len(sr.Papers))
	for i, p := range sr.Papers {
		papers[i] = domainPaperToResponse(p)
	}
	resp := searchResponse{
		Query:        parsed.Query,
		Papers:       papers,
		TotalResults: sr.TotalResults,
		HasMore:      sr.HasMore,
		MaxResults:   parsed.MaxResults,
		SortBy:       parsed.SortCriterion.String(),
		SortOrder:    parsed.SortOrder.String(),
	}
	if sr.HasMore {
		resp.NextStart = sr.NextStart
	}
	return resp
}

func domainPaperToResponse(p *domain.Paper) paperResponse {
	authors := make([]authorResponse, len(p.Authors))
	for i, a := range p.Authors {
		authors[i] = authorResponse{
			Name:        a.Name,
			Affiliation: a.Affiliation,
		}
	}
	return paperResponse{
		ArxivID:         p.ArxivID,
		Title:           p.Title,
		Summary:         p.Summary,
		Authors:         authors,
		Categories:      p.Categories,
		PrimaryCategory: p.PrimaryCategory,
		Published:       p.Published,
		Updated:         p.Updated,
		AbsURL:          p.AbsURL,
		PDFURL:          p.PDFURL,
		DOI:             p.DOI,
		JournalRef:      p.JournalRef,
		Comment:         p.Comment,
	}
}
