// Package domain holds the shared types and errors of the query service.
package domain

import (
	"strings"
	"time"
)

// Author is a single paper author as reported by arXiv.
type Author struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

// Paper is an arXiv paper as returned by a search.
type Paper struct {
	// ArxivID is the bare arXiv identifier, e.g. "2301.12345" or
	// "hep-th/9901001", with any version suffix stripped.
	ArxivID string `json:"arxiv_id"`

	Title   string `json:"title"`
	Summary string `json:"summary"`

	Authors []Author `json:"authors"`

	// Categories lists all subject classes; PrimaryCategory is the one
	// arXiv files the paper under.
	Categories      []string `json:"categories,omitempty"`
	PrimaryCategory string   `json:"primary_category,omitempty"`

	Published time.Time `json:"published"`
	Updated   time.Time `json:"updated,omitempty"`

	// AbsURL is the abstract page, PDFURL the direct PDF link.
	AbsURL string `json:"abs_url"`
	PDFURL string `json:"pdf_url,omitempty"`

	DOI        string `json:"doi,omitempty"`
	JournalRef string `json:"journal_ref,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// AuthorNames returns the author display names in order.
func (p *Paper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// Validate checks that the paper has the minimum fields a search result
// must carry.
func (p *Paper) Validate() error {
	if strings.TrimSpace(p.ArxivID) == "" {
		return NewValidationError("arxiv_id", "must not be empty")
	}
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	return nil
}
