package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/arxivq/arxiv-query-service/internal/arxiv"
	"github.com/arxivq/arxiv-query-service/internal/domain"
	"github.com/arxivq/arxiv-query-service/internal/observability"
	"github.com/arxivq/arxiv-query-service/internal/query"
)

// maxRequestBodySize caps request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

// parseRequest is the JSON request body for POST /v1/parse.
type parseRequest struct {
	Query               string `json:"query" validate:"required,max=10000"`
	TimezoneOffsetHours *int   `json:"timezone_offset_hours,omitempty" validate:"omitempty,min=-12,max=14"`
}

// searchRequest is the JSON request body for POST /v1/search.
type searchRequest struct {
	Query               string `json:"query" validate:"required,max=10000"`
	TimezoneOffsetHours *int   `json:"timezone_offset_hours,omitempty" validate:"omitempty,min=-12,max=14"`
	Start               int    `json:"start,omitempty" validate:"min=0"`
}

// decodeRequest reads, unmarshals and validates a JSON request body into v.
// It writes the error response itself and reports whether decoding succeeded.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, validationMessage(verrs[0]))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}

	return true
}

// parserFor returns the shared parser, or a one-off parser when the request
// overrides the default timezone offset.
func (s *Server) parserFor(offset *int) *query.Parser {
	if offset == nil {
		return s.parser
	}
	return query.New(query.WithTimezoneOffset(*offset))
}

// parseQuery handles POST /v1/parse. It runs the mini-language parser and
// returns the arXiv field query plus extracted control data, or a 422 with
// the parser's diagnostic.
func (s *Server) parseQuery(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	start := time.Now()
	result := s.parserFor(req.TimezoneOffsetHours).Parse(req.Query)
	elapsed := time.Since(start).Seconds()

	if !result.Success {
		if s.metrics != nil {
			s.metrics.RecordParseFailure(result.Err.Code.String(), elapsed)
		}
		writeJSON(w, http.StatusUnprocessableEntity, parseErrorResponse{
			Error: result.Err.Message,
			Code:  result.Err.Code.String(),
		})
		return
	}

	if s.metrics != nil {
		s.metrics.RecordParseSuccess(elapsed)
	}
	writeJSON(w, http.StatusOK, parseResultToResponse(result))
}

// searchPapers handles POST /v1/search. It parses the query and executes it
// against the arXiv API, returning the matching papers.
func (s *Server) searchPapers(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	parseStart := time.Now()
	result := s.parserFor(req.TimezoneOffsetHours).Parse(req.Query)
	parseElapsed := time.Since(parseStart).Seconds()

	if !result.Success {
		if s.metrics != nil {
			s.metrics.RecordParseFailure(result.Err.Code.String(), parseElapsed)
		}
		writeJSON(w, http.StatusUnprocessableEntity, parseErrorResponse{
			Error: result.Err.Message,
			Code:  result.Err.Code.String(),
		})
		return
	}
	if s.metrics != nil {
		s.metrics.RecordParseSuccess(parseElapsed)
		s.metrics.RecordSearchStarted()
	}

	searchStart := time.Now()
	searchResult, err := s.searcher.Search(r.Context(), arxiv.SearchRequest{
		Query:      result.Query,
		MaxResults: result.MaxResults,
		Start:      req.Start,
		SortBy:     result.SortCriterion.String(),
		SortOrder:  result.SortOrder.String(),
	})
	searchElapsed := time.Since(searchStart).Seconds()

	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordSearchFailed(searchElapsed)
		}
		logger := observability.WithQueryContext(s.logger, result.Query)
		logger.Error().Err(err).Msg("arXiv search failed")
		writeError(w, searchErrorStatus(err), "search failed: "+err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.RecordSearchCompleted(len(searchResult.Papers), searchElapsed)
	}
	writeJSON(w, http.StatusOK, searchResultToResponse(result, searchResult))
}

// validationMessage renders a field validation failure as a user-facing
// message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// searchErrorStatus maps an arXiv client error to an HTTP status code.
func searchErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
