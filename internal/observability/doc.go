// Package observability provides logging and metrics support for the arXiv
// query service.
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("query parsed")
//
// # Metrics
//
// Initialize metrics and record events:
//
//	metrics := observability.NewMetrics("arxiv_query")
//	metrics.RecordParseSuccess(0.0003)
//	metrics.RecordParseFailure("unbalanced_parentheses", 0.0002)
//
// # Context Helpers
//
// Store and retrieve the request ID:
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// All components are safe for concurrent use from multiple goroutines.
package observability
