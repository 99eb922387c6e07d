package route

import "context"

// ResultWriter persists fetched rows to a tabular file.
type ResultWriter interface {
	// Write stores results in order. Nil entries are written as blank rows.
	Write(ctx context.Context, path string, results []*RouteQueryResult) error
}

// ResultPublisher announces each fetched row to downstream consumers.
type ResultPublisher interface {
	// PublishResult is called once per pair. result is nil for a failed query,
	// in which case status holds the API status.
	PublishResult(ctx context.Context, pair Pair, result *RouteQueryResult, status string) error
}
