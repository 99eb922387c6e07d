package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/domain/route"
)

// FetchService queries the directions API for route pairs and stores the rows.
type FetchService struct {
	directions route.DirectionsProvider
	writer     route.ResultWriter
	publisher  route.ResultPublisher
	outputPath string
	pace       time.Duration
	logger     *zap.Logger
}

// NewFetchService creates a new FetchService. pace is the delay between
// consecutive API calls.
func NewFetchService(
	directions route.DirectionsProvider,
	writer route.ResultWriter,
	publisher route.ResultPublisher,
	outputPath string,
	pace time.Duration,
	logger *zap.Logger,
) *FetchService {
	return &FetchService{
		directions: directions,
		writer:     writer,
		publisher:  publisher,
		outputPath: outputPath,
		pace:       pace,
		logger:     logger,
	}
}

// Fetch queries one pair. A non-OK API status is logged and yields a nil
// result with a nil error; transport and decoding failures are returned.
func (s *FetchService) Fetch(ctx context.Context, origin, destination string) (*route.RouteQueryResult, error) {
	result, _, err := s.fetch(ctx, route.Pair{Origin: origin, Destination: destination})
	return result, err
}

func (s *FetchService) fetch(ctx context.Context, pair route.Pair) (*route.RouteQueryResult, string, error) {
	leg, err := s.directions.GetLeg(ctx, pair.Origin, pair.Destination)
	if err != nil {
		var statusErr *route.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Warn("directions query failed",
				zap.String("route", pair.Label()),
				zap.String("status", statusErr.Status),
				zap.String("message", statusErr.Message),
			)
			return nil, statusErr.Status, nil
		}
		return nil, "", fmt.Errorf("route %s: %w", pair.Label(), err)
	}

	return route.NewRouteQueryResult(pair, leg), route.StatusOK, nil
}

// Run fetches every pair in order, pausing between calls, then writes all
// rows (failed pairs as blank rows) to the output file. The first transport
// error aborts the run and nothing is written.
func (s *FetchService) Run(ctx context.Context, pairs []route.Pair) ([]*route.RouteQueryResult, error) {
	results := make([]*route.RouteQueryResult, 0, len(pairs))

	for i, pair := range pairs {
		if i > 0 {
			if err := sleep(ctx, s.pace); err != nil {
				return nil, err
			}
		}

		s.logger.Info("querying route",
			zap.String("origin", pair.Origin),
			zap.String("destination", pair.Destination),
		)

		result, status, err := s.fetch(ctx, pair)
		if err != nil {
			return nil, err
		}
		results = append(results, result)

		if err := s.publisher.PublishResult(ctx, pair, result, status); err != nil {
			s.logger.Error("failed to publish route result",
				zap.String("route", pair.Label()),
				zap.Error(err),
			)
		}
	}

	if err := s.writer.Write(ctx, s.outputPath, results); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}

	s.logger.Info("route results written",
		zap.String("path", s.outputPath),
		zap.Int("rows", len(results)),
		zap.Int("failed", countNil(results)),
	)
	return results, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func countNil(results []*route.RouteQueryResult) int {
	n := 0
	for _, r := range results {
		if r == nil {
			n++
		}
	}
	return n
}
