package events

import (
	"context"
	"time"

	"github.com/transmovil-cr/service-routes/internal/domain/route"
)

// Event source and types emitted by the route fetcher.
const (
	SourceRouteFetcher = "route-fetcher"

	RouteQueryCompleted = "route.query.completed"
	RouteQueryFailed    = "route.query.failed"
)

// RouteQueryCompletedEvent carries one fetched row.
type RouteQueryCompletedEvent struct {
	Result     route.RouteQueryResult `json:"result"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// RouteQueryFailedEvent is emitted for a pair whose query returned a non-OK status.
type RouteQueryFailedEvent struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// eventPublisher is the part of Producer used by ResultPublisher.
type eventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, ce CloudEvent) error
}

// ResultPublisher implements route.ResultPublisher on top of a Producer.
type ResultPublisher struct {
	producer eventPublisher
	topic    string
}

// NewResultPublisher creates a ResultPublisher writing to topic.
func NewResultPublisher(producer eventPublisher, topic string) *ResultPublisher {
	return &ResultPublisher{producer: producer, topic: topic}
}

// PublishResult publishes a completed or failed event keyed by the route label.
func (p *ResultPublisher) PublishResult(ctx context.Context, pair route.Pair, result *route.RouteQueryResult, status string) error {
	var (
		ce  CloudEvent
		err error
	)
	now := time.Now().UTC()
	if result == nil {
		ce, err = NewCloudEvent(SourceRouteFetcher, RouteQueryFailed, RouteQueryFailedEvent{
			Origin:      pair.Origin,
			Destination: pair.Destination,
			Status:      status,
			OccurredAt:  now,
		})
	} else {
		ce, err = NewCloudEvent(SourceRouteFetcher, RouteQueryCompleted, RouteQueryCompletedEvent{
			Result:     *result,
			OccurredAt: now,
		})
	}
	if err != nil {
		return err
	}
	return p.producer.PublishEvent(ctx, p.topic, pair.Label(), ce)
}

// NopPublisher drops every result. It is used when no brokers are configured.
type NopPublisher struct{}

// PublishResult implements route.ResultPublisher.
func (NopPublisher) PublishResult(context.Context, route.Pair, *route.RouteQueryResult, string) error {
	return nil
}
