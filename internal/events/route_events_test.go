package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transmovil-cr/service-routes/internal/domain/route"
)

type recordedEvent struct {
	topic string
	key   string
	ce    CloudEvent
}

type fakeProducer struct {
	events []recordedEvent
	err    error
}

func (f *fakeProducer) PublishEvent(_ context.Context, topic, key string, ce CloudEvent) error {
	f.events = append(f.events, recordedEvent{topic: topic, key: key, ce: ce})
	return f.err
}

func TestResultPublisher_Completed(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewResultPublisher(producer, "route.results")
	pair := route.Pair{Origin: "San José, Costa Rica", Destination: "Alajuela, Costa Rica"}
	result := &route.RouteQueryResult{Route: pair.Label(), Origin: pair.Origin, Destination: pair.Destination, DistanceKm: 18}

	require.NoError(t, pub.PublishResult(context.Background(), pair, result, route.StatusOK))

	require.Len(t, producer.events, 1)
	evt := producer.events[0]
	assert.Equal(t, "route.results", evt.topic)
	assert.Equal(t, pair.Label(), evt.key)
	assert.Equal(t, RouteQueryCompleted, evt.ce.Type)
	assert.Equal(t, SourceRouteFetcher, evt.ce.Source)
	assert.Equal(t, "1.0", evt.ce.SpecVersion)
	assert.NotEmpty(t, evt.ce.ID)

	var data RouteQueryCompletedEvent
	require.NoError(t, evt.ce.ParseData(&data))
	assert.Equal(t, 18.0, data.Result.DistanceKm)
}

func TestResultPublisher_Failed(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewResultPublisher(producer, "route.results")
	pair := route.Pair{Origin: "A", Destination: "B"}

	require.NoError(t, pub.PublishResult(context.Background(), pair, nil, "ZERO_RESULTS"))

	require.Len(t, producer.events, 1)
	assert.Equal(t, RouteQueryFailed, producer.events[0].ce.Type)

	var data RouteQueryFailedEvent
	require.NoError(t, producer.events[0].ce.ParseData(&data))
	assert.Equal(t, "ZERO_RESULTS", data.Status)
	assert.Equal(t, "A", data.Origin)
}

func TestResultPublisher_PropagatesError(t *testing.T) {
	pub := NewResultPublisher(&fakeProducer{err: errors.New("broker down")}, "t")

	err := pub.PublishResult(context.Background(), route.Pair{Origin: "A", Destination: "B"}, nil, "X")

	assert.EqualError(t, err, "broker down")
}

func TestCloudEvent_RoundTrip(t *testing.T) {
	ce, err := NewCloudEvent("src", "type", map[string]int{"n": 1})
	require.NoError(t, err)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, ce.ID, parsed.ID)
	var data map[string]int
	require.NoError(t, parsed.ParseData(&data))
	assert.Equal(t, 1, data["n"])
}

func TestParseCloudEvent_Invalid(t *testing.T) {
	_, err := ParseCloudEvent([]byte("{"))
	assert.Error(t, err)
}
