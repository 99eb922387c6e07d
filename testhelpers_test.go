//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/application"
	"github.com/transmovil-cr/service-routes/internal/directions"
	"github.com/transmovil-cr/service-routes/internal/events"
	"github.com/transmovil-cr/service-routes/internal/repository"
)

const resultsTopic = "route.results"

// testInfra holds shared test infrastructure.
type testInfra struct {
	KafkaBrokers []string
	Cleanup      func()
}

// fetcherStack holds wired-up fetcher components.
type fetcherStack struct {
	Service         *application.FetchService
	CleanupProducer func()
}

// setupContainers starts a Kafka testcontainer and creates the results topic.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// confluent-local supports KRaft natively.
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, resultsTopic)

	cleanup := func() {
		if err := testcontainers.TerminateContainer(kafkaContainer); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	}

	return &testInfra{
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// directionsStub answers every origin listed in statuses with that status.
// OK responses carry a 10 km leg taking 20 minutes (30 with traffic).
func directionsStub(t *testing.T, statuses map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, ok := statuses[r.URL.Query().Get("origin")]
		if !ok {
			status = "NOT_FOUND"
		}
		resp := directions.Response{Status: status}
		if status == "OK" {
			resp.Routes = []directions.Route{{
				Legs: []directions.Leg{{
					Distance:          directions.TextValue{Text: "10 km", Value: 10000},
					Duration:          directions.TextValue{Text: "20 min", Value: 1200},
					DurationInTraffic: &directions.TextValue{Text: "30 min", Value: 1800},
				}},
			}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupFetcherStack wires the fetch service to a directions stub and a real producer.
func setupFetcherStack(t *testing.T, brokers []string, directionsURL, outputPath string) *fetcherStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	producer := events.NewProducer(brokers, logger)
	svc := application.NewFetchService(
		directions.NewClient(directionsURL, "test-key", nil),
		repository.NewSpreadsheetResultWriter(logger),
		events.NewResultPublisher(producer, resultsTopic),
		outputPath,
		10*time.Millisecond,
		logger,
	)

	return &fetcherStack{
		Service:         svc,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// consumeEvents reads from a Kafka topic until n events have arrived.
func consumeEvents(t *testing.T, brokers []string, topic string, n int, timeout time.Duration) []events.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	var out []events.CloudEvent
	for len(out) < n {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for %d events on topic %q, got %d", n, topic, len(out))
			}
			continue
		}
		ce, err := events.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		out = append(out, ce)
	}
	return out
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
