package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	pkgkafka "github.com/San2021331091/Smart-Cart-Backend/pkg/kafka"
)

// Kafka topic for answered assistant queries.
var TopicQueryAnswered = pkgkafka.Topic("assistant", "query_answered")

// EventTypeQueryAnswered is the event_type of query answered events.
const EventTypeQueryAnswered = "assistant.query_answered"

// Aggregate type constant.
const AggregateTypeQuery = "query"

// Source identifier for events originating from the assistant service.
const SourceAssistantService = "assistant-service"

// QueryAnsweredData is the payload for an assistant.query_answered event.
type QueryAnsweredData struct {
	Query       string `json:"query"`
	Intent      string `json:"intent"`
	Category    string `json:"category,omitempty"`
	Matched     bool   `json:"matched"`
	ResultCount int    `json:"result_count"`
}

// Publisher publishes assistant events.
type Publisher interface {
	PublishQueryAnswered(ctx context.Context, correlationID string, data QueryAnsweredData) error
}

// kafkaPublisher is the subset of *pkgkafka.Producer used here.
type kafkaPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes assistant events to Kafka.
type Producer struct {
	kafka  kafkaPublisher
	logger *slog.Logger
}

// NewProducer creates a new event producer for the assistant service.
func NewProducer(kafka kafkaPublisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishQueryAnswered publishes an assistant.query_answered event keyed by
// the request's correlation id, or a fresh id when there is none.
func (p *Producer) PublishQueryAnswered(ctx context.Context, correlationID string, data QueryAnsweredData) error {
	aggregateID := correlationID
	if aggregateID == "" {
		aggregateID = uuid.NewString()
	}

	event, err := pkgkafka.NewEvent(EventTypeQueryAnswered, aggregateID, AggregateTypeQuery, SourceAssistantService, data)
	if err != nil {
		return fmt.Errorf("create query_answered event: %w", err)
	}
	event.WithCorrelationID(correlationID).WithMetadata("intent", data.Intent)

	if err := p.kafka.Publish(ctx, TopicQueryAnswered, event); err != nil {
		return fmt.Errorf("publish query_answered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published query_answered event",
		slog.String("intent", data.Intent),
		slog.Int("result_count", data.ResultCount),
	)
	return nil
}

// Noop discards every event. It is used when events are disabled.
type Noop struct{}

// PublishQueryAnswered does nothing.
func (Noop) PublishQueryAnswered(context.Context, string, QueryAnsweredData) error {
	return nil
}
