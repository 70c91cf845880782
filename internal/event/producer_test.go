package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/San2021331091/Smart-Cart-Backend/pkg/kafka"
)

type recordingKafka struct {
	topic string
	event *pkgkafka.Event
	err   error
}

func (r *recordingKafka) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	r.topic = topic
	r.event = event
	return r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProducer_PublishQueryAnswered(t *testing.T) {
	k := &recordingKafka{}
	p := NewProducer(k, testLogger())

	err := p.PublishQueryAnswered(context.Background(), "req-1", QueryAnsweredData{
		Query:       "shoes below 100",
		Intent:      "category",
		Category:    "mens-shoes",
		Matched:     true,
		ResultCount: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "smartcart.assistant.query_answered", k.topic)
	require.NotNil(t, k.event)
	assert.Equal(t, EventTypeQueryAnswered, k.event.EventType)
	assert.Equal(t, "req-1", k.event.AggregateID)
	assert.Equal(t, "req-1", k.event.CorrelationID)
	assert.Equal(t, AggregateTypeQuery, k.event.AggregateType)
	assert.Equal(t, SourceAssistantService, k.event.Source)
	assert.Equal(t, "category", k.event.Metadata["intent"])

	var data QueryAnsweredData
	require.NoError(t, k.event.UnmarshalData(&data))
	assert.Equal(t, "mens-shoes", data.Category)
	assert.Equal(t, 3, data.ResultCount)
}

func TestProducer_GeneratesAggregateID(t *testing.T) {
	k := &recordingKafka{}
	p := NewProducer(k, testLogger())

	require.NoError(t, p.PublishQueryAnswered(context.Background(), "", QueryAnsweredData{Intent: "greeting"}))

	assert.NotEmpty(t, k.event.AggregateID)
	assert.Empty(t, k.event.CorrelationID)
}

func TestProducer_PublishError(t *testing.T) {
	k := &recordingKafka{err: errors.New("broker down")}
	p := NewProducer(k, testLogger())

	err := p.PublishQueryAnswered(context.Background(), "req-2", QueryAnsweredData{Intent: "price"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish query_answered event")
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.PublishQueryAnswered(context.Background(), "x", QueryAnsweredData{}))
}
