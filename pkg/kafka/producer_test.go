package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

// blockingWriter never completes a write on its own; it returns once the
// context is done.
type blockingWriter struct{}

func (blockingWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingWriter) Close() error { return nil }

func testProducer(w messageWriter) *Producer {
	return &Producer{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestNewEvent_Fields(t *testing.T) {
	type ratedData struct {
		StoreID int64 `json:"store_id"`
		Rating  int   `json:"rating"`
	}

	data := ratedData{StoreID: 7, Rating: 5}
	event, err := NewEvent("store.rated", "7", "store", "storedoc", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "store.rated", event.EventType)
	assert.Equal(t, "7", event.AggregateID)
	assert.Equal(t, "store", event.AggregateType)
	assert.Equal(t, "storedoc", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)
	assert.NotNil(t, event.Metadata)

	var got ratedData
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, data, got)
}

func TestNewEvent_InvalidData(t *testing.T) {
	_, err := NewEvent("store.rated", "1", "store", "storedoc", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.rated")
}

func TestEvent_Chaining(t *testing.T) {
	event := &Event{EventType: "user.registered"}

	got := event.WithCorrelationID("corr-1").WithMetadata("role", "StoreOwner")

	assert.Same(t, event, got)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.Equal(t, "StoreOwner", event.Metadata["role"])
}

func TestUnmarshalEvent(t *testing.T) {
	original, err := NewEvent("store.created", "3", "store", "storedoc", map[string]string{"name": "Corner Shop"})
	require.NoError(t, err)
	original.WithCorrelationID("corr-abc")

	raw, err := original.Marshal()
	require.NoError(t, err)

	restored, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, original.EventID, restored.EventID)
	assert.Equal(t, original.CorrelationID, restored.CorrelationID)
	assert.JSONEq(t, string(original.Data), string(restored.Data))

	_, err = UnmarshalEvent([]byte(`{broken`))
	require.Error(t, err)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storedoc.user.registered", Topic("user", "registered"))
	assert.Equal(t, "storedoc.store.created", Topic("store", "created"))
	assert.Equal(t, "storedoc.store.rated", Topic("store", "rated"))
}

func TestDefaultProducerConfig(t *testing.T) {
	brokers := []string{"broker1:9092", "broker2:9092"}
	cfg := DefaultProducerConfig(brokers)

	assert.Equal(t, brokers, cfg.Brokers)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 10*time.Millisecond, cfg.BatchTimeout)
	assert.False(t, cfg.Async)
}

func TestProducer_Publish_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := testProducer(w)
	topic := Topic("store", "rated")
	before := testutil.ToFloat64(ProducerMessagesPublished.WithLabelValues(topic))

	event, err := NewEvent("store.rated", "42", "store", "storedoc", map[string]int{"rating": 4})
	require.NoError(t, err)
	event.WithCorrelationID("corr-9")

	require.NoError(t, p.Publish(context.Background(), topic, event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, topic, msg.Topic)
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "store.rated", headerValue(msg, "event_type"))
	assert.Equal(t, "storedoc", headerValue(msg, "source"))
	assert.Equal(t, "corr-9", headerValue(msg, "correlation_id"))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)

	assert.Equal(t, before+1, testutil.ToFloat64(ProducerMessagesPublished.WithLabelValues(topic)))
}

func TestProducer_Publish_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	event, err := NewEvent("user.registered", "1", "user", "storedoc", nil)
	require.NoError(t, err)

	require.NoError(t, testProducer(w).Publish(ctx, Topic("user", "registered"), event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", headerValue(w.msgs[0], "traceparent"))
}

func TestProducer_Publish_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := testProducer(w)
	topic := Topic("store", "created")
	before := testutil.ToFloat64(ProducerPublishErrors.WithLabelValues(topic))

	event, err := NewEvent("store.created", "5", "store", "storedoc", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), topic, event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), topic)
	assert.Equal(t, before+1, testutil.ToFloat64(ProducerPublishErrors.WithLabelValues(topic)))
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, testProducer(w).Close())
	assert.True(t, w.closed)
}

func TestNewProducer_DoesNotConnect(t *testing.T) {
	p := NewProducer(DefaultProducerConfig([]string{"localhost:19092"}), nil)
	require.NotNil(t, p)
	assert.Equal(t, []string{"localhost:19092"}, p.brokers)
	assert.NoError(t, p.Close())
}

func TestPingBrokers_NoBrokers(t *testing.T) {
	err := PingBrokers(t.Context(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers configured")
}

func TestProducer_PublishBoundedByTimeout(t *testing.T) {
	p := testProducer(blockingWriter{})
	p.timeout = 20 * time.Millisecond

	event, err := NewEvent("store.rated", "3", "store", "storedoc", map[string]int{"rating": 4})
	require.NoError(t, err)

	start := time.Now()
	err = p.Publish(context.Background(), "store.rated", event)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDefaultProducerConfig_BoundsPublish(t *testing.T) {
	cfg := DefaultProducerConfig([]string{"localhost:9092"})
	assert.Equal(t, 2*time.Second, cfg.PublishTimeout)
	assert.False(t, cfg.Async)
}
