package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	memstore "github.com/m04kA/SMC-SchedulingService/internal/testutil"
	"github.com/m04kA/SMC-SchedulingService/internal/worker/outbox"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

const topic = "booking.confirmed"

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func addEvents(t *testing.T, store *memstore.Store, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		e := &domain.OutboxEvent{
			AggregateID: uuid.New(),
			EventType:   domain.EventBookingConfirmed,
			Payload:     []byte(`{"bookingId":"x"}`),
		}
		require.NoError(t, store.Outbox().Create(context.Background(), e))
		ids = append(ids, e.AggregateID)
	}
	return ids
}

func newPublisher(store *memstore.Store, w outbox.MessageWriter, m *metrics.Metrics, batch int) *outbox.Publisher {
	return outbox.NewPublisher(store.Outbox(), w, store.TxManager(), m, topic, batch, time.Second, logger.Nop())
}

func TestPublishBatch(t *testing.T) {
	store := memstore.NewStore()
	aggregates := addEvents(t, store, 3)
	w := &fakeWriter{}
	m := metrics.NewWithRegisterer("scheduling", prometheus.NewRegistry())

	n, err := newPublisher(store, w, m, 10).PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	msgs := w.written()
	require.Len(t, msgs, 3)
	for i, msg := range msgs {
		assert.Equal(t, topic, msg.Topic)
		assert.Equal(t, aggregates[i].String(), string(msg.Key))
		assert.Equal(t, domain.EventBookingConfirmed, header(msg, "event_type"))
		assert.NotEmpty(t, header(msg, "event_id"))
	}

	for _, e := range store.OutboxEvents() {
		assert.NotNil(t, e.PublishedAt)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("scheduling", "published")))

	// все уже опубликовано
	n, err = newPublisher(store, w, m, 10).PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, w.written(), 3)
}

func TestPublishBatch_RespectsBatchSize(t *testing.T) {
	store := memstore.NewStore()
	addEvents(t, store, 5)
	w := &fakeWriter{}
	p := newPublisher(store, w, nil, 2)

	for _, want := range []int{2, 2, 1, 0} {
		n, err := p.PublishBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	assert.Len(t, w.written(), 5)
}

func TestPublishBatch_WriterFailureKeepsEventsPending(t *testing.T) {
	store := memstore.NewStore()
	addEvents(t, store, 2)
	brokerDown := errors.New("broker unavailable")
	w := &fakeWriter{err: brokerDown}
	m := metrics.NewWithRegisterer("scheduling", prometheus.NewRegistry())

	_, err := newPublisher(store, w, m, 10).PublishBatch(context.Background())
	assert.ErrorIs(t, err, brokerDown)
	for _, e := range store.OutboxEvents() {
		assert.Nil(t, e.PublishedAt)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("scheduling", "failed")))

	w.err = nil
	n, err := newPublisher(store, w, m, 10).PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := memstore.NewStore()
	p := outbox.NewPublisher(store.Outbox(), &fakeWriter{}, store.TxManager(), (*metrics.Metrics)(nil), topic, 10, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	addEvents(t, store, 1)
	require.Eventually(t, func() bool {
		events := store.OutboxEvents()
		return len(events) == 1 && events[0].PublishedAt != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop")
	}
}
