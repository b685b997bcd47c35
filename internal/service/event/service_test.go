package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/pkg/circuitbreaker"
	"github.com/meetocure/admin-api/pkg/metrics"
)

type recordingBroker struct {
	mu       sync.Mutex
	channels []string
	messages []interface{}
	err      error
}

func (b *recordingBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels = append(b.channels, channel)
	b.messages = append(b.messages, message)
	return b.err
}

func (b *recordingBroker) Ping(ctx context.Context) error { return nil }
func (b *recordingBroker) Close() error                   { return nil }

func TestEmitPublishesEvent(t *testing.T) {
	broker := &recordingBroker{}
	svc := NewService(broker, "admin-api.events", nil)

	svc.Emit(context.Background(), DoctorDeleted, "abc", map[string]bool{"verificationDeleted": true})

	require.Len(t, broker.messages, 1)
	assert.Equal(t, "admin-api.events", broker.channels[0])
	evt, ok := broker.messages[0].(model.Event)
	require.True(t, ok)
	assert.Equal(t, DoctorDeleted, evt.Type)
	assert.Equal(t, "abc", evt.EntityID)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestEmitFailureIsCountedOnce(t *testing.T) {
	broker := &recordingBroker{err: errors.New("connection refused")}
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewService(broker, "events", m)

	assert.NotPanics(t, func() {
		svc.Emit(context.Background(), SettingsUpdated, "s1", nil)
	})
	assert.Len(t, broker.messages, 1, "no retry")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(SettingsUpdated, "error")))
}

func TestEmitSurvivesCancelledRequest(t *testing.T) {
	broker := &recordingBroker{}
	svc := NewService(broker, "events", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Emit(ctx, PatientRegistered, "p1", nil)
	assert.Len(t, broker.messages, 1)
}

type stalledBroker struct{}

func (stalledBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stalledBroker) Ping(ctx context.Context) error { return nil }
func (stalledBroker) Close() error                   { return nil }

func TestEmitIsBoundedByTimeout(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewService(stalledBroker{}, "events", m)
	svc.timeout = 20 * time.Millisecond

	start := time.Now()
	svc.Emit(context.Background(), HospitalUpdated, "h1", nil)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(HospitalUpdated, "error")))
}

func TestNilServiceIsNoop(t *testing.T) {
	var svc *Service
	assert.NotPanics(t, func() {
		svc.Emit(context.Background(), AdminCreated, "a1", nil)
	})
}

func TestBreakerStopsPublishingToDeadBroker(t *testing.T) {
	broker := &recordingBroker{err: errors.New("connection refused")}
	svc := NewService(broker, "events", nil).WithBreaker(circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "test",
		MaxFailures: 2,
		Timeout:     time.Hour,
	}))

	for i := 0; i < 5; i++ {
		svc.Emit(context.Background(), PatientUpdated, "p1", nil)
	}
	assert.Len(t, broker.messages, 2)
}
