package event

import (
	"context"
	"errors"
	"time"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/pkg/circuitbreaker"
	"github.com/meetocure/admin-api/pkg/logger"
	"github.com/meetocure/admin-api/pkg/messaging"
	"github.com/meetocure/admin-api/pkg/metrics"
)

const publishTimeout = 2 * time.Second

const (
	AdminCreated         = "admin.created"
	AdminUpdated         = "admin.updated"
	AdminDeleted         = "admin.deleted"
	DoctorCreated        = "doctor.created"
	DoctorStatusUpdated  = "doctor.status_updated"
	DoctorDeleted        = "doctor.deleted"
	HospitalCreated      = "hospital.created"
	HospitalUpdated      = "hospital.updated"
	HospitalDeleted      = "hospital.deleted"
	HospitalDoctorLinked = "hospital.doctor_linked"
	HospitalDoctorUnlink = "hospital.doctor_unlinked"
	PatientRegistered    = "patient.registered"
	PatientUpdated       = "patient.updated"
	PatientDeleted       = "patient.deleted"
	AppointmentCreated   = "appointment.created"
	AppointmentUpdated   = "appointment.updated"
	AppointmentStatus    = "appointment.status_updated"
	AppointmentDeleted   = "appointment.deleted"
	SettingsUpdated      = "settings.updated"
)

// Service publishes domain events after successful mutations. A failure is
// logged once, never retried, and never fails the request that caused it.
//
// Publishing runs on the caller's goroutine, so a slow broker adds up to
// the publish timeout to the request. The breaker set by WithBreaker stops
// paying that cost once the broker keeps failing.
type Service struct {
	broker  messaging.Broker
	channel string
	metrics *metrics.Metrics
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	now     func() time.Time
}

func NewService(broker messaging.Broker, channel string, m *metrics.Metrics) *Service {
	if broker == nil {
		broker = messaging.NoopBroker{}
	}
	return &Service{broker: broker, channel: channel, metrics: m, timeout: publishTimeout, now: time.Now}
}

// WithBreaker guards publishing so an unreachable broker costs one failed
// call per cooldown instead of a timeout on every mutation
func (s *Service) WithBreaker(cb *circuitbreaker.CircuitBreaker) *Service {
	s.breaker = cb
	return s
}

func (s *Service) publish(ctx context.Context, evt model.Event) error {
	if s.breaker == nil {
		return s.broker.Publish(ctx, s.channel, evt)
	}
	return s.breaker.Execute(func() error {
		return s.broker.Publish(ctx, s.channel, evt)
	})
}

// Emit publishes one event and returns once the broker answers or the
// publish timeout expires. The request's cancellation does not cut it
// short. A nil receiver is a no-op so services can be built without a
// publisher in tests.
func (s *Service) Emit(ctx context.Context, eventType, entityID string, payload interface{}) {
	if s == nil {
		return
	}

	evt := model.Event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	err := s.publish(ctx, evt)
	s.metrics.ObserveEvent(eventType, err)
	if errors.Is(err, circuitbreaker.ErrOpen) {
		logger.Ctx(ctx).Debug().Str("event_type", eventType).Msg("broker circuit open, event dropped")
		return
	}
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).
			Str("event_type", eventType).
			Str("entity_id", entityID).
			Msg("failed to publish event")
	}
}
