package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/service"
	"github.com/meetocure/admin-api/internal/service/event"
	"github.com/meetocure/admin-api/internal/service/resolver"
	"github.com/meetocure/admin-api/internal/service/transform"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
)

const (
	msgFailed         = "Internal server error"
	msgStatusRequired = "Status is required"
	msgInvalidDate    = "Invalid date, expected YYYY-MM-DD"
	msgInvalidRef     = "Invalid %s reference"
)

// InvalidStatusMessage lists the values PATCH /status accepts
var InvalidStatusMessage = "Invalid status. Must be one of: " + strings.Join(model.StatusUpdateValues, ", ")

type Deleted struct {
	ID              primitive.ObjectID `json:"id"`
	AppointmentDate time.Time          `json:"appointmentDate"`
	AppointmentTime string             `json:"appointmentTime"`
}

type Service struct {
	repo     repository.AppointmentRepository
	resolver *resolver.Resolver
	events   *event.Service
	loc      *time.Location
}

func NewService(repo repository.AppointmentRepository, r *resolver.Resolver, events *event.Service) *Service {
	return &Service{repo: repo, resolver: r, events: events, loc: time.Local}
}

// DayRange parses a YYYY-MM-DD date into the local day it names
func DayRange(date string, loc *time.Location) (model.TimeRange, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return model.TimeRange{}, err
	}
	return model.TimeRange{From: day, To: day.AddDate(0, 0, 1)}, nil
}

// List returns every appointment, or those on one day when date is set,
// ordered by date then time ascending
func (s *Service) List(ctx context.Context, date string) ([]model.AppointmentView, error) {
	var filter model.AppointmentFilter
	if date != "" {
		window, err := DayRange(date, s.loc)
		if err != nil {
			return nil, apperrors.Validation(msgInvalidDate, err)
		}
		filter.Date = &window
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	populated, err := s.resolver.PopulateAppointments(ctx, appointments)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	return transform.Appointments(populated), nil
}

func (s *Service) view(ctx context.Context, id primitive.ObjectID) (*model.AppointmentView, error) {
	pa, err := s.resolver.ResolveAppointment(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Appointment", msgFailed)
	}
	v := transform.Appointment(pa)
	return &v, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*model.AppointmentView, error) {
	id, err := service.ParseID(rawID, msgFailed)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, id)
}

func optionalRef(raw, what string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := model.ParseID(raw)
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf(msgInvalidRef, what), err)
	}
	return &id, nil
}

// Create stores an appointment the way the patient booking flow would.
// References are not checked for existence.
func (s *Service) Create(ctx context.Context, req model.CreateAppointmentRequest) (*model.AppointmentView, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}
	patientID, err := optionalRef(req.PatientID, "patient")
	if err != nil {
		return nil, err
	}
	doctorID, err := optionalRef(req.DoctorID, "doctor")
	if err != nil {
		return nil, err
	}
	date, err := model.ParseDate(req.AppointmentDate, s.loc)
	if err != nil {
		return nil, apperrors.Validation(msgInvalidDate, err)
	}

	status := req.Status
	if status == "" {
		status = model.AppointmentPending
	}
	appointment := &model.Appointment{
		Patient:         patientID,
		Doctor:          doctorID,
		PatientInfo:     req.PatientInfo,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		AppointmentType: req.AppointmentType,
		Status:          status,
		Reason:          req.Reason,
		Payment:         req.Payment,
		MedicalRecords:  req.MedicalRecords,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}

	s.events.Emit(ctx, event.AppointmentCreated, appointment.ID.Hex(), map[string]string{"status": status})
	return s.view(ctx, appointment.ID)
}

// Update replaces the editable fields. Status may be any stored value,
// including accepted, and transitions are not checked.
func (s *Service) Update(ctx context.Context, rawID string, req model.UpdateAppointmentRequest) (*model.AppointmentView, error) {
	id, err := service.ParseID(rawID, msgFailed)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Appointment", msgFailed)
	}
	req.Apply(appointment)
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, service.Wrap(err, "Appointment", msgFailed)
	}

	s.events.Emit(ctx, event.AppointmentUpdated, id.Hex(), req)
	return s.view(ctx, id)
}

// UpdateStatus only accepts pending, confirmed, completed and cancelled
func (s *Service) UpdateStatus(ctx context.Context, rawID, status string) (*model.AppointmentView, error) {
	if status == "" {
		return nil, apperrors.Validation(msgStatusRequired, nil)
	}
	if !model.IsStatusUpdateValue(status) {
		return nil, apperrors.Validation(InvalidStatusMessage, nil)
	}
	id, err := service.ParseID(rawID, msgFailed)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, service.Wrap(err, "Appointment", msgFailed)
	}

	s.events.Emit(ctx, event.AppointmentStatus, id.Hex(), map[string]string{"status": status})
	return s.view(ctx, id)
}

func (s *Service) Delete(ctx context.Context, rawID string) (*Deleted, error) {
	id, err := service.ParseID(rawID, msgFailed)
	if err != nil {
		return nil, err
	}
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Appointment", msgFailed)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, service.Wrap(err, "Appointment", msgFailed)
	}

	s.events.Emit(ctx, event.AppointmentDeleted, id.Hex(), nil)
	return &Deleted{
		ID:              appointment.ID,
		AppointmentDate: appointment.AppointmentDate,
		AppointmentTime: appointment.AppointmentTime,
	}, nil
}
