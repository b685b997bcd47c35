package patient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/service"
	"github.com/meetocure/admin-api/internal/service/event"
	"github.com/meetocure/admin-api/internal/service/resolver"
	"github.com/meetocure/admin-api/internal/service/transform"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/logger"
)

const (
	msgFailed          = "Internal server error"
	msgPhoneRequired   = "Phone number is required"
	msgDuplicate       = "Patient with this phone number already exists"
	msgDetailsNotFound = "Patient details not found"
	msgInvalidDob      = "Invalid date of birth, expected YYYY-MM-DD"
)

type Service struct {
	patients     repository.PatientRepository
	details      repository.PatientDetailsRepository
	appointments repository.AppointmentRepository
	resolver     *resolver.Resolver
	events       *event.Service
	loc          *time.Location
}

func NewService(repos *repository.Repositories, r *resolver.Resolver, events *event.Service) *Service {
	return &Service{
		patients:     repos.Patients,
		details:      repos.PatientDetails,
		appointments: repos.Appointments,
		resolver:     r,
		events:       events,
		loc:          time.Local,
	}
}

func (s *Service) List(ctx context.Context) ([]model.PatientListItem, error) {
	details, err := s.details.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	counts, err := s.appointments.CountByPatient(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}

	out := make([]model.PatientListItem, 0, len(details))
	for i, d := range details {
		out = append(out, transform.PatientListItem(d, i, counts[d.Patient]))
	}
	return out, nil
}

func (s *Service) parseDob(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := model.ParseDate(raw, s.loc)
	if err != nil {
		return nil, apperrors.Validation(msgInvalidDob, err)
	}
	return &t, nil
}

// Register creates the Patient and PatientDetails pair. If the details
// insert fails the Patient is removed again so the phone can be reused.
func (s *Service) Register(ctx context.Context, req model.RegisterPatientRequest) (*model.RegisteredPatient, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, apperrors.Validation(msgPhoneRequired, nil)
	}
	dob, err := s.parseDob(req.Dob)
	if err != nil {
		return nil, err
	}

	if _, err := s.patients.GetByPhone(ctx, phone); err == nil {
		return nil, apperrors.Conflict(msgDuplicate)
	} else if !service.IsNotFound(err) {
		return nil, apperrors.Internal(msgFailed, err)
	}

	patient := &model.Patient{Phone: phone, Notifications: []model.Notification{}}
	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict(msgDuplicate)
		}
		return nil, apperrors.Internal(msgFailed, err)
	}

	gender := req.Gender
	if gender == "" {
		gender = model.DefaultPatientGender
	}
	details := &model.PatientDetails{
		Patient: patient.ID,
		Name:    req.Name,
		Phone:   phone,
		Dob:     dob,
		Gender:  gender,
		Photo:   req.Photo,
	}
	if err := s.details.Create(ctx, details); err != nil {
		if delErr := s.patients.Delete(ctx, patient.ID); delErr != nil {
			logger.Ctx(ctx).Error().Err(delErr).Str("patient_id", patient.ID.Hex()).Msg("failed to remove patient after details insert failed")
		}
		return nil, apperrors.Internal(msgFailed, err)
	}

	s.events.Emit(ctx, event.PatientRegistered, patient.ID.Hex(), map[string]string{"detailsId": details.ID.Hex()})
	return &model.RegisteredPatient{
		PatientID: patient.ID,
		DetailsID: details.ID,
		Phone:     phone,
		Name:      req.Name,
		Gender:    gender,
	}, nil
}

// resolve accepts either a PatientDetails ID or a Patient ID
func (s *Service) resolve(ctx context.Context, rawID string) (*model.PatientDetails, error) {
	id, err := service.ParseID(rawID, msgFailed)
	if err != nil {
		return nil, err
	}

	details, err := s.details.Get(ctx, id)
	if err == nil {
		return details, nil
	}
	if !service.IsNotFound(err) {
		return nil, apperrors.Internal(msgFailed, err)
	}

	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Patient", msgFailed)
	}
	details, err = s.details.GetByPatient(ctx, patient.ID)
	if err != nil {
		if service.IsNotFound(err) {
			return nil, apperrors.NotFoundMessage(msgDetailsNotFound)
		}
		return nil, apperrors.Internal(msgFailed, err)
	}
	return details, nil
}

func (s *Service) appointmentsOf(ctx context.Context, d *model.PatientDetails) ([]*model.Appointment, error) {
	return s.appointments.List(ctx, model.AppointmentFilter{PatientID: &d.Patient, Descending: true})
}

func (s *Service) Get(ctx context.Context, rawID string) (*model.PatientProfile, error) {
	details, err := s.resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentsOf(ctx, details)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	profile := transform.PatientProfile(details, len(appointments))
	return &profile, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req model.UpdatePatientRequest) (*model.PatientDetails, error) {
	details, err := s.resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		details.Name = *req.Name
	}
	if req.Gender != nil {
		details.Gender = *req.Gender
	}
	if req.Photo != nil {
		details.Photo = *req.Photo
	}
	if req.Dob != nil {
		dob, err := s.parseDob(*req.Dob)
		if err != nil {
			return nil, err
		}
		details.Dob = dob
	}

	if err := s.details.Update(ctx, details); err != nil {
		return nil, service.Wrap(err, "Patient", msgFailed)
	}
	s.events.Emit(ctx, event.PatientUpdated, details.Patient.Hex(), req)
	return details, nil
}

// Delete removes the details row, then the patient row. Appointments are
// left in place.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	details, err := s.resolve(ctx, rawID)
	if err != nil {
		return err
	}
	if err := s.details.Delete(ctx, details.ID); err != nil {
		return service.Wrap(err, "Patient", msgFailed)
	}
	if err := s.patients.Delete(ctx, details.Patient); err != nil && !service.IsNotFound(err) {
		return apperrors.Internal(msgFailed, err)
	}
	s.events.Emit(ctx, event.PatientDeleted, details.Patient.Hex(), nil)
	return nil
}

func (s *Service) Appointments(ctx context.Context, rawID string) (*model.PatientAppointments, error) {
	details, err := s.resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentsOf(ctx, details)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	populated, err := s.resolver.PopulateAppointments(ctx, appointments)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	out := transform.PatientAppointments(details, populated)
	return &out, nil
}
