package doctor

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/service"
	"github.com/meetocure/admin-api/internal/service/event"
	"github.com/meetocure/admin-api/internal/service/resolver"
	"github.com/meetocure/admin-api/internal/service/transform"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/logger"
	"github.com/meetocure/admin-api/pkg/security"
)

const (
	msgListFailed     = "Error fetching doctors"
	msgGetFailed      = "Error fetching doctor"
	msgCreateFailed   = "Error creating doctor"
	msgStatusFailed   = "Error updating doctor status"
	msgDeleteFailed   = "Error deleting doctor"
	msgPatientsFailed = "Error fetching doctor patients"
	msgStatusRequired = "Registration status is required"
	msgDuplicate      = "Doctor with this email or mobile number already exists"

	MsgDeleted        = "Doctor deleted successfully"
	MsgDeletedCascade = "Doctor and associated verification details deleted successfully"
	MsgDeletedPartial = "Doctor deleted, but its verification details could not be removed"
)

// DeleteResult reports how far the doctor cascade got
type DeleteResult struct {
	DoctorID            primitive.ObjectID `json:"doctorId"`
	VerificationDeleted bool               `json:"verificationDeleted"`
	Message             string             `json:"-"`
}

type Service struct {
	doctors       repository.DoctorRepository
	verifications repository.VerificationRepository
	appointments  repository.AppointmentRepository
	resolver      *resolver.Resolver
	hasher        security.PasswordHasher
	events        *event.Service
}

func NewService(repos *repository.Repositories, r *resolver.Resolver, hasher security.PasswordHasher, events *event.Service) *Service {
	return &Service{
		doctors:       repos.Doctors,
		verifications: repos.Verifications,
		appointments:  repos.Appointments,
		resolver:      r,
		hasher:        hasher,
		events:        events,
	}
}

func (s *Service) List(ctx context.Context) ([]model.DoctorSummary, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgListFailed, err)
	}
	populated, err := s.resolver.PopulateDoctors(ctx, doctors)
	if err != nil {
		return nil, apperrors.Internal(msgListFailed, err)
	}
	return transform.DoctorSummaries(populated), nil
}

// Create registers a doctor in pending_verification. When verification
// details are supplied they are stored and linked in the same call.
func (s *Service) Create(ctx context.Context, req model.CreateDoctorRequest) (*model.PopulatedDoctor, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.Validation(err.Error(), err)
		}
		return nil, apperrors.Internal(msgCreateFailed, err)
	}

	doctor := &model.Doctor{
		Email:              req.Email,
		PasswordHash:       hash,
		MobileNumber:       req.MobileNumber,
		RegistrationStatus: model.RegistrationPendingVerification,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict(msgDuplicate)
		}
		return nil, apperrors.Internal(msgCreateFailed, err)
	}

	var verification *model.DoctorVerification
	if req.Verification != nil {
		verification = req.Verification
		verification.ID = primitive.NilObjectID
		verification.DoctorID = &doctor.ID
		if err := s.verifications.Create(ctx, verification); err != nil {
			return nil, apperrors.Internal(msgCreateFailed, err)
		}
		if err := s.doctors.SetVerification(ctx, doctor.ID, verification.ID); err != nil {
			return nil, apperrors.Internal(msgCreateFailed, err)
		}
		doctor.VerificationDetails = &verification.ID
	}

	s.events.Emit(ctx, event.DoctorCreated, doctor.ID.Hex(), map[string]string{"email": doctor.Email})
	return model.Populate(doctor, verification), nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*model.PopulatedDoctor, error) {
	id, err := service.ParseID(rawID, msgGetFailed)
	if err != nil {
		return nil, err
	}
	doctor, err := s.resolver.ResolveDoctor(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Doctor", msgGetFailed)
	}
	return doctor, nil
}

// UpdateStatus stores any non-empty status. Values outside the documented
// enum are accepted and logged.
func (s *Service) UpdateStatus(ctx context.Context, rawID, status string) (*model.PopulatedDoctor, error) {
	if status == "" {
		return nil, apperrors.Validation(msgStatusRequired, nil)
	}
	id, err := service.ParseID(rawID, msgStatusFailed)
	if err != nil {
		return nil, err
	}
	if !model.KnownRegistrationStatus(status) {
		logger.Ctx(ctx).Warn().Str("doctor_id", id.Hex()).Str("status", status).Msg("storing unrecognised registration status")
	}

	doctor, err := s.doctors.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, service.Wrap(err, "Doctor", msgStatusFailed)
	}
	populated, err := s.resolver.PopulateDoctors(ctx, []*model.Doctor{doctor})
	if err != nil {
		return nil, apperrors.Internal(msgStatusFailed, err)
	}

	s.events.Emit(ctx, event.DoctorStatusUpdated, id.Hex(), map[string]string{"registrationStatus": status})
	return populated[0], nil
}

// Delete removes the verification first, then the doctor. The two steps are
// not atomic: a failed verification delete is logged and reported in the
// result, and the doctor is deleted regardless.
func (s *Service) Delete(ctx context.Context, rawID string) (*DeleteResult, error) {
	id, err := service.ParseID(rawID, msgDeleteFailed)
	if err != nil {
		return nil, err
	}
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Doctor", msgDeleteFailed)
	}

	result := &DeleteResult{DoctorID: id, Message: MsgDeleted}
	if ref := doctor.VerificationDetails; ref != nil {
		err := s.verifications.Delete(ctx, *ref)
		switch {
		case err == nil:
			result.VerificationDeleted = true
			result.Message = MsgDeletedCascade
		case service.IsNotFound(err):
			result.Message = MsgDeletedCascade
		default:
			logger.Ctx(ctx).Warn().Err(err).
				Str("doctor_id", id.Hex()).
				Str("verification_id", ref.Hex()).
				Msg("failed to delete doctor verification, orphan left behind")
			result.Message = MsgDeletedPartial
		}
	}

	if err := s.doctors.Delete(ctx, id); err != nil {
		return nil, service.Wrap(err, "Doctor", msgDeleteFailed)
	}

	s.events.Emit(ctx, event.DoctorDeleted, id.Hex(), result)
	return result, nil
}

// Patients lists a doctor's patients with their appointments. rawID may be a
// Doctor ID or the ID of the doctor's verification record.
func (s *Service) Patients(ctx context.Context, rawID string) (*model.DoctorPatients, error) {
	id, err := service.ParseID(rawID, msgPatientsFailed)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.Get(ctx, id)
	if service.IsNotFound(err) {
		doctor, err = s.doctors.GetByVerification(ctx, id)
	}
	if err != nil {
		return nil, service.Wrap(err, "Doctor", msgPatientsFailed)
	}

	populatedDoctor, err := s.resolver.PopulateDoctors(ctx, []*model.Doctor{doctor})
	if err != nil {
		return nil, apperrors.Internal(msgPatientsFailed, err)
	}

	appointments, err := s.appointments.List(ctx, model.AppointmentFilter{DoctorID: &doctor.ID, Descending: true})
	if err != nil {
		return nil, apperrors.Internal(msgPatientsFailed, err)
	}
	populated, err := s.resolver.PopulateAppointments(ctx, appointments)
	if err != nil {
		return nil, apperrors.Internal(msgPatientsFailed, err)
	}

	out := transform.DoctorPatients(populatedDoctor[0], populated)
	return &out, nil
}
