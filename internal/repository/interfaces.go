package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

var (
	// ErrNotFound is returned when no document matches
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a unique index rejects a write
	ErrDuplicateKey = errors.New("duplicate key")
)

// All repository interfaces in one file
type (
	AdminRepository interface {
		Create(ctx context.Context, admin *model.Admin) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Admin, error)
		GetByEmail(ctx context.Context, email string) (*model.Admin, error)
		List(ctx context.Context) ([]*model.Admin, error)
		Update(ctx context.Context, admin *model.Admin) error
		Delete(ctx context.Context, id primitive.ObjectID) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error)
		// GetMany returns the doctors that exist, in the order of ids
		GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Doctor, error)
		GetByVerification(ctx context.Context, verificationID primitive.ObjectID) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Doctor, error)
		SetVerification(ctx context.Context, id, verificationID primitive.ObjectID) error
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context) (int, error)
		CountCreated(ctx context.Context, window model.TimeRange) (int, error)
		// CountPending counts doctors that are neither verified nor rejected
		CountPending(ctx context.Context) (int, error)
	}

	VerificationRepository interface {
		Create(ctx context.Context, v *model.DoctorVerification) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.DoctorVerification, error)
		GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.DoctorVerification, error)
		List(ctx context.Context) ([]*model.DoctorVerification, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
	}

	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Hospital, error)
		GetByEmail(ctx context.Context, email string) (*model.Hospital, error)
		List(ctx context.Context) ([]*model.Hospital, error)
		Update(ctx context.Context, hospital *model.Hospital) error
		Delete(ctx context.Context, id primitive.ObjectID) error
		AddDoctor(ctx context.Context, id primitive.ObjectID, doctorID string) error
		RemoveDoctor(ctx context.Context, id primitive.ObjectID, doctorID string) error
		Count(ctx context.Context) (int, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Patient, error)
		GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Patient, error)
		GetByPhone(ctx context.Context, phone string) (*model.Patient, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context) (int, error)
		CountCreated(ctx context.Context, window model.TimeRange) (int, error)
	}

	PatientDetailsRepository interface {
		Create(ctx context.Context, details *model.PatientDetails) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.PatientDetails, error)
		GetByPatient(ctx context.Context, patientID primitive.ObjectID) (*model.PatientDetails, error)
		List(ctx context.Context) ([]*model.PatientDetails, error)
		Update(ctx context.Context, details *model.PatientDetails) error
		Delete(ctx context.Context, id primitive.ObjectID) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error)
		List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Appointment, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		// CountCreated counts appointments created inside window. An empty
		// status matches every status.
		CountCreated(ctx context.Context, window model.TimeRange, status string) (int, error)
		CountByPatient(ctx context.Context) (map[primitive.ObjectID]int, error)
	}

	SettingsRepository interface {
		// FindOrCreate returns the singleton, inserting defaults atomically
		// when no document exists yet
		FindOrCreate(ctx context.Context, defaults model.GeneralSettings) (*model.Settings, error)
		UpdateGeneral(ctx context.Context, id primitive.ObjectID, general model.GeneralSettings) (*model.Settings, error)
	}

	// Pinger is implemented by stores that can report readiness
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// Repositories bundles every store the services need
type Repositories struct {
	Admins         AdminRepository
	Doctors        DoctorRepository
	Verifications  VerificationRepository
	Hospitals      HospitalRepository
	Patients       PatientRepository
	PatientDetails PatientDetailsRepository
	Appointments   AppointmentRepository
	Settings       SettingsRepository
	Health         Pinger
}
