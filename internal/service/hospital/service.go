package hospital

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/service"
	"github.com/meetocure/admin-api/internal/service/event"
	"github.com/meetocure/admin-api/internal/service/resolver"
	"github.com/meetocure/admin-api/internal/service/transform"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/security"
)

const (
	msgListFailed       = "Error fetching hospitals"
	msgStatsFailed      = "Error fetching hospital statistics"
	msgAllDoctorsFailed = "Error fetching all doctors"
	msgGetFailed        = "Error fetching hospital"
	msgDoctorsFailed    = "Error fetching hospital doctors"
	msgCreateFailed     = "Error creating hospital"
	msgUpdateFailed     = "Error updating hospital"
	msgDeleteFailed     = "Error deleting hospital"
	msgLinkFailed       = "Error adding doctor to hospital"
	msgUnlinkFailed     = "Error removing doctor from hospital"
	msgDuplicate        = "Hospital with this email already exists"
	msgHasDoctors       = "Cannot delete hospital with registered doctors. Please remove all doctors first."
	msgAlreadyLinked    = "Doctor is already associated with this hospital"
)

type DeleteResult struct {
	HospitalName string    `json:"hospitalName"`
	DeletedAt    time.Time `json:"deletedAt"`
}

type LinkResult struct {
	HospitalID   primitive.ObjectID `json:"hospitalId"`
	DoctorID     primitive.ObjectID `json:"doctorId"`
	HospitalName string             `json:"hospitalName"`
	DoctorName   string             `json:"doctorName"`
}

type Created struct {
	ID           primitive.ObjectID `json:"id"`
	Email        string             `json:"email"`
	HospitalName string             `json:"hospitalName"`
	Address      string             `json:"address"`
	Contact      string             `json:"contact"`
}

type Service struct {
	hospitals repository.HospitalRepository
	doctors   repository.DoctorRepository
	resolver  *resolver.Resolver
	hasher    security.PasswordHasher
	events    *event.Service
	now       func() time.Time
}

func NewService(repos *repository.Repositories, r *resolver.Resolver, hasher security.PasswordHasher, events *event.Service) *Service {
	return &Service{
		hospitals: repos.Hospitals,
		doctors:   repos.Doctors,
		resolver:  r,
		hasher:    hasher,
		events:    events,
		now:       time.Now,
	}
}

// withDoctors resolves every hospital's doctor list
func (s *Service) withDoctors(ctx context.Context) ([]*model.Hospital, [][]*model.PopulatedDoctor, error) {
	hospitals, err := s.hospitals.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	doctors := make([][]*model.PopulatedDoctor, len(hospitals))
	for i, h := range hospitals {
		if doctors[i], err = s.resolver.HospitalDoctors(ctx, h); err != nil {
			return nil, nil, err
		}
	}
	return hospitals, doctors, nil
}

func (s *Service) List(ctx context.Context) ([]model.HospitalWithDoctors, error) {
	hospitals, doctors, err := s.withDoctors(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgListFailed, err)
	}
	out := make([]model.HospitalWithDoctors, 0, len(hospitals))
	for i, h := range hospitals {
		out = append(out, transform.HospitalWithDoctors(h, doctors[i]))
	}
	return out, nil
}

// Stats counts doctors that resolve; dangling references are ignored
func (s *Service) Stats(ctx context.Context) (*model.HospitalStats, error) {
	hospitals, doctors, err := s.withDoctors(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgStatsFailed, err)
	}
	counts := make([]int, len(doctors))
	for i, d := range doctors {
		counts[i] = len(d)
	}
	stats := transform.HospitalStats(hospitals, counts)
	return &stats, nil
}

// AllDoctors flattens every hospital's doctors. A doctor listed by two
// hospitals appears twice, once per hospital.
func (s *Service) AllDoctors(ctx context.Context) ([]model.HospitalDoctor, int, error) {
	hospitals, doctors, err := s.withDoctors(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(msgAllDoctorsFailed, err)
	}
	out := []model.HospitalDoctor{}
	for i, h := range hospitals {
		out = append(out, transform.HospitalDoctors(h, doctors[i])...)
	}
	return out, len(hospitals), nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*model.HospitalWithDoctors, error) {
	id, err := service.ParseID(rawID, msgGetFailed)
	if err != nil {
		return nil, err
	}
	hospital, doctors, err := s.resolver.ResolveHospitalDoctors(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Hospital", msgGetFailed)
	}
	out := transform.HospitalWithDoctors(hospital, doctors)
	return &out, nil
}

func (s *Service) Doctors(ctx context.Context, rawID string) ([]model.HospitalDoctor, error) {
	id, err := service.ParseID(rawID, msgDoctorsFailed)
	if err != nil {
		return nil, err
	}
	hospital, doctors, err := s.resolver.ResolveHospitalDoctors(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Hospital", msgDoctorsFailed)
	}
	return transform.HospitalDoctors(hospital, doctors), nil
}

// Create rejects a second hospital with the same email. Name is not unique.
func (s *Service) Create(ctx context.Context, req model.CreateHospitalRequest) (*Created, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	if _, err := s.hospitals.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict(msgDuplicate)
	} else if !service.IsNotFound(err) {
		return nil, apperrors.Internal(msgCreateFailed, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.Validation(err.Error(), err)
		}
		return nil, apperrors.Internal(msgCreateFailed, err)
	}

	hospital := &model.Hospital{
		Email:         req.Email,
		Password:      hash,
		HospitalName:  req.HospitalName,
		Address:       req.Address,
		Contact:       req.Contact,
		HospitalImage: req.HospitalImage,
		Description:   req.Description,
		Specialties:   req.Specialties,
		Facilities:    req.Facilities,
		Location:      req.Location,
		Docters:       []string{},
	}
	if err := s.hospitals.Create(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict(msgDuplicate)
		}
		return nil, apperrors.Internal(msgCreateFailed, err)
	}

	s.events.Emit(ctx, event.HospitalCreated, hospital.ID.Hex(), map[string]string{"hospitalName": hospital.HospitalName})
	return &Created{
		ID:           hospital.ID,
		Email:        hospital.Email,
		HospitalName: hospital.HospitalName,
		Address:      hospital.Address,
		Contact:      hospital.Contact,
	}, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req model.UpdateHospitalRequest) (*model.Hospital, error) {
	id, err := service.ParseID(rawID, msgUpdateFailed)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	hospital, err := s.hospitals.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Hospital", msgUpdateFailed)
	}
	req.Apply(hospital)
	if err := s.hospitals.Update(ctx, hospital); err != nil {
		return nil, service.Wrap(err, "Hospital", msgUpdateFailed)
	}

	s.events.Emit(ctx, event.HospitalUpdated, id.Hex(), req)
	return hospital, nil
}

// Delete refuses while the hospital still lists any doctor reference,
// resolvable or not
func (s *Service) Delete(ctx context.Context, rawID string) (*DeleteResult, error) {
	id, err := service.ParseID(rawID, msgDeleteFailed)
	if err != nil {
		return nil, err
	}
	hospital, err := s.hospitals.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "Hospital", msgDeleteFailed)
	}

	if n := len(hospital.Docters); n > 0 {
		return nil, apperrors.Validation(msgHasDoctors, nil).WithField("doctorsCount", n)
	}

	if err := s.hospitals.Delete(ctx, id); err != nil {
		return nil, service.Wrap(err, "Hospital", msgDeleteFailed)
	}

	s.events.Emit(ctx, event.HospitalDeleted, id.Hex(), nil)
	return &DeleteResult{HospitalName: hospital.HospitalName, DeletedAt: s.now()}, nil
}

func (s *Service) AddDoctor(ctx context.Context, rawHospitalID, rawDoctorID string) (*LinkResult, error) {
	hospitalID, err := service.ParseID(rawHospitalID, msgLinkFailed)
	if err != nil {
		return nil, err
	}
	doctorID, err := service.ParseID(rawDoctorID, msgLinkFailed)
	if err != nil {
		return nil, err
	}

	hospital, err := s.hospitals.Get(ctx, hospitalID)
	if err != nil {
		return nil, service.Wrap(err, "Hospital", msgLinkFailed)
	}
	doctor, err := s.resolver.PopulateDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, service.Wrap(err, "Doctor", msgLinkFailed)
	}

	ref := doctorID.Hex()
	if hospital.HasDoctor(ref) {
		return nil, apperrors.Validation(msgAlreadyLinked, nil)
	}
	if err := s.hospitals.AddDoctor(ctx, hospitalID, ref); err != nil {
		return nil, service.Wrap(err, "Hospital", msgLinkFailed)
	}

	result := &LinkResult{
		HospitalID:   hospitalID,
		DoctorID:     doctorID,
		HospitalName: hospital.HospitalName,
		DoctorName:   transform.DoctorSummary(doctor).FullName,
	}
	s.events.Emit(ctx, event.HospitalDoctorLinked, hospitalID.Hex(), result)
	return result, nil
}

// RemoveDoctor is idempotent. The doctor reference is matched as a raw
// string so malformed entries can be cleaned up too.
func (s *Service) RemoveDoctor(ctx context.Context, rawHospitalID, doctorRef string) error {
	hospitalID, err := service.ParseID(rawHospitalID, msgUnlinkFailed)
	if err != nil {
		return err
	}
	if err := s.hospitals.RemoveDoctor(ctx, hospitalID, doctorRef); err != nil {
		return service.Wrap(err, "Hospital", msgUnlinkFailed)
	}
	s.events.Emit(ctx, event.HospitalDoctorUnlink, hospitalID.Hex(), map[string]string{"doctorId": doctorRef})
	return nil
}
