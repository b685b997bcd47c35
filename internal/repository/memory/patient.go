package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

type patientRepository struct {
	s *Store
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.s.uniq.Lock()
	defer r.s.uniq.Unlock()
	if r.s.patients.exists(primitive.NilObjectID, func(p *model.Patient) bool { return p.Phone == patient.Phone }) {
		return repository.ErrDuplicateKey
	}
	if patient.Notifications == nil {
		patient.Notifications = []model.Notification{}
	}
	patient.ID = newID(patient.ID)
	patient.Touch(r.s.now())
	r.s.patients.insert(patient.ID, patient)
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Patient, error) {
	return r.s.patients.get(id)
}

func (r *patientRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(ids))
	for _, id := range ids {
		if p, err := r.s.patients.get(id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *patientRepository) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	return r.s.patients.findOne(func(p *model.Patient) bool { return p.Phone == phone })
}

func (r *patientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.patients.delete(id)
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	return r.s.patients.count(nil), nil
}

func (r *patientRepository) CountCreated(ctx context.Context, window model.TimeRange) (int, error) {
	return r.s.patients.count(func(p *model.Patient) bool { return window.Contains(p.CreatedAt) }), nil
}

type patientDetailsRepository struct {
	s *Store
}

func (r *patientDetailsRepository) Create(ctx context.Context, details *model.PatientDetails) error {
	details.ID = newID(details.ID)
	details.Touch(r.s.now())
	r.s.patientDetails.insert(details.ID, details)
	return nil
}

func (r *patientDetailsRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.PatientDetails, error) {
	return r.s.patientDetails.get(id)
}

func (r *patientDetailsRepository) GetByPatient(ctx context.Context, patientID primitive.ObjectID) (*model.PatientDetails, error) {
	return r.s.patientDetails.findOne(func(d *model.PatientDetails) bool { return d.Patient == patientID })
}

func (r *patientDetailsRepository) List(ctx context.Context) ([]*model.PatientDetails, error) {
	return r.s.patientDetails.find(nil), nil
}

func (r *patientDetailsRepository) Update(ctx context.Context, details *model.PatientDetails) error {
	details.UpdatedAt = r.s.now()
	_, err := r.s.patientDetails.update(details.ID, func(*model.PatientDetails) *model.PatientDetails { return details })
	return err
}

func (r *patientDetailsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.patientDetails.delete(id)
}
