package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

type doctorRepository struct {
	s *Store
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	r.s.uniq.Lock()
	defer r.s.uniq.Unlock()
	if r.s.doctors.exists(primitive.NilObjectID, func(d *model.Doctor) bool {
		return d.Email == doctor.Email || d.MobileNumber == doctor.MobileNumber
	}) {
		return repository.ErrDuplicateKey
	}
	doctor.ID = newID(doctor.ID)
	doctor.Touch(r.s.now())
	r.s.doctors.insert(doctor.ID, doctor)
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	return r.s.doctors.get(id)
}

func (r *doctorRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Doctor, error) {
	out := make([]*model.Doctor, 0, len(ids))
	for _, id := range ids {
		if d, err := r.s.doctors.get(id); err == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *doctorRepository) GetByVerification(ctx context.Context, verificationID primitive.ObjectID) (*model.Doctor, error) {
	return r.s.doctors.findOne(func(d *model.Doctor) bool {
		return d.VerificationDetails != nil && *d.VerificationDetails == verificationID
	})
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	return r.s.doctors.find(nil), nil
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Doctor, error) {
	return r.s.doctors.update(id, func(d *model.Doctor) *model.Doctor {
		d.RegistrationStatus = status
		d.UpdatedAt = r.s.now()
		return d
	})
}

func (r *doctorRepository) SetVerification(ctx context.Context, id, verificationID primitive.ObjectID) error {
	_, err := r.s.doctors.update(id, func(d *model.Doctor) *model.Doctor {
		d.VerificationDetails = &verificationID
		d.UpdatedAt = r.s.now()
		return d
	})
	return err
}

func (r *doctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.doctors.delete(id)
}

func (r *doctorRepository) Count(ctx context.Context) (int, error) {
	return r.s.doctors.count(nil), nil
}

func (r *doctorRepository) CountCreated(ctx context.Context, window model.TimeRange) (int, error) {
	return r.s.doctors.count(func(d *model.Doctor) bool { return window.Contains(d.CreatedAt) }), nil
}

func (r *doctorRepository) CountPending(ctx context.Context) (int, error) {
	return r.s.doctors.count(func(d *model.Doctor) bool {
		return model.IsPendingRegistration(d.RegistrationStatus)
	}), nil
}

type verificationRepository struct {
	s *Store
}

func (r *verificationRepository) Create(ctx context.Context, v *model.DoctorVerification) error {
	v.ID = newID(v.ID)
	v.Touch(r.s.now())
	r.s.verifications.insert(v.ID, v)
	return nil
}

func (r *verificationRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.DoctorVerification, error) {
	return r.s.verifications.get(id)
}

func (r *verificationRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.DoctorVerification, error) {
	out := make([]*model.DoctorVerification, 0, len(ids))
	for _, id := range ids {
		if v, err := r.s.verifications.get(id); err == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *verificationRepository) List(ctx context.Context) ([]*model.DoctorVerification, error) {
	return r.s.verifications.find(nil), nil
}

func (r *verificationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.verifications.delete(id)
}
