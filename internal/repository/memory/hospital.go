package memory

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

type hospitalRepository struct {
	s *Store
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	r.s.uniq.Lock()
	defer r.s.uniq.Unlock()
	if r.s.hospitals.exists(primitive.NilObjectID, func(h *model.Hospital) bool {
		return strings.EqualFold(h.Email, hospital.Email)
	}) {
		return repository.ErrDuplicateKey
	}
	if hospital.Docters == nil {
		hospital.Docters = []string{}
	}
	hospital.ID = newID(hospital.ID)
	hospital.Touch(r.s.now())
	r.s.hospitals.insert(hospital.ID, hospital)
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Hospital, error) {
	return r.s.hospitals.get(id)
}

func (r *hospitalRepository) GetByEmail(ctx context.Context, email string) (*model.Hospital, error) {
	return r.s.hospitals.findOne(func(h *model.Hospital) bool { return strings.EqualFold(h.Email, email) })
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	return r.s.hospitals.find(nil), nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	hospital.UpdatedAt = r.s.now()
	_, err := r.s.hospitals.update(hospital.ID, func(*model.Hospital) *model.Hospital { return hospital })
	return err
}

func (r *hospitalRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.hospitals.delete(id)
}

func (r *hospitalRepository) AddDoctor(ctx context.Context, id primitive.ObjectID, doctorID string) error {
	_, err := r.s.hospitals.update(id, func(h *model.Hospital) *model.Hospital {
		if !h.HasDoctor(doctorID) {
			h.Docters = append(h.Docters, doctorID)
			h.UpdatedAt = r.s.now()
		}
		return h
	})
	return err
}

func (r *hospitalRepository) RemoveDoctor(ctx context.Context, id primitive.ObjectID, doctorID string) error {
	_, err := r.s.hospitals.update(id, func(h *model.Hospital) *model.Hospital {
		kept := h.Docters[:0]
		for _, d := range h.Docters {
			if d != doctorID {
				kept = append(kept, d)
			}
		}
		h.Docters = kept
		h.UpdatedAt = r.s.now()
		return h
	})
	return err
}

func (r *hospitalRepository) Count(ctx context.Context) (int, error) {
	return r.s.hospitals.count(nil), nil
}
