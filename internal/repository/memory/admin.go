package memory

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

type adminRepository struct {
	s *Store
}

func sameEmail(email string) func(*model.Admin) bool {
	return func(a *model.Admin) bool { return strings.EqualFold(a.Email, email) }
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	r.s.uniq.Lock()
	defer r.s.uniq.Unlock()
	if r.s.admins.exists(primitive.NilObjectID, sameEmail(admin.Email)) {
		return repository.ErrDuplicateKey
	}
	admin.ID = newID(admin.ID)
	admin.Touch(r.s.now())
	r.s.admins.insert(admin.ID, admin)
	return nil
}

func (r *adminRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	return r.s.admins.get(id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return r.s.admins.findOne(sameEmail(email))
}

func (r *adminRepository) List(ctx context.Context) ([]*model.Admin, error) {
	return r.s.admins.find(nil), nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	r.s.uniq.Lock()
	defer r.s.uniq.Unlock()
	if r.s.admins.exists(admin.ID, sameEmail(admin.Email)) {
		return repository.ErrDuplicateKey
	}
	admin.UpdatedAt = r.s.now()
	_, err := r.s.admins.update(admin.ID, func(*model.Admin) *model.Admin { return admin })
	return err
}

func (r *adminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.admins.delete(id)
}
