package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

type adminRepository struct {
	c *collection
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.Touch(time.Now())
	return r.c.insert(ctx, admin)
}

func (r *adminRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.c.findOne(ctx, bson.M{"email": email}, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]*model.Admin, error) {
	admins := []*model.Admin{}
	if err := r.c.find(ctx, bson.M{}, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	admin.UpdatedAt = time.Now()
	return r.c.replace(ctx, admin.ID, admin)
}

func (r *adminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}
