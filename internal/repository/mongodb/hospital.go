package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

type hospitalRepository struct {
	c *collection
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	if hospital.ID.IsZero() {
		hospital.ID = primitive.NewObjectID()
	}
	if hospital.Docters == nil {
		hospital.Docters = []string{}
	}
	hospital.Touch(time.Now())
	return r.c.insert(ctx, hospital)
}

func (r *hospitalRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Hospital, error) {
	var hospital model.Hospital
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &hospital); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByEmail(ctx context.Context, email string) (*model.Hospital, error) {
	var hospital model.Hospital
	if err := r.c.findOne(ctx, bson.M{"email": email}, &hospital); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	hospitals := []*model.Hospital{}
	if err := r.c.find(ctx, bson.M{}, &hospitals); err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	hospital.UpdatedAt = time.Now()
	return r.c.replace(ctx, hospital.ID, hospital)
}

func (r *hospitalRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}

func (r *hospitalRepository) AddDoctor(ctx context.Context, id primitive.ObjectID, doctorID string) error {
	return r.c.updateOne(ctx, id, bson.M{
		"$addToSet": bson.M{"docters": doctorID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

func (r *hospitalRepository) RemoveDoctor(ctx context.Context, id primitive.ObjectID, doctorID string) error {
	return r.c.updateOne(ctx, id, bson.M{
		"$pull": bson.M{"docters": doctorID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

func (r *hospitalRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, bson.M{})
}
