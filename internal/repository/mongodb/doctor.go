package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

type doctorRepository struct {
	c *collection
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	if doctor.ID.IsZero() {
		doctor.ID = primitive.NewObjectID()
	}
	doctor.Touch(time.Now())
	return r.c.insert(ctx, doctor)
}

func (r *doctorRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Doctor, error) {
	if len(ids) == 0 {
		return []*model.Doctor{}, nil
	}
	var found []*model.Doctor
	if err := r.c.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &found); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*model.Doctor, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	out := make([]*model.Doctor, 0, len(found))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *doctorRepository) GetByVerification(ctx context.Context, verificationID primitive.ObjectID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.c.findOne(ctx, bson.M{"verificationDetails": verificationID}, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	if err := r.c.find(ctx, bson.M{}, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Doctor, error) {
	var doctor model.Doctor
	update := bson.M{"$set": bson.M{"registrationStatus": status, "updatedAt": time.Now()}}
	if err := r.c.findOneAndUpdate(ctx, bson.M{"_id": id}, update, &doctor, false); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) SetVerification(ctx context.Context, id, verificationID primitive.ObjectID) error {
	return r.c.updateOne(ctx, id, bson.M{"$set": bson.M{"verificationDetails": verificationID, "updatedAt": time.Now()}})
}

func (r *doctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}

func (r *doctorRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, bson.M{})
}

func (r *doctorRepository) CountCreated(ctx context.Context, window model.TimeRange) (int, error) {
	return r.c.count(ctx, createdIn(window.From, window.To))
}

func (r *doctorRepository) CountPending(ctx context.Context) (int, error) {
	return r.c.count(ctx, bson.M{"registrationStatus": bson.M{
		"$nin": bson.A{model.RegistrationVerified, model.RegistrationRejected},
	}})
}

type verificationRepository struct {
	c *collection
}

func (r *verificationRepository) Create(ctx context.Context, v *model.DoctorVerification) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	v.Touch(time.Now())
	return r.c.insert(ctx, v)
}

func (r *verificationRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.DoctorVerification, error) {
	var v model.DoctorVerification
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *verificationRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.DoctorVerification, error) {
	out := []*model.DoctorVerification{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.c.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *verificationRepository) List(ctx context.Context) ([]*model.DoctorVerification, error) {
	out := []*model.DoctorVerification{}
	if err := r.c.find(ctx, bson.M{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *verificationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}
