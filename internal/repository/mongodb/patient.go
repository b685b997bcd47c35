package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

type patientRepository struct {
	c *collection
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}
	if patient.Notifications == nil {
		patient.Notifications = []model.Notification{}
	}
	patient.Touch(time.Now())
	return r.c.insert(ctx, patient)
}

func (r *patientRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Patient, error) {
	out := []*model.Patient{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.c.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *patientRepository) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	var patient model.Patient
	if err := r.c.findOne(ctx, bson.M{"phone": phone}, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, bson.M{})
}

func (r *patientRepository) CountCreated(ctx context.Context, window model.TimeRange) (int, error) {
	return r.c.count(ctx, createdIn(window.From, window.To))
}

type patientDetailsRepository struct {
	c *collection
}

func (r *patientDetailsRepository) Create(ctx context.Context, details *model.PatientDetails) error {
	if details.ID.IsZero() {
		details.ID = primitive.NewObjectID()
	}
	details.Touch(time.Now())
	return r.c.insert(ctx, details)
}

func (r *patientDetailsRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.PatientDetails, error) {
	var details model.PatientDetails
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *patientDetailsRepository) GetByPatient(ctx context.Context, patientID primitive.ObjectID) (*model.PatientDetails, error) {
	var details model.PatientDetails
	if err := r.c.findOne(ctx, bson.M{"patient": patientID}, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *patientDetailsRepository) List(ctx context.Context) ([]*model.PatientDetails, error) {
	out := []*model.PatientDetails{}
	if err := r.c.find(ctx, bson.M{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *patientDetailsRepository) Update(ctx context.Context, details *model.PatientDetails) error {
	details.UpdatedAt = time.Now()
	return r.c.replace(ctx, details.ID, details)
}

func (r *patientDetailsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}
