package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetocure/admin-api/internal/model"
)

type appointmentRepository struct {
	c *collection
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if appointment.ID.IsZero() {
		appointment.ID = primitive.NewObjectID()
	}
	if appointment.MedicalRecords == nil {
		appointment.MedicalRecords = []model.MedicalRecord{}
	}
	for i := range appointment.MedicalRecords {
		if appointment.MedicalRecords[i].ID.IsZero() {
			appointment.MedicalRecords[i].ID = primitive.NewObjectID()
		}
	}
	appointment.Touch(time.Now())
	return r.c.insert(ctx, appointment)
}

func (r *appointmentRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.c.findOne(ctx, bson.M{"_id": id}, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	query := bson.M{}
	if filter.Date != nil {
		query["appointment_date"] = bson.M{"$gte": filter.Date.From, "$lt": filter.Date.To}
	}
	if filter.PatientID != nil {
		query["patient"] = *filter.PatientID
	}
	if filter.DoctorID != nil {
		query["doctor"] = *filter.DoctorID
	}

	order := 1
	if filter.Descending {
		order = -1
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "appointment_date", Value: order},
		{Key: "appointment_time", Value: order},
	})

	appointments := []*model.Appointment{}
	if err := r.c.find(ctx, query, &appointments, opts); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	appointment.UpdatedAt = time.Now()
	return r.c.replace(ctx, appointment.ID, appointment)
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Appointment, error) {
	var appointment model.Appointment
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	if err := r.c.findOneAndUpdate(ctx, bson.M{"_id": id}, update, &appointment, false); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.deleteOne(ctx, id)
}

func (r *appointmentRepository) CountCreated(ctx context.Context, window model.TimeRange, status string) (int, error) {
	filter := createdIn(window.From, window.To)
	if status != "" {
		filter["status"] = status
	}
	return r.c.count(ctx, filter)
}

func (r *appointmentRepository) CountByPatient(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"patient": bson.M{"$ne": nil}}},
		bson.M{"$group": bson.M{"_id": "$patient", "count": bson.M{"$sum": 1}}},
	}

	start := time.Now()
	cur, err := r.c.coll.Aggregate(ctx, pipeline)
	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int                `bson:"count"`
	}
	if err == nil {
		err = cur.All(ctx, &rows)
	}
	r.c.observe("aggregate", start, err)
	if err != nil {
		return nil, r.c.wrap("aggregate", err)
	}

	counts := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}
