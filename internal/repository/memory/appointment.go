package memory

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

type appointmentRepository struct {
	s *Store
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if appointment.MedicalRecords == nil {
		appointment.MedicalRecords = []model.MedicalRecord{}
	}
	for i := range appointment.MedicalRecords {
		appointment.MedicalRecords[i].ID = newID(appointment.MedicalRecords[i].ID)
	}
	appointment.ID = newID(appointment.ID)
	appointment.Touch(r.s.now())
	r.s.appointments.insert(appointment.ID, appointment)
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	return r.s.appointments.get(id)
}

func (r *appointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	out := r.s.appointments.find(func(a *model.Appointment) bool {
		if filter.Date != nil && !filter.Date.Contains(a.AppointmentDate) {
			return false
		}
		if filter.PatientID != nil && (a.Patient == nil || *a.Patient != *filter.PatientID) {
			return false
		}
		if filter.DoctorID != nil && (a.Doctor == nil || *a.Doctor != *filter.DoctorID) {
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if filter.Descending {
			a, b = b, a
		}
		if !a.AppointmentDate.Equal(b.AppointmentDate) {
			return a.AppointmentDate.Before(b.AppointmentDate)
		}
		return a.AppointmentTime < b.AppointmentTime
	})
	return out, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	appointment.UpdatedAt = r.s.now()
	_, err := r.s.appointments.update(appointment.ID, func(*model.Appointment) *model.Appointment { return appointment })
	return err
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Appointment, error) {
	return r.s.appointments.update(id, func(a *model.Appointment) *model.Appointment {
		a.Status = status
		a.UpdatedAt = r.s.now()
		return a
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.appointments.delete(id)
}

func (r *appointmentRepository) CountCreated(ctx context.Context, window model.TimeRange, status string) (int, error) {
	return r.s.appointments.count(func(a *model.Appointment) bool {
		return window.Contains(a.CreatedAt) && (status == "" || a.Status == status)
	}), nil
}

func (r *appointmentRepository) CountByPatient(ctx context.Context) (map[primitive.ObjectID]int, error) {
	counts := make(map[primitive.ObjectID]int)
	for _, a := range r.s.appointments.find(func(a *model.Appointment) bool { return a.Patient != nil }) {
		counts[*a.Patient]++
	}
	return counts, nil
}
