// Package resolver expands stored references into the documents they point
// at. A missing parent is an error; a missing child is left nil for the
// transform layer to replace with a placeholder.
package resolver

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/pkg/logger"
)

type Resolver struct {
	doctors       repository.DoctorRepository
	verifications repository.VerificationRepository
	hospitals     repository.HospitalRepository
	patients      repository.PatientRepository
	appointments  repository.AppointmentRepository
}

func New(repos *repository.Repositories) *Resolver {
	return &Resolver{
		doctors:       repos.Doctors,
		verifications: repos.Verifications,
		hospitals:     repos.Hospitals,
		patients:      repos.Patients,
		appointments:  repos.Appointments,
	}
}

// ResolveDoctor loads a doctor and its verification. A doctor that never
// started verification (nil reference) resolves with nil details; a
// reference that points at nothing is reported as repository.ErrNotFound.
func (r *Resolver) ResolveDoctor(ctx context.Context, id primitive.ObjectID) (*model.PopulatedDoctor, error) {
	doctor, err := r.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.VerificationDetails == nil {
		return model.Populate(doctor, nil), nil
	}
	v, err := r.verifications.Get(ctx, *doctor.VerificationDetails)
	if err != nil {
		return nil, err
	}
	return model.Populate(doctor, v), nil
}

// PopulateDoctors attaches verification details to each doctor in one batch.
// Dangling references are tolerated.
func (r *Resolver) PopulateDoctors(ctx context.Context, doctors []*model.Doctor) ([]*model.PopulatedDoctor, error) {
	var ids []primitive.ObjectID
	for _, d := range doctors {
		if d.VerificationDetails != nil {
			ids = append(ids, *d.VerificationDetails)
		}
	}

	verifications, err := r.verifications.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*model.DoctorVerification, len(verifications))
	for _, v := range verifications {
		byID[v.ID] = v
	}

	out := make([]*model.PopulatedDoctor, 0, len(doctors))
	for _, d := range doctors {
		var v *model.DoctorVerification
		if d.VerificationDetails != nil {
			v = byID[*d.VerificationDetails]
		}
		out = append(out, model.Populate(d, v))
	}
	return out, nil
}

// PopulateDoctorByID loads one doctor, tolerating a dangling verification
// reference
func (r *Resolver) PopulateDoctorByID(ctx context.Context, id primitive.ObjectID) (*model.PopulatedDoctor, error) {
	doctor, err := r.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	populated, err := r.PopulateDoctors(ctx, []*model.Doctor{doctor})
	if err != nil {
		return nil, err
	}
	return populated[0], nil
}

// ResolveAppointment loads an appointment and fetches its patient and doctor
// concurrently. Missing relations are left nil.
func (r *Resolver) ResolveAppointment(ctx context.Context, id primitive.ObjectID) (*model.PopulatedAppointment, error) {
	appointment, err := r.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &model.PopulatedAppointment{Appointment: appointment}
	g, gctx := errgroup.WithContext(ctx)

	if appointment.Patient != nil {
		g.Go(func() error {
			p, err := r.patients.Get(gctx, *appointment.Patient)
			if err != nil {
				return optional(err)
			}
			out.Patient = p
			return nil
		})
	}
	if appointment.Doctor != nil {
		g.Go(func() error {
			d, err := r.PopulateDoctorByID(gctx, *appointment.Doctor)
			if err != nil {
				return optional(err)
			}
			out.Doctor = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PopulateAppointments resolves the relations of many appointments with one
// batched lookup per collection
func (r *Resolver) PopulateAppointments(ctx context.Context, appointments []*model.Appointment) ([]*model.PopulatedAppointment, error) {
	patientIDs := uniqueRefs(appointments, func(a *model.Appointment) *primitive.ObjectID { return a.Patient })
	doctorIDs := uniqueRefs(appointments, func(a *model.Appointment) *primitive.ObjectID { return a.Doctor })

	patients := make(map[primitive.ObjectID]*model.Patient)
	doctors := make(map[primitive.ObjectID]*model.PopulatedDoctor)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := r.patients.GetMany(gctx, patientIDs)
		if err != nil {
			return err
		}
		for _, p := range found {
			patients[p.ID] = p
		}
		return nil
	})
	g.Go(func() error {
		found, err := r.doctors.GetMany(gctx, doctorIDs)
		if err != nil {
			return err
		}
		populated, err := r.PopulateDoctors(gctx, found)
		if err != nil {
			return err
		}
		for _, d := range populated {
			doctors[d.ID] = d
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*model.PopulatedAppointment, 0, len(appointments))
	for _, a := range appointments {
		pa := &model.PopulatedAppointment{Appointment: a}
		if a.Patient != nil {
			pa.Patient = patients[*a.Patient]
		}
		if a.Doctor != nil {
			pa.Doctor = doctors[*a.Doctor]
		}
		out = append(out, pa)
	}
	return out, nil
}

// ResolveHospitalDoctors loads a hospital and the doctors listed in its
// docters array, which is the only membership source consulted. Entries that
// are not valid IDs or point at deleted doctors are skipped.
func (r *Resolver) ResolveHospitalDoctors(ctx context.Context, hospitalID primitive.ObjectID) (*model.Hospital, []*model.PopulatedDoctor, error) {
	hospital, err := r.hospitals.Get(ctx, hospitalID)
	if err != nil {
		return nil, nil, err
	}
	doctors, err := r.HospitalDoctors(ctx, hospital)
	if err != nil {
		return nil, nil, err
	}
	return hospital, doctors, nil
}

// HospitalDoctors is ResolveHospitalDoctors for an already loaded hospital
func (r *Resolver) HospitalDoctors(ctx context.Context, hospital *model.Hospital) ([]*model.PopulatedDoctor, error) {
	ids := make([]primitive.ObjectID, 0, len(hospital.Docters))
	for _, raw := range hospital.Docters {
		id, err := model.ParseID(raw)
		if err != nil {
			logger.Ctx(ctx).Debug().Str("hospital_id", hospital.ID.Hex()).Str("doctor_ref", raw).Msg("skipping malformed doctor reference")
			continue
		}
		ids = append(ids, id)
	}

	doctors, err := r.doctors.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return r.PopulateDoctors(ctx, doctors)
}

func optional(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func uniqueRefs(appointments []*model.Appointment, ref func(*model.Appointment) *primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, a := range appointments {
		if id := ref(a); id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	return ids
}
