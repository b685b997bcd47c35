package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/repository/memory"
)

func seedDoctor(t *testing.T, repos *repository.Repositories, email, mobile string, withVerification bool) *model.Doctor {
	t.Helper()
	ctx := context.Background()
	d := &model.Doctor{Email: email, MobileNumber: mobile}
	require.NoError(t, repos.Doctors.Create(ctx, d))
	if withVerification {
		v := &model.DoctorVerification{FullName: "Dr. " + email, DoctorID: &d.ID}
		require.NoError(t, repos.Verifications.Create(ctx, v))
		require.NoError(t, repos.Doctors.SetVerification(ctx, d.ID, v.ID))
		d.VerificationDetails = &v.ID
	}
	return d
}

func TestResolveDoctor(t *testing.T) {
	ctx := context.Background()
	repos := memory.New(nil).Repositories()
	r := New(repos)

	plain := seedDoctor(t, repos, "a@d.com", "1", false)
	got, err := r.ResolveDoctor(ctx, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VerificationDetails)

	verified := seedDoctor(t, repos, "b@d.com", "2", true)
	got, err = r.ResolveDoctor(ctx, verified.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VerificationDetails)
	assert.Equal(t, "Dr. b@d.com", got.VerificationDetails.FullName)

	_, err = r.ResolveDoctor(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResolveDoctorDanglingVerification(t *testing.T) {
	ctx := context.Background()
	repos := memory.New(nil).Repositories()
	r := New(repos)

	d := seedDoctor(t, repos, "a@d.com", "1", true)
	require.NoError(t, repos.Verifications.Delete(ctx, *d.VerificationDetails))

	_, err := r.ResolveDoctor(ctx, d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// the lenient path keeps the doctor
	populated, err := r.PopulateDoctorByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, populated.VerificationDetails)
}

func TestResolveAppointmentMissingRelations(t *testing.T) {
	ctx := context.Background()
	repos := memory.New(nil).Repositories()
	r := New(repos)

	ghost := primitive.NewObjectID()
	a := &model.Appointment{Patient: &ghost, Doctor: &ghost}
	require.NoError(t, repos.Appointments.Create(ctx, a))

	pa, err := r.ResolveAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, pa.Patient)
	assert.Nil(t, pa.Doctor)

	_, err = r.ResolveAppointment(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPopulateAppointments(t *testing.T) {
	ctx := context.Background()
	repos := memory.New(nil).Repositories()
	r := New(repos)

	d := seedDoctor(t, repos, "a@d.com", "1", true)
	p := &model.Patient{Phone: "99"}
	require.NoError(t, repos.Patients.Create(ctx, p))

	ghost := primitive.NewObjectID()
	appointments := []*model.Appointment{
		{ID: primitive.NewObjectID(), Patient: &p.ID, Doctor: &d.ID},
		{ID: primitive.NewObjectID(), Patient: &p.ID, Doctor: &ghost},
		{ID: primitive.NewObjectID()},
	}

	populated, err := r.PopulateAppointments(ctx, appointments)
	require.NoError(t, err)
	require.Len(t, populated, 3)

	assert.Equal(t, p.ID, populated[0].Patient.ID)
	require.NotNil(t, populated[0].Doctor)
	assert.NotNil(t, populated[0].Doctor.VerificationDetails)
	assert.Nil(t, populated[1].Doctor)
	assert.Nil(t, populated[2].Patient)
	assert.Nil(t, populated[2].Doctor)
}

func TestHospitalDoctorsSkipsBadReferences(t *testing.T) {
	ctx := context.Background()
	repos := memory.New(nil).Repositories()
	r := New(repos)

	d := seedDoctor(t, repos, "a@d.com", "1", false)
	h := &model.Hospital{
		Email:   "h@h.com",
		Docters: []string{"not-an-id", primitive.NewObjectID().Hex(), d.ID.Hex()},
	}
	require.NoError(t, repos.Hospitals.Create(ctx, h))

	hospital, doctors, err := r.ResolveHospitalDoctors(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.ID, hospital.ID)
	require.Len(t, doctors, 1)
	assert.Equal(t, d.ID, doctors[0].ID)

	_, _, err = r.ResolveHospitalDoctors(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
