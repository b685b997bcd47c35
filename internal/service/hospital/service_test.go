package hospital

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/repository/memory"
	"github.com/meetocure/admin-api/internal/service/resolver"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/security"
)

type fixture struct {
	repos *repository.Repositories
	svc   *Service
}

func newFixture() *fixture {
	repos := memory.New(nil).Repositories()
	return &fixture{
		repos: repos,
		svc:   NewService(repos, resolver.New(repos), security.NewBcryptHasher(bcrypt.MinCost), nil),
	}
}

func (f *fixture) hospital(t *testing.T, email string) *Created {
	t.Helper()
	h, err := f.svc.Create(context.Background(), model.CreateHospitalRequest{
		Email:        email,
		Password:     "secret1",
		HospitalName: "City Care",
		Address:      "12 MG Road",
		Contact:      "080-123",
	})
	require.NoError(t, err)
	return h
}

func (f *fixture) doctor(t *testing.T, email, mobile string) *model.Doctor {
	t.Helper()
	d := &model.Doctor{Email: email, MobileNumber: mobile, RegistrationStatus: model.RegistrationVerified}
	require.NoError(t, f.repos.Doctors.Create(context.Background(), d))
	return d
}

func assertStatus(t *testing.T, err error, status int, message string) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode())
	assert.Equal(t, message, appErr.Message)
	return appErr
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	created := f.hospital(t, "front@citycare.in")
	assert.Equal(t, "City Care", created.HospitalName)

	stored, err := f.repos.Hospitals.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NotNil(t, stored.Docters)

	_, err = f.svc.Create(context.Background(), model.CreateHospitalRequest{
		Email: "FRONT@citycare.in", Password: "secret1", HospitalName: "Other", Address: "x", Contact: "y",
	})
	assertStatus(t, err, http.StatusConflict, msgDuplicate)
}

func TestLinkAndUnlink(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	h := f.hospital(t, "h@h.com")
	d := f.doctor(t, "d@d.com", "1")

	link, err := f.svc.AddDoctor(ctx, h.ID.Hex(), d.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "City Care", link.HospitalName)

	_, err = f.svc.AddDoctor(ctx, h.ID.Hex(), d.ID.Hex())
	assertStatus(t, err, http.StatusBadRequest, msgAlreadyLinked)

	_, err = f.svc.AddDoctor(ctx, h.ID.Hex(), primitive.NewObjectID().Hex())
	assertStatus(t, err, http.StatusNotFound, "Doctor not found")

	doctors, err := f.svc.Doctors(ctx, h.ID.Hex())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "City Care", doctors[0].HospitalInfo.HospitalName)

	require.NoError(t, f.svc.RemoveDoctor(ctx, h.ID.Hex(), d.ID.Hex()))
	require.NoError(t, f.svc.RemoveDoctor(ctx, h.ID.Hex(), d.ID.Hex()))

	got, err := f.svc.Get(ctx, h.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, got.Docters)
}

func TestDeleteBlockedByDoctors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	h := f.hospital(t, "h@h.com")
	d := f.doctor(t, "d@d.com", "1")
	_, err := f.svc.AddDoctor(ctx, h.ID.Hex(), d.ID.Hex())
	require.NoError(t, err)
	// a dangling reference still blocks the delete
	require.NoError(t, f.repos.Hospitals.AddDoctor(ctx, h.ID, "not-an-id"))

	_, err = f.svc.Delete(ctx, h.ID.Hex())
	appErr := assertStatus(t, err, http.StatusBadRequest, msgHasDoctors)
	assert.Equal(t, 2, appErr.Fields["doctorsCount"])

	stored, err := f.repos.Hospitals.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Docters, 2)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }
	h := f.hospital(t, "h@h.com")

	result, err := f.svc.Delete(ctx, h.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "City Care", result.HospitalName)
	assert.Equal(t, fixed, result.DeletedAt)

	_, err = f.svc.Delete(ctx, h.ID.Hex())
	assertStatus(t, err, http.StatusNotFound, "Hospital not found")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	h := f.hospital(t, "h@h.com")

	name := "City Care North"
	updated, err := f.svc.Update(ctx, h.ID.Hex(), model.UpdateHospitalRequest{HospitalName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.HospitalName)
	assert.Equal(t, "12 MG Road", updated.Address)

	empty := ""
	_, err = f.svc.Update(ctx, h.ID.Hex(), model.UpdateHospitalRequest{HospitalName: &empty})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
}

func TestStatsAndAllDoctors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.hospital(t, "a@h.com")
	f.hospital(t, "b@h.com")
	d := f.doctor(t, "d@d.com", "1")
	_, err := f.svc.AddDoctor(ctx, a.ID.Hex(), d.ID.Hex())
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.HospitalStats{
		TotalHospitals:          2,
		TotalDoctors:            1,
		HospitalsWithDoctors:    1,
		HospitalsWithoutDoctors: 1,
	}, *stats)

	all, total, err := f.svc.AllDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, all, 1)
	assert.Equal(t, d.ID, all[0].ID)
}
