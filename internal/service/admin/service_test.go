package admin

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
	"github.com/meetocure/admin-api/internal/repository/memory"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/security"
)

func newService() *Service {
	return NewService(memory.New(nil).Repositories().Admins, security.NewBcryptHasher(bcrypt.MinCost), nil)
}

func assertStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode())
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func TestRegisterDefaults(t *testing.T) {
	svc := newService()

	admin, err := svc.Register(context.Background(), model.RegisterRequest{Email: "Priya@MeetOcure.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "priya@meetocure.com", admin.Email)
	assert.Equal(t, "priya", admin.Name)
	assert.Equal(t, model.AdminRoleAdmin, admin.Role)
	assert.Equal(t, model.AdminStatusActive, admin.Status)
	assert.NotEqual(t, "secret1", admin.Password)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Email: "priya@meetocure.com", Password: "secret1"})
	assertStatus(t, err, http.StatusConflict, msgAlreadyExists)

	_, err = svc.Create(context.Background(), model.CreateAdminRequest{Email: "PRIYA@meetocure.com", Password: "secret1"})
	assertStatus(t, err, http.StatusConflict, msgEmailTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Create(ctx, model.CreateAdminRequest{Email: "ops@meetocure.com", Password: "secret1", Role: model.AdminRoleSupport})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateAdminRequest{Email: "old@meetocure.com", Password: "secret1", Status: model.AdminStatusInactive})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     model.LoginRequest
		status  int
		message string
	}{
		{"unknown email", model.LoginRequest{Email: "ghost@meetocure.com", Password: "secret1"}, http.StatusNotFound, msgUserNotFound},
		{"inactive", model.LoginRequest{Email: "old@meetocure.com", Password: "secret1"}, http.StatusForbidden, msgInactive},
		{"inactive wrong password", model.LoginRequest{Email: "old@meetocure.com", Password: "nope"}, http.StatusForbidden, msgInactive},
		{"wrong password", model.LoginRequest{Email: "ops@meetocure.com", Password: "secret2"}, http.StatusUnauthorized, msgBadPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			assertStatus(t, err, tt.status, tt.message)
		})
	}

	admin, err := svc.Login(ctx, model.LoginRequest{Email: " OPS@meetocure.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.AdminRoleSupport, admin.Role)
}

func TestLoginUpgradesPlaintextPassword(t *testing.T) {
	ctx := context.Background()
	repo := memory.New(nil).Repositories().Admins
	svc := NewService(repo, security.NewBcryptHasher(bcrypt.MinCost), nil)
	require.NoError(t, repo.Create(ctx, &model.Admin{
		Email:    "legacy@meetocure.com",
		Password: "secret1",
		Role:     model.AdminRoleAdmin,
		Status:   model.AdminStatusActive,
	}))

	_, err := svc.Login(ctx, model.LoginRequest{Email: "legacy@meetocure.com", Password: "secret1"})
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, "legacy@meetocure.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))

	_, err = svc.Login(ctx, model.LoginRequest{Email: "legacy@meetocure.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestEmptyUpdateLeavesAccountUntouched(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(memory.New(func() time.Time { return clock }).Repositories().Admins, security.NewBcryptHasher(bcrypt.MinCost), nil)

	created, err := svc.Create(ctx, model.CreateAdminRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	got, err := svc.Update(ctx, created.ID.Hex(), model.UpdateAdminRequest{})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), model.UpdateAdminRequest{})
	assertStatus(t, err, http.StatusNotFound, "User not found")
}

func TestCreateValidation(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), model.CreateAdminRequest{Email: "not-an-email", Password: "secret1"})
	assertStatus(t, err, http.StatusBadRequest, "")

	_, err = svc.Create(context.Background(), model.CreateAdminRequest{Email: "a@b.com", Password: "abc"})
	assertStatus(t, err, http.StatusBadRequest, "")

	_, err = svc.Create(context.Background(), model.CreateAdminRequest{Email: "a@b.com", Password: "secret1", Role: "Root"})
	assertStatus(t, err, http.StatusBadRequest, "")
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, err := svc.Create(ctx, model.CreateAdminRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, model.CreateAdminRequest{Email: "b@b.com", Password: "secret1"})
	require.NoError(t, err)

	role := model.AdminRoleAnalyst
	updated, err := svc.Update(ctx, a.ID.Hex(), model.UpdateAdminRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.AdminRoleAnalyst, updated.Role)
	assert.Equal(t, "a@b.com", updated.Email)

	taken := "B@b.com"
	_, err = svc.Update(ctx, a.ID.Hex(), model.UpdateAdminRequest{Email: &taken})
	assertStatus(t, err, http.StatusConflict, msgEmailTaken)

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), model.UpdateAdminRequest{Role: &role})
	assertStatus(t, err, http.StatusNotFound, "User not found")

	require.NoError(t, svc.Delete(ctx, b.ID.Hex()))
	assertStatus(t, svc.Delete(ctx, b.ID.Hex()), http.StatusNotFound, "User not found")

	admins, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}
