package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/service"
	"github.com/meetocure/admin-api/internal/service/event"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/logger"
	"github.com/meetocure/admin-api/pkg/security"
)

const (
	msgUserNotFound   = "User not found. Please register first."
	msgInactive       = "Your account is inactive. Please contact administrator."
	msgBadPassword    = "Invalid password"
	msgLoginFailed    = "Internal server error"
	msgRegisterFailed = "Could not register user"
	msgAlreadyExists  = "User already registered"
	msgEmailTaken     = "Email already exists"
	msgListFailed     = "Error fetching users"
	msgCreateFailed   = "Error creating user"
	msgUpdateFailed   = "Error updating user"
	msgDeleteFailed   = "Error deleting user"
)

type Service struct {
	repo   repository.AdminRepository
	hasher security.PasswordHasher
	events *event.Service
}

func NewService(repo repository.AdminRepository, hasher security.PasswordHasher, events *event.Service) *Service {
	return &Service{repo: repo, hasher: hasher, events: events}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks credentials in order: existence, account status, password
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.Admin, error) {
	admin, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if service.IsNotFound(err) {
			return nil, apperrors.NotFoundMessage(msgUserNotFound)
		}
		return nil, apperrors.Internal(msgLoginFailed, err)
	}

	if admin.Status != model.AdminStatusActive {
		return nil, apperrors.Forbidden(msgInactive)
	}

	if err := s.hasher.Compare(admin.Password, req.Password); err != nil {
		return nil, apperrors.Unauthorized(msgBadPassword)
	}

	if s.hasher.NeedsRehash(admin.Password) {
		s.rehash(ctx, admin, req.Password)
	}
	return admin, nil
}

// rehash upgrades a legacy or stale password on login. Failure leaves the
// old value in place and does not fail the login.
func (s *Service) rehash(ctx context.Context, admin *model.Admin, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("admin_id", admin.ID.Hex()).Msg("password rehash skipped")
		return
	}
	upgraded := *admin
	upgraded.Password = hash
	if err := s.repo.Update(ctx, &upgraded); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("admin_id", admin.ID.Hex()).Msg("password rehash not stored")
		return
	}
	admin.Password = hash
}

// Register creates an Admin-role account named after the email's local part
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (*model.Admin, error) {
	create := model.CreateAdminRequest{Email: req.Email, Password: req.Password}
	return s.create(ctx, create, msgAlreadyExists, msgRegisterFailed)
}

func (s *Service) List(ctx context.Context) ([]*model.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgListFailed, err)
	}
	return admins, nil
}

func (s *Service) Create(ctx context.Context, req model.CreateAdminRequest) (*model.Admin, error) {
	return s.create(ctx, req, msgEmailTaken, msgCreateFailed)
}

func (s *Service) create(ctx context.Context, req model.CreateAdminRequest, conflictMsg, failMsg string) (*model.Admin, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.Validation(err.Error(), err)
		}
		return nil, apperrors.Internal(failMsg, err)
	}

	admin := &model.Admin{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     req.Role,
		Status:   req.Status,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict(conflictMsg)
		}
		return nil, apperrors.Internal(failMsg, err)
	}

	s.events.Emit(ctx, event.AdminCreated, admin.ID.Hex(), map[string]interface{}{
		"email": admin.Email,
		"role":  admin.Role,
	})
	return admin, nil
}

// Update applies a partial update. Passwords cannot be changed here. An
// empty update returns the account as stored.
func (s *Service) Update(ctx context.Context, rawID string, req model.UpdateAdminRequest) (*model.Admin, error) {
	id, err := service.ParseID(rawID, msgUpdateFailed)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	admin, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.Wrap(err, "User", msgUpdateFailed)
	}
	if req.Empty() {
		return admin, nil
	}

	if req.Email != nil {
		admin.Email = normalizeEmail(*req.Email)
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = *req.Role
	}
	if req.Status != nil {
		admin.Status = *req.Status
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict(msgEmailTaken)
		}
		return nil, service.Wrap(err, "User", msgUpdateFailed)
	}

	s.events.Emit(ctx, event.AdminUpdated, admin.ID.Hex(), req)
	return admin, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := service.ParseID(rawID, msgDeleteFailed)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return service.Wrap(err, "User", msgDeleteFailed)
	}
	s.events.Emit(ctx, event.AdminDeleted, id.Hex(), nil)
	return nil
}
