package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRole string

const (
	AdminRoleAdmin     AdminRole = "Admin"
	AdminRoleModerator AdminRole = "Moderator"
	AdminRoleAnalyst   AdminRole = "Analyst"
	AdminRoleSupport   AdminRole = "Support"
)

type AdminStatus string

const (
	AdminStatusActive   AdminStatus = "Active"
	AdminStatusInactive AdminStatus = "Inactive"
)

// Admin is a back-office user. Password holds a bcrypt hash and never
// leaves the server.
type Admin struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Role       AdminRole          `bson:"role" json:"role"`
	Status     AdminStatus        `bson:"status" json:"status"`
	Name       string             `bson:"name" json:"name"`
	Timestamps `bson:",inline"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateAdminRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     AdminRole   `json:"role"`
	Status   AdminStatus `json:"status"`
}

// Normalize lowercases the email and fills role, status and name defaults
func (r *CreateAdminRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Role == "" {
		r.Role = AdminRoleAdmin
	}
	if r.Status == "" {
		r.Status = AdminStatusActive
	}
	if strings.TrimSpace(r.Name) == "" {
		r.Name = strings.Split(r.Email, "@")[0]
	}
}

func (r CreateAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Role, validation.In(AdminRoleAdmin, AdminRoleModerator, AdminRoleAnalyst, AdminRoleSupport)),
		validation.Field(&r.Status, validation.In(AdminStatusActive, AdminStatusInactive)),
	)
}

// UpdateAdminRequest is a partial update; password is never accepted here
type UpdateAdminRequest struct {
	Email  *string      `json:"email"`
	Name   *string      `json:"name"`
	Role   *AdminRole   `json:"role"`
	Status *AdminStatus `json:"status"`
}

func (r UpdateAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Role, validation.In(AdminRoleAdmin, AdminRoleModerator, AdminRoleAnalyst, AdminRoleSupport)),
		validation.Field(&r.Status, validation.In(AdminStatusActive, AdminStatusInactive)),
	)
}

// Empty reports whether no field was supplied
func (r UpdateAdminRequest) Empty() bool {
	return r.Email == nil && r.Name == nil && r.Role == nil && r.Status == nil
}
