// Package service holds helpers shared by the per-resource services
package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
)

// ParseID parses a path ID. A malformed ID is an internal error carrying
// failMsg, matching how every other unexpected failure on the route is
// reported.
func ParseID(raw, failMsg string) (primitive.ObjectID, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.Internal(failMsg, err)
	}
	return id, nil
}

// Wrap maps a repository error onto the error taxonomy. notFound is the
// resource name used in "<resource> not found".
func Wrap(err error, notFound, failMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(notFound)
	default:
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.Internal(failMsg, err)
	}
}

// IsNotFound reports whether err is a repository miss
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
