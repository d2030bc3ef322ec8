package repository

import (
	"context"
	"errors"

	"contactbook/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// UserRepository persists credentials. Create fails with
// errors.ErrDuplicateEmail when the email is already registered.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// ContactRepository persists contacts scoped by owner.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	// ListByOwner returns the owner's contacts, newest first. Never nil.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Contact, error)
	// DeleteByIDAndOwner removes at most one contact. Matching nothing is not an error.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}
