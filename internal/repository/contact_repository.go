package repository

import (
	"context"

	"gorm.io/gorm"

	"contactbook/internal/model"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new GORM-backed contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts a contact; ID and Date are filled by the model hook.
func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// ListByOwner lists the owner's contacts, newest first.
func (r *contactRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Contact, error) {
	contacts := make([]model.Contact, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date desc").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// DeleteByIDAndOwner deletes the contact only when it belongs to ownerID.
func (r *contactRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Contact{}).Error
}
