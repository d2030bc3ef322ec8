package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a single directory entry. UserID is always taken from the
// authenticated caller, never from request input.
type Contact struct {
	ID      string    `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID  string    `json:"userId" gorm:"type:char(36);not null;index:idx_contacts_owner_date,priority:1"`
	Name    string    `json:"name" gorm:"size:255;not null"`
	Email   string    `json:"email" gorm:"size:255;not null"`
	Phone   string    `json:"phone" gorm:"size:64;not null"`
	Message string    `json:"message,omitempty" gorm:"type:text"`
	Date    time.Time `json:"date" gorm:"not null;index:idx_contacts_owner_date,priority:2,sort:desc"`
}

// BeforeCreate sets UUID and creation time before creating the record.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Date.IsZero() {
		c.Date = time.Now().UTC()
	}
	return nil
}

// ContactFields are the caller-supplied attributes of a new contact.
type ContactFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}
