package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"contactbook/internal/model"
)

// Collection names in the document store.
const (
	UsersCollection    = "users"
	ContactsCollection = "contacts"
)

// userDocument is the stored shape of a user in the users collection.
type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"created_at"`
}

func (d userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

// contactDocument is the stored shape of a contact in the contacts collection.
type contactDocument struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	UserID  bson.ObjectID `bson:"userId"`
	Name    string        `bson:"name"`
	Email   string        `bson:"email"`
	Phone   string        `bson:"phone"`
	Message string        `bson:"message,omitempty"`
	Date    time.Time     `bson:"date"`
}

func (d contactDocument) toModel() model.Contact {
	return model.Contact{
		ID:      d.ID.Hex(),
		UserID:  d.UserID.Hex(),
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Message: d.Message,
		Date:    d.Date,
	}
}

func newContactDocument(c *model.Contact, owner bson.ObjectID) contactDocument {
	date := c.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	// BSON dates carry millisecond precision.
	return contactDocument{
		UserID:  owner,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Message: c.Message,
		Date:    date.Truncate(time.Millisecond),
	}
}
