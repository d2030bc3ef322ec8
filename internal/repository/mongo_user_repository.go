package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
)

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository stores users in the "users" collection of db.
// Uniqueness relies on the index created by db.EnsureIndexes.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	doc := userDocument{
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	user.ID = id.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}
