package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"contactbook/internal/model"
)

type mongoContactRepository struct {
	coll *mongo.Collection
}

// NewMongoContactRepository stores contacts in the "contacts" collection of db.
func NewMongoContactRepository(db *mongo.Database) ContactRepository {
	return &mongoContactRepository{coll: db.Collection(ContactsCollection)}
}

func (r *mongoContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	owner, err := bson.ObjectIDFromHex(contact.UserID)
	if err != nil {
		return fmt.Errorf("owner id %q: %w", contact.UserID, err)
	}

	doc := newContactDocument(contact, owner)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("insert contact: unexpected id type %T", res.InsertedID)
	}
	doc.ID = id
	*contact = doc.toModel()
	return nil
}

func (r *mongoContactRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Contact, error) {
	contacts := make([]model.Contact, 0)
	owner, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		// Ids issued by this store are always hex; anything else owns nothing.
		return contacts, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{{Key: "userId", Value: owner}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}

	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	for _, d := range docs {
		contacts = append(contacts, d.toModel())
	}
	return contacts, nil
}

func (r *mongoContactRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	owner, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil
	}

	filter := bson.D{{Key: "_id", Value: oid}, {Key: "userId", Value: owner}}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
