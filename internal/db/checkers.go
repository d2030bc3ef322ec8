package db

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"gorm.io/gorm"
)

// MongoChecker reports whether the primary answers pings.
type MongoChecker struct {
	client *mongo.Client
}

// NewMongoChecker creates a readiness checker for client.
func NewMongoChecker(client *mongo.Client) *MongoChecker {
	return &MongoChecker{client: client}
}

func (c *MongoChecker) Name() string { return "mongo" }

func (c *MongoChecker) Check(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// SQLChecker reports whether the GORM connection pool answers pings.
type SQLChecker struct {
	db *gorm.DB
}

// NewSQLChecker creates a readiness checker for db.
func NewSQLChecker(db *gorm.DB) *SQLChecker {
	return &SQLChecker{db: db}
}

func (c *SQLChecker) Name() string { return "mysql" }

func (c *SQLChecker) Check(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
