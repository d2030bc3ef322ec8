package db

import (
	"context"
	"fmt"

	"contactbook/internal/config"
	"contactbook/internal/repository"
)

// Checker is a named dependency probe used by readiness reporting.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Store bundles the repositories of the configured backend.
type Store struct {
	Users    repository.UserRepository
	Contacts repository.ContactRepository
	Checker  Checker

	close func(context.Context) error
}

// Open connects to the backend selected by cfg.DatabaseDriver, prepares its
// schema and returns the repositories built on it.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		client, err := NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := PrepareMongo(ctx, database, cfg.ResetDB); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Store{
			Users:    repository.NewMongoUserRepository(database),
			Contacts: repository.NewMongoContactRepository(database),
			Checker:  NewMongoChecker(client),
			close:    client.Disconnect,
		}, nil

	case config.DriverMySQL:
		gormDB, err := NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := MigrateMySQL(gormDB, cfg.ResetDB); err != nil {
			return nil, err
		}
		return &Store{
			Users:    repository.NewUserRepository(gormDB),
			Contacts: repository.NewContactRepository(gormDB),
			Checker:  NewSQLChecker(gormDB),
			close: func(context.Context) error {
				sqlDB, err := gormDB.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}
