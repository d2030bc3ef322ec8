package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contactbook/internal/model"
)

// NewMySQL returns a connected GORM DB instance. Driver errors are translated
// so unique violations surface as gorm.ErrDuplicatedKey.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// MigrateMySQL creates or updates the users and contacts tables, dropping
// them first when reset is set.
func MigrateMySQL(db *gorm.DB, reset bool) error {
	tables := []interface{}{&model.Contact{}, &model.User{}}
	if reset {
		for _, table := range tables {
			if err := db.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
