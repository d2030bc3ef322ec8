package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestSQLChecker(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	checker := NewSQLChecker(gormDB)
	assert.Equal(t, "mysql", checker.Name())

	mock.ExpectPing()
	assert.NoError(t, checker.Check(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	assert.EqualError(t, checker.Check(context.Background()), "gone")
}
