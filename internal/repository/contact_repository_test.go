package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactbook/internal/model"
)

func TestContactRepository_Create(t *testing.T) {
	db, mock := newGormWithMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `contacts`")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	contact := &model.Contact{UserID: "u-1", Name: "Bob", Email: "b@x.com", Phone: "123"}
	err := NewContactRepository(db).Create(context.Background(), contact)
	require.NoError(t, err)

	assert.NotEmpty(t, contact.ID)
	assert.False(t, contact.Date.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ListByOwner(t *testing.T) {
	query := regexp.QuoteMeta("SELECT * FROM `contacts` WHERE user_id = ? ORDER BY date desc")

	t.Run("newest first", func(t *testing.T) {
		db, mock := newGormWithMock(t)
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "message", "date"}).
			AddRow("c-2", "u-1", "Carol", "c@x.com", "2", "", now).
			AddRow("c-1", "u-1", "Bob", "b@x.com", "1", "hi", now.Add(-time.Hour))
		mock.ExpectQuery(query).WithArgs("u-1").WillReturnRows(rows)

		contacts, err := NewContactRepository(db).ListByOwner(context.Background(), "u-1")
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, "c-2", contacts[0].ID)
		assert.Equal(t, "hi", contacts[1].Message)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		db, mock := newGormWithMock(t)
		mock.ExpectQuery(query).WithArgs("u-2").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		contacts, err := NewContactRepository(db).ListByOwner(context.Background(), "u-2")
		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})
}

func TestContactRepository_DeleteByIDAndOwner(t *testing.T) {
	query := regexp.QuoteMeta("DELETE FROM `contacts` WHERE")

	t.Run("no match is not an error", func(t *testing.T) {
		db, mock := newGormWithMock(t)
		mock.ExpectExec(query).WithArgs("c-1", "u-2").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewContactRepository(db).DeleteByIDAndOwner(context.Background(), "c-1", "u-2")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error", func(t *testing.T) {
		db, mock := newGormWithMock(t)
		mock.ExpectExec(query).WillReturnError(errors.New("db down"))

		err := NewContactRepository(db).DeleteByIDAndOwner(context.Background(), "c-1", "u-1")
		assert.EqualError(t, err, "db down")
	})
}
