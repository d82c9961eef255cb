package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormMessageRepository_ListInbox_OrdersNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	rows := sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "subject", "body", "is_read", "created_at"}).
		AddRow(1, 2, 3, "hello", "hi", false, time.Now())

	mock.ExpectQuery(`SELECT .* FROM "messages" WHERE receiver_id = .* ORDER BY created_at DESC`).
		WithArgs(3).
		WillReturnRows(rows)

	// Preload("Sender")
	userRows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(2, "alice", "alice@example.com")
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(userRows)

	messages, err := repo.ListInbox(3)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "hi", messages[0].Body)
	require.Equal(t, "alice", messages[0].Sender.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMessageRepository_MarkRead_GuardsOnUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET "is_read"=.* WHERE id = .* AND is_read = .*`).
		WithArgs(true, 7, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkRead(7))
	require.NoError(t, mock.ExpectationsWereMet())
}
