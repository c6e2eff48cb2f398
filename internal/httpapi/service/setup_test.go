package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"reviewhub/database"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps the shared :memory: store alive for the
// whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// recorderMailer captures the last confirmation code instead of sending
// mail, and can be flipped into a failure mode.
type recorderMailer struct {
	lastEmail string
	lastCode  string
	fail      bool
}

func (m *recorderMailer) SendConfirmationCode(_ context.Context, email, code string) error {
	if m.fail {
		return errors.New("smtp relay unavailable")
	}
	m.lastEmail = email
	m.lastCode = code
	return nil
}
