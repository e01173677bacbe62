package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// newTestDB opens a throwaway on-disk sqlite store. A file (not :memory:) so
// gorm's connection pool sees one database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Word{}, &models.SuggestionBuffer{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedWord(t *testing.T, db *gorm.DB, userID uint, word, translation string) *models.Word {
	t.Helper()
	w := &models.Word{UserID: userID, Word: word, Translation: translation, Origin: models.OriginUser}
	require.NoError(t, db.Create(w).Error)
	return w
}
