package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/models"
)

func TestWordStoreCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")

	require.NoError(t, store.Create(&models.Word{UserID: user.ID, Word: "Apple", Translation: "alma"}))

	tests := []struct {
		name string
		word string
	}{
		{"exact", "Apple"},
		{"case differs", "APPLE"},
		{"surrounding whitespace", "  apple  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Create(&models.Word{UserID: user.ID, Word: tt.word, Translation: "alma"})
			assert.ErrorIs(t, err, ErrDuplicateWord)
		})
	}

	// Same word for a different user is fine.
	other := seedUser(t, db, "peter")
	assert.NoError(t, store.Create(&models.Word{UserID: other.ID, Word: "apple", Translation: "alma"}))
}

func TestWordStoreCreateRejectsEmpty(t *testing.T) {
	store := NewWordStore(newTestDB(t), nil)
	assert.Error(t, store.Create(&models.Word{UserID: 1, Word: "", Translation: "alma"}))
	assert.Error(t, store.Create(&models.Word{UserID: 1, Word: "apple", Translation: ""}))
}

func TestWordStoreUpdate(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	word := seedWord(t, db, user.ID, "apple", "alma")
	seedWord(t, db, user.ID, "dog", "kutya")

	t.Run("edits persist", func(t *testing.T) {
		require.NoError(t, store.Update(&models.Word{
			ID: word.ID, UserID: user.ID, Word: "apple", Translation: "alma", Definition: "a fruit",
		}))
		got, err := store.ByID(user.ID, word.ID)
		require.NoError(t, err)
		assert.Equal(t, "a fruit", got.Definition)
	})

	t.Run("missing word", func(t *testing.T) {
		err := store.Update(&models.Word{ID: word.ID + 100, UserID: user.ID, Word: "x", Translation: "y"})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("non-owned word", func(t *testing.T) {
		err := store.Update(&models.Word{ID: word.ID, UserID: user.ID + 1, Word: "x", Translation: "y"})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("rename onto another owned word", func(t *testing.T) {
		err := store.Update(&models.Word{ID: word.ID, UserID: user.ID, Word: " DOG ", Translation: "kutya"})
		assert.ErrorIs(t, err, ErrDuplicateWord)
	})

	t.Run("case-only rename of itself", func(t *testing.T) {
		require.NoError(t, store.Update(&models.Word{
			ID: word.ID, UserID: user.ID, Word: "Apple", Translation: "alma",
		}))
		got, err := store.ByID(user.ID, word.ID)
		require.NoError(t, err)
		assert.Equal(t, "Apple", got.Word)
	})
}

func TestWordStoreRecordRecall(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	word := seedWord(t, db, user.ID, "apple", "alma")

	require.NoError(t, store.RecordRecall(user.ID, word.ID, models.RecallPass))
	require.NoError(t, store.RecordRecall(user.ID, word.ID, models.RecallPass))
	require.NoError(t, store.RecordRecall(user.ID, word.ID, models.RecallFailWithHelp))

	got, err := store.ByID(user.ID, word.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Pass)
	assert.Equal(t, 1, got.FailWithHelp)
	assert.Equal(t, 0, got.Fail)
	assert.Equal(t, 2, got.MasteryScore())
}

func TestWordStoreRecordRecallInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	word := seedWord(t, db, user.ID, "apple", "alma")

	assert.Error(t, store.RecordRecall(user.ID, word.ID, "guessed"))
}

func TestWordStoreRecordRecallWrongOwner(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	word := seedWord(t, db, user.ID, "apple", "alma")

	err := store.RecordRecall(user.ID+1, word.ID, models.RecallPass)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWordStoreDelete(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	word := seedWord(t, db, user.ID, "apple", "alma")

	// Deleting someone else's word must not touch it.
	assert.ErrorIs(t, store.Delete(user.ID+1, word.ID), gorm.ErrRecordNotFound)

	require.NoError(t, store.Delete(user.ID, word.ID))
	n, err := store.Count(user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWordStoreKnownWords(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	seedWord(t, db, user.ID, "Apple ", "alma")
	seedWord(t, db, user.ID, "dog", "kutya")

	known, err := store.KnownWords(user.ID)
	require.NoError(t, err)
	assert.Len(t, known, 2)
	assert.Contains(t, known, "apple")
	assert.Contains(t, known, "dog")

	// Snapshot is fresh per call.
	seedWord(t, db, user.ID, "cat", "macska")
	known, err = store.KnownWords(user.ID)
	require.NoError(t, err)
	assert.Contains(t, known, "cat")
}
