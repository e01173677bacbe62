package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborvas/wordtrainer/internal/models"
)

func newTestCache(t *testing.T) (*SuggestionCache, *WordStore, *models.User) {
	t.Helper()
	db := newTestDB(t)
	words := NewWordStore(db, nil)
	cache := NewSuggestionCache(db, nil, words)
	user := seedUser(t, db, "kata")
	return cache, words, user
}

func TestSuggestionCacheReadEmpty(t *testing.T) {
	cache, _, user := newTestCache(t)
	assert.Empty(t, cache.Read(user.ID, models.KindRandom))
}

func TestSuggestionCacheWriteRead(t *testing.T) {
	cache, _, user := newTestCache(t)

	pairs := []models.SuggestionPair{
		{Word: "cat", Translation: "macska"},
		{Word: "dog", Translation: "kutya"},
	}
	require.NoError(t, cache.Write(user.ID, models.KindRandom, pairs))
	assert.Equal(t, pairs, cache.Read(user.ID, models.KindRandom))

	// Full overwrite, not a merge.
	replacement := []models.SuggestionPair{{Word: "sun", Translation: "nap"}}
	require.NoError(t, cache.Write(user.ID, models.KindRandom, replacement))
	assert.Equal(t, replacement, cache.Read(user.ID, models.KindRandom))

	// Kinds are independent buffers.
	assert.Empty(t, cache.Read(user.ID, models.KindSmart))
}

func TestSuggestionCacheCorruptBufferReadsEmpty(t *testing.T) {
	cache, _, user := newTestCache(t)

	buf := models.SuggestionBuffer{UserID: user.ID, Kind: models.KindRandom, Items: "{not json"}
	require.NoError(t, cache.db.Create(&buf).Error)

	assert.Empty(t, cache.Read(user.ID, models.KindRandom))

	// A corrupt buffer must also be recoverable by writing over it.
	require.NoError(t, cache.Write(user.ID, models.KindRandom, []models.SuggestionPair{{Word: "a", Translation: "b"}}))
	assert.Len(t, cache.Read(user.ID, models.KindRandom), 1)
}

func TestSuggestionCacheAppendFiltersKnown(t *testing.T) {
	cache, _, user := newTestCache(t)
	seedWord(t, cache.db, user.ID, "Cat", "macska")

	added, err := cache.Append(user.ID, models.KindRandom, []models.SuggestionPair{
		{Word: "cat", Translation: "macska"}, // known, case-insensitively
		{Word: "dog", Translation: "kutya"},
		{Word: "dog", Translation: "kutya"}, // duplicate within the batch
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	got := cache.Read(user.ID, models.KindRandom)
	require.Len(t, got, 1)
	assert.Equal(t, "dog", got[0].Word)
}

func TestSuggestionCachePopSkipsNewlyKnown(t *testing.T) {
	cache, _, user := newTestCache(t)

	require.NoError(t, cache.Write(user.ID, models.KindSmart, []models.SuggestionPair{
		{Word: "cat", Translation: "macska"},
		{Word: "dog", Translation: "kutya"},
		{Word: "sun", Translation: "nap"},
	}))

	// "cat" was buffered first but has been added manually since.
	seedWord(t, cache.db, user.ID, "CAT", "macska")

	pair, ok := cache.Pop(user.ID, models.KindSmart)
	require.True(t, ok)
	assert.Equal(t, "dog", pair.Word)

	// Buffer was rewritten to the remainder.
	rest := cache.Read(user.ID, models.KindSmart)
	require.Len(t, rest, 1)
	assert.Equal(t, "sun", rest[0].Word)
}

func TestSuggestionCachePopAllKnownClears(t *testing.T) {
	cache, _, user := newTestCache(t)
	seedWord(t, cache.db, user.ID, "cat", "macska")
	seedWord(t, cache.db, user.ID, "dog", "kutya")

	require.NoError(t, cache.Write(user.ID, models.KindRandom, []models.SuggestionPair{
		{Word: "Cat", Translation: "macska"},
		{Word: "DOG", Translation: "kutya"},
	}))

	pair, ok := cache.Pop(user.ID, models.KindRandom)
	assert.False(t, ok)
	assert.Nil(t, pair)
	assert.Empty(t, cache.Read(user.ID, models.KindRandom))
}

func TestSuggestionCachePopEmpty(t *testing.T) {
	cache, _, user := newTestCache(t)
	pair, ok := cache.Pop(user.ID, models.KindRandom)
	assert.False(t, ok)
	assert.Nil(t, pair)
}
