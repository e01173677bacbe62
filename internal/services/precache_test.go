package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/models"
)

var warmupDictionary = []models.SuggestionPair{
	{Word: "water", Translation: "víz"},
	{Word: "bread", Translation: "kenyér"},
	{Word: "milk", Translation: "tej"},
	{Word: "salt", Translation: "só"},
}

// newWarmupFixture builds a suggestion service that generates from the static
// dictionary only (AI disabled), so generation outcomes are fully determined
// by what each user already knows.
func newWarmupFixture(t *testing.T) (*SuggestionService, *UserStore, *SuggestionCache, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	words := NewWordStore(db, nil)
	users := NewUserStore(db, nil)
	cache := NewSuggestionCache(db, nil, words)

	gen := NewWordGenerator(&scriptedClient{results: []GenerateResult{{}}}, "testmodel", 50*time.Millisecond)
	gen.pollInterval = 5 * time.Millisecond

	fallback := &FallbackDictionary{pairs: warmupDictionary}
	svc := NewSuggestionService(cache, NewFlightTable(), gen, words, fallback, false)
	return svc, users, cache, db
}

func TestPrecacherWarmsBuffers(t *testing.T) {
	svc, users, cache, db := newWarmupFixture(t)

	// "anna" already owns every dictionary word, so her generation yields
	// nothing; "bela" starts fresh.
	blocked, err := users.Register("anna", "x")
	require.NoError(t, err)
	fresh, err := users.Register("bela", "x")
	require.NoError(t, err)
	for _, p := range warmupDictionary {
		seedWord(t, db, blocked.ID, p.Word, p.Translation)
	}

	NewPrecacher(svc, users, 2).run()

	// The fresh user's random buffer is warmed from the dictionary.
	assert.Len(t, cache.Read(fresh.ID, models.KindRandom), len(warmupDictionary))

	// The blocked user's failure is swallowed and does not abort the sweep.
	assert.Empty(t, cache.Read(blocked.ID, models.KindRandom))

	// Smart buffers never fall back to the dictionary.
	assert.Empty(t, cache.Read(fresh.ID, models.KindSmart))
	assert.Empty(t, cache.Read(blocked.ID, models.KindSmart))

	// Nothing is left in flight once the sweep completes.
	for _, u := range []uint{blocked.ID, fresh.ID} {
		for _, kind := range models.Kinds {
			assert.False(t, svc.flights.InFlight(u, kind))
		}
	}
}

func TestPrecacherEmptyUserList(t *testing.T) {
	svc, users, _, _ := newWarmupFixture(t)
	// Must complete without work to do.
	NewPrecacher(svc, users, 2).run()
}

func TestNewPrecacherClampsWorkers(t *testing.T) {
	assert.Equal(t, defaultPrecacheWorkers, NewPrecacher(nil, nil, 0).workers)
	assert.Equal(t, defaultPrecacheWorkers, NewPrecacher(nil, nil, -3).workers)
	assert.Equal(t, 2, NewPrecacher(nil, nil, 2).workers)
}
