package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gaborvas/wordtrainer/internal/database"
	"github.com/gaborvas/wordtrainer/internal/metrics"
	"github.com/gaborvas/wordtrainer/internal/models"
)

// SuggestionCache is the persisted per-(user, kind) FIFO buffer of pairs the
// user has not been offered yet. It ingests generated batches and hands out
// one pair at a time, re-checking every pair against the live vocabulary so
// a word added manually after buffering is never served.
type SuggestionCache struct {
	db    *gorm.DB
	guard *database.IntegrityGuard
	words *WordStore
}

func NewSuggestionCache(db *gorm.DB, guard *database.IntegrityGuard, words *WordStore) *SuggestionCache {
	return &SuggestionCache{db: db, guard: guard, words: words}
}

// Read returns the buffered pairs in insertion order. Absent or corrupt
// buffers read as empty; malformed persisted JSON is recovered silently,
// never propagated.
func (c *SuggestionCache) Read(userID uint, kind models.SuggestionKind) []models.SuggestionPair {
	var buf models.SuggestionBuffer
	err := c.db.Where("user_id = ? AND kind = ?", userID, kind).First(&buf).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			infoLog("Buffer read failed for user=%d kind=%s: %v", userID, kind, err)
		}
		return nil
	}

	var pairs []models.SuggestionPair
	if err := json.Unmarshal([]byte(buf.Items), &pairs); err != nil {
		debugLog("Corrupt buffer for user=%d kind=%s treated as empty: %v", userID, kind, err)
		return nil
	}
	return pairs
}

// Write replaces the buffer content. Pure overwrite, persisted immediately.
func (c *SuggestionCache) Write(userID uint, kind models.SuggestionKind, pairs []models.SuggestionPair) error {
	if pairs == nil {
		pairs = []models.SuggestionPair{}
	}
	items, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("failed to marshal buffer: %w", err)
	}

	buf := models.SuggestionBuffer{
		UserID: userID,
		Kind:   kind,
		Items:  string(items),
	}
	err = c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&buf).Error
	if err != nil {
		return fmt.Errorf("failed to write buffer for user=%d kind=%s: %w", userID, kind, err)
	}
	c.commitDigest()
	return nil
}

// Append filters the incoming pairs against the user's current vocabulary
// and appends the survivors. A pair whose word the user already owns at
// append time is dropped, not buffered. Returns how many pairs survived.
func (c *SuggestionCache) Append(userID uint, kind models.SuggestionKind, pairs []models.SuggestionPair) (int, error) {
	known, err := c.words.KnownWords(userID)
	if err != nil {
		return 0, err
	}

	existing := c.Read(userID, kind)
	buffered := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		buffered[models.NormalizeWord(p.Word)] = struct{}{}
	}

	added := 0
	for _, p := range pairs {
		key := models.NormalizeWord(p.Word)
		if _, ok := known[key]; ok {
			debugLog("Dropping already-known suggestion %q for user=%d", p.Word, userID)
			continue
		}
		if _, ok := buffered[key]; ok {
			continue
		}
		buffered[key] = struct{}{}
		existing = append(existing, p)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, c.Write(userID, kind, existing)
}

// Pop scans the buffer front to back, discarding entries whose word has
// become known since buffering, and returns the first still-unknown pair.
// The buffer is rewritten to the remainder. When every entry was already
// known the buffer is cleared and (nil, false) is returned.
func (c *SuggestionCache) Pop(userID uint, kind models.SuggestionKind) (*models.SuggestionPair, bool) {
	pairs := c.Read(userID, kind)
	if len(pairs) == 0 {
		metrics.SuggestionCacheMisses.Inc()
		return nil, false
	}

	known, err := c.words.KnownWords(userID)
	if err != nil {
		infoLog("Vocabulary snapshot failed during pop for user=%d: %v", userID, err)
		metrics.SuggestionCacheMisses.Inc()
		return nil, false
	}

	for i, p := range pairs {
		if _, ok := known[models.NormalizeWord(p.Word)]; ok {
			continue
		}
		if err := c.Write(userID, kind, pairs[i+1:]); err != nil {
			infoLog("Buffer rewrite failed for user=%d kind=%s: %v", userID, kind, err)
		}
		metrics.SuggestionCacheHits.Inc()
		pair := p
		return &pair, true
	}

	// Everything buffered has since been learned; start fresh.
	if err := c.Write(userID, kind, nil); err != nil {
		infoLog("Buffer clear failed for user=%d kind=%s: %v", userID, kind, err)
	}
	metrics.SuggestionCacheMisses.Inc()
	return nil, false
}

func (c *SuggestionCache) commitDigest() {
	if c.guard == nil {
		return
	}
	if err := c.guard.UpdateAfterCommit(); err != nil {
		infoLog("Integrity digest update failed: %v", err)
	}
}
