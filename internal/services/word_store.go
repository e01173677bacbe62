package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/database"
	"github.com/gaborvas/wordtrainer/internal/models"
)

// ErrDuplicateWord is returned when a user already owns the word
// (case-insensitively). Uniqueness is enforced here, not by a DB constraint,
// so a true concurrent double-submit can still slip through; the suggestion
// dedup tolerates that.
var ErrDuplicateWord = errors.New("word already exists for this user")

// WordStore is the read/write contract the core needs from the words table.
// Every mutating method refreshes the store digest before returning.
type WordStore struct {
	db    *gorm.DB
	guard *database.IntegrityGuard
}

func NewWordStore(db *gorm.DB, guard *database.IntegrityGuard) *WordStore {
	return &WordStore{db: db, guard: guard}
}

func (s *WordStore) ByUser(userID uint) ([]models.Word, error) {
	var words []models.Word
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&words).Error; err != nil {
		return nil, fmt.Errorf("failed to load words for user %d: %w", userID, err)
	}
	return words, nil
}

func (s *WordStore) ByID(userID, wordID uint) (*models.Word, error) {
	var word models.Word
	err := s.db.Where("id = ? AND user_id = ?", wordID, userID).First(&word).Error
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// Random returns one uniformly random word of the user, or gorm.ErrRecordNotFound.
func (s *WordStore) Random(userID uint) (*models.Word, error) {
	var word models.Word
	err := s.db.Where("user_id = ?", userID).Order("RANDOM()").First(&word).Error
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (s *WordStore) Count(userID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.Word{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// Create inserts a word after the case-insensitive per-user duplicate check.
func (s *WordStore) Create(word *models.Word) error {
	if word.Word == "" || word.Translation == "" {
		return errors.New("word and translation must be non-empty")
	}
	var n int64
	err := s.db.Model(&models.Word{}).
		Where("user_id = ? AND LOWER(TRIM(word)) = ?", word.UserID, models.NormalizeWord(word.Word)).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("failed to check for duplicate word: %w", err)
	}
	if n > 0 {
		return ErrDuplicateWord
	}
	if err := s.db.Create(word).Error; err != nil {
		return fmt.Errorf("failed to insert word: %w", err)
	}
	s.commitDigest()
	return nil
}

// Update rewrites word/translation/definition of an owned word. A rename onto
// another of the user's words (case-insensitively) is rejected the same way
// Create rejects it, so edits cannot bypass the duplicate gate.
func (s *WordStore) Update(word *models.Word) error {
	if word.Word == "" || word.Translation == "" {
		return errors.New("word and translation must be non-empty")
	}

	var n int64
	err := s.db.Model(&models.Word{}).
		Where("user_id = ? AND id <> ? AND LOWER(TRIM(word)) = ?", word.UserID, word.ID, models.NormalizeWord(word.Word)).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("failed to check for duplicate word: %w", err)
	}
	if n > 0 {
		return ErrDuplicateWord
	}

	result := s.db.Model(&models.Word{}).
		Where("id = ? AND user_id = ?", word.ID, word.UserID).
		Updates(map[string]interface{}{
			"word":        word.Word,
			"translation": word.Translation,
			"definition":  word.Definition,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update word %d: %w", word.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.commitDigest()
	return nil
}

func (s *WordStore) Delete(userID, wordID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", wordID, userID).Delete(&models.Word{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete word %d: %w", wordID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.commitDigest()
	return nil
}

// RecordRecall increments exactly one of the four practice counters.
func (s *WordStore) RecordRecall(userID, wordID uint, status models.RecallStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown recall status %q", status)
	}
	column := map[models.RecallStatus]string{
		models.RecallPass:         "pass",
		models.RecallPassWithHelp: "pass_with_help",
		models.RecallFail:         "fail",
		models.RecallFailWithHelp: "fail_with_help",
	}[status]

	result := s.db.Model(&models.Word{}).
		Where("id = ? AND user_id = ?", wordID, userID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to record recall for word %d: %w", wordID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.commitDigest()
	return nil
}

// KnownWords is a fresh snapshot of the user's vocabulary, keyed by the
// lowercase-trimmed word. Never cached across calls: suggestion dedup must
// see words added moments ago.
func (s *WordStore) KnownWords(userID uint) (map[string]struct{}, error) {
	var words []string
	if err := s.db.Model(&models.Word{}).Where("user_id = ?", userID).Pluck("word", &words).Error; err != nil {
		return nil, fmt.Errorf("failed to load vocabulary for user %d: %w", userID, err)
	}
	known := make(map[string]struct{}, len(words))
	for _, w := range words {
		known[models.NormalizeWord(w)] = struct{}{}
	}
	return known, nil
}

func (s *WordStore) commitDigest() {
	if s.guard == nil {
		return
	}
	if err := s.guard.UpdateAfterCommit(); err != nil {
		infoLog("Integrity digest update failed: %v", err)
	}
}
