package models

import (
	"strings"
	"time"
)

// WordOrigin records how a word entered the vocabulary.
type WordOrigin string

const (
	OriginUser      WordOrigin = "user"
	OriginSuggested WordOrigin = "suggested"
	OriginImport    WordOrigin = "import"
)

// RecallStatus is the outcome of a single practice attempt.
type RecallStatus string

const (
	RecallPass         RecallStatus = "pass"
	RecallPassWithHelp RecallStatus = "passWithHelp"
	RecallFail         RecallStatus = "fail"
	RecallFailWithHelp RecallStatus = "failWithHelp"
)

// Valid reports whether s is one of the four recognized recall outcomes.
func (s RecallStatus) Valid() bool {
	switch s {
	case RecallPass, RecallPassWithHelp, RecallFail, RecallFailWithHelp:
		return true
	}
	return false
}

type Word struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"not null;index"`
	Word         string     `json:"word" gorm:"not null"`
	Translation  string     `json:"translation" gorm:"not null"`
	Definition   string     `json:"definition"`
	Origin       WordOrigin `json:"origin" gorm:"default:'user'"`
	Pass         int        `json:"pass" gorm:"default:0"`
	PassWithHelp int        `json:"passWithHelp" gorm:"default:0"`
	Fail         int        `json:"fail" gorm:"default:0"`
	FailWithHelp int        `json:"failWithHelp" gorm:"default:0"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MasteryScore is the retention confidence of a word. Unaided recall counts
// double in both directions: an unaided pass is worth more than an aided one,
// and an unaided fail is worse than an aided one. Every caller that needs a
// score goes through this method; the formula lives nowhere else.
func (w *Word) MasteryScore() int {
	return 2*w.Pass + w.PassWithHelp - w.Fail - 2*w.FailWithHelp
}

// NormalKey returns the case-insensitive dedup key for the source word.
func (w *Word) NormalKey() string {
	return NormalizeWord(w.Word)
}

// NormalizeWord lowercases and trims a word for case-insensitive membership
// checks. Buffers, prompts and dedup all compare words through this.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
