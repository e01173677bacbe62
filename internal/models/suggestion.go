package models

import "time"

// SuggestionKind selects which prompt family filled a buffer.
type SuggestionKind string

const (
	// KindRandom asks the model for unconstrained word/translation pairs.
	KindRandom SuggestionKind = "random"
	// KindSmart asks for pairs matching the difficulty of the user's vocabulary.
	KindSmart SuggestionKind = "smart"
)

// Kinds lists every buffer kind a user owns.
var Kinds = []SuggestionKind{KindRandom, KindSmart}

// SuggestionPair is one not-yet-offered word/translation candidate. Pairs are
// ephemeral: they live in a buffer until popped and are never stored once served.
type SuggestionPair struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// SuggestionBuffer persists the FIFO queue of pending suggestions for one
// (user, kind). Items is a JSON array of SuggestionPair; malformed content is
// treated as an empty buffer by the cache layer, never surfaced as an error.
type SuggestionBuffer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_buffer_user_kind"`
	Kind      SuggestionKind `json:"kind" gorm:"not null;size:16;uniqueIndex:idx_buffer_user_kind"`
	Items     string         `json:"items" gorm:"not null;default:'[]'"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (SuggestionBuffer) TableName() string {
	return "suggestion_buffers"
}
