package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// wordWithScore builds a word whose mastery score equals score exactly.
func wordWithScore(id uint, score int) models.Word {
	w := models.Word{ID: id}
	if score >= 0 {
		w.PassWithHelp = score
	} else {
		w.Fail = -score
	}
	return w
}

func TestLearningWordIDs(t *testing.T) {
	t.Run("few negatives padded with weakest ascending", func(t *testing.T) {
		words := []models.Word{
			wordWithScore(1, -5),
			wordWithScore(2, -1),
			wordWithScore(3, 0),
			wordWithScore(4, 2),
			wordWithScore(5, 3),
		}
		// 2 negatives < 5, so the rest pads in ascending score order.
		assert.Equal(t, []uint{1, 2, 3, 4, 5}, LearningWordIDs(words))
	})

	t.Run("padding order follows score not position", func(t *testing.T) {
		words := []models.Word{
			wordWithScore(1, 9),
			wordWithScore(2, -3),
			wordWithScore(3, 1),
			wordWithScore(4, 0),
		}
		assert.Equal(t, []uint{2, 4, 3, 1}, LearningWordIDs(words))
	})

	t.Run("enough negatives means no padding", func(t *testing.T) {
		words := []models.Word{
			wordWithScore(1, -1),
			wordWithScore(2, -2),
			wordWithScore(3, -3),
			wordWithScore(4, -4),
			wordWithScore(5, -5),
			wordWithScore(6, 10),
		}
		assert.Equal(t, []uint{1, 2, 3, 4, 5}, LearningWordIDs(words))
	})

	t.Run("negatives keep original order", func(t *testing.T) {
		words := []models.Word{
			wordWithScore(9, -1),
			wordWithScore(3, -7),
			wordWithScore(5, -2),
		}
		got := LearningWordIDs(words)
		assert.Equal(t, []uint{9, 3, 5}, got[:3])
	})

	t.Run("padding caps at ten words", func(t *testing.T) {
		var words []models.Word
		for i := uint(1); i <= 20; i++ {
			words = append(words, wordWithScore(i, int(i)))
		}
		got := LearningWordIDs(words)
		assert.Len(t, got, 10)
		assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got)
	})

	t.Run("empty vocabulary yields empty queue", func(t *testing.T) {
		assert.Empty(t, LearningWordIDs(nil))
	})
}
