package services

import (
	"sort"

	"github.com/gaborvas/wordtrainer/internal/models"
)

const (
	// learningMinNegatives: below this many negative-score words the queue
	// is padded with the weakest remaining words.
	learningMinNegatives = 5
	// learningMaxWords caps the padded practice queue.
	learningMaxWords = 10
)

// LearningWordIDs ranks a vocabulary for learning mode. Words with a
// negative mastery score come first, in their original order. When there are
// fewer than learningMinNegatives of them, the weakest remaining words are
// appended in ascending score order until the queue holds learningMaxWords
// or the vocabulary runs out. An empty vocabulary yields an empty queue; the
// handler reports that explicitly rather than as a successful empty list.
func LearningWordIDs(words []models.Word) []uint {
	var ids []uint
	var rest []models.Word

	for _, w := range words {
		if w.MasteryScore() < 0 {
			ids = append(ids, w.ID)
		} else {
			rest = append(rest, w)
		}
	}

	if len(ids) >= learningMinNegatives {
		return ids
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].MasteryScore() < rest[j].MasteryScore()
	})
	for _, w := range rest {
		if len(ids) >= learningMaxWords {
			break
		}
		ids = append(ids, w.ID)
	}
	return ids
}
