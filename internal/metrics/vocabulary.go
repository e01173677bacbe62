package metrics

import (
	"log"

	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// UpdateVocabularyMetrics queries the database and updates the vocabulary
// gauges. Call this after word mutations or periodically.
func UpdateVocabularyMetrics(db *gorm.DB) {
	if db == nil {
		return
	}

	var wordCount int64
	if err := db.Model(&models.Word{}).Count(&wordCount).Error; err != nil {
		log.Printf("Metrics: failed to count words: %v", err)
	} else {
		VocabularyWordsTotal.Set(float64(wordCount))
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Printf("Metrics: failed to count users: %v", err)
	} else {
		UsersTotal.Set(float64(userCount))
	}
}
