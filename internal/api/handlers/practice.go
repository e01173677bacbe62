package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/middleware"
	"github.com/gaborvas/wordtrainer/internal/models"
	"github.com/gaborvas/wordtrainer/internal/services"
)

// choiceCount is how many options a multiple-choice help round offers,
// correct answer included.
const choiceCount = 4

type PracticeHandler struct {
	words *services.WordStore
	users *services.UserStore
}

func NewPracticeHandler(words *services.WordStore, users *services.UserStore) *PracticeHandler {
	return &PracticeHandler{words: words, users: users}
}

// GetRandomWord serves one random word for drilling.
// GET /get_random_word
func (h *PracticeHandler) GetRandomWord(c *gin.Context) {
	word, err := h.words.Random(middleware.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "No words yet!"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load word"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"word_id":     word.ID,
		"word":        word.Word,
		"translation": word.Translation,
	})
}

// UpdateScore records one practice outcome on a word's counters.
// POST /update_score {word_id, status}
func (h *PracticeHandler) UpdateScore(c *gin.Context) {
	var req struct {
		WordID uint                `json:"word_id"`
		Status models.RecallStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.WordID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Unknown status value"})
		return
	}

	err := h.words.RecordRecall(middleware.CurrentUserID(c), req.WordID, req.Status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Word not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update score"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetChoices builds a multiple-choice help round for a word: the correct
// answer plus decoys drawn from the user's other words, shuffled.
// POST /get_choices {word_id, direction} — direction true asks for the
// translation, false for the source word.
func (h *PracticeHandler) GetChoices(c *gin.Context) {
	var req struct {
		WordID    uint `json:"word_id"`
		Direction bool `json:"direction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.WordID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}
	userID := middleware.CurrentUserID(c)

	target, err := h.words.ByID(userID, req.WordID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Word not found"})
		return
	}
	all, err := h.words.ByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load words"})
		return
	}

	answer := func(w models.Word) string {
		if req.Direction {
			return w.Translation
		}
		return w.Word
	}

	choices := []string{answer(*target)}
	perm := rand.Perm(len(all))
	for _, i := range perm {
		if len(choices) >= choiceCount {
			break
		}
		if all[i].ID == target.ID {
			continue
		}
		choices = append(choices, answer(all[i]))
	}
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	c.JSON(http.StatusOK, gin.H{"status": "success", "choices": choices})
}

// SwitchTranslation flips the drill direction preference.
// POST /switch_translation
func (h *PracticeHandler) SwitchTranslation(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	user, err := h.users.ByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load user"})
		return
	}
	if err := h.users.SetReverseDrill(userID, !user.ReverseDrill); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to switch direction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reverse_drill": !user.ReverseDrill})
}

// GetLearningWords returns the practice queue for learning mode: word IDs
// ranked weakest-first by mastery score. An empty vocabulary is an explicit
// error outcome, not an empty success.
// GET /get_learning_words
func (h *PracticeHandler) GetLearningWords(c *gin.Context) {
	words, err := h.words.ByUser(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load words"})
		return
	}
	if len(words) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "No words to practice!"})
		return
	}
	ids := services.LearningWordIDs(words)
	c.JSON(http.StatusOK, gin.H{"status": "success", "word_ids": ids})
}

// GetWordStatistics lists every word with its counters and mastery score.
// GET /get_word_statistics
func (h *PracticeHandler) GetWordStatistics(c *gin.Context) {
	words, err := h.words.ByUser(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load words"})
		return
	}

	type wordStats struct {
		WordID       uint   `json:"word_id"`
		Word         string `json:"word"`
		Translation  string `json:"translation"`
		Pass         int    `json:"pass"`
		PassWithHelp int    `json:"passWithHelp"`
		Fail         int    `json:"fail"`
		FailWithHelp int    `json:"failWithHelp"`
		Score        int    `json:"score"`
	}
	stats := make([]wordStats, 0, len(words))
	for _, w := range words {
		stats = append(stats, wordStats{
			WordID:       w.ID,
			Word:         w.Word,
			Translation:  w.Translation,
			Pass:         w.Pass,
			PassWithHelp: w.PassWithHelp,
			Fail:         w.Fail,
			FailWithHelp: w.FailWithHelp,
			Score:        w.MasteryScore(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "statistics": stats})
}
