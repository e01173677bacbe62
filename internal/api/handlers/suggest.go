package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaborvas/wordtrainer/internal/middleware"
	"github.com/gaborvas/wordtrainer/internal/models"
	"github.com/gaborvas/wordtrainer/internal/services"
)

// Suggester is what the suggestion endpoints need from the suggestion
// pipeline. Narrow on purpose so tests can fake it.
type Suggester interface {
	Next(ctx context.Context, userID uint, kind models.SuggestionKind) (*models.SuggestionPair, error)
	Replenish(userID uint, kind models.SuggestionKind)
}

type SuggestHandler struct {
	suggestions Suggester
	words       *services.WordStore
}

func NewSuggestHandler(suggestions Suggester, words *services.WordStore) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions, words: words}
}

// RecommendWord serves the next unconstrained suggestion.
// GET /recommend_word → 200 success / 202 busy / 503 error
func (h *SuggestHandler) RecommendWord(c *gin.Context) {
	h.recommend(c, models.KindRandom)
}

// RecommendSmartWord serves the next level-matched suggestion.
// GET /recommend_smart_word
func (h *SuggestHandler) RecommendSmartWord(c *gin.Context) {
	h.recommend(c, models.KindSmart)
}

func (h *SuggestHandler) recommend(c *gin.Context, kind models.SuggestionKind) {
	pair, err := h.suggestions.Next(c.Request.Context(), middleware.CurrentUserID(c), kind)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"word":        pair.Word,
			"translation": pair.Translation,
		})
	case errors.Is(err, services.ErrBusy):
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "busy",
			"message": "AI is still generating, try again shortly.",
		})
	case errors.Is(err, services.ErrNothingNew):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "No new words for you right now — you already know everything the AI offered!",
		})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "AI is not available. Check that the AI server is running.",
		})
	}
}

// AcceptWord adds an offered suggestion to the vocabulary and kicks off
// background replenishment of both buffers.
// POST /accept_word {word, translation}
func (h *SuggestHandler) AcceptWord(c *gin.Context) {
	var req struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Word == "" || req.Translation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}
	userID := middleware.CurrentUserID(c)

	word := &models.Word{
		UserID:      userID,
		Word:        req.Word,
		Translation: req.Translation,
		Origin:      models.OriginSuggested,
	}
	if err := h.words.Create(word); err != nil {
		if errors.Is(err, services.ErrDuplicateWord) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Word already exists!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add word"})
		return
	}

	// The accepted word just left a buffer; refill both kinds behind the
	// response. The smart prompt will see the fresh vocabulary.
	for _, kind := range models.Kinds {
		go h.suggestions.Replenish(userID, kind)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Word added successfully!", "word_id": word.ID})
}
