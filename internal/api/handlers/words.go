package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/database"
	"github.com/gaborvas/wordtrainer/internal/metrics"
	"github.com/gaborvas/wordtrainer/internal/middleware"
	"github.com/gaborvas/wordtrainer/internal/models"
	"github.com/gaborvas/wordtrainer/internal/services"
)

type WordHandler struct {
	words    *services.WordStore
	importer *services.WordImporter
}

func NewWordHandler(words *services.WordStore, importer *services.WordImporter) *WordHandler {
	return &WordHandler{words: words, importer: importer}
}

type wordRequest struct {
	WordID      uint   `json:"word_id"`
	Word        string `json:"word" form:"word"`
	Translation string `json:"translation" form:"translation"`
	Definition  string `json:"definition" form:"definition"`
}

// AddWord stores a manually entered word.
// POST /add_word
func (h *WordHandler) AddWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBind(&req); err != nil || req.Word == "" || req.Translation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}

	word := &models.Word{
		UserID:      middleware.CurrentUserID(c),
		Word:        req.Word,
		Translation: req.Translation,
		Definition:  req.Definition,
		Origin:      models.OriginUser,
	}
	if err := h.words.Create(word); err != nil {
		if errors.Is(err, services.ErrDuplicateWord) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Word already exists!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add word"})
		return
	}

	metrics.UpdateVocabularyMetrics(database.GetDB())
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Word added successfully!", "word_id": word.ID})
}

// GetUserWords lists the user's vocabulary.
// GET /get_user_words
func (h *WordHandler) GetUserWords(c *gin.Context) {
	words, err := h.words.ByUser(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load words"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "words": words})
}

// GetWordByID returns a single owned word.
// GET /get_word_by_id?word_id=N
func (h *WordHandler) GetWordByID(c *gin.Context) {
	wordID, err := strconv.ParseUint(c.Query("word_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid word id"})
		return
	}
	word, err := h.words.ByID(middleware.CurrentUserID(c), uint(wordID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Word not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load word"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "word": word})
}

// UpdateWord edits word/translation/definition.
// POST /update_word
func (h *WordHandler) UpdateWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WordID == 0 || req.Word == "" || req.Translation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}

	word := &models.Word{
		ID:          req.WordID,
		UserID:      middleware.CurrentUserID(c),
		Word:        req.Word,
		Translation: req.Translation,
		Definition:  req.Definition,
	}
	err := h.words.Update(word)
	switch {
	case errors.Is(err, services.ErrDuplicateWord):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Word already exists!"})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Word not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update word"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Word updated successfully!"})
}

// DeleteWord removes an owned word.
// POST /delete_word
func (h *WordHandler) DeleteWord(c *gin.Context) {
	var req struct {
		WordID uint `json:"word_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.WordID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}

	err := h.words.Delete(middleware.CurrentUserID(c), req.WordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Word not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete word"})
		return
	}

	metrics.UpdateVocabularyMetrics(database.GetDB())
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Word deleted successfully!"})
}

// GetWordCount returns how many words the user owns.
// GET /get_word_count
func (h *WordHandler) GetWordCount(c *gin.Context) {
	n, err := h.words.Count(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to count words"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "count": n})
}

// ImportWords ingests an uploaded .xlsx workbook.
// POST /import_words (multipart, field "file")
func (h *WordHandler) ImportWords(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing file upload"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Failed to open upload"})
		return
	}
	defer f.Close()

	result, err := h.importer.ImportXLSX(middleware.CurrentUserID(c), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	metrics.UpdateVocabularyMetrics(database.GetDB())
	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}
