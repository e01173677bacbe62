package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaborvas/wordtrainer/internal/database"
	"github.com/gaborvas/wordtrainer/internal/metrics"
	"github.com/gaborvas/wordtrainer/internal/middleware"
	"github.com/gaborvas/wordtrainer/internal/services"
)

type AuthHandler struct {
	users *services.UserStore
}

func NewAuthHandler(users *services.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates a new account.
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}

	_, err := h.users.Register(req.Username, req.Password)
	if errors.Is(err, services.ErrUsernameTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username already exists!"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	metrics.UpdateVocabularyMetrics(database.GetDB())
	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": "User registered successfully!"})
}

// Login starts a session.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid credentials!"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Login failed"})
		return
	}

	if err := middleware.SetSessionUser(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Login successful!"})
}

// Logout drops the session.
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logout successful!"})
}

// GetUserInfo returns the logged-in user's profile and preferences.
// GET /get_user_info
func (h *AuthHandler) GetUserInfo(c *gin.Context) {
	user, err := h.users.ByID(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"username":      user.Username,
		"reverse_drill": user.ReverseDrill,
		"theme":         user.Theme,
	})
}

// UpdateUser changes the password.
// POST /update_user
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}
	if err := h.users.UpdatePassword(middleware.CurrentUserID(c), req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User updated successfully!"})
}

// SetTheme persists the UI theme preference.
// POST /set_theme
func (h *AuthHandler) SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Theme == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing input fields!"})
		return
	}
	if err := h.users.SetTheme(middleware.CurrentUserID(c), req.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to set theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
