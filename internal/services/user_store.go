package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gaborvas/wordtrainer/internal/database"
	"github.com/gaborvas/wordtrainer/internal/models"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserStore struct {
	db    *gorm.DB
	guard *database.IntegrityGuard
}

func NewUserStore(db *gorm.DB, guard *database.IntegrityGuard) *UserStore {
	return &UserStore{db: db, guard: guard}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserStore) Register(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password must be non-empty")
	}

	var n int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if n > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.commitDigest()
	return user, nil
}

// Authenticate returns the user when the username/password pair is valid.
func (s *UserStore) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserStore) ByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IDs lists every user ID, oldest first. Used by precache and the top-up sweep.
func (s *UserStore) IDs() ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.User{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	return ids, nil
}

// SetReverseDrill persists the practice direction preference.
func (s *UserStore) SetReverseDrill(userID uint, reverse bool) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("reverse_drill", reverse).Error; err != nil {
		return fmt.Errorf("failed to update drill direction: %w", err)
	}
	s.commitDigest()
	return nil
}

func (s *UserStore) SetTheme(userID uint, theme string) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("theme", theme).Error; err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	s.commitDigest()
	return nil
}

// UpdatePassword re-hashes and stores a new password.
func (s *UserStore) UpdatePassword(userID uint, password string) error {
	if password == "" {
		return errors.New("password must be non-empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", string(hash)).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.commitDigest()
	return nil
}

func (s *UserStore) commitDigest() {
	if s.guard == nil {
		return
	}
	if err := s.guard.UpdateAfterCommit(); err != nil {
		infoLog("Integrity digest update failed: %v", err)
	}
}
