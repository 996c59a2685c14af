package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rohanbuilds/jobprep/internal/models"
)

// ErrUserNotFound is returned when a session email resolves to no account.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned on registration against an existing email.
var ErrEmailTaken = errors.New("email already registered")

// UserService owns account lookup and creation.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// ByEmail resolves the account a session belongs to.
func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
