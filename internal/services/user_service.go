package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user related business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the required information to create a new user.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
}

// Create validates uniqueness of username and email, hashes the
// password and persists the user. Nothing is written when either
// uniqueness check fails.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Email:        input.Email,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// List retrieves all users.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.FindAll()
}

// Get retrieves a user by ID.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateUserInput represents the mutable user fields for an update.
type UpdateUserInput struct {
	Username string
	Password string
	Email    string
}

// Update overwrites the mutable fields of an existing user. Identity
// and creation time are preserved; the password is re-hashed only when
// a new one is supplied.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(input.Username)
	user.Email = input.Email
	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user and cascades to its projects and their tasks.
func (s *UserService) Delete(id uint64) error {
	return s.userRepo.Delete(id)
}
