package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lounge-orders/models"

	"gorm.io/gorm"
)

type UserService struct {
	db                *gorm.DB
	passwords         PasswordChecker
	developerUsername string
}

func NewUserService(db *gorm.DB, passwords PasswordChecker, developerUsername string) *UserService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &UserService{db: db, passwords: passwords, developerUsername: developerUsername}
}

// DeveloperUsername is the account shown with the DEVELOPER label
func (s *UserService) DeveloperUsername() string {
	return s.developerUsername
}

type CreateUserInput struct {
	Username string
	Password string
	Name     *string
	Role     models.UserRole
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	case strings.TrimSpace(in.Password) == "":
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	case len(in.Password) < MinPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be USER or ADMIN", ErrValidation)
	}

	stored, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: stored,
		Name:     emptyToNil(in.Name),
		Role:     role,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// List returns all users newest-first
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// Delete removes a user. The developer account is never deleted.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.developerUsername != "" && user.Username == s.developerUsername {
		return ErrProtectedUser
	}
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// Authenticate checks a username/password pair for login
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.passwords.Matches(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// VerifyPassword re-checks the password of an already signed-in user
func (s *UserService) VerifyPassword(ctx context.Context, userID, password string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !s.passwords.Matches(user.Password, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin when no user has that name yet
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.Create(ctx, CreateUserInput{Username: username, Password: password, Role: models.RoleAdmin})
	if errors.Is(err, ErrUsernameTaken) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("bootstrap admin %q created", username)
	return nil
}
