package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"content-backend/internal/shared/auth"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	// bcrypt silently truncates past 72 bytes; reject before that.
	maxPasswordLen = 72
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Signup registers a new account and returns a signed token for it.
func (s *Service) Signup(ctx context.Context, username, email, password string) (User, string, error) {
	if s == nil || s.Repo == nil {
		return User{}, "", errors.New("users service not configured")
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateSignup(username, email, password); err != nil {
		return User{}, "", err
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return User{}, "", ErrUsernameExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", err
	}
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, "", ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.tokenFor(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies the password for username and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (User, string, error) {
	if s == nil || s.Repo == nil {
		return User{}, "", errors.New("users service not configured")
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokenFor(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) tokenFor(user User) (string, error) {
	return auth.SignJWT(auth.Claims{
		Sub:      user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func validateSignup(username, email, password string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("%w: username must be between %d and %d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if !strings.Contains(email, "@") || strings.Count(email, "@") != 1 ||
		strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password is too long", ErrInvalidInput)
	}
	return nil
}
