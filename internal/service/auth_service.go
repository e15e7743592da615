package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"processcraft/internal/domain"
	"processcraft/internal/logger"
	"processcraft/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and credential login. Session transport
// (JWT issue/verify) lives in jwt.go; this service only decides who the
// caller is.
type AuthService struct {
	users      UserStore
	bcryptCost int
}

func NewAuthService(users UserStore, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Register creates a new account. A duplicate email comes back as a
// field-level validation error, not a distinct failure mode.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	ve := newValidationError()
	if utf8.RuneCountInString(name) < 2 {
		ve.add("name", "Name must be at least 2 characters long")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		ve.add("email", "Please enter a valid email address")
	}
	if utf8.RuneCountInString(password) < 8 {
		ve.add("password", "Password must be at least 8 characters long")
	}
	if !ve.empty() {
		return nil, ve
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		HashedPassword: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			ve := newValidationError()
			ve.add("email", "An account with this email already exists")
			return nil, ve
		}
		logger.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user plus a signed token.
// Every failure path returns the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("failed to look up user", "error", err)
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// GetUser loads the authenticated user's own record.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	return user, nil
}
