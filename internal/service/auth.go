package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
	"github.com/jcamiloaa/experienciaas/internal/security"
)

type AuthService struct {
	users  repository.UserRepository
	tokens security.TokenManager
	email  EmailSender
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager, email EmailSender) *AuthService {
	return &AuthService{users: users, tokens: tokens, email: email, now: time.Now}
}

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		IsActive:     true,
		Organizer:    domain.RoleState{Status: domain.RoleStatusNone},
		Supplier:     domain.RoleState{Status: domain.RoleStatusNone},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("user signed up", "user_id", user.ID)
	if s.email != nil {
		if err := s.email.SendWelcome(user); err != nil {
			logger.Warn("welcome email failed", "error", err)
		}
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrNotAuthorized
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.RecordLogin(ctx, user.ID, s.now()); err != nil {
		logger.Warn("recording login failed", "user_id", user.ID, "error", err)
	}
	return user, pair, nil
}

// Refresh trades a refresh token for a fresh pair. The user is
// reloaded so a deactivated account cannot keep minting tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrNotAuthorized
	}
	return s.issuePair(user)
}

// CurrentUser resolves an access token's bearer, reloading from the
// database so role changes apply on the very next request.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.ValidateToken(accessToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.Type != security.TokenTypeAccess {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrNotAuthorized
	}
	return user, nil
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
