package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/birthdaykeeper/birthday-api/internal/api/metrics"
	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
	"github.com/birthdaykeeper/birthday-api/internal/core/token"
)

const defaultBcryptCost = 12

// AuthService implements registration, login and password changes. Login
// failures are reported to callers as a single domain.ErrInvalidCredentials
// regardless of whether the username or the password was wrong; only the log
// lines distinguish the two cases.
type AuthService struct {
	users      ports.UserRepository
	codec      *token.Codec
	guard      ports.LoginGuard // nil disables login throttling
	tokenTTL   time.Duration
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *token.Codec, guard ports.LoginGuard, tokenTTL time.Duration, bcryptCost int, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = defaultBcryptCost
	}
	return &AuthService{
		users:      users,
		codec:      codec,
		guard:      guard,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidArgument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a bearer token embedding the
// username and role.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.guard != nil {
		blocked, err := s.guard.Blocked(ctx, username)
		if err != nil {
			return "", nil, err
		}
		if blocked {
			metrics.LoginGuardBlocksTotal.Inc()
			s.logger.Warn().Str("username", username).Msg("login blocked by failed-attempt guard")
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("username", username).Msg("login for unknown username")
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("login with wrong password")
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.Username, map[string]string{"role": user.Role}, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	if s.guard != nil {
		_ = s.guard.Reset(ctx, username)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Msg("user authenticated")
	return signed, user, nil
}

// ChangePassword replaces the caller's password after verifying the current
// one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidArgument
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		s.logger.Warn().Str("username", user.Username).Msg("password change with wrong current password")
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("username", user.Username).Msg("password changed")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.guard != nil {
		_ = s.guard.RecordFailure(ctx, username)
	}
}
