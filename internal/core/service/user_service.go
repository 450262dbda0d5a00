package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

// UserService implements the administrative account operations.
type UserService struct {
	users      ports.UserRepository
	friends    ports.FriendRepository
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(users ports.UserRepository, friends ports.FriendRepository, bcryptCost int, logger zerolog.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = defaultBcryptCost
	}
	return &UserService{users: users, friends: friends, bcryptCost: bcryptCost, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) ListUsersPage(ctx context.Context, page, size int) (domain.Paginated[domain.User], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 5
	}

	users, total, err := s.users.FindPage(ctx, page, size)
	if err != nil {
		return domain.Paginated[domain.User]{}, err
	}
	return domain.NewPaginated(users, page, size, total), nil
}

// DeleteUser removes the account and cascades to every friend it owns.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.friends.DeleteByOwner(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user and owned friends deleted")
	return user, nil
}

// OverridePassword sets a new password without checking the previous one.
func (s *UserService) OverridePassword(ctx context.Context, id, newPassword string) (*domain.User, error) {
	if newPassword == "" {
		return nil, domain.ErrInvalidArgument
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password overridden by administrator")
	return user, nil
}
