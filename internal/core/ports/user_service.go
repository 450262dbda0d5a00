package ports

import (
	"context"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// UserService exposes the administrative account operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListUsersPage(ctx context.Context, page, size int) (domain.Paginated[domain.User], error)
	// DeleteUser removes the account and all friend records it owns.
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
	// OverridePassword sets a new password without checking the old one.
	// Reserved for administrators.
	OverridePassword(ctx context.Context, id, newPassword string) (*domain.User, error)
}
