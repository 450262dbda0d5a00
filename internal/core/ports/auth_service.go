package ports

import (
	"context"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// AuthService covers registration and credential verification. Login returns
// the signed bearer token alongside the authenticated user.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// LoginGuard throttles repeated failed logins per username. A nil guard
// disables throttling.
type LoginGuard interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
