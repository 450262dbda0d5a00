package ports

import (
	"context"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// UserRepository is the persistence contract for user accounts. Lookups by
// username back both login and per-request identity resolution, so
// implementations must be safe for unlimited concurrent readers.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindPage(ctx context.Context, page, size int) ([]domain.User, int64, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
