package ports

import (
	"context"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// FriendRepository is the persistence contract for friend records.
type FriendRepository interface {
	Create(ctx context.Context, friend *domain.Friend) (*domain.Friend, error)
	FindByID(ctx context.Context, id string) (*domain.Friend, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Friend, error)
	FindPageByOwner(ctx context.Context, ownerID string, page, size int) ([]domain.Friend, int64, error)
	// FindByName returns the owner's friend with the given first and last
	// name, or domain.ErrFriendNotFound.
	FindByName(ctx context.Context, ownerID, firstname, lastname string) (*domain.Friend, error)
	Update(ctx context.Context, friend *domain.Friend) (*domain.Friend, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every friend owned by the given user. Used when
	// an account is deleted so no orphaned records remain.
	DeleteByOwner(ctx context.Context, ownerID string) error
}
