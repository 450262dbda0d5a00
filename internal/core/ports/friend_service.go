package ports

import (
	"context"
	"time"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// FriendInput carries the client-supplied fields of a friend record. The
// owner is never part of the input: it is always derived from the
// authenticated identity by the caller.
type FriendInput struct {
	Firstname   string
	Lastname    string
	Nickname    string
	DateOfBirth time.Time
}

// FriendView is the read model handed back to the transport layer, with the
// countdown to the next birthday already computed.
type FriendView struct {
	ID                    string
	Firstname             string
	Lastname              string
	Nickname              string
	DateOfBirth           time.Time
	DaysUntilNextBirthday int
}

// FriendService exposes the friend list of a single owner. Every operation
// re-checks that the targeted record belongs to ownerID; a mismatch surfaces
// as domain.ErrFriendNotFound so the existence of other users' records is
// never confirmed.
type FriendService interface {
	List(ctx context.Context, ownerID string) ([]FriendView, error)
	ListPage(ctx context.Context, ownerID string, page, size int) (domain.Paginated[FriendView], error)
	Get(ctx context.Context, ownerID, friendID string) (*FriendView, error)
	Create(ctx context.Context, ownerID string, input FriendInput) (*FriendView, error)
	Update(ctx context.Context, ownerID, friendID string, input FriendInput) (*FriendView, error)
	Delete(ctx context.Context, ownerID, friendID string) (*FriendView, error)
}
