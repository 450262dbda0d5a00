package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/birthdaykeeper/birthday-api/internal/api/metrics"
	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

// FriendService manages the friend list of a single owner. The bearer token
// proves who the caller is, not what they may touch, so every operation on an
// existing record re-checks ownership and reports a mismatch as
// domain.ErrFriendNotFound.
type FriendService struct {
	friends ports.FriendRepository
	logger  zerolog.Logger
}

func NewFriendService(friends ports.FriendRepository, logger zerolog.Logger) *FriendService {
	return &FriendService{friends: friends, logger: logger}
}

func (s *FriendService) List(ctx context.Context, ownerID string) ([]ports.FriendView, error) {
	friends, err := s.friends.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.FriendView, 0, len(friends))
	for i := range friends {
		views = append(views, toView(&friends[i]))
	}
	return views, nil
}

func (s *FriendService) ListPage(ctx context.Context, ownerID string, page, size int) (domain.Paginated[ports.FriendView], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 5
	}

	friends, total, err := s.friends.FindPageByOwner(ctx, ownerID, page, size)
	if err != nil {
		return domain.Paginated[ports.FriendView]{}, err
	}

	views := make([]ports.FriendView, 0, len(friends))
	for i := range friends {
		views = append(views, toView(&friends[i]))
	}
	return domain.NewPaginated(views, page, size, total), nil
}

func (s *FriendService) Get(ctx context.Context, ownerID, friendID string) (*ports.FriendView, error) {
	friend, err := s.owned(ctx, ownerID, friendID)
	if err != nil {
		return nil, err
	}
	view := toView(friend)
	return &view, nil
}

func (s *FriendService) Create(ctx context.Context, ownerID string, input ports.FriendInput) (*ports.FriendView, error) {
	input = trimmed(input)

	if _, err := s.friends.FindByName(ctx, ownerID, input.Firstname, input.Lastname); err == nil {
		return nil, domain.ErrFriendExists
	} else if !errors.Is(err, domain.ErrFriendNotFound) {
		return nil, err
	}

	created, err := s.friends.Create(ctx, &domain.Friend{
		OwnerID:     ownerID,
		Firstname:   input.Firstname,
		Lastname:    input.Lastname,
		Nickname:    input.Nickname,
		DateOfBirth: input.DateOfBirth,
	})
	if err != nil {
		return nil, err
	}

	metrics.FriendsCreatedTotal.Inc()
	s.logger.Info().Str("owner_id", ownerID).Str("friend_id", created.ID).Msg("friend created")
	view := toView(created)
	return &view, nil
}

func (s *FriendService) Update(ctx context.Context, ownerID, friendID string, input ports.FriendInput) (*ports.FriendView, error) {
	friend, err := s.owned(ctx, ownerID, friendID)
	if err != nil {
		return nil, err
	}

	input = trimmed(input)

	// A rename must not collide with another friend of the same owner.
	existing, err := s.friends.FindByName(ctx, ownerID, input.Firstname, input.Lastname)
	if err == nil && existing.ID != friendID {
		return nil, domain.ErrFriendExists
	} else if err != nil && !errors.Is(err, domain.ErrFriendNotFound) {
		return nil, err
	}

	friend.Firstname = input.Firstname
	friend.Lastname = input.Lastname
	friend.Nickname = input.Nickname
	friend.DateOfBirth = input.DateOfBirth

	updated, err := s.friends.Update(ctx, friend)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("owner_id", ownerID).Str("friend_id", friendID).Msg("friend updated")
	view := toView(updated)
	return &view, nil
}

func (s *FriendService) Delete(ctx context.Context, ownerID, friendID string) (*ports.FriendView, error) {
	friend, err := s.owned(ctx, ownerID, friendID)
	if err != nil {
		return nil, err
	}

	if err := s.friends.Delete(ctx, friendID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("owner_id", ownerID).Str("friend_id", friendID).Msg("friend deleted")
	view := toView(friend)
	return &view, nil
}

// owned loads a friend and verifies it belongs to ownerID. An existing record
// owned by someone else is reported exactly like a missing one.
func (s *FriendService) owned(ctx context.Context, ownerID, friendID string) (*domain.Friend, error) {
	friend, err := s.friends.FindByID(ctx, friendID)
	if err != nil {
		return nil, err
	}
	if friend.OwnerID != ownerID {
		return nil, domain.ErrFriendNotFound
	}
	return friend, nil
}

func toView(f *domain.Friend) ports.FriendView {
	return ports.FriendView{
		ID:                    f.ID,
		Firstname:             f.Firstname,
		Lastname:              f.Lastname,
		Nickname:              f.Nickname,
		DateOfBirth:           f.DateOfBirth,
		DaysUntilNextBirthday: f.DaysUntilNextBirthday(),
	}
}

func trimmed(in ports.FriendInput) ports.FriendInput {
	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Nickname = strings.TrimSpace(in.Nickname)
	return in
}
