package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// stubUserRepo is an in-memory user store keyed by ID, with the same error
// contract as the mongo implementation.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = "u" + strconv.Itoa(r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for i := 1; i <= r.nextID; i++ {
		if u, ok := r.users["u"+strconv.Itoa(i)]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindPage(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	all, _ := r.FindAll(ctx)
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return []domain.User{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubFriendRepo is the in-memory counterpart of the mongo friend store.
type stubFriendRepo struct {
	friends map[string]*domain.Friend
	nextID  int
}

func newStubFriendRepo() *stubFriendRepo {
	return &stubFriendRepo{friends: map[string]*domain.Friend{}}
}

func (r *stubFriendRepo) Create(_ context.Context, friend *domain.Friend) (*domain.Friend, error) {
	for _, f := range r.friends {
		if f.OwnerID == friend.OwnerID && f.Firstname == friend.Firstname && f.Lastname == friend.Lastname {
			return nil, domain.ErrFriendExists
		}
	}
	r.nextID++
	clone := *friend
	clone.ID = "f" + strconv.Itoa(r.nextID)
	r.friends[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubFriendRepo) FindByID(_ context.Context, id string) (*domain.Friend, error) {
	f, ok := r.friends[id]
	if !ok {
		return nil, domain.ErrFriendNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFriendRepo) FindByOwner(_ context.Context, ownerID string) ([]domain.Friend, error) {
	out := []domain.Friend{}
	for i := 1; i <= r.nextID; i++ {
		if f, ok := r.friends["f"+strconv.Itoa(i)]; ok && f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFriendRepo) FindPageByOwner(ctx context.Context, ownerID string, page, size int) ([]domain.Friend, int64, error) {
	all, _ := r.FindByOwner(ctx, ownerID)
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return []domain.Friend{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubFriendRepo) FindByName(_ context.Context, ownerID, firstname, lastname string) (*domain.Friend, error) {
	for _, f := range r.friends {
		if f.OwnerID == ownerID && f.Firstname == firstname && f.Lastname == lastname {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFriendNotFound
}

func (r *stubFriendRepo) Update(_ context.Context, friend *domain.Friend) (*domain.Friend, error) {
	if _, ok := r.friends[friend.ID]; !ok {
		return nil, domain.ErrFriendNotFound
	}
	clone := *friend
	clone.UpdatedAt = time.Now()
	r.friends[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubFriendRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.friends[id]; !ok {
		return domain.ErrFriendNotFound
	}
	delete(r.friends, id)
	return nil
}

func (r *stubFriendRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, f := range r.friends {
		if f.OwnerID == ownerID {
			delete(r.friends, id)
		}
	}
	return nil
}

// stubGuard counts failures in memory and blocks once the limit is reached.
type stubGuard struct {
	failures map[string]int
	limit    int
}

func newStubGuard(limit int) *stubGuard {
	return &stubGuard{failures: map[string]int{}, limit: limit}
}

func (g *stubGuard) Blocked(_ context.Context, username string) (bool, error) {
	return g.failures[username] >= g.limit, nil
}

func (g *stubGuard) RecordFailure(_ context.Context, username string) error {
	g.failures[username]++
	return nil
}

func (g *stubGuard) Reset(_ context.Context, username string) error {
	delete(g.failures, username)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
