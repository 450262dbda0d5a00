package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

func testInput(firstname, lastname string) ports.FriendInput {
	return ports.FriendInput{
		Firstname:   firstname,
		Lastname:    lastname,
		DateOfBirth: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestFriendCreateAndGet(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	created, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an assigned ID")
	}
	if created.DaysUntilNextBirthday < 1 || created.DaysUntilNextBirthday > 366 {
		t.Errorf("days until next birthday = %d, want within [1, 366]", created.DaysUntilNextBirthday)
	}

	got, err := svc.Get(context.Background(), "owner-a", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Firstname != "John" || got.Lastname != "Doe" {
		t.Errorf("got %q %q, want John Doe", got.Firstname, got.Lastname)
	}
}

func TestFriendCreateDuplicateName(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	if _, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe")); !errors.Is(err, domain.ErrFriendExists) {
		t.Fatalf("duplicate Create = %v, want ErrFriendExists", err)
	}

	// The same name under another owner is a different friend.
	if _, err := svc.Create(context.Background(), "owner-b", testInput("John", "Doe")); err != nil {
		t.Fatalf("Create under other owner: %v", err)
	}
}

func TestFriendOwnershipIsolation(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	created, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another owner addressing the record must see "not found", never a
	// permission error.
	if _, err := svc.Get(context.Background(), "owner-b", created.ID); !errors.Is(err, domain.ErrFriendNotFound) {
		t.Errorf("Get by other owner = %v, want ErrFriendNotFound", err)
	}
	if _, err := svc.Update(context.Background(), "owner-b", created.ID, testInput("Jane", "Doe")); !errors.Is(err, domain.ErrFriendNotFound) {
		t.Errorf("Update by other owner = %v, want ErrFriendNotFound", err)
	}
	if _, err := svc.Delete(context.Background(), "owner-b", created.ID); !errors.Is(err, domain.ErrFriendNotFound) {
		t.Errorf("Delete by other owner = %v, want ErrFriendNotFound", err)
	}

	// The record is untouched for its owner.
	if _, err := svc.Get(context.Background(), "owner-a", created.ID); err != nil {
		t.Fatalf("Get by owner after foreign access: %v", err)
	}
}

func TestFriendUpdateRenameCollision(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	if _, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(context.Background(), "owner-a", testInput("Jane", "Doe"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), "owner-a", second.ID, testInput("John", "Doe")); !errors.Is(err, domain.ErrFriendExists) {
		t.Fatalf("rename onto existing = %v, want ErrFriendExists", err)
	}

	// Updating without renaming is fine.
	in := testInput("Jane", "Doe")
	in.Nickname = "JD"
	updated, err := svc.Update(context.Background(), "owner-a", second.ID, in)
	if err != nil {
		t.Fatalf("Update same name: %v", err)
	}
	if updated.Nickname != "JD" {
		t.Errorf("nickname = %q, want JD", updated.Nickname)
	}
}

func TestFriendListScopedToOwner(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	for _, in := range []ports.FriendInput{
		testInput("John", "Doe"),
		testInput("Jane", "Doe"),
	} {
		if _, err := svc.Create(context.Background(), "owner-a", in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), "owner-b", testInput("Jim", "Beam")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	views, err := svc.List(context.Background(), "owner-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len = %d, want 2", len(views))
	}
	for _, v := range views {
		if v.Lastname != "Doe" {
			t.Errorf("unexpected friend %q %q in owner-a's list", v.Firstname, v.Lastname)
		}
	}
}

func TestFriendListPage(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	names := []string{"Ann", "Ben", "Cay", "Dan", "Eve", "Fay", "Gus"}
	for _, n := range names {
		if _, err := svc.Create(context.Background(), "owner-a", testInput(n, "Doe")); err != nil {
			t.Fatalf("Create %s: %v", n, err)
		}
	}

	page, err := svc.ListPage(context.Background(), "owner-a", 1, 5)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if page.TotalElements != 7 {
		t.Errorf("totalElements = %d, want 7", page.TotalElements)
	}
	if page.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", page.TotalPages)
	}
	if page.NumberOfElements != 2 || len(page.Content) != 2 {
		t.Errorf("numberOfElements = %d (len %d), want 2", page.NumberOfElements, len(page.Content))
	}
	if page.CurrentPage != 1 {
		t.Errorf("currentPage = %d, want 1", page.CurrentPage)
	}

	// Negative page and zero size fall back to the defaults.
	page, err = svc.ListPage(context.Background(), "owner-a", -3, 0)
	if err != nil {
		t.Fatalf("ListPage with defaults: %v", err)
	}
	if page.CurrentPage != 0 || page.PageSize != 5 {
		t.Errorf("defaults = page %d size %d, want page 0 size 5", page.CurrentPage, page.PageSize)
	}
}

func TestFriendDeleteReturnsRecord(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	created, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), "owner-a", created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Firstname != "John" {
		t.Errorf("deleted.Firstname = %q, want John", deleted.Firstname)
	}
	if _, err := svc.Get(context.Background(), "owner-a", created.ID); !errors.Is(err, domain.ErrFriendNotFound) {
		t.Errorf("Get after delete = %v, want ErrFriendNotFound", err)
	}
}

func TestFriendNamesAreTrimmed(t *testing.T) {
	svc := NewFriendService(newStubFriendRepo(), testLogger())

	created, err := svc.Create(context.Background(), "owner-a", ports.FriendInput{
		Firstname:   "  John ",
		Lastname:    " Doe ",
		DateOfBirth: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Firstname != "John" || created.Lastname != "Doe" {
		t.Errorf("stored as %q %q, want trimmed John Doe", created.Firstname, created.Lastname)
	}

	// Trimmed names collide with the trimmed original.
	if _, err := svc.Create(context.Background(), "owner-a", testInput("John", "Doe")); !errors.Is(err, domain.ErrFriendExists) {
		t.Fatalf("Create = %v, want ErrFriendExists", err)
	}
}
