package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
	"github.com/birthdaykeeper/birthday-api/internal/core/token"
)

func newTestAuthService(users *stubUserRepo, guard *stubGuard) *AuthService {
	codec := token.New("test-secret-test-secret-test!!!!", "birthday-keeper")
	var g ports.LoginGuard
	if guard != nil {
		g = guard
	}
	return NewAuthService(users, codec, g, time.Hour, bcrypt.MinCost, testLogger())
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, nil)

	created, err := svc.Register(context.Background(), "alice", "Passw0rd!", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an assigned ID")
	}
	if created.PasswordHash == "Passw0rd!" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Passw0rd!")); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!", "ROOT"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("Register with unknown role = %v, want ErrInvalidArgument", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!", domain.RoleUser); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "0therPassw0rd!", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("second Register = %v, want ErrUserExists", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!", domain.RoleAdmin); err != nil {
		t.Fatalf("Register: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "alice", "Passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user = %q, want alice", user.Username)
	}

	claims, err := svc.codec.Validate(signed)
	if err != nil {
		t.Fatalf("Validate issued token: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleAdmin {
		t.Errorf("claims = %+v, want subject alice role ADMIN", claims)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!", domain.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "nobody", "Passw0rd!")
	_, _, wrongErr := svc.Login(context.Background(), "alice", "WrongPassw0rd!")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown username = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", wrongErr)
	}
}

func TestLoginGuardBlocksAndResets(t *testing.T) {
	users := newStubUserRepo()
	guard := newStubGuard(3)
	svc := newTestAuthService(users, guard)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!", domain.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d = %v, want ErrInvalidCredentials", i, err)
		}
	}

	// Over the limit even the right password is rejected.
	if _, _, err := svc.Login(context.Background(), "alice", "Passw0rd!"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("blocked login = %v, want ErrTooManyAttempts", err)
	}

	// A successful login after the window clears the counter.
	guard.failures["alice"] = 2
	if _, _, err := svc.Login(context.Background(), "alice", "Passw0rd!"); err != nil {
		t.Fatalf("login under the limit: %v", err)
	}
	if guard.failures["alice"] != 0 {
		t.Errorf("failure counter = %d after successful login, want 0", guard.failures["alice"])
	}
}

func TestChangePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, nil)

	created, err := svc.Register(context.Background(), "alice", "Passw0rd!", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "WrongPassw0rd!", "NextPassw0rd!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("change with wrong current password = %v, want ErrInvalidCredentials", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "Passw0rd!", "NextPassw0rd!"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice", "Passw0rd!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old password still accepted after change")
	}
	if _, _, err := svc.Login(context.Background(), "alice", "NextPassw0rd!"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
