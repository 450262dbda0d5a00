package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// gate runs the Policy middleware for a request to path with the given
// identity already bound, the way ResolveIdentity would have left it.
func gate(t *testing.T, path string, identity *domain.User) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(IdentityKey, identity)
	}

	reached := false
	handler := Policy()(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, reached
}

func TestPolicyAnonymousPaths(t *testing.T) {
	paths := []string{
		"/api/register",
		"/api/auth/authenticate",
		"/swagger/index.html",
		"/health",
		"/health/ready",
		"/metrics",
	}
	for _, path := range paths {
		if _, reached := gate(t, path, nil); !reached {
			t.Errorf("%s blocked for anonymous caller", path)
		}
	}
}

func TestPolicyProtectedRequiresIdentity(t *testing.T) {
	for _, path := range []string{"/api/friends", "/api/logout", "/api/friends/abc", "/no/such/route"} {
		rec, reached := gate(t, path, nil)
		if reached {
			t.Errorf("%s reached without identity", path)
			continue
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, rec.Code)
		}
		if body := rec.Body.String(); !strings.Contains(body, `"authenticationRequired"`) {
			t.Errorf("%s body = %s, want code authenticationRequired", path, body)
		}
	}
}

func TestPolicyProtectedAllowsAnyIdentity(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}
	if _, reached := gate(t, "/api/friends", user); !reached {
		t.Error("/api/friends blocked for an authenticated user")
	}
}

func TestPolicyAdminPrefix(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}
	admin := &domain.User{ID: "u2", Username: "root", Role: domain.RoleAdmin}

	rec, reached := gate(t, "/api/admin/users", user)
	if reached {
		t.Fatal("/api/admin/users reached by a plain user")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"accessDenied"`) {
		t.Errorf("body = %s, want code accessDenied", body)
	}

	if _, reached := gate(t, "/api/admin/users", admin); !reached {
		t.Error("/api/admin/users blocked for an admin")
	}

	// Admins pass the plain authenticated routes too.
	if _, reached := gate(t, "/api/friends", admin); !reached {
		t.Error("/api/friends blocked for an admin")
	}
}

func TestPolicyOrderSpecificBeforeCatchAll(t *testing.T) {
	// The register rule must win over the authenticated catch-all even though
	// both match the path.
	if _, reached := gate(t, "/api/register", nil); !reached {
		t.Fatal("exact anonymous rule shadowed by the catch-all")
	}
}
