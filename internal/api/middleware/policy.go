package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// rule maps a path pattern to an access requirement. Rules are evaluated in
// order, first match wins, so more specific entries must precede the
// catch-all.
type rule struct {
	path     string
	prefix   bool
	required string // "" = anonymous, domain.RoleUser = any identity, domain.RoleAdmin = admin identity
}

func (r rule) matches(path string) bool {
	if r.prefix {
		return strings.HasPrefix(path, r.path)
	}
	return path == r.path
}

// defaultRules mirrors the route policy of the service: registration, login,
// documentation and probes are open; the admin prefix requires the ADMIN
// role; everything else requires some validated identity.
var defaultRules = []rule{
	{path: "/api/register", required: ""},
	{path: "/api/auth/authenticate", required: ""},
	{path: "/swagger", prefix: true, required: ""},
	{path: "/health", prefix: true, required: ""},
	{path: "/metrics", required: ""},
	{path: "/api/admin", prefix: true, required: domain.RoleAdmin},
	{path: "/", prefix: true, required: domain.RoleUser},
}

// Policy gates every request against the static rule table before any
// handler runs. It relies on ResolveIdentity having already bound the
// identity for authenticated requests.
func Policy() echo.MiddlewareFunc {
	return policyWithRules(defaultRules)
}

func policyWithRules(rules []rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			matched := rule{prefix: true, required: domain.RoleUser}
			for _, r := range rules {
				if r.matches(c.Request().URL.Path) {
					matched = r
					break
				}
			}

			if matched.required == "" {
				return next(c)
			}

			identity, _ := c.Get(IdentityKey).(*domain.User)
			if !identity.Active() {
				return c.JSON(http.StatusUnauthorized, authError{
					Code:        "authenticationRequired",
					Description: "Authentication is required to access this resource.",
				})
			}

			if matched.required == domain.RoleAdmin && identity.Role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, authError{
					Code:        "accessDenied",
					Description: "You do not have permission to access this resource.",
				})
			}

			return next(c)
		}
	}
}
