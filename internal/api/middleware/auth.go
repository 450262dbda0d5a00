package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/api/metrics"
	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
	"github.com/birthdaykeeper/birthday-api/internal/core/token"
)

// Context keys under which the resolver binds the request identity.
const (
	IdentityKey = "identity"
	UsernameKey = "username"
	RoleKey     = "role"
)

type authError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ResolveIdentity validates the bearer token on each request and binds the
// resolved user into the request context exactly once.
//
// A missing or non-Bearer Authorization header is not an error: the request
// continues unauthenticated and the policy gate decides whether that is
// acceptable for the route. An expired token halts the request with 401 and
// code "expiredToken"; any other validation failure, including a subject that
// no longer resolves to a stored account, halts it with 403 and code
// "invalidToken".
func ResolveIdentity(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return next(c)
			}

			claims, err := codec.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
					return c.JSON(http.StatusUnauthorized, authError{
						Code:        "expiredToken",
						Description: "The provided token has expired.",
					})
				}
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return c.JSON(http.StatusForbidden, authError{
					Code:        "invalidToken",
					Description: "The provided token could not be validated.",
				})
			}

			// Already bound for this request: never overwrite or duplicate.
			if c.Get(IdentityKey) != nil {
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
					return c.JSON(http.StatusForbidden, authError{
						Code:        "invalidToken",
						Description: "The provided token could not be validated.",
					})
				}
				return err
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(IdentityKey, user)
			c.Set(UsernameKey, user.Username)
			c.Set(RoleKey, user.Role)

			return next(c)
		}
	}
}
