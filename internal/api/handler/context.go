package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/api/middleware"
	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// currentIdentity extracts the user bound by the identity resolver. Handlers
// behind the policy gate should always find one; a missing identity means the
// route was wired without the gate, so fail closed with 401.
func currentIdentity(c echo.Context) (*domain.User, error) {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.User)
	if !identity.Active() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}
