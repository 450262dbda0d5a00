package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
)

// errorResponse is the canonical error envelope: a stable machine-readable
// code plus a human description. Stack traces never surface.
type errorResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and stable error code.
//   - Logs unexpected errors internally without leaking details to clients.
//   - Renders the consistent {"code","description"} envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors: bind failures, 404 from the router, and the
	// validation messages produced by the request validator.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := "validationError"
		if he.Code == http.StatusNotFound {
			code = "notFound"
		}
		if he.Code == http.StatusUnauthorized {
			code = "authenticationRequired"
		}
		return he.Code, errorResponse{Code: code, Description: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Code: "invalidCredentials", Description: "Invalid username or password."}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusUnauthorized, errorResponse{Code: "invalidCredentials", Description: "Invalid username or password."}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Code: "userNotFound", Description: "User was not found."}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Code: "userExists", Description: "A user with this username already exists."}
	case errors.Is(err, domain.ErrFriendNotFound):
		return http.StatusNotFound, errorResponse{Code: "friendNotFound", Description: "Friend was not found."}
	case errors.Is(err, domain.ErrFriendExists):
		return http.StatusConflict, errorResponse{Code: "friendExists", Description: "A friend with this first and last name already exists."}
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, errorResponse{Code: "invalidArgument", Description: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Code: "internalError", Description: "Internal server error."}
}
