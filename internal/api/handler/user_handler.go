package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

// UserHandler serves account self-service operations.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,password"`
}

// ChangePassword replaces the authenticated user's password.
//
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Failure      401   {object}  statusResponse
// @Router       /api/users/password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{
		Code:        "PasswordChanged",
		Description: "Password was changed successfully.",
	})
}
