package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

// AdminHandler serves the user-management endpoints behind the admin policy
// rule. Role gating happens in the policy middleware; handlers only do the
// work.
type AdminHandler struct {
	service ports.UserService
}

func NewAdminHandler(service ports.UserService) *AdminHandler {
	return &AdminHandler{service: service}
}

type overridePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// ListUsers returns every registered account.
//
// @Summary      Get all users of the system
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  statusResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponses(users))
}

// ListUsersPaginated returns one page of registered accounts.
//
// @Summary      Get paginated users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        pageNo  query     int  false  "Zero-based page number"  default(0)
// @Param        size    query     int  false  "Page size"               default(5)
// @Success      200     {object}  domain.Paginated[userResponse]
// @Failure      403     {object}  statusResponse
// @Router       /api/admin/users/paginated [get]
func (h *AdminHandler) ListUsersPaginated(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.service.ListUsersPage(c.Request().Context(), page, size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domain.Paginated[userResponse]{
		Content:          toUserResponses(result.Content),
		TotalElements:    result.TotalElements,
		PageSize:         result.PageSize,
		TotalPages:       result.TotalPages,
		NumberOfElements: result.NumberOfElements,
		CurrentPage:      result.CurrentPage,
	})
}

// DeleteUser removes an account and all friends it owns.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  statusResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	user, err := h.service.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

// OverridePassword sets a new password for an account without the old one.
//
// @Summary      Override a user's password
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "User ID"
// @Param        body  body      overridePasswordRequest  true  "New password"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /api/admin/users/{id}/password [put]
func (h *AdminHandler) OverridePassword(c echo.Context) error {
	var req overridePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.OverridePassword(c.Request().Context(), c.Param("id"), req.NewPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	return out
}
