package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

// AuthHandler serves registration, login and the stateless logout.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=40"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role"     validate:"required,oneof=USER ADMIN"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authenticateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authenticateResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type statusResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

// Authenticate verifies credentials and returns a bearer token.
//
// @Summary      Authenticate a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Credentials"
// @Success      200   {object}  authenticateResponse
// @Failure      400   {object}  statusResponse
// @Failure      401   {object}  statusResponse
// @Router       /api/auth/authenticate [post]
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authenticateResponse{Username: user.Username, Token: signed})
}

// Logout confirms logout to the client. Tokens are stateless and cannot be
// revoked, so no server state changes; the issued token stays valid until it
// expires.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		Code:        "LogoutSuccess",
		Description: "Logout was successful.",
	})
}
