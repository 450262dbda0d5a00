package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/domain"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

// FriendHandler serves the friend list of the authenticated user. The owner
// of every operation is the bound request identity; a client-supplied user id
// is never trusted.
type FriendHandler struct {
	service ports.FriendService
}

func NewFriendHandler(service ports.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

// List returns all friends of the authenticated user.
//
// @Summary      List all friends of the authenticated user
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   friendResponse
// @Failure      401  {object}  statusResponse
// @Router       /api/friends [get]
func (h *FriendHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFriendResponses(views))
}

// ListPaginated returns one page of the authenticated user's friends.
//
// @Summary      List friends page by page
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        pageNo  query     int  false  "Zero-based page number"  default(0)
// @Param        size    query     int  false  "Page size"               default(5)
// @Success      200     {object}  domain.Paginated[friendResponse]
// @Failure      401     {object}  statusResponse
// @Router       /api/friends/paginated [get]
func (h *FriendHandler) ListPaginated(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	page, size := pageParams(c)
	result, err := h.service.ListPage(c.Request().Context(), identity.ID, page, size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domain.Paginated[friendResponse]{
		Content:          toFriendResponses(result.Content),
		TotalElements:    result.TotalElements,
		PageSize:         result.PageSize,
		TotalPages:       result.TotalPages,
		NumberOfElements: result.NumberOfElements,
		CurrentPage:      result.CurrentPage,
	})
}

// Get returns one friend of the authenticated user.
//
// @Summary      Retrieve a friend by ID
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Friend ID"
// @Success      200  {object}  friendResponse
// @Failure      404  {object}  statusResponse
// @Router       /api/friends/{id} [get]
func (h *FriendHandler) Get(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFriendResponse(view))
}

// Create inserts a friend for the authenticated user.
//
// @Summary      Insert a friend
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      friendRequest  true  "Friend details"
// @Success      201   {object}  friendResponse
// @Failure      400   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Router       /api/friends [post]
func (h *FriendHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req friendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), identity.ID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toFriendResponse(view))
}

// Update modifies a friend of the authenticated user.
//
// @Summary      Update a friend
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Friend ID"
// @Param        body  body      friendUpdateRequest  true  "Updated friend details"
// @Success      200   {object}  friendResponse
// @Failure      400   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Router       /api/friends/{id} [put]
func (h *FriendHandler) Update(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req friendUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ID != c.Param("id") {
		return fmt.Errorf("%w: friend ids do not match", domain.ErrInvalidArgument)
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), identity.ID, c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFriendResponse(view))
}

// Delete removes a friend of the authenticated user.
//
// @Summary      Delete a friend
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Friend ID"
// @Success      200  {object}  friendResponse
// @Failure      404  {object}  statusResponse
// @Router       /api/friends/{id} [delete]
func (h *FriendHandler) Delete(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Delete(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFriendResponse(view))
}

// pageParams reads the pageNo/size query parameters with the service
// defaults used throughout.
func pageParams(c echo.Context) (page, size int) {
	page, size = 0, 5
	if v, err := strconv.Atoi(c.QueryParam("pageNo")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		size = v
	}
	return page, size
}
