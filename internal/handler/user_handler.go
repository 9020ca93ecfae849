package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vesseltrack/internal/auth"
	"vesseltrack/internal/errors"
	"vesseltrack/internal/service"
)

// PrincipalContextKey is the echo context key the auth middleware stores the
// resolved principal under.
const PrincipalContextKey = "user"

// UserHandler handles profile and user administration endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ProfileUpdateRequest represents a self-service profile update. Only
// fullname and email are mutable through this path.
type ProfileUpdateRequest struct {
	Fullname *string `json:"fullname"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// UserUpdateRequest represents an admin-path partial update.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Fullname *string `json:"fullname"`
	Role     *string `json:"role"`
	IsStaff  *bool   `json:"is_staff"`
}

func principalFrom(c echo.Context) *auth.Principal {
	p, _ := c.Get(PrincipalContextKey).(*auth.Principal)
	return p
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} model.UserDetail
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /profile/ [get]
func (h *UserHandler) Profile(c echo.Context) error {
	principal := principalFrom(c)
	if principal == nil {
		return respondError(errors.ErrUnauthenticated)
	}

	user, err := h.svc.GetUser(c.Request().Context(), principal.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user.Detail())
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Description Only fullname and email can be changed here.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} model.UserDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /profile/update/ [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal := principalFrom(c)
	if principal == nil {
		return respondError(errors.ErrUnauthenticated)
	}

	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.UpdateOwnProfile(c.Request().Context(), principal, service.ProfilePatch{
		Fullname: req.Fullname,
		Email:    req.Email,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user.Detail())
}

// ListUsers godoc
// @Summary List all users
// @Description Requires the staff flag, independent of role.
// @Tags users
// @Produce json
// @Success 200 {array} model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/ [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	principal := principalFrom(c)
	if principal == nil {
		return respondError(errors.ErrUnauthenticated)
	}

	summaries, err := h.svc.ListUsers(c.Request().Context(), principal)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetUser godoc
// @Summary Get a user's detail
// @Description Open to any authenticated user.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.UserDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	principal := principalFrom(c)
	if principal == nil {
		return respondError(errors.ErrUnauthenticated)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := h.svc.GetUserDetail(c.Request().Context(), principal, uint(id))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user.Detail())
}

// UpdateUser godoc
// @Summary Update a user
// @Description Permitted for the user themselves or staff. Staff may set role and is_staff.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UserUpdateRequest true "Fields to update"
// @Success 200 {object} model.UserDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	principal := principalFrom(c)
	if principal == nil {
		return respondError(errors.ErrUnauthenticated)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), principal, uint(id), service.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Fullname: req.Fullname,
		Role:     req.Role,
		IsStaff:  req.IsStaff,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user.Detail())
}

// Stats godoc
// @Summary Get user statistics
// @Description Counts grouped by role. Requires the staff flag.
// @Tags stats
// @Produce json
// @Success 200 {object} model.UserStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /stats/ [get]
func (h *UserHandler) Stats(c echo.Context) error {
	principal := principalFrom(c)
	if principal == nil {
		return respondError(errors.ErrUnauthenticated)
	}

	stats, err := h.svc.Stats(c.Request().Context(), principal)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
