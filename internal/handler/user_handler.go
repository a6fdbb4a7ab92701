package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fitlog/internal/errors"
	"fitlog/internal/model"
	"fitlog/internal/service"
)

// UserHandler handles user directory endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		ID:       user.ID.Hex(),
	}
}

// CreateUser godoc
// @Summary Create a user, or return the existing one with that username
// @Tags users
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 200 {object} UserResponse "username already existed"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "username is required",
			Code:  "VALIDATION_ERROR",
		})
	}

	user, created, err := h.userService.CreateOrFetch(c.Request().Context(), req.Username)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, toUserResponse(user))
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
