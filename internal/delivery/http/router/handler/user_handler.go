// Package handler contains the HTTP handlers for the application.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "shelf/internal/delivery/context"
	"shelf/internal/delivery/http/response"
	"shelf/internal/domain/entity"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"userName"`
	Favourites []string  `json:"favourites"`
	History    []string  `json:"history"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		UserName:   user.UserName,
		Favourites: user.Items(entity.CollectionFavourites),
		History:    user.Items(entity.CollectionHistory),
		CreatedAt:  user.CreatedAt,
	}
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterUser handles the user registration request.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var input usecase.RegisterUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(output.User),
		fmt.Sprintf("User %s successfully registered", output.User.UserName))
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		// Callers must not learn whether the name exists.
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrInvalidCredentials
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(output.User), "Login successful")
}

// Me returns the user resolved from the bearer token.
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := deliverycontext.GetUser(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
