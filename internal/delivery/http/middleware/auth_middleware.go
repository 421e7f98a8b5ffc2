package middleware

import (
	"strings"

	deliverycontext "shelf/internal/delivery/context"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the bearer token on a request to the user it names.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate validates the bearer token and stores the user on the echo context.
// Failures are returned as errors and rendered by the error handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrMissingToken
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			return domainerrors.ErrMissingToken
		}

		user, err := m.sessions.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			// A valid token whose subject has been deleted is still unusable.
			if errors.Is(err, domainerrors.ErrUserNotFound) {
				return domainerrors.ErrInvalidToken
			}

			return errors.WithStack(err)
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}
