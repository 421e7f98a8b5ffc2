package usecase

import (
	"context"

	"shelf/internal/domain/entity"
)

// SessionUsecase resolves a bearer token to the user it was issued for.
type SessionUsecase interface {
	// Authenticate validates the raw token and loads its subject.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
