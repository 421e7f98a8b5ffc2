package usecase

import (
	"context"

	"shelf/internal/domain/entity"

	"github.com/google/uuid"
)

// CollectionUsecase manages the bounded favourites and history sets of a user.
// Every method returns the full collection as it stands after the call.
type CollectionUsecase interface {
	List(ctx context.Context, userID uuid.UUID, collection entity.Collection) ([]string, error)
	Add(ctx context.Context, userID uuid.UUID, collection entity.Collection, itemID string) ([]string, error)
	Remove(ctx context.Context, userID uuid.UUID, collection entity.Collection, itemID string) ([]string, error)
}
