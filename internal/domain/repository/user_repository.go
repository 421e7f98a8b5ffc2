// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"shelf/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUserName is returned by Create when the user name is already in use.
	ErrDuplicateUserName = errors.New("user name already taken")

	// ErrCollectionFull is returned by UpdateCollection when an add would exceed the limit.
	ErrCollectionFull = errors.New("collection is full")
)

// CollectionUpdate describes a single membership change on one of a user's collections.
type CollectionUpdate struct {
	Collection entity.Collection
	Op         entity.CollectionOp
	ItemID     string
	// Limit caps the collection size for adds. Zero means no cap.
	Limit int
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user. It assigns ID and timestamps on the passed entity.
	Create(ctx context.Context, user *entity.User) error

	// FindByName retrieves a single user by their unique user name.
	FindByName(ctx context.Context, userName string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateCollection applies update atomically and returns the user as stored afterwards.
	// The size check and the write happen as one unit against the store.
	UpdateCollection(ctx context.Context, id uuid.UUID, update CollectionUpdate) (*entity.User, error)
}

// Apply computes the collection that results from the update.
// changed is false when the update is a no-op. It fails with ErrCollectionFull
// when adding a new item to a collection that already holds Limit members.
func (u CollectionUpdate) Apply(items []string) (next []string, changed bool, err error) {
	switch u.Op {
	case entity.CollectionOpAdd:
		out, added, full := entity.AddItem(items, u.ItemID, u.Limit)
		if full {
			return items, false, ErrCollectionFull
		}

		return out, added, nil
	case entity.CollectionOpRemove:
		out, removed := entity.RemoveItem(items, u.ItemID)

		return out, removed, nil
	default:
		return items, false, fmt.Errorf("unknown collection op %q", u.Op)
	}
}
