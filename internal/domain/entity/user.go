// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxPasswordBytes is the longest password bcrypt accepts, measured in bytes.
const MaxPasswordBytes = 72

// User is the identity record of a single account together with its bounded collections.
type User struct {
	ID           uuid.UUID `json:"id"`         // Server generated identifier.
	UserName     string    `json:"userName"`   // Display name, unique across all users.
	PasswordHash string    `json:"-"`          // Salted one-way hash. Never serialised.
	Favourites   []string  `json:"favourites"` // Set of item ids, at most MaxCollectionSize entries.
	History      []string  `json:"history"`    // Set of item ids, at most MaxCollectionSize entries.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Items returns the members of the named collection.
// The returned slice is a copy and never nil.
func (u *User) Items(collection Collection) []string {
	var src []string
	switch collection {
	case CollectionFavourites:
		src = u.Favourites
	case CollectionHistory:
		src = u.History
	}

	out := make([]string, len(src))
	copy(out, src)

	return out
}

// SetItems replaces the members of the named collection.
func (u *User) SetItems(collection Collection, items []string) {
	switch collection {
	case CollectionFavourites:
		u.Favourites = items
	case CollectionHistory:
		u.History = items
	}
}
