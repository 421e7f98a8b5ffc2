// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserModel mirrors the 'users' table. Collections are stored as text[] columns.
type UserModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserName     string         `gorm:"type:varchar(255);uniqueIndex:users_user_name_key;not null"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Favourites   pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	History      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// Column names used by targeted updates.
const (
	ColumnFavourites = "favourites"
	ColumnHistory    = "history"
	ColumnUpdatedAt  = "updated_at"
)
