// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"shelf/internal/domain/entity"
	"shelf/internal/domain/repository"
	"shelf/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user with empty collections.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if userM.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		userM.ID = id
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUserName
		}

		return errors.Wrap(err, "failed to create user")
	}

	*user = *toUserDomain(userM)

	return nil
}

// FindByName retrieves a single user by user name.
func (repo *userRepository) FindByName(ctx context.Context, userName string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("user_name = ?", userName).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by name")
	}

	return toUserDomain(&userM), nil
}

// FindByID retrieves a single user by ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// UpdateCollection locks the user row, applies the update in memory and writes the
// resulting column back, all inside one transaction on the primary.
func (repo *userRepository) UpdateCollection(ctx context.Context, id uuid.UUID, update repository.CollectionUpdate) (*entity.User, error) {
	column, err := collectionColumn(update.Collection)
	if err != nil {
		return nil, err
	}

	var updated *entity.User
	err = withTx(ctx, repo.db, func(tx *gorm.DB) error {
		var userM model.UserModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&userM).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to lock user")
		}

		user := toUserDomain(&userM)
		next, changed, err := update.Apply(user.Items(update.Collection))
		if err != nil {
			return err
		}
		if !changed {
			updated = user

			return nil
		}

		now := time.Now().UTC()
		err = tx.Model(&model.UserModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				column:                pq.StringArray(next),
				model.ColumnUpdatedAt: now,
			}).Error
		if err != nil {
			if isCheckConstraintViolation(err) {
				return repository.ErrCollectionFull
			}

			return errors.Wrap(err, "failed to update collection")
		}

		user.SetItems(update.Collection, next)
		user.UpdatedAt = now
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func collectionColumn(c entity.Collection) (string, error) {
	switch c {
	case entity.CollectionFavourites:
		return model.ColumnFavourites, nil
	case entity.CollectionHistory:
		return model.ColumnHistory, nil
	default:
		return "", errors.Errorf("unknown collection %q", c)
	}
}
