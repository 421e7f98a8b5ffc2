// Package memory provides an in-process user store for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"shelf/internal/domain/entity"
	"shelf/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRepository keeps users in maps guarded by a single mutex. The mutex is
// never held across anything but map access, so it plays the role of the
// store's own per-record serialisation.
type userRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*entity.User
	byName map[string]uuid.UUID
	now    func() time.Time
}

// NewUserRepository creates an empty in-memory store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:   make(map[uuid.UUID]*entity.User),
		byName: make(map[string]uuid.UUID),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byName[user.UserName]; taken {
		return repository.ErrDuplicateUserName
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	now := repo.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favourites == nil {
		user.Favourites = []string{}
	}
	if user.History == nil {
		user.History = []string{}
	}

	repo.byID[user.ID] = clone(user)
	repo.byName[user.UserName] = user.ID

	return nil
}

func (repo *userRepository) FindByName(ctx context.Context, userName string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byName[userName]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return clone(repo.byID[id]), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return clone(user), nil
}

func (repo *userRepository) UpdateCollection(ctx context.Context, id uuid.UUID, update repository.CollectionUpdate) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if !update.Collection.IsValid() {
		return nil, errors.Errorf("unknown collection %q", update.Collection)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	next, changed, err := update.Apply(user.Items(update.Collection))
	if err != nil {
		return nil, err
	}
	if changed {
		user.SetItems(update.Collection, next)
		user.UpdatedAt = repo.now()
	}

	return clone(user), nil
}

func clone(u *entity.User) *entity.User {
	c := *u
	c.Favourites = u.Items(entity.CollectionFavourites)
	c.History = u.Items(entity.CollectionHistory)

	return &c
}
