package postgres

import (
	"testing"
	"time"

	"shelf/internal/domain/entity"
	"shelf/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping(t *testing.T) {
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New(),
		UserName:     "alice",
		PasswordHash: "hash",
		Favourites:   []string{"movie1"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	m := fromUserDomain(user)
	assert.Equal(t, pq.StringArray{"movie1"}, m.Favourites)
	assert.NotNil(t, m.History, "empty collections are written as '{}', not NULL")

	back := toUserDomain(m)
	assert.Equal(t, user.ID, back.ID)
	assert.Equal(t, "alice", back.UserName)
	assert.Equal(t, []string{"movie1"}, back.Favourites)
	assert.Equal(t, []string{}, back.History)
}

func TestToUserDomain_NilArrays(t *testing.T) {
	u := toUserDomain(&model.UserModel{ID: uuid.New()})

	assert.NotNil(t, u.Favourites)
	assert.NotNil(t, u.History)
}

func TestCollectionColumn(t *testing.T) {
	col, err := collectionColumn(entity.CollectionFavourites)
	assert.NoError(t, err)
	assert.Equal(t, model.ColumnFavourites, col)

	col, err = collectionColumn(entity.CollectionHistory)
	assert.NoError(t, err)
	assert.Equal(t, model.ColumnHistory, col)

	_, err = collectionColumn("wishlist")
	assert.Error(t, err)
}
