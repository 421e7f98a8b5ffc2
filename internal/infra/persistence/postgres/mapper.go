package postgres

import (
	"shelf/internal/domain/entity"
	"shelf/internal/infra/persistence/model"

	"github.com/lib/pq"
)

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		UserName:     m.UserName,
		PasswordHash: m.PasswordHash,
		Favourites:   nonNil(m.Favourites),
		History:      nonNil(m.History),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           u.ID,
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
		Favourites:   pq.StringArray(nonNil(u.Favourites)),
		History:      pq.StringArray(nonNil(u.History)),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}

	return items
}
