package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"shelf/internal/domain/entity"
	"shelf/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	insertUserSQL   = regexp.QuoteMeta(`INSERT INTO "users" ("id","user_name","password_hash","favourites","history","created_at","updated_at") VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING "favourites","history"`)
	selectByNameSQL = regexp.QuoteMeta(`SELECT * FROM "users" WHERE user_name = $1 ORDER BY "users"."id" LIMIT $2`)
	selectByIDSQL   = regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 ORDER BY "users"."id" LIMIT $2`)
	lockByIDSQL     = regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 ORDER BY "users"."id" LIMIT $2 FOR UPDATE`)
)

var userColumns = []string{"id", "user_name", "password_hash", "favourites", "history", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return NewUserRepository(db), mock
}

func userRow(id uuid.UUID, favourites, history string) *sqlmock.Rows {
	now := time.Now().UTC()

	return sqlmock.NewRows(userColumns).
		AddRow(id.String(), "alice", "hash", favourites, history, now, now)
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserSQL).
		WillReturnRows(sqlmock.NewRows([]string{"favourites", "history"}).AddRow("{}", "{}"))

	user := &entity.User{UserName: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, []string{}, user.Favourites)
	assert.Equal(t, []string{}, user.History)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "pgx unique violation", dbErr: &pgconn.PgError{Code: sqlStateUniqueViolation}, wantErr: repository.ErrDuplicateUserName},
		{name: "lib/pq unique violation", dbErr: &pq.Error{Code: sqlStateUniqueViolation}, wantErr: repository.ErrDuplicateUserName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			mock.ExpectQuery(insertUserSQL).WillReturnError(tt.dbErr)

			err := repo.Create(context.Background(), &entity.User{UserName: "alice", PasswordHash: "hash"})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("other failure is wrapped", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(insertUserSQL).WillReturnError(errors.New("connection reset"))

		err := repo.Create(context.Background(), &entity.User{UserName: "alice", PasswordHash: "hash"})

		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicateUserName)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestUserRepository_FindByName(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(selectByNameSQL).
		WithArgs("alice", 1).
		WillReturnRows(userRow(id, `{"m1","m2"}`, "{}"))

	user, err := repo.FindByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, []string{"m1", "m2"}, user.Favourites)
	assert.Equal(t, []string{}, user.History)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(selectByNameSQL).WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery(selectByIDSQL).WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCollection_LocksThenWrites(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(lockByIDSQL).
		WithArgs(id, 1).
		WillReturnRows(userRow(id, `{"m1"}`, "{}"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "favourites"=$1,"updated_at"=$2 WHERE id = $3`)).
		WithArgs(pq.StringArray{"m1", "m2"}, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := repo.UpdateCollection(context.Background(), id, repository.CollectionUpdate{
		Collection: entity.CollectionFavourites,
		Op:         entity.CollectionOpAdd,
		ItemID:     "m2",
		Limit:      entity.MaxCollectionSize,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, user.Favourites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCollection_HistoryRemove(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(lockByIDSQL).WillReturnRows(userRow(id, "{}", `{"h1","h2"}`))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "history"=$1,"updated_at"=$2 WHERE id = $3`)).
		WithArgs(pq.StringArray{"h2"}, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := repo.UpdateCollection(context.Background(), id, repository.CollectionUpdate{
		Collection: entity.CollectionHistory,
		Op:         entity.CollectionOpRemove,
		ItemID:     "h1",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"h2"}, user.History)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCollection_NoOpSkipsWrite(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		op     entity.CollectionOp
		itemID string
	}{
		{name: "add existing member", row: `{"m1"}`, op: entity.CollectionOpAdd, itemID: "m1"},
		{name: "remove non-member", row: `{"m1"}`, op: entity.CollectionOpRemove, itemID: "m9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			id := uuid.New()

			mock.ExpectBegin()
			mock.ExpectQuery(lockByIDSQL).WillReturnRows(userRow(id, tt.row, "{}"))
			mock.ExpectCommit()

			user, err := repo.UpdateCollection(context.Background(), id, repository.CollectionUpdate{
				Collection: entity.CollectionFavourites,
				Op:         tt.op,
				ItemID:     tt.itemID,
				Limit:      entity.MaxCollectionSize,
			})

			require.NoError(t, err)
			assert.Equal(t, []string{"m1"}, user.Favourites)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateCollection_FullRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(lockByIDSQL).WillReturnRows(userRow(id, `{"a","b"}`, "{}"))
	mock.ExpectRollback()

	_, err := repo.UpdateCollection(context.Background(), id, repository.CollectionUpdate{
		Collection: entity.CollectionFavourites,
		Op:         entity.CollectionOpAdd,
		ItemID:     "c",
		Limit:      2,
	})

	assert.ErrorIs(t, err, repository.ErrCollectionFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCollection_CheckViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(lockByIDSQL).WillReturnRows(userRow(id, `{"m1"}`, "{}"))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnError(&pgconn.PgError{Code: sqlStateCheckViolation, ConstraintName: "users_favourites_cap"})
	mock.ExpectRollback()

	_, err := repo.UpdateCollection(context.Background(), id, repository.CollectionUpdate{
		Collection: entity.CollectionFavourites,
		Op:         entity.CollectionOpAdd,
		ItemID:     "m2",
		Limit:      entity.MaxCollectionSize,
	})

	assert.ErrorIs(t, err, repository.ErrCollectionFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCollection_MissingUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockByIDSQL).WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateCollection(context.Background(), uuid.New(), repository.CollectionUpdate{
		Collection: entity.CollectionHistory,
		Op:         entity.CollectionOpAdd,
		ItemID:     "h1",
		Limit:      entity.MaxCollectionSize,
	})

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCollection_UnknownCollection(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.UpdateCollection(context.Background(), uuid.New(), repository.CollectionUpdate{
		Collection: entity.Collection("watchlist"),
		Op:         entity.CollectionOpAdd,
		ItemID:     "x",
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
