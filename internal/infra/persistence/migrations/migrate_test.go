package migrations

import (
	"io"
	"log/slog"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	upErr      error
	stepsErr   error
	steps      []int
	version    uint
	versionErr error
	closed     bool
}

func (f *fakeRunner) Up() error { return f.upErr }

func (f *fakeRunner) Steps(n int) error {
	f.steps = append(f.steps, n)

	return f.stepsErr
}

func (f *fakeRunner) Version() (uint, bool, error) { return f.version, false, f.versionErr }

func (f *fakeRunner) Close() (error, error) {
	f.closed = true

	return nil, nil
}

func newTestMigrator(r runner) *Migrator {
	return &Migrator{m: r, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestSource_ContainsUsersMigration(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, ident, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_users", ident)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, string(body), "cardinality(favourites) <= 50")
}

func TestMigrator_UpIgnoresNoChange(t *testing.T) {
	mg := newTestMigrator(&fakeRunner{upErr: migrate.ErrNoChange, version: 1})
	assert.NoError(t, mg.Up())

	mg = newTestMigrator(&fakeRunner{upErr: errors.New("boom")})
	assert.Error(t, mg.Up())
}

func TestMigrator_Down(t *testing.T) {
	r := &fakeRunner{}
	mg := newTestMigrator(r)

	require.NoError(t, mg.Down(1))
	assert.Equal(t, []int{-1}, r.steps)

	assert.Error(t, mg.Down(0))
}

func TestMigrator_VersionNilIsZero(t *testing.T) {
	mg := newTestMigrator(&fakeRunner{versionErr: migrate.ErrNilVersion})

	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestMigrator_Close(t *testing.T) {
	r := &fakeRunner{}
	require.NoError(t, newTestMigrator(r).Close())
	assert.True(t, r.closed)
}
