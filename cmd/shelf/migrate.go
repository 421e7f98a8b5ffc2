package main

import (
	"log/slog"
	"strconv"

	"shelf/config"
	logs "shelf/internal/infra/log"
	"shelf/internal/infra/persistence/migrations"
	"shelf/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				return m.Up()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, one step unless a count is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid step count %q", args[0])
				}
				steps = n
			}

			return withMigrator(func(m *migrations.Migrator) error {
				return m.Down(steps)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", version, dirty)

				return nil
			})
		},
	})

	return cmd
}

// withMigrator opens the configured database, runs fn and closes the connection.
func withMigrator(fn func(m *migrations.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	migrator, err := migrations.New(sqlDB, logger)
	if err != nil {
		_ = sqlDB.Close()

		return err
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			logger.Warn("Failed to close migrator", slog.Any("error", cerr))
		}
	}()

	return fn(migrator)
}
