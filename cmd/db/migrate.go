package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github/chapool/go-disperse/internal/config"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

const migrationsDir = "migrations"

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Applies all pending database migrations",
		Long:  `Applies all pending database migrations against the configured Postgres database. Only relevant for the "postgres" ledger backend.`,
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			cfg.ApplyLogger()

			n, err := applyMigrations(cfg)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to apply migrations")
			}

			log.Info().Int("applied", n).Msg("Applied migrations")
		},
	}
}

func applyMigrations(cfg config.Server) (int, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return 0, err
	}

	migrations := &migrate.FileMigrationSource{Dir: migrationsDir}

	return migrate.Exec(db, "postgres", migrations, migrate.Up)
}
