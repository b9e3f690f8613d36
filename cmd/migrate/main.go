package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/pkg/logger"
)

var (
	databaseURL    string
	migrationsPath string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the DonorConnect database schema",
	Long: `Apply or roll back the SQL migrations under ./migrations.

The database URL comes from --database, then DATABASE_URL, then the
database section of the service configuration.`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrate(func(m *migrate.Migrate) error {
			err := m.Up()
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info().Msg("No migrations to run (database is up to date)")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info().Msg("Migrations completed")
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (all, or the given number of steps)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrate(func(m *migrate.Migrate) error {
			var err error
			if len(args) == 1 {
				steps, convErr := strconv.Atoi(args[0])
				if convErr != nil || steps <= 0 {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				err = m.Steps(-steps)
			} else {
				err = m.Down()
			}
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("failed to roll back migrations: %w", err)
			}
			log.Info().Msg("Rollback completed")
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrate(func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("No migrations applied")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Force the schema version without running migrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version number: %w", err)
		}
		return withMigrate(func(m *migrate.Migrate) error {
			if err := m.Force(version); err != nil {
				return fmt.Errorf("failed to force version: %w", err)
			}
			log.Info().Int("version", version).Msg("Forced schema version")
			return nil
		})
	},
}

func resolveDatabaseURL() (string, error) {
	if databaseURL != "" {
		return databaseURL, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", fmt.Errorf("no database URL given and config could not be loaded: %w", err)
	}
	return cfg.Database.URL(), nil
}

func withMigrate(fn func(*migrate.Migrate) error) error {
	url, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	log.Info().Str("path", migrationsPath).Msg("Connecting to database")
	m, err := migrate.New("file://"+migrationsPath, url)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	return fn(m)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", "", "database URL")
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "path to migrations directory")
	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)
}

func main() {
	logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Console: true}).SetGlobal()

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("migrate failed")
		os.Exit(1)
	}
}
