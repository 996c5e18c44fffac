package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"bookshelf-backend/internal/config"
	"bookshelf-backend/pkg/logger"
)

const usage = `usage: migrate <command>

commands:
  up          apply all pending migrations
  down        roll back one migration
  version     print the current schema version
  force <v>   set the schema version without running migrations`

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://migrations", pgxURL(cfg.Database.DSN()))
	if err != nil {
		logger.Error("failed to initialize migrator", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := run(m, os.Args[1:]); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no schema changes to apply", nil)
			return
		}
		logger.Error("migration failed", err)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		logger.Info("migrations applied", nil)
	case "down":
		if err := m.Steps(-1); err != nil {
			return err
		}
		logger.Info("rolled back one migration", nil)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		logger.Info("schema version", map[string]interface{}{"version": version, "dirty": dirty})
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			return err
		}
		logger.Info("schema version forced", map[string]interface{}{"version": v})
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

// pgxURL rewrites the connection string scheme for the migrate pgx/v5
// driver.
func pgxURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return dsn
}
