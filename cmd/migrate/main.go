package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"court-reservations/internal/handler/middleware"
	"court-reservations/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies migrations/ with the atlas CLI. MIGRATIONS_DIR and ATLAS_BIN override the defaults.
func main() {
	logCfg, err := config.LoadSection[config.LogConfig]()
	if err != nil {
		slog.Error("failed to load log config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(logCfg).GetSlogLogger()

	dbCfg, err := config.LoadSection[config.DBConfig]()
	if err != nil {
		logger.Error("failed to load db config", "error", err)
		os.Exit(1)
	}

	if err := migrate(dbCfg, envOr("MIGRATIONS_DIR", "./migrations"), envOr("ATLAS_BIN", "atlas"), logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(dbCfg config.DBConfig, dir, atlasBin string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), atlasBin)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: dbCfg.BuildDSN(),
	})
	if err != nil {
		return err
	}

	logger.Info("migrations applied", "applied", len(res.Applied), "current", res.Current, "target", res.Target)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
