package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/warehouse/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse/pkg/config"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply or inspect the database schema migrations" }
func (*migrateCmd) Usage() string {
	return `warehousectl migrate <up|down|status|redo> [args...]

  Runs the embedded goose migrations against DATABASE_URL (or DB_*).
  Only meaningful with STORAGE_DRIVER=postgres.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

var migrateCommands = map[string]bool{"up": true, "down": true, "status": true, "redo": true}

func (*migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || !migrateCommands[f.Arg(0)] {
		fmt.Fprintln(os.Stderr, "usage: warehousectl migrate <up|down|status|redo>")
		return subcommands.ExitUsageError
	}
	cfg, log, err := loadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		fmt.Fprintf(os.Stderr, "migrate requires STORAGE_DRIVER=postgres (got %q)\n", cfg.Storage.Driver)
		return subcommands.ExitFailure
	}
	if err := postgres.RunMigrations(ctx, log.Named("migrations"), cfg.DB.ConnectionString(), f.Arg(0), f.Args()[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
