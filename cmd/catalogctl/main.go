// Package main provides catalogctl, the operator tool for the catalog database.
//
// Usage:
//
//	catalogctl [config flags] migrate up|down [-steps n]|version
//	catalogctl [config flags] import -file movies.json [-dry-run]
//	catalogctl [config flags] slugs
//
// Configuration flags and environment variables are the same as the server's,
// for example -db-driver=postgres -db-dsn=postgres://localhost/catalog.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelhouse/catalog-server/internal/catalog"
	"github.com/reelhouse/catalog-server/internal/config"
	"github.com/reelhouse/catalog-server/internal/di/providers"
	"github.com/reelhouse/catalog-server/internal/importer"
	"github.com/reelhouse/catalog-server/internal/logger"
	"github.com/reelhouse/catalog-server/internal/service"
	"github.com/reelhouse/catalog-server/internal/store/sqlstore"
)

const usage = `usage: catalogctl [config flags] <command> [flags]

commands:
  migrate up            apply pending migrations
  migrate down          roll back migrations (-steps n, default 1)
  migrate version       print the schema version
  import -file <path>   import a legacy JSON export (-dry-run to only validate)
  slugs                 print every public slug as JSON
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, rest, err := config.LoadArgs(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd := rest[0]; cmd {
	case "migrate":
		return runMigrate(cfg, rest[1:], stdout, log)
	case "import":
		return runImport(ctx, cfg, rest[1:], stdout, log)
	case "slugs":
		return runSlugs(ctx, cfg, stdout, log)
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runMigrate(cfg *config.Config, args []string, stdout io.Writer, log *logger.Logger) error {
	if len(args) == 0 {
		return errors.New("migrate needs up, down or version")
	}
	storeCfg := providers.StoreConfig(cfg)

	switch args[0] {
	case "up":
		return sqlstore.Migrate(storeCfg, log.Logger)
	case "down":
		fs := flag.NewFlagSet("migrate down", flag.ContinueOnError)
		steps := fs.Int("steps", 1, "Number of migrations to roll back")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return sqlstore.MigrateDown(storeCfg, *steps, log.Logger)
	case "version":
		version, dirty, err := sqlstore.Version(storeCfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate action %q", args[0])
	}
}

func runImport(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer, log *logger.Logger) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	path := fs.String("file", "", "Path to the legacy JSON export")
	dryRun := fs.Bool("dry-run", false, "Validate every record without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("import needs -file")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := sqlstore.Open(ctx, providers.StoreConfig(cfg), log.WithComponent("store").Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	cat := service.NewCatalog(catalog.ModeFor(cfg.Catalog.AtomicWrites), log.Logger)
	movies := service.NewMovieService(st, cat, cfg.Catalog.PageSize, log.Logger)
	imp := importer.New(st, movies, log.WithComponent("importer").Logger)

	summary, err := imp.Import(ctx, f, importer.Options{DryRun: *dryRun})
	if err != nil {
		return err
	}
	return writeJSON(stdout, summary)
}

func runSlugs(ctx context.Context, cfg *config.Config, stdout io.Writer, log *logger.Logger) error {
	st, err := sqlstore.Open(ctx, providers.StoreConfig(cfg), log.WithComponent("store").Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	index, err := service.NewBrowseService(st, log.Logger).Slugs(ctx)
	if err != nil {
		return err
	}
	return writeJSON(stdout, index)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
