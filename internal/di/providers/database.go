package providers

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/reelhouse/catalog-server/internal/config"
	"github.com/reelhouse/catalog-server/internal/logger"
	"github.com/reelhouse/catalog-server/internal/store/sqlstore"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// StoreConfig converts the database section of the configuration.
func StoreConfig(cfg *config.Config) sqlstore.Config {
	return sqlstore.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		AutoMigrate:  cfg.Database.AutoMigrate,
	}
}

// ProvideStore opens the database, migrating it first when configured to.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, StoreConfig(cfg), log.WithComponent("store").Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized",
		"driver", cfg.Database.Driver,
		"auto_migrate", cfg.Database.AutoMigrate,
	)

	return &StoreHandle{Store: db}, nil
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}
