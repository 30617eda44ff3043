// Package repomanager opens the storage variant named by the server
// configuration.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophgarage/internal/server/config"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories/sqlstore"
)

// Open returns a migrated RepositoryManager for cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (repositories.RepositoryManager, error) {
	var driver string
	switch cfg.Storage {
	case config.StoragePostgres:
		driver = sqlstore.DriverPostgres
	case config.StorageSQLite:
		driver = sqlstore.DriverSQLite
	case config.StorageMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	s, err := sqlstore.Open(ctx, driver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return s, nil
}
