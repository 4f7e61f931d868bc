package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/serene/internal/config"
	"github.com/idilsaglam/serene/internal/store"
	"github.com/idilsaglam/serene/internal/store/jsonstore"
	"github.com/idilsaglam/serene/internal/store/sqlitestore"
)

func openKV(ctx context.Context, cfg *config.Config) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.New(cfg.DataDir), nil
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.DataDir)
	case config.BackendMemory:
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
