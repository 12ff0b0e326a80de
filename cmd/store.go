package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comercial-bot/internal/account"
)

func openStore(ctx context.Context) (account.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "comercial.db"
		}
		return account.NewSQLite(dsn)
	case "postgres":
		return account.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
