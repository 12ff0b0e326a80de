package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock's pool
// implements it for unit tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool. The reference table keeps
// the normalized key columns alongside the display names so both lookup
// tiers are plain indexable predicates.
type PostgresStore struct {
	pool Pool
}

const (
	findExactSQL = `SELECT id, ejecutivo, nombre_fantasia, razon_social, nf_key, rs_key
FROM cuentas WHERE nf_key = $1 OR rs_key = $1 ORDER BY seq`

	// Keys are lowercase alphanumerics only, so no LIKE escaping is needed.
	findContainingSQL = `SELECT id, ejecutivo, nombre_fantasia, razon_social, nf_key, rs_key
FROM cuentas WHERE nf_key LIKE '%' || $1 || '%' OR rs_key LIKE '%' || $1 || '%' ORDER BY seq`
)

// preparedStatements lists queries to prepare on each new connection; both
// lookups run on every inbound request.
var preparedStatements = map[string]string{
	"cuentas_find_exact":      findExactSQL,
	"cuentas_find_containing": findContainingSQL,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS cuentas (
	id              TEXT PRIMARY KEY,
	seq             BIGSERIAL,
	ejecutivo       TEXT NOT NULL DEFAULT '',
	nombre_fantasia TEXT NOT NULL DEFAULT '',
	razon_social    TEXT NOT NULL DEFAULT '',
	nf_key          TEXT NOT NULL DEFAULT '',
	rs_key          TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS cuentas_nf_key_idx ON cuentas (nf_key);
CREATE INDEX IF NOT EXISTS cuentas_rs_key_idx ON cuentas (rs_key);
`

// Migrate creates the reference table and its key indexes.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (s *PostgresStore) FindExact(ctx context.Context, key string) ([]Account, error) {
	rows, err := s.pool.Query(ctx, findExactSQL, key)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: find exact")
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (s *PostgresStore) FindContaining(ctx context.Context, key string) ([]Account, error) {
	rows, err := s.pool.Query(ctx, findContainingSQL, key)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: find containing")
	}
	defer rows.Close()
	return scanAccounts(rows)
}

// ReplaceAll swaps the reference table inside one transaction using the COPY
// protocol, so readers never observe a half-loaded dataset.
func (s *PostgresStore) ReplaceAll(ctx context.Context, accounts []Account) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin replace")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM cuentas`); err != nil {
		return 0, eris.Wrap(err, "postgres: clear cuentas")
	}

	copyRows := make([][]any, 0, len(accounts))
	for _, a := range accounts {
		if a.TradeName == "" && a.LegalName == "" {
			continue
		}
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		copyRows = append(copyRows, []any{
			id, a.Executive, a.TradeName, a.LegalName, a.TradeKey, a.LegalKey,
		})
	}

	if len(copyRows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"cuentas"},
			[]string{"id", "ejecutivo", "nombre_fantasia", "razon_social", "nf_key", "rs_key"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: copy cuentas")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit replace")
	}
	return len(copyRows), nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanAccounts(rows pgx.Rows) ([]Account, error) {
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Executive, &a.TradeName, &a.LegalName, &a.TradeKey, &a.LegalKey); err != nil {
			return nil, eris.Wrap(err, "postgres: scan cuenta")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate cuentas")
	}
	return out, nil
}
