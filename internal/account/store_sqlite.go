package account

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite. It serves local
// development and the CLI commands; the serving deployment uses Postgres.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS cuentas (
	id              TEXT PRIMARY KEY,
	seq             INTEGER,
	ejecutivo       TEXT NOT NULL DEFAULT '',
	nombre_fantasia TEXT NOT NULL DEFAULT '',
	razon_social    TEXT NOT NULL DEFAULT '',
	nf_key          TEXT NOT NULL DEFAULT '',
	rs_key          TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS cuentas_nf_key_idx ON cuentas (nf_key);
CREATE INDEX IF NOT EXISTS cuentas_rs_key_idx ON cuentas (rs_key);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

const sqliteSelect = `SELECT id, ejecutivo, nombre_fantasia, razon_social, nf_key, rs_key FROM cuentas `

func (s *SQLiteStore) FindExact(ctx context.Context, key string) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx,
		sqliteSelect+`WHERE nf_key = ?1 OR rs_key = ?1 ORDER BY seq`, key)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: find exact")
	}
	defer rows.Close()
	return scanSQLAccounts(rows)
}

func (s *SQLiteStore) FindContaining(ctx context.Context, key string) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx,
		sqliteSelect+`WHERE instr(nf_key, ?1) > 0 OR instr(rs_key, ?1) > 0 ORDER BY seq`, key)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: find containing")
	}
	defer rows.Close()
	return scanSQLAccounts(rows)
}

func (s *SQLiteStore) ReplaceAll(ctx context.Context, accounts []Account) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin replace")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM cuentas`); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear cuentas")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cuentas
(id, seq, ejecutivo, nombre_fantasia, razon_social, nf_key, rs_key)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	n := 0
	for _, a := range accounts {
		if a.TradeName == "" && a.LegalName == "" {
			continue
		}
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		n++
		if _, err := stmt.ExecContext(ctx, id, n, a.Executive, a.TradeName, a.LegalName, a.TradeKey, a.LegalKey); err != nil {
			return 0, eris.Wrap(err, "sqlite: insert cuenta")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit replace")
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanSQLAccounts(rows *sql.Rows) ([]Account, error) {
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Executive, &a.TradeName, &a.LegalName, &a.TradeKey, &a.LegalKey); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan cuenta")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate cuentas")
	}
	return out, nil
}
