package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/wellswap/valuation-engine/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sqlDB}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS valuations (
	id         TEXT PRIMARY KEY,
	company    TEXT NOT NULL,
	product    TEXT NOT NULL,
	request    TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_valuations_company ON valuations(company);
CREATE INDEX IF NOT EXISTS idx_valuations_product ON valuations(product);
CREATE INDEX IF NOT EXISTS idx_valuations_created_at ON valuations(created_at DESC);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveValuation(ctx context.Context, req model.ValuationRequest, res model.ValuationResult) (*model.ValuationRecord, error) {
	record := model.ValuationRecord{
		ID:        uuid.New().String(),
		Company:   req.Policy.Company,
		Product:   req.Policy.ProductType,
		Request:   req,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal request")
	}
	resJSON, err := json.Marshal(res)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO valuations (id, company, product, request, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Company, record.Product, string(reqJSON), string(resJSON), record.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert valuation")
	}
	return &record, nil
}

func (s *SQLiteStore) GetValuation(ctx context.Context, id string) (*model.ValuationRecord, error) {
	var r model.ValuationRecord
	var reqJSON, resJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, company, product, request, result, created_at FROM valuations WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Company, &r.Product, &reqJSON, &resJSON, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get valuation %s", id)
	}

	if err := json.Unmarshal([]byte(reqJSON), &r.Request); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal request")
	}
	if err := json.Unmarshal([]byte(resJSON), &r.Result); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal result")
	}
	return &r, nil
}

// ImportValuations bulk-loads already-built records in one transaction,
// preserving their IDs and timestamps.
func (s *SQLiteStore) ImportValuations(ctx context.Context, records []model.ValuationRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO valuations (id, company, product, request, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close()

	var imported int64
	for _, r := range records {
		reqJSON, err := json.Marshal(r.Request)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal request %s", r.ID)
		}
		resJSON, err := json.Marshal(r.Result)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal result %s", r.ID)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Company, r.Product, string(reqJSON), string(resJSON), r.CreatedAt); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import valuation %s", r.ID)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return imported, nil
}

func (s *SQLiteStore) ListValuations(ctx context.Context, filter ValuationFilter) ([]model.ValuationRecord, error) {
	query := `SELECT id, company, product, request, result, created_at FROM valuations WHERE 1=1`
	args := []any{}

	if filter.Company != "" {
		query += ` AND company = ?`
		args = append(args, filter.Company)
	}
	if filter.Product != "" {
		query += ` AND product = ?`
		args = append(args, filter.Product)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list valuations")
	}
	defer rows.Close()

	var records []model.ValuationRecord
	for rows.Next() {
		var r model.ValuationRecord
		var reqJSON, resJSON string

		if err := rows.Scan(&r.ID, &r.Company, &r.Product, &reqJSON, &resJSON, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan valuation")
		}
		if err := json.Unmarshal([]byte(reqJSON), &r.Request); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal request")
		}
		if err := json.Unmarshal([]byte(resJSON), &r.Result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list valuations iterate")
}
