package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/wellswap/valuation-engine/internal/db"
	"github.com/wellswap/valuation-engine/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_valuation": `INSERT INTO valuations (id, company, product, request, result, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"get_valuation":    `SELECT id, company, product, request, result, created_at FROM valuations WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
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
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS valuations (
	id         TEXT PRIMARY KEY,
	company    TEXT NOT NULL,
	product    TEXT NOT NULL,
	request    JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_valuations_company ON valuations(company);
CREATE INDEX IF NOT EXISTS idx_valuations_product ON valuations(product);
CREATE INDEX IF NOT EXISTS idx_valuations_created_at ON valuations(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveValuation(ctx context.Context, req model.ValuationRequest, res model.ValuationResult) (*model.ValuationRecord, error) {
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
		return nil, eris.Wrap(err, "postgres: marshal request")
	}
	resJSON, err := json.Marshal(res)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO valuations (id, company, product, request, result, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.Company, record.Product, reqJSON, resJSON, record.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert valuation")
	}
	return &record, nil
}

func (s *PostgresStore) GetValuation(ctx context.Context, id string) (*model.ValuationRecord, error) {
	var r model.ValuationRecord
	var reqJSON, resJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, company, product, request, result, created_at FROM valuations WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Company, &r.Product, &reqJSON, &resJSON, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get valuation %s", id)
	}

	if err := json.Unmarshal(reqJSON, &r.Request); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal request")
	}
	if err := json.Unmarshal(resJSON, &r.Result); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal result")
	}
	return &r, nil
}

func (s *PostgresStore) ListValuations(ctx context.Context, filter ValuationFilter) ([]model.ValuationRecord, error) {
	query := `SELECT id, company, product, request, result, created_at FROM valuations WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Company != "" {
		query += fmt.Sprintf(` AND company = $%d`, argIdx)
		args = append(args, filter.Company)
		argIdx++
	}
	if filter.Product != "" {
		query += fmt.Sprintf(` AND product = $%d`, argIdx)
		args = append(args, filter.Product)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list valuations")
	}
	defer rows.Close()

	var records []model.ValuationRecord
	for rows.Next() {
		var r model.ValuationRecord
		var reqJSON, resJSON []byte

		if err := rows.Scan(&r.ID, &r.Company, &r.Product, &reqJSON, &resJSON, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan valuation")
		}
		if err := json.Unmarshal(reqJSON, &r.Request); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal request")
		}
		if err := json.Unmarshal(resJSON, &r.Result); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list valuations iterate")
}

// ImportValuations bulk-loads already-built records, preserving their IDs and
// timestamps. Used for migrating history between environments.
func (s *PostgresStore) ImportValuations(ctx context.Context, records []model.ValuationRecord) (int64, error) {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		reqJSON, err := json.Marshal(r.Request)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal request %s", r.ID)
		}
		resJSON, err := json.Marshal(r.Result)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal result %s", r.ID)
		}
		rows = append(rows, []any{r.ID, r.Company, r.Product, reqJSON, resJSON, r.CreatedAt})
	}

	return db.CopyFrom(ctx, s.pool, "valuations",
		[]string{"id", "company", "product", "request", "result", "created_at"}, rows)
}
