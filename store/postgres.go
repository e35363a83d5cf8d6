package store

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

// PostgresBackend stores slots in the records table created by condb.Migrate.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

func (p *PostgresBackend) Get(ctx context.Context, owner, key string) ([]byte, error) {
	var value string
	err := p.pool.QueryRow(ctx,
		`SELECT value::text FROM records WHERE owner = $1 AND key = $2`,
		owner, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select record %s/%s", owner, key)
	}
	return []byte(value), nil
}

func (p *PostgresBackend) Put(ctx context.Context, owner, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO records (owner, key, value, updated_at)
		 VALUES ($1, $2, $3::jsonb, NOW())
		 ON CONFLICT (owner, key) DO UPDATE
		 SET value = EXCLUDED.value, updated_at = NOW()`,
		owner, key, string(value),
	)
	if err != nil {
		return errors.Wrapf(err, "upsert record %s/%s", owner, key)
	}
	return nil
}

func (p *PostgresBackend) Delete(ctx context.Context, owner, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM records WHERE owner = $1 AND key = $2`, owner, key)
	if err != nil {
		return errors.Wrapf(err, "delete record %s/%s", owner, key)
	}
	return nil
}

func (p *PostgresBackend) Owners(ctx context.Context, key string) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT owner FROM records WHERE key = $1 ORDER BY owner`, key)
	if err != nil {
		return nil, errors.Wrapf(err, "list owners of %s", key)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, errors.Wrap(err, "scan owner")
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}
