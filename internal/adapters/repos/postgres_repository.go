package repos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type (
	// PoolOps defines the subset of pgxpool.Pool the repository needs.
	// This allows injecting pgxmock in tests.
	PoolOps interface {
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Begin(ctx context.Context) (pgx.Tx, error)
		Ping(ctx context.Context) error
	}

	// PostgresRepository stores every device as a row holding its encoded record.
	PostgresRepository struct {
		pool     PoolOps
		scanner  Scanner
		observer RecordObserver
		logger   logger.Logger
	}
)

func NewPostgresRepository(
	pool PoolOps,
	scanner Scanner,
	observer RecordObserver,
	log logger.Logger,
) *PostgresRepository {
	return &PostgresRepository{
		pool:     pool,
		scanner:  scanner,
		observer: observerOrNop(observer),
		logger:   log,
	}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createDevicesTable); err != nil {
		return fmt.Errorf("%w: creating devices table: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *PostgresRepository) LoadAll(ctx context.Context) ([]model.Device, error) {
	query, args, err := selectRecords(psql).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []recordRow
	if err := r.scanner.ScanAll(&records, rows); err != nil {
		return nil, fmt.Errorf("%w: scanning devices: %w", model.ErrStoreUnavailable, err)
	}

	return decodeRows(ctx, records, r.observer), nil
}

func (r *PostgresRepository) SaveAll(ctx context.Context, devices []model.Device) error {
	deleteQuery, deleteArgs, err := psql.Delete(devicesTable).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	var (
		insertQuery string
		insertArgs  []any
	)

	if insert := insertRecords(psql, toRows(devices)); insert != nil {
		insertQuery, insertArgs, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert query: %w", err)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", model.ErrStoreUnavailable, err)
	}

	if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		r.rollback(ctx, tx)

		return fmt.Errorf("%w: clearing devices: %w", model.ErrStoreUnavailable, err)
	}

	if insertQuery != "" {
		if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
			r.rollback(ctx, tx)

			return fmt.Errorf("%w: inserting devices: %w", model.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: committing devices: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to roll back devices transaction")
	}
}
