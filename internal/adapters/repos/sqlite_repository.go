package repos

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/georgysavva/scany/v2/sqlscan"
	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// SQLiteRepository keeps the inventory in a single table of an embedded SQLite database.
type SQLiteRepository struct {
	db       *sql.DB
	observer RecordObserver
	logger   logger.Logger
}

// OpenSQLiteRepository opens (or creates) the database at path and ensures the schema.
func OpenSQLiteRepository(
	ctx context.Context,
	path string,
	observer RecordObserver,
	log logger.Logger,
) (*SQLiteRepository, error) {
	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite %s: %w", model.ErrStoreUnavailable, path, err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY between them.
	db.SetMaxOpenConns(1)

	repo := NewSQLiteRepository(db, observer, log)

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()

		return nil, err
	}

	return repo, nil
}

func NewSQLiteRepository(db *sql.DB, observer RecordObserver, log logger.Logger) *SQLiteRepository {
	return &SQLiteRepository{
		db:       db,
		observer: observerOrNop(observer),
		logger:   log,
	}
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDevicesTable); err != nil {
		return fmt.Errorf("%w: creating devices table: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]model.Device, error) {
	query, args, err := selectRecords(sqlite).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var rows []recordRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}

	return decodeRows(ctx, rows, r.observer), nil
}

func (r *SQLiteRepository) SaveAll(ctx context.Context, devices []model.Device) error {
	deleteQuery, deleteArgs, err := sqlite.Delete(devicesTable).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", model.ErrStoreUnavailable, err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		r.rollback(tx)

		return fmt.Errorf("%w: clearing devices: %w", model.ErrStoreUnavailable, err)
	}

	if insert := insertRecords(sqlite, toRows(devices)); insert != nil {
		query, args, err := insert.ToSql()
		if err != nil {
			r.rollback(tx)

			return fmt.Errorf("failed to build insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.rollback(tx)

			return fmt.Errorf("%w: inserting devices: %w", model.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing devices: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		r.logger.Error().Err(err).Msg("failed to roll back devices transaction")
	}
}
