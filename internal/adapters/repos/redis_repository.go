package repos

import (
	"context"
	"fmt"

	"github.com/architeacher/inventory/internal/codec"
	"github.com/architeacher/inventory/internal/domain/model"
)

// DefaultRedisKey holds the inventory list when no key is configured.
const DefaultRedisKey = "inventory:v1:records"

type (
	// ListStore is the list-shaped subset of a KeyDB client the repository needs.
	ListStore interface {
		ReplaceList(ctx context.Context, key string, values []string) error
		ListRange(ctx context.Context, key string) ([]string, error)
		Ping(ctx context.Context) error
	}

	// RedisRepository stores the inventory as a single ordered list of encoded records.
	RedisRepository struct {
		store    ListStore
		key      string
		observer RecordObserver
	}
)

func NewRedisRepository(store ListStore, key string, observer RecordObserver) *RedisRepository {
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisRepository{
		store:    store,
		key:      key,
		observer: observerOrNop(observer),
	}
}

func (r *RedisRepository) LoadAll(ctx context.Context) ([]model.Device, error) {
	records, err := r.store.ListRange(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}

	return decodeRecords(ctx, records, r.observer), nil
}

func (r *RedisRepository) SaveAll(ctx context.Context, devices []model.Device) error {
	if err := r.store.ReplaceList(ctx, r.key, codec.EncodeAll(devices)); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
