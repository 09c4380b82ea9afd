package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/repository"
)

const kvTable = "kv_store"

type kvRepository struct {
	db *sql.DB
}

// NewKeyValueRepository creates a new KeyValueRepository implementation
func NewKeyValueRepository(db *sql.DB) repository.KeyValueRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("getting key: %s", key)

	value, found, err := getValue(ctx, r.db, key)
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return "", false, err
	}
	if !found {
		log.Debug("key not found: %s", key)
	}
	return value, found, nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	query, args, err := sqlBuilder.Delete(kvTable).Where("key = ?", key).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("updating key: %s", key)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		current, found, err := getValue(ctx, tx, key)
		if err != nil {
			log.Error("failed to read key %s: %v", key, err)
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		if err := setValue(ctx, tx, key, next); err != nil {
			log.Error("failed to write key %s: %v", key, err)
			return err
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getValue(ctx context.Context, q queryRower, key string) (string, bool, error) {
	query, args, err := sqlBuilder.Select("value").From(kvTable).Where("key = ?", key).ToSql()
	if err != nil {
		return "", false, err
	}
	var value string
	err = q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setValue(ctx context.Context, e execer, key, value string) error {
	query, args, err := sqlBuilder.Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, query, args...)
	return err
}
