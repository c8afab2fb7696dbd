package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore хранит коллекции в таблице kv_collections (PostgreSQL или SQLite).
// Запросы пишутся с плейсхолдерами ? и приводятся к диалекту через Rebind.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var row struct {
		Value   string `db:"value"`
		Version int64  `db:"version"`
	}
	query := s.db.Rebind(`SELECT value, version FROM kv_collections WHERE collection_key = ?`)
	if err := s.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("kvstore: не удалось прочитать %s: %w", key, err)
	}
	return []byte(row.Value), row.Version, nil
}

func (s *SQLStore) CompareAndSwap(ctx context.Context, key string, expected int64, value []byte) (int64, error) {
	now := time.Now().UTC()
	next := expected + 1

	var (
		res sql.Result
		err error
	)
	if expected == 0 {
		query := s.db.Rebind(`INSERT INTO kv_collections (collection_key, value, version, updated_at)
			VALUES (?, ?, ?, ?) ON CONFLICT (collection_key) DO NOTHING`)
		res, err = s.db.ExecContext(ctx, query, key, string(value), next, now)
	} else {
		query := s.db.Rebind(`UPDATE kv_collections SET value = ?, version = ?, updated_at = ?
			WHERE collection_key = ? AND version = ?`)
		res, err = s.db.ExecContext(ctx, query, string(value), next, now, key, expected)
	}
	if err != nil {
		return 0, fmt.Errorf("kvstore: не удалось записать %s: %w", key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("kvstore: не удалось проверить запись %s: %w", key, err)
	}
	if affected == 0 {
		return 0, ErrVersionConflict
	}
	return next, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
