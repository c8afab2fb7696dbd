// Package kvstore хранит значения по строковым ключам с номером версии для оптимистичной блокировки.
package kvstore

import (
	"context"
	"errors"
)

// ErrVersionConflict возвращается, когда запись изменилась между чтением и CompareAndSwap.
var ErrVersionConflict = errors.New("kvstore: конфликт версий")

// Store — персистентное хранилище строковых ключей.
// Отсутствующий ключ читается как (nil, 0, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, int64, error)
	// CompareAndSwap записывает value, если текущая версия равна expected, и возвращает новую версию.
	CompareAndSwap(ctx context.Context, key string, expected int64, value []byte) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
