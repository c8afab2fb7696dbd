package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/logger"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

// Логические ключи коллекций.
const (
	KeyResources = "resources"
	KeyRequests  = "requests"
	KeyChatRooms = "chat-rooms"
	KeyProducts  = "products"
	KeyRatings   = "ratings"
)

const defaultMaxRetries = 5

// Collection — упорядоченный список записей одного вида под одним ключом хранилища.
// Коллекция читается и пишется целиком в JSON.
type Collection[T any] struct {
	store      kvstore.Store
	key        string
	maxRetries int
}

func NewCollection[T any](store kvstore.Store, key string, maxRetries int) *Collection[T] {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Collection[T]{store: store, key: key, maxRetries: maxRetries}
}

// Read возвращает записи коллекции. Отсутствующие, нечитаемые и повреждённые данные
// дают пустой список без ошибки.
func (c *Collection[T]) Read(ctx context.Context) []T {
	records, _, err := c.read(ctx)
	if err != nil {
		logger.Component("persistence").WithFields(logrus.Fields{
			"collection": c.key,
			"error":      err.Error(),
		}).Warn("не удалось прочитать коллекцию, считаем её пустой")
		return []T{}
	}
	return records
}

// Write целиком заменяет коллекцию.
func (c *Collection[T]) Write(ctx context.Context, records []T) error {
	_, err := c.Update(ctx, func([]T) ([]T, error) {
		return records, nil
	})
	return err
}

// Update выполняет read-modify-write с проверкой версии. При параллельной записи
// fn вызывается заново на свежих данных, не более maxRetries раз.
// Если fn вернула ошибку, коллекция не меняется.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		records, version, err := c.read(ctx)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось прочитать коллекцию "+c.key)
		}

		updated, err := fn(records)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			updated = []T{}
		}

		raw, err := json.Marshal(updated)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать коллекцию "+c.key)
		}

		_, err = c.store.CompareAndSwap(ctx, c.key, version, raw)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, kvstore.ErrVersionConflict) {
			return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось сохранить коллекцию "+c.key)
		}

		logger.Component("persistence").WithFields(logrus.Fields{
			"collection": c.key,
			"attempt":    attempt + 1,
		}).Debug("конфликт версий, повторяем запись")
	}
	return nil, apperror.Wrap(apperror.ErrVersionConflict, apperror.ErrCodeConflict, "не удалось сохранить коллекцию "+c.key)
}

// read возвращает ошибку только при сбое хранилища. Повреждённые данные читаются как пустой список.
func (c *Collection[T]) read(ctx context.Context) ([]T, int64, error) {
	raw, version, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) == 0 {
		return []T{}, version, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Component("persistence").WithFields(logrus.Fields{
			"collection": c.key,
			"error":      err.Error(),
		}).Warn("коллекция повреждена, считаем её пустой")
		return []T{}, version, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, version, nil
}
