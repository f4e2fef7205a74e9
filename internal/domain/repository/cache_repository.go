package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; (nil, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix удаляет все ключи с указанным префиксом;
	// используется для инвалидации кеша таксономии при мутациях.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
