package fieldcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
)

const keyPrefix = "fieldbooking:field:"

// Cache read-through кэш конфигурации полей в Redis.
// Кэшируется только конфигурация поля, состояние слотов и бронирований никогда.
// Redis не обязателен: при его ошибках запрос уходит в источник.
type Cache struct {
	rdb    RedisClient
	source FieldSource
	ttl    time.Duration
	log    Logger
}

func New(rdb RedisClient, source FieldSource, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		log:    log,
	}
}

// GetField возвращает поле из кэша, при промахе - из источника с записью в кэш
func (c *Cache) GetField(ctx context.Context, fieldID int64) (*domain.Field, error) {
	key := cacheKey(fieldID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached fieldservice.Field
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.ToDomain(), nil
		}
		c.log.Warn("fieldcache: corrupted entry %s, refetching", key)
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.log.Warn("fieldcache: redis get %s failed: %v", key, err)
	}

	field, err := c.source.GetField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(fieldservice.FromDomain(field))
	if err != nil {
		c.log.Warn("fieldcache: marshal field=%d: %v", fieldID, err)
		return field, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("fieldcache: redis set %s failed: %v", key, err)
	}

	return field, nil
}

// Invalidate удаляет поле из кэша
func (c *Cache) Invalidate(ctx context.Context, fieldID int64) error {
	if err := c.rdb.Del(ctx, cacheKey(fieldID)).Err(); err != nil {
		return fmt.Errorf("%w: field=%d: %v", ErrInvalidate, fieldID, err)
	}
	return nil
}

func cacheKey(fieldID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, fieldID)
}
