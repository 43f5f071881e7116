// Package seats кэширует списки доступных мест в Redis.
// Кэш только для листингов: проверка выбора места и создание бронирования всегда читают БД.
package seats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

const (
	keyPrefix = "seats"
	scanCount = 100
)

// Cache кэш доступных мест
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш поверх клиента Redis
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// ListingKey ключ листинга мест плана на период
func ListingKey(libraryID, planID int64, dateRange domain.DateRange) string {
	return fmt.Sprintf("%s:%d:%d:%d:%d", keyPrefix, libraryID, planID,
		dateRange.From.Unix(), dateRange.To.Unix())
}

func libraryPattern(libraryID int64) string {
	return fmt.Sprintf("%s:%d:*", keyPrefix, libraryID)
}

// Get возвращает закэшированный листинг. found=false, если ключа нет.
// Nil кэш (Redis выключен) всегда отвечает промахом.
func (c *Cache) Get(ctx context.Context, key string) ([]*domain.Seat, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get key=%s: %v", ErrRedis, key, err)
	}

	var seats []*domain.Seat
	if err := json.Unmarshal(raw, &seats); err != nil {
		return nil, false, fmt.Errorf("%w: Get key=%s: %v", ErrUnmarshal, key, err)
	}

	return seats, true, nil
}

// Set сохраняет листинг с TTL из конфигурации
func (c *Cache) Set(ctx context.Context, key string, seats []*domain.Seat) error {
	if c == nil {
		return nil
	}
	if seats == nil {
		seats = []*domain.Seat{}
	}

	raw, err := json.Marshal(seats)
	if err != nil {
		return fmt.Errorf("%w: Set key=%s: %v", ErrMarshal, key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set key=%s: %v", ErrRedis, key, err)
	}

	return nil
}

// InvalidateLibrary удаляет все листинги библиотеки.
// Вызывается после зафиксированного бронирования или отмены.
func (c *Cache) InvalidateLibrary(ctx context.Context, libraryID int64) error {
	if c == nil {
		return nil
	}

	pattern := libraryPattern(libraryID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return fmt.Errorf("%w: InvalidateLibrary scan %s: %v", ErrRedis, pattern, err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: InvalidateLibrary del %s: %v", ErrRedis, pattern, err)
			}
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}
