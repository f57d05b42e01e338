package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant_pos_backend/internal/models"
)

// ConfirmationCache remembers confirmation results by idempotency key in Redis
// so a retried request is answered the same way on any instance.
type ConfirmationCache struct {
	rdb cmdable
	ttl time.Duration
}

func NewConfirmationCache(rdb cmdable, ttl time.Duration) *ConfirmationCache {
	return &ConfirmationCache{rdb: rdb, ttl: ttl}
}

func confirmationKey(tableID, key string) string {
	return fmt.Sprintf("%s:%s:%s", confirmationSpace, tableID, key)
}

// Get returns the stored result for (tableID, key), if any.
func (c *ConfirmationCache) Get(ctx context.Context, tableID, key string) (*models.TableOrder, bool, error) {
	body, err := c.rdb.Get(ctx, confirmationKey(tableID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read confirmation %s: %w", key, err)
	}
	var order models.TableOrder
	if err := json.Unmarshal([]byte(body), &order); err != nil {
		return nil, false, fmt.Errorf("decode confirmation %s: %w", key, err)
	}
	return &order, true, nil
}

// Put stores the result for (tableID, key).
func (c *ConfirmationCache) Put(ctx context.Context, tableID, key string, order *models.TableOrder) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode confirmation %s: %w", key, err)
	}
	return c.rdb.Set(ctx, confirmationKey(tableID, key), body, c.ttl).Err()
}
