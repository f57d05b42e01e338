package services

import (
	"context"
	"sync"

	"restaurant_pos_backend/internal/models"
)

// ConfirmationCache stores confirmation results by idempotency key.
type ConfirmationCache interface {
	Get(ctx context.Context, tableID, key string) (*models.TableOrder, bool, error)
	Put(ctx context.Context, tableID, key string, order *models.TableOrder) error
}

const memoryCacheLimit = 1024

type memoryConfirmationCache struct {
	mu      sync.Mutex
	entries map[string]models.TableOrder
	order   []string
}

// NewMemoryConfirmationCache keeps the most recent results in process.
func NewMemoryConfirmationCache() ConfirmationCache {
	return &memoryConfirmationCache{entries: make(map[string]models.TableOrder)}
}

func (c *memoryConfirmationCache) Get(_ context.Context, tableID, key string) (*models.TableOrder, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.entries[tableID+"\x00"+key]
	if !ok {
		return nil, false, nil
	}
	return &order, true, nil
}

func (c *memoryConfirmationCache) Put(_ context.Context, tableID, key string, order *models.TableOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := tableID + "\x00" + key
	if _, exists := c.entries[k]; !exists {
		c.order = append(c.order, k)
		if len(c.order) > memoryCacheLimit {
			delete(c.entries, c.order[0])
			c.order = c.order[1:]
		}
	}
	c.entries[k] = *order
	return nil
}
