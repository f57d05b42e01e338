package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/pkg/utils"
)

// RedisHistorySource reads the shared order history hash.
type RedisHistorySource struct {
	rdb cmdable
}

func NewRedisHistorySource(rdb cmdable) *RedisHistorySource {
	return &RedisHistorySource{rdb: rdb}
}

// Snapshot returns every record in the hash. Entries that fail to decode are skipped.
func (s *RedisHistorySource) Snapshot(ctx context.Context) ([]models.OrderHistoryRecord, error) {
	raw, err := s.rdb.HGetAll(ctx, HistoryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read order history snapshot: %w", err)
	}

	records := make([]models.OrderHistoryRecord, 0, len(raw))
	for id, body := range raw {
		var rec models.OrderHistoryRecord
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			utils.LogDebug("Skipping undecodable history entry", map[string]interface{}{"id": id, "error": err.Error()})
			continue
		}
		if rec.ID == "" {
			rec.ID = id
		}
		records = append(records, rec)
	}
	return records, nil
}
