// Package syncer keeps a local store's order history in step with other
// terminals by polling a shared snapshot.
package syncer

import (
	"context"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

// DefaultInterval is used when no interval is configured.
const DefaultInterval = 5 * time.Second

// HistorySource returns the order history visible to every terminal.
type HistorySource interface {
	Snapshot(ctx context.Context) ([]models.OrderHistoryRecord, error)
}

// Poller merges newly visible history records into the store on a fixed interval.
type Poller struct {
	source   HistorySource
	store    *store.Store
	interval time.Duration
}

// NewPoller returns a poller. A nil source makes every tick a no-op.
func NewPoller(source HistorySource, st *store.Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{source: source, store: st, interval: interval}
}

// Run ticks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.source == nil {
		utils.LogDebug("History poller has no source, not starting")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	utils.LogInfo("History poller started", map[string]interface{}{"interval": p.interval.String()})
	for {
		select {
		case <-ctx.Done():
			utils.LogInfo("History poller stopped")
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs one poll and returns how many records were added. Errors are
// logged and the tick is skipped; local state is left as it was.
func (p *Poller) Tick(ctx context.Context) int {
	if p.source == nil {
		return 0
	}

	records, err := p.source.Snapshot(ctx)
	if err != nil {
		utils.LogDebug("History poll failed", map[string]interface{}{"error": err.Error()})
		return 0
	}

	added := p.store.MergeOrderHistory(records)
	if added > 0 {
		utils.LogDebug("Merged remote order history", map[string]interface{}{"added": added})
	}
	return added
}
