package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

const (
	relayBuffer  = 256
	relayTimeout = 2 * time.Second
)

// envelope is the message published on EventsChannel.
type envelope struct {
	Instance string      `json:"instance"`
	Event    store.Event `json:"event"`
}

// Relay forwards store events to Redis from a background goroutine so the
// synchronous store callback never waits on the network.
type Relay struct {
	rdb      cmdable
	store    *store.Store
	instance string
	events   chan store.Event
}

// NewRelay returns a relay for st. instance tags outgoing messages.
func NewRelay(rdb cmdable, st *store.Store, instance string) *Relay {
	return &Relay{
		rdb:      rdb,
		store:    st,
		instance: instance,
		events:   make(chan store.Event, relayBuffer),
	}
}

// HandleEvent queues e for relaying. It drops the event when the buffer is full.
func (r *Relay) HandleEvent(e store.Event) {
	select {
	case r.events <- e:
	default:
		utils.LogWarn(nil, "Redis relay buffer full, dropping event", map[string]interface{}{"kind": string(e.Kind)})
	}
}

// Run drains queued events until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-r.events:
			opCtx, cancel := context.WithTimeout(ctx, relayTimeout)
			if err := r.relay(opCtx, e); err != nil {
				utils.LogDebug("Redis relay failed", map[string]interface{}{"kind": string(e.Kind), "error": err.Error()})
			}
			cancel()
		}
	}
}

func (r *Relay) relay(ctx context.Context, e store.Event) error {
	if err := r.syncHistory(ctx, e); err != nil {
		return err
	}

	payload, err := json.Marshal(envelope{Instance: r.instance, Event: e})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return r.rdb.Publish(ctx, EventsChannel, payload).Err()
}

// syncHistory keeps HistoryKey in step with local history writes. Merged
// records came from Redis already and are not written back.
func (r *Relay) syncHistory(ctx context.Context, e store.Event) error {
	switch e.Kind {
	case store.EventOrderHistoryAdded, store.EventOrderHistoryUpdated:
		rec, err := r.store.OrderHistoryRecord(e.RecordID)
		if err != nil {
			// deleted again before the relay caught up
			return nil
		}
		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal history record: %w", err)
		}
		return r.rdb.HSet(ctx, HistoryKey, rec.ID, body).Err()
	case store.EventOrderHistoryDeleted:
		return r.rdb.HDel(ctx, HistoryKey, e.RecordID).Err()
	}
	return nil
}
