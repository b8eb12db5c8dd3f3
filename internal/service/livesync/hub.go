package livesync

import (
	"context"
	"log"
	"sync"
)

// Fetch loads the entire materialized collection. Subscriptions never
// receive deltas; every change signal triggers a full re-fetch.
type Fetch func(ctx context.Context) (any, error)

// Render receives the freshly fetched collection.
type Render func(v any)

// Handle is a live subscription. Cancel is idempotent.
type Handle struct {
	Key    string
	cancel func()
	once   sync.Once
}

func (h *Handle) Cancel() {
	h.once.Do(h.cancel)
}

// Hub attaches fetch/render pairs to broker keys.
type Hub struct {
	broker Broker
}

func NewHub(broker Broker) *Hub {
	return &Hub{broker: broker}
}

// Subscribe renders the current collection immediately, then re-fetches
// and re-renders on every change signal until the handle is cancelled or
// the context ends. Fetch errors are logged and leave the last rendered
// state untouched.
func (h *Hub) Subscribe(ctx context.Context, key string, fetch Fetch, render Render) (*Handle, error) {
	signals, cancelSub, err := h.broker.Subscribe(ctx, key)
	if err != nil {
		return nil, err
	}

	refresh := func() {
		v, err := fetch(ctx)
		if err != nil {
			log.Printf("livesync: fetch %s failed: %v", key, err)
			return
		}
		render(v)
	}
	refresh()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				refresh()
			}
		}
	}()

	return &Handle{Key: key, cancel: func() {
		close(done)
		cancelSub()
	}}, nil
}
