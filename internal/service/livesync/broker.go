package livesync

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Broker delivers change signals for collection keys. A signal carries no
// payload; subscribers re-fetch the whole collection on every signal.
type Broker interface {
	Publish(ctx context.Context, key string) error
	Subscribe(ctx context.Context, key string) (<-chan struct{}, func(), error)
}

// Collection keys. Writes publish the keys of every collection they touch.
const (
	KeyLeads = "leads"
	KeyUsers = "users"
)

func KeyComments(leadID string) string { return "comments:" + leadID }

func KeyStatusHistory(leadID string) string { return "statusHistory:" + leadID }

func KeyNotifications(userID string) string { return "notifications:" + userID }

// MemoryBroker is an in-process broker for single-instance deployments and
// tests. Slow subscribers drop signals rather than block publishers; a
// dropped signal is harmless because the next one triggers the same full
// re-fetch.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string]map[chan struct{}]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[chan struct{}]struct{})}
}

func (b *MemoryBroker) Publish(ctx context.Context, key string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[key] {
		select {
		case ch <- struct{}{}:
		default: // drop if slow
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, key string) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 16)
	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[chan struct{}]struct{})
	}
	b.subs[key][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if subs, ok := b.subs[key]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, key)
			}
		}
		b.mu.Unlock()
		close(ch)
	}
	return ch, cancel, nil
}

// RedisBroker fans signals out across instances via Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, key string) error {
	return b.client.Publish(ctx, channelName(key), "1").Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, key string) (<-chan struct{}, func(), error) {
	sub := b.client.Subscribe(ctx, channelName(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	ch := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(ch)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default: // drop if slow
				}
			}
		}
	}()

	cancel := func() {
		close(done)
		_ = sub.Close()
	}
	return ch, cancel, nil
}

func channelName(key string) string {
	return "livesync:" + key
}
