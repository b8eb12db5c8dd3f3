package livesync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadhub/internal/domain"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestMemoryBrokerSignalsSubscribers(t *testing.T) {
	broker := NewMemoryBroker()
	ctx := context.Background()

	ch, cancel, err := broker.Subscribe(ctx, KeyLeads)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, broker.Publish(ctx, KeyLeads))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal received")
	}
}

func TestMemoryBrokerCancelStopsDelivery(t *testing.T) {
	broker := NewMemoryBroker()
	ctx := context.Background()

	ch, cancel, err := broker.Subscribe(ctx, KeyLeads)
	require.NoError(t, err)
	cancel()

	// Publishing after cancel must not panic and the channel is closed.
	require.NoError(t, broker.Publish(ctx, KeyLeads))
	_, open := <-ch
	assert.False(t, open)
}

func TestHubRendersInitiallyAndOnSignal(t *testing.T) {
	broker := NewMemoryBroker()
	hub := NewHub(broker)
	ctx := context.Background()

	var fetches atomic.Int32
	var rendered atomic.Int32
	handle, err := hub.Subscribe(ctx, KeyLeads,
		func(ctx context.Context) (any, error) {
			return int(fetches.Add(1)), nil
		},
		func(v any) {
			rendered.Store(int32(v.(int)))
		},
	)
	require.NoError(t, err)
	defer handle.Cancel()

	assert.Equal(t, int32(1), rendered.Load())

	require.NoError(t, broker.Publish(ctx, KeyLeads))
	waitFor(t, func() bool { return rendered.Load() == 2 })
}

func TestHubFetchErrorKeepsLastRender(t *testing.T) {
	broker := NewMemoryBroker()
	hub := NewHub(broker)
	ctx := context.Background()

	var calls atomic.Int32
	var rendered atomic.Int32
	handle, err := hub.Subscribe(ctx, KeyLeads,
		func(ctx context.Context) (any, error) {
			if calls.Add(1) > 1 {
				return nil, context.DeadlineExceeded
			}
			return 42, nil
		},
		func(v any) { rendered.Store(int32(v.(int))) },
	)
	require.NoError(t, err)
	defer handle.Cancel()

	require.NoError(t, broker.Publish(ctx, KeyLeads))
	waitFor(t, func() bool { return calls.Load() >= 2 })

	assert.Equal(t, int32(42), rendered.Load())
}

func sessionSub(key string, counter *atomic.Int32) Subscription {
	return Subscription{
		Key:    key,
		Fetch:  func(ctx context.Context) (any, error) { return nil, nil },
		Render: func(v any) { counter.Add(1) },
	}
}

func TestSwitchPageTearsDownPreviousPageOnly(t *testing.T) {
	hub := NewHub(NewMemoryBroker())
	session := NewSession(hub)
	defer session.Close()
	ctx := context.Background()

	var renders atomic.Int32
	require.NoError(t, session.SwitchPage(ctx, []Subscription{
		sessionSub(KeyLeads, &renders),
		sessionSub(KeyUsers, &renders),
	}))
	require.NoError(t, session.OpenModal(ctx, []Subscription{
		sessionSub(KeyComments("lead-1"), &renders),
	}))

	assert.Equal(t, 2, session.HandleCount(ScopePage))
	assert.Equal(t, 1, session.HandleCount(ScopeModal))

	require.NoError(t, session.SwitchPage(ctx, []Subscription{
		sessionSub(KeyNotifications("user-1"), &renders),
	}))

	assert.Equal(t, 1, session.HandleCount(ScopePage))
	assert.Equal(t, 1, session.HandleCount(ScopeModal))
}

func TestCloseModalLeavesPageSubscriptions(t *testing.T) {
	hub := NewHub(NewMemoryBroker())
	session := NewSession(hub)
	defer session.Close()
	ctx := context.Background()

	var renders atomic.Int32
	require.NoError(t, session.SwitchPage(ctx, []Subscription{sessionSub(KeyLeads, &renders)}))
	require.NoError(t, session.OpenModal(ctx, []Subscription{sessionSub(KeyComments("lead-1"), &renders)}))
	session.BeginEdit(map[string]any{"companyName": "Acme"})

	session.CloseModal()

	assert.Equal(t, 1, session.HandleCount(ScopePage))
	assert.Equal(t, 0, session.HandleCount(ScopeModal))
	assert.Nil(t, session.EditSnapshot())
}

func TestSubscribeReplacesHandleForSameKey(t *testing.T) {
	hub := NewHub(NewMemoryBroker())
	session := NewSession(hub)
	defer session.Close()
	ctx := context.Background()

	var renders atomic.Int32
	require.NoError(t, session.Subscribe(ctx, ScopePage, sessionSub(KeyLeads, &renders)))
	require.NoError(t, session.Subscribe(ctx, ScopePage, sessionSub(KeyLeads, &renders)))

	assert.Equal(t, 1, session.HandleCount(ScopePage))
}

func TestCloseTearsDownEverything(t *testing.T) {
	hub := NewHub(NewMemoryBroker())
	session := NewSession(hub)
	ctx := context.Background()

	var renders atomic.Int32
	require.NoError(t, session.SwitchPage(ctx, []Subscription{sessionSub(KeyLeads, &renders)}))
	require.NoError(t, session.OpenModal(ctx, []Subscription{sessionSub(KeyComments("x"), &renders)}))

	session.Close()

	assert.Equal(t, 0, session.HandleCount(ScopePage))
	assert.Equal(t, 0, session.HandleCount(ScopeModal))
}

func TestSetFiltersDebouncesRecomputation(t *testing.T) {
	session := NewSession(NewHub(NewMemoryBroker()))
	defer session.Close()

	leads := []domain.Lead{
		{ID: uuid.New(), CompanyName: "Acme", Status: "New"},
		{ID: uuid.New(), CompanyName: "Globex", Status: "Contacted"},
	}
	session.SetLeads(leads)
	assert.Len(t, session.Visible(), 2)

	// A burst of filter changes: only the last one should apply.
	session.SetFilters(domain.LeadFilters{Search: "a"})
	session.SetFilters(domain.LeadFilters{Search: "ac"})
	session.SetFilters(domain.LeadFilters{Search: "globex"})

	assert.Len(t, session.Visible(), 2, "recomputation should not run before the debounce window")

	waitFor(t, func() bool { return len(session.Visible()) == 1 })
	assert.Equal(t, "Globex", session.Visible()[0].CompanyName)
}

func TestSetLeadsRecomputesWithCurrentFilters(t *testing.T) {
	session := NewSession(NewHub(NewMemoryBroker()))
	defer session.Close()

	session.SetFilters(domain.LeadFilters{Status: "New"})
	time.Sleep(FilterDebounce + 50*time.Millisecond)

	session.SetLeads([]domain.Lead{
		{ID: uuid.New(), CompanyName: "Acme", Status: "New"},
		{ID: uuid.New(), CompanyName: "Globex", Status: "Closed"},
	})

	assert.Len(t, session.Visible(), 1)
	assert.Equal(t, "Acme", session.Visible()[0].CompanyName)
}
