package livesync

import (
	"context"
	"sync"
	"time"

	"leadhub/internal/domain"
	"leadhub/internal/service/leadfilter"
	"leadhub/internal/service/mention"
)

type Scope int

const (
	ScopePage Scope = iota
	ScopeModal
)

// FilterDebounce is how long filter input settles before the visible list
// recomputes. A new filter change cancels the pending recomputation.
const FilterDebounce = 300 * time.Millisecond

// Subscription pairs a collection key with its fetch/render functions for
// Session scope management.
type Subscription struct {
	Key    string
	Fetch  Fetch
	Render Render
}

// Session is one client's live-sync context. It owns the subscription
// handles per scope and the derived view state (lead cache, user
// directory, active filters, edit snapshot, pending mentions). Page
// subscriptions are torn down wholesale on navigation; modal
// subscriptions are torn down when the modal closes without disturbing
// the page underneath.
type Session struct {
	hub *Hub

	mu      sync.Mutex
	handles map[Scope]map[string]*Handle
	closed  bool

	leads   []domain.Lead
	users   []domain.User
	filters domain.LeadFilters
	visible []domain.Lead

	editSnapshot map[string]any
	mentions     *mention.Autocomplete

	debounce *time.Timer
}

func NewSession(hub *Hub) *Session {
	return &Session{
		hub: hub,
		handles: map[Scope]map[string]*Handle{
			ScopePage:  {},
			ScopeModal: {},
		},
		mentions: mention.New(nil),
	}
}

// Subscribe establishes a live subscription in the given scope. An
// existing subscription for the same (scope, key) is cancelled first, so
// a collection never has two live handles in one scope.
func (s *Session) Subscribe(ctx context.Context, scope Scope, sub Subscription) error {
	handle, err := s.hub.Subscribe(ctx, sub.Key, sub.Fetch, sub.Render)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		handle.Cancel()
		return nil
	}
	if prev, ok := s.handles[scope][sub.Key]; ok {
		prev.Cancel()
	}
	s.handles[scope][sub.Key] = handle
	s.mu.Unlock()
	return nil
}

// SwitchPage tears down every page-scope subscription, then establishes
// the new page's set. Modal subscriptions are unaffected.
func (s *Session) SwitchPage(ctx context.Context, subs []Subscription) error {
	s.teardown(ScopePage)
	for _, sub := range subs {
		if err := s.Subscribe(ctx, ScopePage, sub); err != nil {
			return err
		}
	}
	return nil
}

// OpenModal establishes the modal's subscriptions after clearing any
// previous modal state, including a stale edit snapshot.
func (s *Session) OpenModal(ctx context.Context, subs []Subscription) error {
	s.CloseModal()
	for _, sub := range subs {
		if err := s.Subscribe(ctx, ScopeModal, sub); err != nil {
			return err
		}
	}
	return nil
}

// CloseModal tears down modal-scope subscriptions and drops the edit
// snapshot and the mention composer state.
func (s *Session) CloseModal() {
	s.teardown(ScopeModal)

	s.mu.Lock()
	s.editSnapshot = nil
	s.mu.Unlock()
	s.mentions.Escape()
}

// Close tears down everything. Called on logout or disconnect.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()

	s.teardown(ScopePage)
	s.teardown(ScopeModal)
}

func (s *Session) teardown(scope Scope) {
	s.mu.Lock()
	handles := s.handles[scope]
	s.handles[scope] = map[string]*Handle{}
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

// HandleCount reports the number of live subscriptions in a scope.
func (s *Session) HandleCount(scope Scope) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles[scope])
}

// SetLeads replaces the lead cache and recomputes the visible list
// immediately. Used as the render target for the leads subscription.
func (s *Session) SetLeads(leads []domain.Lead) {
	s.mu.Lock()
	s.leads = leads
	s.visible = leadfilter.Apply(s.leads, s.filters)
	s.mu.Unlock()
}

// SetUsers replaces the user directory and the mention composer's
// candidate source.
func (s *Session) SetUsers(users []domain.User) {
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	s.mentions.SetDirectory(users)
}

// SetFilters stores the new filter set and schedules the visible-list
// recomputation after the debounce window. A pending recomputation is
// cancelled, so only the final filter state of a typing burst runs.
func (s *Session) SetFilters(filters domain.LeadFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = filters
	if s.debounce != nil {
		s.debounce.Stop()
	}
	if s.closed {
		return
	}
	s.debounce = time.AfterFunc(FilterDebounce, func() {
		s.mu.Lock()
		s.visible = leadfilter.Apply(s.leads, s.filters)
		s.mu.Unlock()
	})
}

// Visible returns the current filtered lead list.
func (s *Session) Visible() []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Users returns the cached user directory.
func (s *Session) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

// BeginEdit stores the pre-edit snapshot used for change tracking when
// the edit is saved.
func (s *Session) BeginEdit(snapshot map[string]any) {
	s.mu.Lock()
	s.editSnapshot = snapshot
	s.mu.Unlock()
}

// EditSnapshot returns the stored snapshot, or nil when no edit is open.
func (s *Session) EditSnapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editSnapshot
}

// Mentions exposes the session's mention composer.
func (s *Session) Mentions() *mention.Autocomplete {
	return s.mentions
}
