// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/n515f/nuxt-visa/lib/clock"
	"github.com/n515f/nuxt-visa/session"
	"github.com/n515f/nuxt-visa/visaapi"
)

// DefaultPollInterval is how often Run refreshes notifications when
// the config leaves the interval unset.
const DefaultPollInterval = 30 * time.Second

// PollerConfig carries the dependencies for NewPoller.
type PollerConfig struct {
	API   *visaapi.Client
	Store *session.Store
	Cache *Cache

	// Clock defaults to clock.Real(). Tests substitute a fake.
	Clock clock.Clock
	// Interval defaults to DefaultPollInterval.
	Interval time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Poller keeps a user's notification list fresh. One-shot reads go
// through Notifications; Run drives a periodic refresh loop for the
// lifetime of a context.
type Poller struct {
	api      *visaapi.Client
	store    *session.Store
	cache    *Cache
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller returns a poller over the given dependencies.
func NewPoller(config PollerConfig) *Poller {
	p := &Poller{
		api:      config.API,
		store:    config.Store,
		cache:    config.Cache,
		clock:    config.Clock,
		interval: config.Interval,
		logger:   config.Logger,
	}
	if p.clock == nil {
		p.clock = clock.Real()
	}
	if p.interval <= 0 {
		p.interval = DefaultPollInterval
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Notifications returns the current user's notifications, newest
// first, serving from the cache when nothing has invalidated it. With
// no active session it returns an empty list without a network call.
func (p *Poller) Notifications(ctx context.Context) ([]visaapi.Notification, error) {
	state := p.store.Session()
	if !state.Authenticated() {
		return nil, nil
	}
	key := NotificationsKey(state.User.ID)
	if cached, ok := p.cache.Get(key); ok {
		if notifications, ok := cached.([]visaapi.Notification); ok {
			return notifications, nil
		}
	}
	return p.refresh(ctx, key)
}

// Unread counts the notifications the server has not marked read.
func Unread(notifications []visaapi.Notification) int {
	count := 0
	for _, n := range notifications {
		if n.IsRead == 0 {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read and invalidates the cached
// list so the next read reflects it.
func (p *Poller) MarkRead(ctx context.Context, id int64) error {
	if err := p.api.MarkNotificationRead(ctx, id); err != nil {
		return fmt.Errorf("support: marking notification read: %w", err)
	}
	p.invalidateCurrentUser()
	return nil
}

// MarkAllRead marks every notification read and invalidates the
// cached list.
func (p *Poller) MarkAllRead(ctx context.Context) error {
	if err := p.api.MarkAllNotificationsRead(ctx); err != nil {
		return fmt.Errorf("support: marking notifications read: %w", err)
	}
	p.invalidateCurrentUser()
	return nil
}

// Run fetches immediately and then on every interval tick until ctx
// is done, reporting each result through onUpdate. Fetch errors are
// reported and polling continues; ticks with no active session are
// skipped without calling onUpdate.
func (p *Poller) Run(ctx context.Context, onUpdate func([]visaapi.Notification, error)) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, onUpdate)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, onUpdate)
		}
	}
}

func (p *Poller) poll(ctx context.Context, onUpdate func([]visaapi.Notification, error)) {
	state := p.store.Session()
	if !state.Authenticated() {
		return
	}
	notifications, err := p.refresh(ctx, NotificationsKey(state.User.ID))
	if err != nil {
		p.logger.Warn("notification poll failed", "error", err)
	}
	onUpdate(notifications, err)
}

// refresh fetches from the server, sorts newest first, and replaces
// the cache entry.
func (p *Poller) refresh(ctx context.Context, key Key) ([]visaapi.Notification, error) {
	notifications, err := p.api.ListNotifications(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("support: listing notifications: %w", err)
	}
	sortNotifications(notifications)
	p.cache.Put(key, notifications)
	return notifications, nil
}

func (p *Poller) invalidateCurrentUser() {
	state := p.store.Session()
	if !state.Authenticated() {
		return
	}
	p.cache.Invalidate(NotificationsKey(state.User.ID))
}

// sortNotifications orders newest first by creation time, falling
// back to id when timestamps are missing or equal. The backend emits
// "2006-01-02 15:04:05" timestamps; unparseable values sort last.
func sortNotifications(notifications []visaapi.Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		ti, iok := parseNotificationTime(notifications[i].CreatedAt)
		tj, jok := parseNotificationTime(notifications[j].CreatedAt)
		switch {
		case iok && jok && !ti.Equal(tj):
			return ti.After(tj)
		case iok != jok:
			return iok
		default:
			return notifications[i].ID > notifications[j].ID
		}
	})
}

func parseNotificationTime(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
