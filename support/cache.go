// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package support

import "sync"

// Resource names a class of cached server data.
type Resource string

const (
	// ResourceMessages caches a ticket's message feed, keyed by
	// ticket id.
	ResourceMessages Resource = "messages"
	// ResourceNotifications caches a user's notification list,
	// keyed by user id.
	ResourceNotifications Resource = "notifications"
)

// Key identifies one cache entry.
type Key struct {
	Resource Resource
	ID       int64
}

// MessagesKey returns the cache key for a ticket's message feed.
func MessagesKey(ticketID int64) Key {
	return Key{Resource: ResourceMessages, ID: ticketID}
}

// NotificationsKey returns the cache key for a user's notifications.
func NotificationsKey(userID int64) Key {
	return Key{Resource: ResourceNotifications, ID: userID}
}

// Cache is a concurrency-safe store of the last server response per
// key. Entries never expire on their own; callers invalidate after
// mutations that change the underlying resource.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]any
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]any)}
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

// Put stores value under key, replacing any previous entry.
func (c *Cache) Put(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate removes the entry for key. Removing an absent key is a
// no-op.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry. Used on logout so a later session never
// sees another user's data.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]any)
}
