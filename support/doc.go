// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package support implements the client side of the visa service's
// support-chat flow on top of the visaapi gateway.
//
// [Resolver] decides which ticket a user's conversation lives in:
// the persisted per-user ticket id wins without a network call, else
// the server's ticket list is scanned for the first open ticket, else
// there is no active conversation yet. A cached id is reused as-is;
// the resolver never re-checks its status server-side (see Reset for
// explicit recovery).
//
// [Conversation] sends messages: when no ticket exists one is created
// and cached for the user, otherwise the message is appended. After
// either path the message and notification caches are invalidated,
// and only then is the assistant responder called with the concrete
// ticket id. An assistant failure is reported in the [SendResult] but
// never fails the send, since the message is already persisted.
//
// [Poller] refreshes the notification list on a fixed interval while
// a session is active. It takes a clock.Clock so tests drive the
// interval deterministically.
//
// All reads go through [Cache], an explicit read-through cache keyed
// by (resource, id) and invalidated after every mutation that affects
// the resource. The server stays authoritative; the cache only saves
// round-trips between mutations.
package support
