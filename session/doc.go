// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the client's authentication state between
// runs: the bearer token, the user record, and the per-user active
// support-ticket id.
//
// State lives in two JSON files under a state directory (resolved by
// [DefaultDir]): session.json holds the token/user pair, written and
// removed together so the two can never diverge, and
// active_tickets.json maps user ids to their active ticket so
// switching accounts never reuses another user's conversation.
//
// Loading is deliberately tolerant: a missing, unreadable, or corrupt
// file reads as an empty session. The client degrades to the
// unauthenticated state instead of failing, matching how a browser
// client treats corrupted local storage.
//
// [*Store] implements visaapi.TokenSource, so it plugs directly into
// the API client as the ambient-but-injected session context.
package session
