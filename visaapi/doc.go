// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package visaapi wraps the visa service's JSON/HTTP API for the
// terminal client.
//
// The package centers on [Client], which holds the API base URL, the
// HTTP transport, and an optional [TokenSource] supplying the bearer
// token for authenticated endpoints. Every endpoint wrapper (auth,
// tickets, messages, notifications, assistant) is a thin typed layer
// over a single doRequest core that merges headers deterministically:
// the JSON content type first, then the bearer token when one exists,
// then caller-supplied headers, so caller values win on conflict.
//
// All API errors are returned as [*HTTPError] carrying the response
// status code and a best-effort message extracted from the JSON error
// body ("error" field, then "message", then a generic "HTTP <status>").
// [IsStatus] tests for a specific status code. Endpoints the backend
// does not implement fail immediately with [ErrNotImplemented] without
// issuing a request.
//
// The backend owns all entities; this package never caches. Callers
// that need read-through caching layer it on top (see the support
// package).
package visaapi
