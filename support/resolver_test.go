// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"
	"log/slog"
	"testing"

	"github.com/n515f/nuxt-visa/visaapi"
)

func TestResolverPrefersStoredTicket(t *testing.T) {
	backend := newFakeBackend(t)
	client, store := newTestStack(t, backend)
	resolver := NewResolver(client, store, slog.New(slog.DiscardHandler))

	if err := store.SetActiveTicket(1, 42); err != nil {
		t.Fatalf("SetActiveTicket: %v", err)
	}

	ticketID, ok, err := resolver.ActiveTicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("ActiveTicket: %v", err)
	}
	if !ok || ticketID != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", ticketID, ok)
	}
	if n := backend.count("/tickets/index.php"); n != 0 {
		t.Fatalf("stored ticket resolution hit the server %d times", n)
	}
}

func TestResolverAdoptsFirstOpenTicket(t *testing.T) {
	backend := newFakeBackend(t)
	client, store := newTestStack(t, backend)
	resolver := NewResolver(client, store, slog.New(slog.DiscardHandler))

	backend.addTicket(visaapi.TicketStatusClosed)
	openID := backend.addTicket(visaapi.TicketStatusOpen)
	backend.addTicket(visaapi.TicketStatusOpen)

	ticketID, ok, err := resolver.ActiveTicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("ActiveTicket: %v", err)
	}
	if !ok || ticketID != openID {
		t.Fatalf("got (%d, %v), want (%d, true)", ticketID, ok, openID)
	}

	// The adopted id is persisted: the second resolution must not
	// touch the server again.
	if _, _, err := resolver.ActiveTicket(context.Background(), 1); err != nil {
		t.Fatalf("second ActiveTicket: %v", err)
	}
	if n := backend.count("/tickets/index.php"); n != 1 {
		t.Fatalf("ticket list fetched %d times, want 1", n)
	}
}

func TestResolverNoActiveTicket(t *testing.T) {
	backend := newFakeBackend(t)
	client, store := newTestStack(t, backend)
	resolver := NewResolver(client, store, slog.New(slog.DiscardHandler))

	backend.addTicket(visaapi.TicketStatusClosed)

	ticketID, ok, err := resolver.ActiveTicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("ActiveTicket: %v", err)
	}
	if ok || ticketID != 0 {
		t.Fatalf("got (%d, %v), want (0, false)", ticketID, ok)
	}
}

func TestResolverReset(t *testing.T) {
	backend := newFakeBackend(t)
	client, store := newTestStack(t, backend)
	resolver := NewResolver(client, store, slog.New(slog.DiscardHandler))

	if err := store.SetActiveTicket(1, 42); err != nil {
		t.Fatalf("SetActiveTicket: %v", err)
	}
	if err := resolver.Reset(1); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	openID := backend.addTicket(visaapi.TicketStatusOpen)
	ticketID, ok, err := resolver.ActiveTicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("ActiveTicket: %v", err)
	}
	if !ok || ticketID != openID {
		t.Fatalf("got (%d, %v), want (%d, true) after reset", ticketID, ok, openID)
	}
}
