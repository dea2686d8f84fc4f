// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/n515f/nuxt-visa/session"
	"github.com/n515f/nuxt-visa/visaapi"
)

// Resolver maps a user to the ticket their support conversation lives
// in. The persisted id is checked first so the common case costs no
// network round-trip.
type Resolver struct {
	api    *visaapi.Client
	store  *session.Store
	logger *slog.Logger
}

// NewResolver returns a resolver backed by api and store. A nil
// logger falls back to slog.Default().
func NewResolver(api *visaapi.Client, store *session.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{api: api, store: store, logger: logger}
}

// ActiveTicket returns the ticket id for userID's conversation. The
// cached id wins unconditionally, even if the ticket has since been
// closed server-side; otherwise the server's ticket list is scanned
// and the first open ticket is adopted and cached. ok is false when
// the user has no conversation yet, which is not an error.
func (r *Resolver) ActiveTicket(ctx context.Context, userID int64) (ticketID int64, ok bool, err error) {
	if id, found := r.store.ActiveTicket(userID); found {
		return id, true, nil
	}

	tickets, err := r.api.ListTickets(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("support: resolving active ticket: %w", err)
	}
	for _, ticket := range tickets {
		if ticket.Status != visaapi.TicketStatusOpen {
			continue
		}
		if err := r.store.SetActiveTicket(userID, ticket.ID); err != nil {
			// The resolved id still works for this run; only
			// the shortcut for the next run is lost.
			r.logger.Warn("failed to persist active ticket",
				"user_id", userID,
				"ticket_id", ticket.ID,
				"error", err)
		}
		return ticket.ID, true, nil
	}
	return 0, false, nil
}

// Reset forgets userID's cached ticket id so the next resolution goes
// back to the server. Use after the cached ticket turns out to be
// closed or deleted.
func (r *Resolver) Reset(userID int64) error {
	if err := r.store.ClearActiveTicket(userID); err != nil {
		return fmt.Errorf("support: resetting active ticket: %w", err)
	}
	return nil
}
