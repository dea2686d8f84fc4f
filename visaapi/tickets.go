// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListTickets returns all tickets owned by the current user.
func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	var response TicketListResponse
	if err := c.get(ctx, "/tickets/index.php", nil, &response); err != nil {
		return nil, err
	}
	return response.Tickets, nil
}

// CreateTicket opens a new support ticket. The backend creates the
// ticket with status "open" and seeds its conversation with the
// content as the first message.
func (c *Client) CreateTicket(ctx context.Context, request CreateTicketRequest) (*CreateTicketResponse, error) {
	if request.Subject == "" {
		return nil, fmt.Errorf("visaapi: subject is required to create a ticket")
	}

	var response CreateTicketResponse
	if err := c.post(ctx, "/tickets/create.php", request, &response); err != nil {
		return nil, err
	}

	c.logger.Info("created ticket", "ticket_id", response.TicketID)
	return &response, nil
}

// MessageListOptions controls pagination for ListMessages. Zero values
// use the server defaults (first page, server-chosen page size).
type MessageListOptions struct {
	Page    int
	PerPage int
}

// ListMessages fetches one page of a ticket's conversation, ordered by
// creation time ascending as returned by the server. The client does
// not re-sort.
func (c *Client) ListMessages(ctx context.Context, ticketID int64, options MessageListOptions) (*MessageListResponse, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("visaapi: ticket ID is required to list messages")
	}

	query := url.Values{}
	query.Set("ticket_id", strconv.FormatInt(ticketID, 10))
	if options.Page > 0 {
		query.Set("page", strconv.Itoa(options.Page))
	}
	if options.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(options.PerPage))
	}

	var response MessageListResponse
	if err := c.get(ctx, "/messages/index.php", query, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateMessage appends a message to an existing ticket.
func (c *Client) CreateMessage(ctx context.Context, request CreateMessageRequest) (*CreateMessageResponse, error) {
	if request.TicketID == 0 {
		return nil, fmt.Errorf("visaapi: ticket ID is required to create a message")
	}
	if request.Body == "" {
		return nil, fmt.Errorf("visaapi: message body is required")
	}

	var response CreateMessageResponse
	if err := c.post(ctx, "/messages/create.php", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
