// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/n515f/nuxt-visa/session"
	"github.com/n515f/nuxt-visa/visaapi"
)

// ticketSubject is the subject given to tickets opened implicitly by
// the chat's first message.
const ticketSubject = "Support chat"

// DefaultPageSize is the message page size the conversation reads
// through its cache.
const DefaultPageSize = 50

// ConversationConfig carries the dependencies for NewConversation.
type ConversationConfig struct {
	API      *visaapi.Client
	Store    *session.Store
	Resolver *Resolver
	Cache    *Cache

	// Logger for send-flow diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Conversation drives a user's support chat: reading the message
// feed and sending messages with an automated assistant follow-up.
type Conversation struct {
	api      *visaapi.Client
	store    *session.Store
	resolver *Resolver
	cache    *Cache
	logger   *slog.Logger
}

// NewConversation returns a conversation over the given dependencies.
func NewConversation(config ConversationConfig) *Conversation {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Conversation{
		api:      config.API,
		store:    config.Store,
		resolver: config.Resolver,
		cache:    config.Cache,
		logger:   logger,
	}
}

// SendResult describes what a Send did. AssistantErr is set when the
// assistant call failed after the user's message was persisted; the
// send itself still succeeded.
type SendResult struct {
	TicketID       int64
	CreatedTicket  bool
	AssistantReply string
	AssistantErr   error
}

// Messages returns the first page of ticketID's feed, serving from
// the cache when a mutation has not invalidated it since the last
// fetch. Messages are in the server's order, oldest first.
func (c *Conversation) Messages(ctx context.Context, ticketID int64) ([]visaapi.Message, error) {
	key := MessagesKey(ticketID)
	if cached, ok := c.cache.Get(key); ok {
		if messages, ok := cached.([]visaapi.Message); ok {
			return messages, nil
		}
	}
	response, err := c.api.ListMessages(ctx, ticketID, visaapi.MessageListOptions{
		Page:    1,
		PerPage: DefaultPageSize,
	})
	if err != nil {
		return nil, err
	}
	c.cache.Put(key, response.Messages)
	return response.Messages, nil
}

// MessagesPage fetches an explicit page directly from the server,
// bypassing the cache.
func (c *Conversation) MessagesPage(ctx context.Context, ticketID int64, page, perPage int) (*visaapi.MessageListResponse, error) {
	return c.api.ListMessages(ctx, ticketID, visaapi.MessageListOptions{
		Page:    page,
		PerPage: perPage,
	})
}

// Send persists text as the user's next message and then asks the
// assistant for a reply. When the user has no active ticket, the send
// opens one with text as its content and remembers its id.
//
// The message must be persisted before the assistant runs: the
// assistant call always carries a concrete ticket id, and a failed
// assistant reply must not lose the user's message. Caches for the
// ticket's messages and the user's notifications are invalidated
// after the mutation and again after a successful assistant reply.
func (c *Conversation) Send(ctx context.Context, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("support: message text is required")
	}
	state := c.store.Session()
	if !state.Authenticated() {
		return nil, fmt.Errorf("support: not logged in")
	}
	userID := state.User.ID

	ticketID, haveTicket, err := c.resolver.ActiveTicket(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &SendResult{}
	if haveTicket {
		if _, err := c.api.CreateMessage(ctx, visaapi.CreateMessageRequest{
			TicketID: ticketID,
			Body:     text,
		}); err != nil {
			return nil, fmt.Errorf("support: sending message: %w", err)
		}
		result.TicketID = ticketID
	} else {
		created, err := c.api.CreateTicket(ctx, visaapi.CreateTicketRequest{
			Subject: ticketSubject,
			Content: text,
		})
		if err != nil {
			return nil, fmt.Errorf("support: opening ticket: %w", err)
		}
		ticketID = created.TicketID
		result.TicketID = ticketID
		result.CreatedTicket = true
		if err := c.store.SetActiveTicket(userID, ticketID); err != nil {
			// A later send re-resolves from the server list.
			c.logger.Warn("failed to persist active ticket",
				"user_id", userID,
				"ticket_id", ticketID,
				"error", err)
		}
	}

	c.cache.Invalidate(MessagesKey(ticketID))
	c.cache.Invalidate(NotificationsKey(userID))

	reply, err := c.api.AssistantChat(ctx, visaapi.AssistantRequest{
		UserID:   userID,
		Message:  text,
		TicketID: ticketID,
	})
	if err != nil {
		c.logger.Warn("assistant reply failed",
			"ticket_id", ticketID,
			"error", err)
		result.AssistantErr = err
		return result, nil
	}
	result.AssistantReply = reply.Reply
	c.cache.Invalidate(MessagesKey(ticketID))
	c.cache.Invalidate(NotificationsKey(userID))
	return result, nil
}
