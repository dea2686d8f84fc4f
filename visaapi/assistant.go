// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"context"
	"fmt"
)

// AssistantChat requests an automated reply after a user message has
// been persisted. The backend appends the reply to the ticket's
// conversation; the caller re-fetches the message list to observe it.
func (c *Client) AssistantChat(ctx context.Context, request AssistantRequest) (*AssistantResponse, error) {
	if request.UserID == 0 {
		return nil, fmt.Errorf("visaapi: user ID is required for the assistant")
	}
	if request.Message == "" {
		return nil, fmt.Errorf("visaapi: message is required for the assistant")
	}

	var response AssistantResponse
	if err := c.post(ctx, "/ai/chat", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateContact would submit the public contact form. The backend has
// no contact endpoint yet, so this fails deterministically without a
// network call.
func (c *Client) CreateContact(ctx context.Context, request ContactRequest) error {
	return ErrNotImplemented
}
