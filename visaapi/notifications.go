// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"context"
	"fmt"
	"net/url"
)

// ListNotifications returns the current user's notifications. When
// unreadOnly is true, the server filters to unread entries.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	var query url.Values
	if unreadOnly {
		query = url.Values{}
		query.Set("unread", "1")
	}

	var response NotificationListResponse
	if err := c.get(ctx, "/notifications/index.php", query, &response); err != nil {
		return nil, err
	}
	return response.Notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("visaapi: notification ID is required")
	}
	request := map[string]any{"id": id}
	return c.post(ctx, "/notifications/mark_read.php", request, nil)
}

// MarkAllNotificationsRead marks every notification for the current
// user as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	request := map[string]any{"all": true}
	return c.post(ctx, "/notifications/mark_read.php", request, nil)
}
