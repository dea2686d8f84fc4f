// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"github.com/n515f/nuxt-visa/support"
	"github.com/n515f/nuxt-visa/visaapi"
)

// authResultMsg is sent when an asynchronous login or registration
// call completes. On success the session is already persisted.
type authResultMsg struct {
	user visaapi.User
	err  error
}

// feedMsg carries a refreshed conversation feed. ticketID is zero
// when the user has no conversation yet.
type feedMsg struct {
	ticketID int64
	messages []visaapi.Message
	err      error
}

// sendResultMsg is sent when a Send completes. result is non-nil
// whenever the message itself was persisted, even if the assistant
// follow-up failed.
type sendResultMsg struct {
	result *support.SendResult
	err    error
}

// notificationsMsg carries a refreshed notification list from an
// explicit fetch.
type notificationsMsg struct {
	notifications []visaapi.Notification
	err           error
}

// pollDeliveryMsg carries a notification list received from the
// background poller's channel. Only this message re-arms the channel
// waiter, so exactly one waiter is parked at a time.
type pollDeliveryMsg struct {
	notifications []visaapi.Notification
	err           error
}

// markReadMsg is sent when a mark-read mutation completes. The
// follow-up fetch delivers the updated list separately.
type markReadMsg struct {
	err error
}

// noticeFadeMsg clears a transient status bar notice.
type noticeFadeMsg struct{}
