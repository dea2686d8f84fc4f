// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/n515f/nuxt-visa/visaapi"
)

// noticeFadeDelay is how long transient status bar notices stay
// visible.
const noticeFadeDelay = 4 * time.Second

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		auth, err := m.api.Login(context.Background(), visaapi.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return authResultMsg{err: err}
		}
		if err := m.store.SetSession(auth.Token, auth.User); err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{user: auth.User}
	}
}

func (m *Model) registerCmd(request visaapi.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		auth, err := m.api.Register(context.Background(), request)
		if err != nil {
			return authResultMsg{err: err}
		}
		if err := m.store.SetSession(auth.Token, auth.User); err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{user: auth.User}
	}
}

// loadFeedCmd resolves the user's active ticket and fetches its
// message feed. A user with no conversation yet gets an empty feed
// with ticketID zero.
func (m *Model) loadFeedCmd(userID int64) tea.Cmd {
	return func() tea.Msg {
		ticketID, ok, err := m.resolver.ActiveTicket(context.Background(), userID)
		if err != nil {
			return feedMsg{err: err}
		}
		if !ok {
			return feedMsg{}
		}
		messages, err := m.conversation.Messages(context.Background(), ticketID)
		return feedMsg{ticketID: ticketID, messages: messages, err: err}
	}
}

func (m *Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.conversation.Send(context.Background(), text)
		return sendResultMsg{result: result, err: err}
	}
}

func (m *Model) fetchNotificationsCmd() tea.Cmd {
	return func() tea.Msg {
		notifications, err := m.poller.Notifications(context.Background())
		return notificationsMsg{notifications: notifications, err: err}
	}
}

func (m *Model) markReadCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return markReadMsg{err: m.poller.MarkRead(context.Background(), id)}
	}
}

func (m *Model) markAllReadCmd() tea.Cmd {
	return func() tea.Msg {
		return markReadMsg{err: m.poller.MarkAllRead(context.Background())}
	}
}

// waitForPollCmd blocks on the poller update channel and re-arms
// itself after each delivery. A closed channel ends the cycle.
func (m *Model) waitForPollCmd() tea.Cmd {
	if m.pollUpdates == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-m.pollUpdates
		if !ok {
			return nil
		}
		return pollDeliveryMsg{notifications: update.Notifications, err: update.Err}
	}
}

func noticeFadeCmd() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}
