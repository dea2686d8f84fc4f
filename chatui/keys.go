// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the support chat TUI.
type KeyMap struct {
	// Compose and auth form.
	Submit     key.Binding // Send the message / submit the form.
	NextField  key.Binding // Move to the next auth form field.
	PrevField  key.Binding // Move to the previous auth form field.
	SwitchMode key.Binding // Toggle between login and registration.

	// Conversation scrolling.
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Notification panel.
	Notifications key.Binding // Toggle the panel.
	Up            key.Binding // Move the panel cursor.
	Down          key.Binding
	MarkRead      key.Binding
	MarkAllRead   key.Binding
	Close         key.Binding // Dismiss the panel.

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "send"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "previous field"),
	),
	SwitchMode: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "login/register"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "scroll down"),
	),
	Notifications: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "notifications"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	MarkRead: key.NewBinding(
		key.WithKeys("enter", "r"),
		key.WithHelp("Enter", "mark read"),
	),
	MarkAllRead: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "mark all read"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("C-g", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
