// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the nuxt-visa terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Conversation roles.
	UserLabel      lipgloss.Color
	AssistantLabel lipgloss.Color

	// Status feedback in the status bar.
	SuccessText lipgloss.Color
	ErrorText   lipgloss.Color

	// Notification panel.
	UnreadBadge      lipgloss.Color
	UnreadBadgeText  lipgloss.Color
	ReadNotification lipgloss.Color

	// Selected row in the notification panel.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// RoleColor returns the label color for a conversation role. The
// assistant gets its accent; anything else is the user.
func (theme Theme) RoleColor(assistant bool) lipgloss.Color {
	if assistant {
		return theme.AssistantLabel
	}
	return theme.UserLabel
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	UserLabel:      lipgloss.Color("75"),  // blue
	AssistantLabel: lipgloss.Color("141"), // light purple

	SuccessText: lipgloss.Color("114"), // green
	ErrorText:   lipgloss.Color("196"), // bright red

	UnreadBadge:      lipgloss.Color("208"), // orange
	UnreadBadgeText:  lipgloss.Color("232"), // near-black on the badge
	ReadNotification: lipgloss.Color("245"), // gray

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
}
