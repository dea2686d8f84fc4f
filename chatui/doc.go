// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package chatui implements the interactive support-chat terminal UI
// as a bubbletea program.
//
// The model has two top-level views. The auth view collects login or
// registration details with textinput fields; once a session exists
// the chat view takes over: a viewport with the conversation history,
// a compose line at the bottom, and a status bar. A notification
// panel overlays the conversation when toggled and while open routes
// all keyboard input.
//
// Network work never happens inside Update. Every server interaction
// is a tea.Cmd whose result comes back as a typed message, so the
// model stays synchronous and testable without a terminal.
package chatui
