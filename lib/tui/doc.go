// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal UI building blocks for the
// nuxt-visa client: the color theme, markdown rendering for assistant
// replies, and overlay compositing for the notification panel.
package tui
