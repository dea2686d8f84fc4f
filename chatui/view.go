// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/n515f/nuxt-visa/lib/tui"
	"github.com/n515f/nuxt-visa/support"
	"github.com/n515f/nuxt-visa/visaapi"
)

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.view == viewAuth {
		return m.authView()
	}
	return m.chatView()
}

func (m *Model) authView() string {
	form := m.auth.view(m.styles)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

func (m *Model) chatView() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.composeView())
	b.WriteString("\n")
	b.WriteString(m.statusView())

	rendered := b.String()
	if m.panelOpen {
		rendered = m.overlayPanel(rendered)
	}
	return rendered
}

func (m *Model) headerView() string {
	title := m.styles.NewStyle().
		Bold(true).
		Foreground(m.theme.HeaderForeground).
		Render("Support")

	who := m.styles.NewStyle().
		Foreground(m.theme.FaintText).
		Render(" · " + m.user.Name)

	badge := ""
	if unread := support.Unread(m.notifications); unread > 0 {
		badge = " " + m.styles.NewStyle().
			Foreground(m.theme.UnreadBadgeText).
			Background(m.theme.UnreadBadge).
			Render(fmt.Sprintf(" %d ", unread))
	}

	left := title + who + badge
	hint := m.styles.NewStyle().
		Foreground(m.theme.HelpText).
		Render("C-n notifications · C-g log out · C-c quit")

	padding := m.width - ansi.StringWidth(left) - ansi.StringWidth(hint)
	if padding < 1 {
		return left
	}
	return left + strings.Repeat(" ", padding) + hint
}

func (m *Model) composeView() string {
	prompt := m.styles.NewStyle().Foreground(m.theme.UserLabel).Render("> ")
	return prompt + m.compose.View()
}

func (m *Model) statusView() string {
	if m.sending {
		return m.styles.NewStyle().Foreground(m.theme.FaintText).Render("Sending...")
	}
	if m.notice != "" {
		color := m.theme.SuccessText
		if m.noticeError {
			color = m.theme.ErrorText
		}
		return m.styles.NewStyle().Foreground(color).Render(m.notice)
	}
	return ""
}

// refreshViewport re-renders the conversation into the viewport.
// followTail scrolls to the bottom, used when new messages arrive.
func (m *Model) refreshViewport(followTail bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.conversationView())
	if followTail {
		m.viewport.GotoBottom()
	}
}

func (m *Model) conversationView() string {
	if len(m.messages) == 0 {
		empty := m.styles.NewStyle().Foreground(m.theme.FaintText).
			Render("No messages yet. Say hello and our assistant will reply.")
		return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, empty)
	}

	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for i, message := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		fromUser := m.sentBodies[message.Body]
		label := "Support"
		if fromUser {
			label = "You"
		}
		labelStyle := m.styles.NewStyle().Bold(true).Foreground(m.theme.RoleColor(!fromUser))
		timestamp := ""
		if message.CreatedAt != "" {
			timestamp = "  " + m.styles.NewStyle().Foreground(m.theme.FaintText).Render(message.CreatedAt)
		}
		b.WriteString(labelStyle.Render(label) + timestamp + "\n")
		b.WriteString(tui.RenderMarkdown(message.Body, m.theme, width))
		b.WriteString("\n")
	}
	return b.String()
}

// panelWidth is the notification overlay width, clamped to the
// terminal.
func (m *Model) panelWidth() int {
	width := m.width / 2
	if width > 60 {
		width = 60
	}
	if width < 30 {
		width = 30
	}
	if width > m.width-2 {
		width = m.width - 2
	}
	return width
}

// overlayPanel composites the notification panel over the chat view,
// anchored to the top right under the header.
func (m *Model) overlayPanel(view string) string {
	lines := m.panelLines()
	anchorX := m.width - m.panelWidth() - 1
	if anchorX < 0 {
		anchorX = 0
	}
	return tui.SpliceOverlay(view, lines, anchorX, 1)
}

// panelLines renders the notification panel as fixed-width lines for
// overlay splicing.
func (m *Model) panelLines() []string {
	width := m.panelWidth()
	inner := width - 4

	titleStyle := m.styles.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	helpStyle := m.styles.NewStyle().Foreground(m.theme.HelpText)

	var content []string
	title := fmt.Sprintf("Notifications (%d unread)", support.Unread(m.notifications))
	content = append(content, titleStyle.Render(ansi.Truncate(title, inner, "…")))
	content = append(content, "")

	if len(m.notifications) == 0 {
		content = append(content, helpStyle.Render("Nothing yet."))
	}
	maxRows := m.height - 10
	if maxRows < 3 {
		maxRows = 3
	}
	for i, notification := range m.notifications {
		if i >= maxRows {
			content = append(content, helpStyle.Render(fmt.Sprintf("… and %d more", len(m.notifications)-i)))
			break
		}
		content = append(content, m.panelRow(notification, i == m.panelCursor, inner)...)
	}

	content = append(content, "")
	content = append(content, helpStyle.Render("Enter mark read · R all · Esc close"))

	// Pad every line to the inner width so the overlay is a solid
	// rectangle, then box it.
	var body strings.Builder
	for i, line := range content {
		if i > 0 {
			body.WriteString("\n")
		}
		pad := inner - ansi.StringWidth(line)
		if pad < 0 {
			pad = 0
		}
		body.WriteString(line + strings.Repeat(" ", pad))
	}

	box := m.styles.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 1).
		Render(body.String())

	return strings.Split(box, "\n")
}

// panelRow renders one notification entry: a marker, the title, and
// an excerpt of the body.
func (m *Model) panelRow(notification visaapi.Notification, selected bool, width int) []string {
	marker := "  "
	titleStyle := m.styles.NewStyle().Foreground(m.theme.ReadNotification)
	if notification.IsRead == 0 {
		marker = m.styles.NewStyle().Foreground(m.theme.UnreadBadge).Render("● ")
		titleStyle = m.styles.NewStyle().Foreground(m.theme.NormalText).Bold(true)
	}
	if selected {
		titleStyle = titleStyle.
			Background(m.theme.SelectedBackground).
			Foreground(m.theme.SelectedForeground)
	}

	rows := []string{marker + titleStyle.Render(ansi.Truncate(notification.Title, width-2, "…"))}
	for _, line := range tui.ExtractExcerpt(notification.Body, width-2, 1) {
		rows = append(rows, "  "+m.styles.NewStyle().Foreground(m.theme.FaintText).Render(line))
	}
	return rows
}
