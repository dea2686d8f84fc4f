// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/n515f/nuxt-visa/lib/tui"
	"github.com/n515f/nuxt-visa/session"
	"github.com/n515f/nuxt-visa/support"
	"github.com/n515f/nuxt-visa/visaapi"
)

// view identifies which top-level screen is active.
type view int

const (
	viewAuth view = iota
	viewChat
)

// PollUpdate is one delivery from the background notification poller.
// The runner pushes these into the channel given in Config.
type PollUpdate struct {
	Notifications []visaapi.Notification
	Err           error
}

// Config carries the dependencies for New.
type Config struct {
	API          *visaapi.Client
	Store        *session.Store
	Resolver     *support.Resolver
	Conversation *support.Conversation
	Poller       *support.Poller
	Cache        *support.Cache

	// PollUpdates receives background notification refreshes. May be
	// nil, in which case the list only refreshes on explicit actions.
	PollUpdates <-chan PollUpdate

	// Theme defaults to tui.DefaultTheme when zero.
	Theme tui.Theme
	// Keys defaults to DefaultKeyMap when zero.
	Keys KeyMap
}

// Model is the top-level bubbletea model for the support chat.
type Model struct {
	api          *visaapi.Client
	store        *session.Store
	resolver     *support.Resolver
	conversation *support.Conversation
	poller       *support.Poller
	cache        *support.Cache
	pollUpdates  <-chan PollUpdate

	theme  tui.Theme
	keys   KeyMap
	styles *lipgloss.Renderer

	view view
	auth authForm
	user visaapi.User

	// Conversation state.
	ticketID int64
	messages []visaapi.Message
	viewport viewport.Model
	compose  textinput.Model
	sending  bool

	// sentBodies tracks message bodies sent from this session. The
	// wire format carries no sender, so labels are local knowledge:
	// bodies we sent render as the user, the rest as support.
	sentBodies map[string]bool

	// Notification state.
	notifications []visaapi.Notification
	panelOpen     bool
	panelCursor   int

	// Transient status bar notice.
	notice      string
	noticeError bool

	width  int
	height int
	ready  bool
}

// New builds the model. The initial view depends on whether a
// persisted session already exists.
func New(config Config) *Model {
	theme := config.Theme
	if theme == (tui.Theme{}) {
		theme = tui.DefaultTheme
	}
	keys := config.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap
	}

	// Forced ANSI256 profile, same reasoning as the markdown
	// renderer: output always targets a terminal.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	compose := textinput.New()
	compose.Placeholder = "Type a message"
	compose.CharLimit = 2000

	m := &Model{
		api:          config.API,
		store:        config.Store,
		resolver:     config.Resolver,
		conversation: config.Conversation,
		poller:       config.Poller,
		cache:        config.Cache,
		pollUpdates:  config.PollUpdates,
		theme:        theme,
		keys:         keys,
		styles:       styles,
		auth:         newAuthForm(theme),
		compose:      compose,
		sentBodies:   make(map[string]bool),
	}

	if state := m.store.Session(); state.Authenticated() {
		m.view = viewChat
		m.user = *state.User
		m.compose.Focus()
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if cmd := m.waitForPollCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.view == viewChat {
		cmds = append(cmds, m.loadFeedCmd(m.user.ID), m.fetchNotificationsCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.view {
		case viewAuth:
			return m, m.updateAuth(msg)
		case viewChat:
			return m, m.updateChat(msg)
		}
		return m, nil

	case authResultMsg:
		return m, m.handleAuthResult(msg)

	case feedMsg:
		return m, m.handleFeed(msg)

	case sendResultMsg:
		return m, m.handleSendResult(msg)

	case notificationsMsg:
		m.applyNotifications(msg.notifications, msg.err)
		return m, nil

	case pollDeliveryMsg:
		m.applyNotifications(msg.notifications, msg.err)
		return m, m.waitForPollCmd()

	case markReadMsg:
		if msg.err != nil {
			return m, m.setNotice(fmt.Sprintf("mark read failed: %v", msg.err), true)
		}
		return m, m.fetchNotificationsCmd()

	case noticeFadeMsg:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	contentHeight := height - chromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = contentHeight
	}
	m.compose.Width = width - composePromptWidth
	m.refreshViewport(false)
}

// chromeHeight is the rows taken by the header, compose line, and
// status bar around the conversation viewport.
const (
	chromeHeight       = 3
	composePromptWidth = 4
)

// updateAuth handles keys while the auth form is visible.
func (m *Model) updateAuth(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.SwitchMode):
		if !m.auth.busy {
			m.auth.toggleMode()
		}
		return nil
	case key.Matches(msg, m.keys.NextField):
		m.auth.cycleFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevField):
		m.auth.cycleFocus(-1)
		return nil
	case key.Matches(msg, m.keys.Submit):
		if m.auth.busy {
			return nil
		}
		if problem := m.auth.validate(); problem != "" {
			m.auth.lastError = problem
			return nil
		}
		m.auth.busy = true
		m.auth.lastError = ""
		if m.auth.mode == modeLogin {
			return m.loginCmd(m.auth.value(fieldEmail), m.auth.inputs[fieldPassword].Value())
		}
		return m.registerCmd(m.auth.registerRequest())
	}
	return m.auth.updateInputs(msg)
}

// updateChat handles keys in the chat view, routing to the
// notification panel while it is open.
func (m *Model) updateChat(msg tea.KeyMsg) tea.Cmd {
	if m.panelOpen {
		return m.updatePanel(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Notifications):
		m.panelOpen = true
		m.panelCursor = 0
		return m.fetchNotificationsCmd()
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return nil
	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.compose.Value())
		if text == "" || m.sending {
			return nil
		}
		m.sending = true
		m.sentBodies[text] = true
		m.compose.SetValue("")
		// Optimistic append so the user sees their message
		// immediately; the next feed reload replaces it with the
		// server's copy.
		m.messages = append(m.messages, visaapi.Message{Body: text})
		m.refreshViewport(true)
		return m.sendCmd(text)
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return cmd
}

// updatePanel handles keys while the notification panel is open.
func (m *Model) updatePanel(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Notifications):
		m.panelOpen = false
		return nil
	case key.Matches(msg, m.keys.Up):
		if m.panelCursor > 0 {
			m.panelCursor--
		}
		return nil
	case key.Matches(msg, m.keys.Down):
		if m.panelCursor < len(m.notifications)-1 {
			m.panelCursor++
		}
		return nil
	case key.Matches(msg, m.keys.MarkRead):
		if m.panelCursor < len(m.notifications) {
			target := m.notifications[m.panelCursor]
			if target.IsRead == 0 {
				return m.markReadCmd(target.ID)
			}
		}
		return nil
	case key.Matches(msg, m.keys.MarkAllRead):
		if support.Unread(m.notifications) > 0 {
			return m.markAllReadCmd()
		}
		return nil
	}
	return nil
}

// logout clears the persisted session and all cached server data,
// then returns to the auth form.
func (m *Model) logout() tea.Cmd {
	if err := m.store.Clear(); err != nil {
		return m.setNotice(fmt.Sprintf("logout failed: %v", err), true)
	}
	m.cache.Clear()
	m.api.CloseIdleConnections()
	m.view = viewAuth
	m.user = visaapi.User{}
	m.ticketID = 0
	m.messages = nil
	m.notifications = nil
	m.panelOpen = false
	m.sending = false
	m.sentBodies = make(map[string]bool)
	m.compose.Blur()
	m.auth.reset()
	m.auth.setFocus(fieldEmail)
	return nil
}

func (m *Model) handleAuthResult(msg authResultMsg) tea.Cmd {
	m.auth.busy = false
	if msg.err != nil {
		m.auth.lastError = friendlyError(msg.err)
		m.auth.inputs[fieldPassword].SetValue("")
		return nil
	}
	m.view = viewChat
	m.user = msg.user
	m.compose.Focus()
	return tea.Batch(m.loadFeedCmd(m.user.ID), m.fetchNotificationsCmd())
}

func (m *Model) handleFeed(msg feedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setNotice(fmt.Sprintf("loading conversation: %v", friendlyError(msg.err)), true)
	}
	m.ticketID = msg.ticketID
	m.messages = msg.messages
	m.refreshViewport(true)
	return nil
}

func (m *Model) handleSendResult(msg sendResultMsg) tea.Cmd {
	m.sending = false
	if msg.err != nil {
		// Drop the optimistic entry; the message never made it.
		if n := len(m.messages); n > 0 && m.messages[n-1].ID == 0 {
			m.messages = m.messages[:n-1]
			m.refreshViewport(true)
		}
		return m.setNotice(fmt.Sprintf("send failed: %v", friendlyError(msg.err)), true)
	}
	m.ticketID = msg.result.TicketID

	cmds := []tea.Cmd{m.loadFeedCmd(m.user.ID)}
	if msg.result.AssistantErr != nil {
		cmds = append(cmds, m.setNotice("message sent, but the assistant is unavailable", true))
	}
	return tea.Batch(cmds...)
}

// applyNotifications folds a refreshed notification list into the
// model. Refresh failures are quiet; the next poll or explicit fetch
// may succeed.
func (m *Model) applyNotifications(notifications []visaapi.Notification, err error) {
	if err != nil {
		return
	}
	m.notifications = notifications
	if m.panelCursor >= len(m.notifications) {
		m.panelCursor = len(m.notifications) - 1
	}
	if m.panelCursor < 0 {
		m.panelCursor = 0
	}
}

func (m *Model) setNotice(text string, isError bool) tea.Cmd {
	m.notice = text
	m.noticeError = isError
	return noticeFadeCmd()
}

// friendlyError keeps server-provided messages and trims the package
// prefix noise for display in the UI.
func friendlyError(err error) string {
	var httpErr *visaapi.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}
