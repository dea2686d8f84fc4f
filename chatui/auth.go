// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n515f/nuxt-visa/lib/tui"
	"github.com/n515f/nuxt-visa/visaapi"
)

// authMode selects which form the auth view shows.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// Field order within the register form. The login form uses the email
// and password fields only.
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldPassword
	fieldCount
)

// authForm collects credentials before a session exists.
type authForm struct {
	mode   authMode
	inputs [fieldCount]textinput.Model
	focus  int
	theme  tui.Theme

	// Submission state: the submit key is ignored while a request is
	// in flight, and errors from the last attempt show under the form.
	busy      bool
	lastError string
}

func newAuthForm(theme tui.Theme) authForm {
	form := authForm{mode: modeLogin, theme: theme}

	labels := [fieldCount]string{"Name", "Email", "Phone (optional)", "Password"}
	for i := range form.inputs {
		input := textinput.New()
		input.Placeholder = labels[i]
		input.CharLimit = 120
		input.Width = 40
		form.inputs[i] = input
	}
	form.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	form.inputs[fieldPassword].EchoCharacter = '•'

	form.focus = fieldEmail
	form.inputs[fieldEmail].Focus()
	return form
}

// fields returns the visible field indexes for the current mode, in
// tab order.
func (f *authForm) fields() []int {
	if f.mode == modeLogin {
		return []int{fieldEmail, fieldPassword}
	}
	return []int{fieldName, fieldEmail, fieldPhone, fieldPassword}
}

func (f *authForm) setFocus(field int) {
	f.inputs[f.focus].Blur()
	f.focus = field
	f.inputs[f.focus].Focus()
}

// cycleFocus moves focus by delta through the visible fields,
// wrapping at either end.
func (f *authForm) cycleFocus(delta int) {
	fields := f.fields()
	current := 0
	for i, field := range fields {
		if field == f.focus {
			current = i
			break
		}
	}
	next := (current + delta + len(fields)) % len(fields)
	f.setFocus(fields[next])
}

// toggleMode switches between login and registration, keeping any
// typed email and password.
func (f *authForm) toggleMode() {
	if f.mode == modeLogin {
		f.mode = modeRegister
		f.setFocus(fieldName)
	} else {
		f.mode = modeLogin
		f.setFocus(fieldEmail)
	}
	f.lastError = ""
}

// value returns a field's trimmed text.
func (f *authForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// validate checks the visible fields and returns a user-facing
// message for the first problem, or "".
func (f *authForm) validate() string {
	if f.mode == modeRegister && f.value(fieldName) == "" {
		return "name is required"
	}
	if f.value(fieldEmail) == "" {
		return "email is required"
	}
	if f.value(fieldPassword) == "" {
		return "password is required"
	}
	return ""
}

// registerRequest builds the registration payload from the form.
func (f *authForm) registerRequest() visaapi.RegisterRequest {
	return visaapi.RegisterRequest{
		Name:     f.value(fieldName),
		Email:    f.value(fieldEmail),
		Phone:    f.value(fieldPhone),
		Password: f.inputs[fieldPassword].Value(),
	}
}

// updateInputs routes a message to the focused text input.
func (f *authForm) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// reset clears submission state and the password after logout or a
// failed attempt.
func (f *authForm) reset() {
	f.busy = false
	f.inputs[fieldPassword].SetValue("")
}

func (f *authForm) view(styles *lipgloss.Renderer) string {
	title := "Log in"
	switchHint := "C-r register instead"
	if f.mode == modeRegister {
		title = "Create an account"
		switchHint = "C-r log in instead"
	}

	titleStyle := styles.NewStyle().Bold(true).Foreground(f.theme.HeaderForeground)
	hintStyle := styles.NewStyle().Foreground(f.theme.HelpText)
	errorStyle := styles.NewStyle().Foreground(f.theme.ErrorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for _, field := range f.fields() {
		b.WriteString(f.inputs[field].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.busy {
		b.WriteString(hintStyle.Render("Signing in..."))
	} else if f.lastError != "" {
		b.WriteString(errorStyle.Render(f.lastError))
	} else {
		b.WriteString(hintStyle.Render("Enter submit · " + switchHint))
	}

	return styles.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.theme.BorderColor).
		Padding(1, 2).
		Render(b.String())
}
