// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/n515f/nuxt-visa/visaapi"
)

const (
	sessionFileName = "session.json"
	ticketsFileName = "active_tickets.json"
)

// State is the persisted token/user pair. The zero value is the
// logged-out state.
type State struct {
	Token string        `json:"token"`
	User  *visaapi.User `json:"user"`
}

// Authenticated reports whether both token and user are present.
// The two are written together, but a session file from a newer or
// damaged client could carry one without the other; treat that as
// logged out.
func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// DefaultDir returns the state directory. Checks the NUXTVISA_STATE_DIR
// environment variable first, then falls back to
// $XDG_CONFIG_HOME/nuxt-visa or ~/.config/nuxt-visa.
func DefaultDir() string {
	if envDir := os.Getenv("NUXTVISA_STATE_DIR"); envDir != "" {
		return envDir
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback; this should rarely happen.
			return filepath.Join(os.TempDir(), "nuxt-visa")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "nuxt-visa")
}

// Store reads and writes the persisted session state. Safe for
// concurrent use: the notification poller reads the token while the
// UI goroutine logs in or out.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a store rooted at dir. An empty dir uses
// DefaultDir().
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the state directory the store operates on.
func (s *Store) Dir() string { return s.dir }

// Session returns the current token/user pair. Missing or corrupt
// persisted state reads as an empty session, never an error.
func (s *Store) Session() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSession()
}

// Token implements visaapi.TokenSource.
func (s *Store) Token() string {
	return s.Session().Token
}

// SetSession persists the token/user pair. Both land in one file so
// they are set and cleared together.
func (s *Store) SetSession(token string, user visaapi.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(State{Token: token, User: &user}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling state: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("session: creating state directory %s: %w", s.dir, err)
	}

	// The file carries a bearer token: owner-only read/write.
	path := filepath.Join(s.dir, sessionFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("session: writing %s: %w", path, err)
	}
	return nil
}

// Clear removes the persisted session and the cleared user's cached
// active-ticket reference. Idempotent; clearing an absent session is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.readSession()

	path := filepath.Join(s.dir, sessionFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: removing %s: %w", path, err)
	}

	if state.User != nil {
		tickets := s.readTickets()
		delete(tickets, ticketKey(state.User.ID))
		if err := s.writeTickets(tickets); err != nil {
			return err
		}
	}
	return nil
}

// ActiveTicket returns the cached active ticket id for a user, if one
// is recorded.
func (s *Store) ActiveTicket(userID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticketID, ok := s.readTickets()[ticketKey(userID)]
	return ticketID, ok && ticketID != 0
}

// SetActiveTicket records the active ticket for a user.
func (s *Store) SetActiveTicket(userID, ticketID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.readTickets()
	tickets[ticketKey(userID)] = ticketID
	return s.writeTickets(tickets)
}

// ClearActiveTicket drops a user's cached ticket reference. The next
// resolution falls back to the server's ticket list.
func (s *Store) ClearActiveTicket(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.readTickets()
	delete(tickets, ticketKey(userID))
	return s.writeTickets(tickets)
}

// readSession loads session.json, tolerating any failure as an empty
// session. Caller holds s.mu.
func (s *Store) readSession() State {
	data, err := os.ReadFile(filepath.Join(s.dir, sessionFileName))
	if err != nil {
		return State{}
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}
	}
	return state
}

// readTickets loads the user → ticket map, tolerating any failure as
// an empty map. Caller holds s.mu.
func (s *Store) readTickets() map[string]int64 {
	tickets := map[string]int64{}
	data, err := os.ReadFile(filepath.Join(s.dir, ticketsFileName))
	if err != nil {
		return tickets
	}
	if err := json.Unmarshal(data, &tickets); err != nil {
		return map[string]int64{}
	}
	return tickets
}

// writeTickets persists the user → ticket map. Caller holds s.mu.
func (s *Store) writeTickets(tickets map[string]int64) error {
	data, err := json.MarshalIndent(tickets, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling ticket map: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("session: creating state directory %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, ticketsFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("session: writing %s: %w", path, err)
	}
	return nil
}

func ticketKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
