// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/n515f/nuxt-visa/session"
	"github.com/n515f/nuxt-visa/visaapi"
)

// fakeBackend is an in-memory stand-in for the visa service API. It
// records per-path call counts so tests can assert which endpoints a
// flow touched.
type fakeBackend struct {
	mu            sync.Mutex
	server        *httptest.Server
	user          visaapi.User
	tickets       []visaapi.Ticket
	messages      map[int64][]visaapi.Message
	notifications []visaapi.Notification
	calls         map[string]int
	nextID        int64

	// assistantFail makes /ai/chat return 502 when set.
	assistantFail bool
	// assistantReply is the canned reply body.
	assistantReply string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		user:           visaapi.User{ID: 1, Name: "Ali", Email: "ali@example.com", Phone: "0500000000"},
		messages:       make(map[int64][]visaapi.Message),
		calls:          make(map[string]int),
		nextID:         100,
		assistantReply: "How can I help with your application?",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/register.php", b.handleRegister)
	mux.HandleFunc("/auth/login.php", b.handleLogin)
	mux.HandleFunc("/auth/me.php", b.handleMe)
	mux.HandleFunc("/tickets/index.php", b.handleTickets)
	mux.HandleFunc("/tickets/create.php", b.handleCreateTicket)
	mux.HandleFunc("/messages/index.php", b.handleMessages)
	mux.HandleFunc("/messages/create.php", b.handleCreateMessage)
	mux.HandleFunc("/notifications/index.php", b.handleNotifications)
	mux.HandleFunc("/notifications/mark_read.php", b.handleMarkRead)
	mux.HandleFunc("/ai/chat", b.handleAssistant)
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[r.URL.Path]++
}

func (b *fakeBackend) id() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return b.nextID
}

// addTicket seeds a ticket directly, bypassing the HTTP surface.
func (b *fakeBackend) addTicket(status string) int64 {
	ticketID := b.id()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tickets = append(b.tickets, visaapi.Ticket{
		ID:      ticketID,
		Subject: "Support chat",
		Status:  status,
	})
	return ticketID
}

// addNotification seeds a notification directly.
func (b *fakeBackend) addNotification(title, createdAt string, read int) int64 {
	notificationID := b.id()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = append(b.notifications, visaapi.Notification{
		ID:        notificationID,
		Title:     title,
		IsRead:    read,
		CreatedAt: createdAt,
	})
	return notificationID
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}

func (b *fakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	var request visaapi.RegisterRequest
	json.NewDecoder(r.Body).Decode(&request)
	b.mu.Lock()
	b.user = visaapi.User{ID: 1, Name: request.Name, Email: request.Email, Phone: request.Phone}
	user := b.user
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, visaapi.AuthResponse{Token: "token-registered", User: user})
}

func (b *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	b.mu.Lock()
	user := b.user
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, visaapi.AuthResponse{Token: "token-login", User: user})
}

func (b *fakeBackend) handleMe(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	b.mu.Lock()
	user := b.user
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]visaapi.User{"user": user})
}

func (b *fakeBackend) handleTickets(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	b.mu.Lock()
	tickets := append([]visaapi.Ticket(nil), b.tickets...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, visaapi.TicketListResponse{Tickets: tickets})
}

func (b *fakeBackend) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	var request visaapi.CreateTicketRequest
	json.NewDecoder(r.Body).Decode(&request)
	ticketID := b.id()
	b.mu.Lock()
	b.tickets = append(b.tickets, visaapi.Ticket{
		ID:      ticketID,
		Subject: request.Subject,
		Content: request.Content,
		Status:  visaapi.TicketStatusOpen,
	})
	b.messages[ticketID] = append(b.messages[ticketID], visaapi.Message{
		ID:   b.nextID + 1000,
		Body: request.Content,
	})
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, visaapi.CreateTicketResponse{
		Message:  "ticket created",
		TicketID: ticketID,
	})
}

func (b *fakeBackend) handleMessages(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	ticketID := int64(0)
	fmt.Sscanf(r.URL.Query().Get("ticket_id"), "%d", &ticketID)
	b.mu.Lock()
	messages := append([]visaapi.Message(nil), b.messages[ticketID]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, visaapi.MessageListResponse{
		Page:     1,
		PerPage:  DefaultPageSize,
		Messages: messages,
	})
}

func (b *fakeBackend) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	var request visaapi.CreateMessageRequest
	json.NewDecoder(r.Body).Decode(&request)
	messageID := b.id()
	b.mu.Lock()
	b.messages[request.TicketID] = append(b.messages[request.TicketID], visaapi.Message{
		ID:   messageID,
		Body: request.Body,
	})
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, visaapi.CreateMessageResponse{
		Message:  "message created",
		TicketID: request.TicketID,
	})
}

func (b *fakeBackend) handleNotifications(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	b.mu.Lock()
	notifications := append([]visaapi.Notification(nil), b.notifications...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, visaapi.NotificationListResponse{Notifications: notifications})
}

func (b *fakeBackend) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	var request struct {
		ID  int64 `json:"id"`
		All bool  `json:"all"`
	}
	json.NewDecoder(r.Body).Decode(&request)
	b.mu.Lock()
	for i := range b.notifications {
		if request.All || b.notifications[i].ID == request.ID {
			b.notifications[i].IsRead = 1
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (b *fakeBackend) handleAssistant(w http.ResponseWriter, r *http.Request) {
	b.record(r)
	b.mu.Lock()
	fail := b.assistantFail
	reply := b.assistantReply
	b.mu.Unlock()
	if fail {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "assistant unavailable"})
		return
	}
	var request visaapi.AssistantRequest
	json.NewDecoder(r.Body).Decode(&request)
	b.mu.Lock()
	b.messages[request.TicketID] = append(b.messages[request.TicketID], visaapi.Message{
		ID:   b.nextID + 2000,
		Body: reply,
	})
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, visaapi.AssistantResponse{
		OK:       true,
		TicketID: request.TicketID,
		Reply:    reply,
	})
}

// newTestStack wires a logged-in session store and API client against
// the fake backend.
func newTestStack(t *testing.T, backend *fakeBackend) (*visaapi.Client, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	if err := store.SetSession("token-test", backend.user); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	client, err := visaapi.NewClient(visaapi.ClientConfig{
		BaseURL:    backend.server.URL,
		Tokens:     store,
		HTTPClient: backend.server.Client(),
		Logger:     slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, store
}
