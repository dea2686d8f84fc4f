// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

// User is the account record returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Ticket statuses used by the backend. The status field is free-form
// server-side; anything other than "open" is treated as inactive by
// the ticket resolver.
const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

// Ticket is a support conversation thread owned by one user.
type Ticket struct {
	ID        int64  `json:"id"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Message is one entry in a ticket's conversation, immutable once
// created. Ordering is owned by the server (creation time ascending).
type Message struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Notification is a server-generated per-user alert. IsRead uses the
// backend's 0/1 encoding rather than a bool.
type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	IsRead    int    `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// RegisterRequest holds parameters for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// LoginRequest holds parameters for authenticating an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TicketListResponse is returned by ListTickets.
type TicketListResponse struct {
	Tickets []Ticket `json:"tickets"`
}

// CreateTicketRequest holds parameters for opening a new ticket.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// CreateTicketResponse is returned by CreateTicket. Message is a
// human-readable status from the backend, not a conversation message.
type CreateTicketResponse struct {
	Message  string `json:"message"`
	TicketID int64  `json:"ticket_id"`
	Token    string `json:"token"`
}

// MessageListResponse is returned by ListMessages. Page and PerPage
// echo the effective pagination the server applied.
type MessageListResponse struct {
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Messages []Message `json:"messages"`
}

// CreateMessageRequest holds parameters for appending to a ticket.
type CreateMessageRequest struct {
	TicketID int64  `json:"ticket_id"`
	Body     string `json:"body"`
}

// CreateMessageResponse is returned by CreateMessage.
type CreateMessageResponse struct {
	Message  string `json:"message"`
	TicketID int64  `json:"ticket_id"`
}

// NotificationListResponse is returned by ListNotifications.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
}

// AssistantRequest holds parameters for requesting an automated reply.
// TicketID is optional on the wire but the client always has one by
// the time the assistant is called (the send flow creates the ticket
// first).
type AssistantRequest struct {
	UserID   int64  `json:"user_id"`
	Message  string `json:"message"`
	TicketID int64  `json:"ticket_id,omitempty"`
}

// AssistantResponse is returned by AssistantChat.
type AssistantResponse struct {
	OK       bool   `json:"ok"`
	TicketID int64  `json:"ticket_id,omitempty"`
	Reply    string `json:"reply,omitempty"`
}

// ContactRequest holds parameters for the contact form endpoint. The
// endpoint does not exist server-side yet; CreateContact fails with
// ErrNotImplemented.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
