// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegister(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/auth/register.php" {
				t.Errorf("unexpected path: %s", request.URL.Path)
				writer.WriteHeader(http.StatusNotFound)
				return
			}
			var body RegisterRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if body.Name != "Ali" || body.Email != "ali@example.com" || body.Phone != "0500000000" {
				t.Errorf("unexpected register body: %+v", body)
			}
			json.NewEncoder(writer).Encode(AuthResponse{
				Token: "tok-new",
				User:  User{ID: 11, Name: "Ali", Email: "ali@example.com", Phone: "0500000000"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, "")
		response, err := client.Register(context.Background(), RegisterRequest{
			Name:     "Ali",
			Email:    "ali@example.com",
			Phone:    "0500000000",
			Password: "secret1",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if response.Token != "tok-new" {
			t.Errorf("Token = %q", response.Token)
		}
		if response.User.ID != 11 {
			t.Errorf("User.ID = %d", response.User.ID)
		}
	})

	t.Run("missing fields rejected locally", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1", "")
		if _, err := client.Register(context.Background(), RegisterRequest{Email: "a@b.c", Password: "x"}); err == nil {
			t.Error("expected error for missing name")
		}
		if _, err := client.Register(context.Background(), RegisterRequest{Name: "A", Password: "x"}); err == nil {
			t.Error("expected error for missing email")
		}
		if _, err := client.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.c"}); err == nil {
			t.Error("expected error for missing password")
		}
	})
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/auth/login.php" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		var body LoginRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body.Email != "ali@example.com" {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(writer).Encode(AuthResponse{Token: "tok-1", User: User{ID: 11, Name: "Ali"}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")

	t.Run("successful login", func(t *testing.T) {
		response, err := client.Login(context.Background(), LoginRequest{Email: "ali@example.com", Password: "secret1"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if response.Token != "tok-1" || response.User.ID != 11 {
			t.Errorf("unexpected response: %+v", response)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		_, err := client.Login(context.Background(), LoginRequest{Email: "other@example.com", Password: "bad"})
		if !IsStatus(err, http.StatusUnauthorized) {
			t.Errorf("expected 401 HTTPError, got %v", err)
		}
	})
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer tok-1" {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		json.NewEncoder(writer).Encode(map[string]User{"user": {ID: 11, Name: "Ali"}})
	}))
	defer server.Close()

	t.Run("valid session", func(t *testing.T) {
		client := newTestClient(t, server.URL, "tok-1")
		user, err := client.Me(context.Background())
		if err != nil {
			t.Fatalf("Me failed: %v", err)
		}
		if user.ID != 11 {
			t.Errorf("User.ID = %d", user.ID)
		}
	})

	t.Run("no session", func(t *testing.T) {
		client := newTestClient(t, server.URL, "")
		_, err := client.Me(context.Background())
		if !IsStatus(err, http.StatusUnauthorized) {
			t.Errorf("expected 401 HTTPError, got %v", err)
		}
	})
}
