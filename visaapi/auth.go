// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"context"
	"fmt"
)

// Register creates a new account and returns the session token and
// user record. The caller is responsible for persisting them (see the
// session package).
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*AuthResponse, error) {
	if request.Name == "" {
		return nil, fmt.Errorf("visaapi: name is required for registration")
	}
	if request.Email == "" {
		return nil, fmt.Errorf("visaapi: email is required for registration")
	}
	if request.Password == "" {
		return nil, fmt.Errorf("visaapi: password is required for registration")
	}

	var response AuthResponse
	if err := c.post(ctx, "/auth/register.php", request, &response); err != nil {
		return nil, err
	}

	c.logger.Info("registered account", "user_id", response.User.ID, "email", response.User.Email)
	return &response, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, request LoginRequest) (*AuthResponse, error) {
	if request.Email == "" {
		return nil, fmt.Errorf("visaapi: email is required for login")
	}
	if request.Password == "" {
		return nil, fmt.Errorf("visaapi: password is required for login")
	}

	var response AuthResponse
	if err := c.post(ctx, "/auth/login.php", request, &response); err != nil {
		return nil, err
	}

	c.logger.Info("logged in", "user_id", response.User.ID)
	return &response, nil
}

// Me validates the current session and returns the user record. Fails
// with a 401 *HTTPError when the token is missing or expired.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var response struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me.php", nil, &response); err != nil {
		return nil, err
	}
	return &response.User, nil
}
