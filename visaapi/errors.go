// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx response from the visa service.
// Callers can use errors.As to extract the structured information:
//
//	var httpErr *visaapi.HTTPError
//	if errors.As(err, &httpErr) {
//	    if httpErr.StatusCode == http.StatusUnauthorized { ... }
//	}
type HTTPError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the human-readable description extracted from the JSON
	// error body ("error" field, then "message"), or "HTTP <status>"
	// when the body carried neither.
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("visaapi: %d: %s", e.StatusCode, e.Message)
}

// IsStatus checks whether err is a *HTTPError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}

// ErrNotImplemented marks endpoints known to be absent from the
// backend. Wrappers for those endpoints return it immediately instead
// of issuing a request that can only fail.
var ErrNotImplemented = errors.New("visaapi: endpoint not implemented by the backend")
