// Package http serves the dashboard screens and form endpoints.
//
// This file implements utilities for parsing and validating HTTP request
// data: form field extraction with sanitization, id parsing, and the
// ParseFormOrFail pattern used by every mutating handler.

package http

import (
	"net/http"
	"strconv"
	"strings"
)

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// formValue returns a trimmed, sanitized form field.
func formValue(r *http.Request, key string) string {
	return sanitizeInput(r.FormValue(key))
}

// formInt64 parses a form field as int64, returning 0 when absent or malformed.
func formInt64(r *http.Request, key string) int64 {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// queryInt64 parses a query parameter as int64, returning 0 when absent or malformed.
func queryInt64(r *http.Request, key string) int64 {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// queryInt parses a query parameter as int with a default for absent or
// malformed values.
func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
