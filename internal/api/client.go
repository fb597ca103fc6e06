// Package api is the typed client for the remote fund REST API. It mirrors
// the endpoint table one file per resource and normalizes every failure into
// a single user-presentable Error, so handlers never see a raw transport or
// decode fault.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fundboard/internal/log"
)

// User-facing messages for the two failure kinds the backend cannot explain
// itself.
const (
	MsgNetworkError    = "Network error. Please try again."
	MsgInvalidResponse = "Invalid server response. Please try again."
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindNetwork is a transport-level failure: refused, reset, timed out.
	KindNetwork ErrorKind = iota
	// KindDecode is a malformed response body.
	KindDecode
	// KindServer is a non-success HTTP status from the backend.
	KindServer
)

// Error is the uniform failure result of any client call. Message is already
// safe to show to the user.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Recorder observes the outcome of each API call. Satisfied by the metrics
// collector; nil disables observation.
type Recorder interface {
	ObserveAPICall(resource, action, outcome string)
}

// Client calls the fund API. The bearer token is a per-call argument because
// it belongs to the session, not the process.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *log.Logger
	recorder Recorder
}

// New creates a client for the given base URL. A zero timeout disables the
// client-side deadline; per-request contexts still cancel calls.
func New(baseURL string, timeout time.Duration, logger *log.Logger, recorder Recorder) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentAPI)
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		recorder: recorder,
	}
}

// call describes one API request; fallback is the action-specific message
// used when the backend rejects the call without a message of its own.
type call struct {
	resource string
	action   string
	method   string
	path     string
	token    string
	query    url.Values
	body     any
	fallback string
}

// do executes a call and decodes a successful response into out (when
// non-nil). Every failure path returns an *Error.
func (c *Client) do(ctx context.Context, req call, out any) error {
	var payload io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", req.action, req.resource, err)
		}
		payload = bytes.NewReader(encoded)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, payload)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", req.action, req.resource, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// An absent token still sends an empty bearer value; the backend decides.
	httpReq.Header.Set("Authorization", "Bearer "+req.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req, "network_error")
		c.logger.WarnContext(ctx, "API request failed",
			log.FieldResource, req.resource, log.FieldOperation, req.action, log.FieldError, err.Error())
		return &Error{Kind: KindNetwork, Message: MsgNetworkError}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(req, "network_error")
		return &Error{Kind: KindNetwork, Message: MsgNetworkError}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(body)
		if msg == "" {
			msg = req.fallback
		}
		c.observe(req, "rejected")
		c.logger.WarnContext(ctx, "API request rejected",
			log.FieldResource, req.resource, log.FieldOperation, req.action, log.FieldStatusCode, resp.StatusCode)
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			c.observe(req, "decode_error")
			c.logger.WarnContext(ctx, "API response undecodable",
				log.FieldResource, req.resource, log.FieldOperation, req.action, log.FieldError, err.Error())
			return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: MsgInvalidResponse}
		}
	}

	c.observe(req, "ok")
	return nil
}

func (c *Client) observe(req call, outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveAPICall(req.resource, req.action, outcome)
	}
}

// serverMessage extracts the backend's message field from an error body, if
// the body is JSON at all.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// listEnvelope is the backend's collection wrapper: {"data": [...]}.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}
