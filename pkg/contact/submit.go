package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Submitter delivers a validated message. Submit blocks; callers run it off
// the dispatch thread.
type Submitter interface {
	Submit(ctx context.Context, msg Message) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, msg Message) error

func (f SubmitterFunc) Submit(ctx context.Context, msg Message) error { return f(ctx, msg) }

// DefaultSimulatedDelay is how long Simulated pretends the network takes.
const DefaultSimulatedDelay = 1500 * time.Millisecond

// Simulated stands in for a backend: it waits Delay, logs the message and
// succeeds.
type Simulated struct {
	Delay  time.Duration
	Logger *slog.Logger
}

func (s Simulated) Submit(ctx context.Context, msg Message) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("form submitted", "name", msg.Name, "email", msg.Email, "length", len(msg.Message))
	return nil
}

// HTTPSubmitter POSTs the message as JSON to Endpoint.
type HTTPSubmitter struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPSubmitter returns a submitter with a 15 second client timeout.
func NewHTTPSubmitter(endpoint string) *HTTPSubmitter {
	return &HTTPSubmitter{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit sends msg, assigning it an ID first so retries by the visitor can
// be told apart from new messages. Any non-2xx response is a failure.
func (h *HTTPSubmitter) Submit(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("contact: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contact: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("contact: post %s: %w", h.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("contact: %s returned %s", h.Endpoint, resp.Status)
	}
	return nil
}
