// Package assistant is the HTTP client for the external conversational
// backend that answers region-scoped questions.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Asker answers one region-scoped question. Implemented by Client; tests
// substitute their own.
type Asker interface {
	Ask(ctx context.Context, regionID, sessionID, question string) (string, error)
}

// Client talks to the external chat service.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a client for the chat endpoint at url.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type askRequest struct {
	RegionID  string `json:"region_id"`
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// askResponse tolerates both field names the backend has used for the
// generated text.
type askResponse struct {
	Response string `json:"response"`
	Answer   string `json:"answer"`
}

// Ask posts the question and returns the assistant's answer text.
func (c *Client) Ask(ctx context.Context, regionID, sessionID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", errors.New("empty question")
	}

	body, err := json.Marshal(askRequest{
		RegionID:  regionID,
		Question:  question,
		SessionID: sessionID,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("assistant error: status %d", resp.StatusCode)
	}

	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}

	answer := out.Response
	if answer == "" {
		answer = out.Answer
	}
	if answer == "" {
		return "", errors.New("assistant returned no answer")
	}
	return answer, nil
}

// Ping checks that the chat endpoint is reachable. Any HTTP response counts;
// only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("assistant unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}
