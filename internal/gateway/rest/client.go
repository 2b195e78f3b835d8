package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MrChorusman/team-calendar-go/internal/config"
	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/google/uuid"
)

// Client talks to the remote calendar backend (and, via NewDirectoryClient,
// to the employee directory, which shares the same envelope conventions).
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the calendar gateway.
func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NewDirectoryClient creates a client for the employee directory.
func NewDirectoryClient(cfg config.DirectoryConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// APIError represents a non-5xx error response from the backend
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway API error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// do executes one request against the backend. Transport failures, 5xx
// responses and body-read failures come back as *calendar.TransientError;
// other non-2xx responses come back as *APIError with the server's error
// body when it parses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &calendar.TransientError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &calendar.TransientError{Op: op, Err: err}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return &calendar.TransientError{Op: op, Err: fmt.Errorf("backend returned status %d", resp.StatusCode)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
		var envelope errorEnvelope
		if json.Unmarshal(raw, &envelope) == nil {
			if envelope.Error != nil {
				apiErr.Code = envelope.Error.Code
				apiErr.Message = envelope.Error.Message
			} else if envelope.Message != "" {
				apiErr.Message = envelope.Message
			}
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", op, err)
		}
	}
	return nil
}

// parseDate parses the backend's YYYY-MM-DD date strings.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
