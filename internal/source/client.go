package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/uvify/uv-monitor/internal/uv"
)

// noDataSentinel is the backend's explicit empty state on /latest. It means
// the device has never reported, and must not be treated as a failure.
const noDataSentinel = "No data yet"

// Client talks to the remote UV backend. One circuit breaker guards all
// endpoints of the single upstream host.
type Client struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a backend client. baseURL is the backend root without a
// trailing slash.
func NewClient(client *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "uv-backend",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      1,
				InitialInterval: 250 * time.Millisecond,
				MaxInterval:     1 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	return doRequestWithResilience(ctx, c.httpCfg, c.circuit, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	})
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return doRequestWithResilience(ctx, c.httpCfg, c.circuit, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

// FetchHistory returns the backend's full reading history as a flat list.
func (c *Client) FetchHistory(ctx context.Context) ([]uv.Reading, error) {
	resp, err := c.get(ctx, "/history")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var readings []uv.Reading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return nil, fmt.Errorf("%w: history: %v", ErrMalformedPayload, err)
	}
	return readings, nil
}

// FetchLatest returns the most recent reading. ok is false when the backend
// answers with its "no data yet" sentinel.
func (c *Client) FetchLatest(ctx context.Context) (uv.Reading, bool, error) {
	resp, err := c.get(ctx, "/latest")
	if err != nil {
		return uv.Reading{}, false, err
	}
	defer resp.Body.Close()

	var payload struct {
		Message string `json:"message"`
		uv.Reading
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return uv.Reading{}, false, fmt.Errorf("%w: latest: %v", ErrMalformedPayload, err)
	}

	if payload.Message == noDataSentinel {
		return uv.Reading{}, false, nil
	}
	if payload.Date == "" || payload.Time == "" {
		return uv.Reading{}, false, fmt.Errorf("%w: latest: missing date/time", ErrMalformedPayload)
	}
	return payload.Reading, true, nil
}

// User is the backend's account record, passed through untouched.
type User struct {
	UserID    json.Number `json:"user_id,omitempty"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// AuthResult is the backend's auth envelope.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// Login posts credentials to the backend. A rejected login is a successful
// call with Success=false, not an error.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return c.auth(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Signup registers a new account with the backend.
func (c *Client) Signup(ctx context.Context, firstName, lastName, email, password string) (AuthResult, error) {
	return c.auth(ctx, "/auth/signup", map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"password":   password,
	})
}

func (c *Client) auth(ctx context.Context, path string, body map[string]string) (AuthResult, error) {
	resp, err := c.postJSON(ctx, path, body)
	if err != nil {
		return AuthResult{}, err
	}
	defer resp.Body.Close()

	var result AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return AuthResult{}, fmt.Errorf("%w: auth: %v", ErrMalformedPayload, err)
	}
	return result, nil
}

// Profile fetches an account record by id.
func (c *Client) Profile(ctx context.Context, userID string) (AuthResult, error) {
	resp, err := c.get(ctx, "/profile/"+userID)
	if err != nil {
		return AuthResult{}, err
	}
	defer resp.Body.Close()

	var result AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return AuthResult{}, fmt.Errorf("%w: profile: %v", ErrMalformedPayload, err)
	}
	return result, nil
}

// Suggest posts today's accumulated exposure to the backend's advice
// generator and returns the suggestion text. The response shape is the
// generator's own; only the first candidate's text is used.
func (c *Client) Suggest(ctx context.Context, todayAccumulated float64) (string, error) {
	body := map[string]interface{}{
		"uvData": map[string]float64{
			"today": todayAccumulated,
		},
	}

	resp, err := c.postJSON(ctx, "/api/gemini", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: suggestion: %v", ErrMalformedPayload, err)
	}

	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: suggestion: no candidates", ErrMalformedPayload)
	}
	text := strings.TrimSpace(payload.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: suggestion: empty text", ErrMalformedPayload)
	}
	return text, nil
}
