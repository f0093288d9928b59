package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoEmail is returned when a profile is requested without an email.
var ErrNoEmail = errors.New("No user email available")

// ErrInvalidResponse is returned when the profile service body is not a JSON object.
var ErrInvalidResponse = errors.New("Invalid response format")

// StatusError reports a non-2xx answer from the profile service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch profile (Status: %d)", e.Code)
}

// Fetcher loads a profile for an identity. A nil profile with a nil error
// means the service has no record.
type Fetcher interface {
	FetchProfile(ctx context.Context, email string, role Role) (*Profile, error)
}

// Client talks to the external profile service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchProfile(ctx context.Context, email string, role Role) (*Profile, error) {
	if email == "" {
		return nil, ErrNoEmail
	}

	q := url.Values{}
	q.Set("email", email)
	q.Set("type", role.ProfileType())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profile?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, ErrInvalidResponse
	}

	var envelope struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ErrInvalidResponse
	}
	raw := bytes.TrimSpace(envelope.Profile)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return nil, nil
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrInvalidResponse
	}
	return &p, nil
}
