package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrSessionExpired is returned when the server rejects the presented
// credential. By the time a caller sees it, the auth-failure hook has already
// torn the session down; local error handling still runs.
var ErrSessionExpired = errors.New("session expired")

// Error represents a non-2xx API response that is not an authentication
// failure.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

// Notifier receives user-facing notices emitted by the centrally handled
// failure paths. The rendering of notices is up to the implementation.
type Notifier interface {
	SessionExpired()
	RequestFailed(detail string)
}

// Client is the HTTP client for the Pactlens API. Every request goes through
// a single path that attaches the active credential and uniformly classifies
// failure responses.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// TokenFunc supplies the active credential. An empty string sends the
	// request unauthenticated.
	TokenFunc func() string

	// OnAuthFailure runs when the server rejects the presented credential,
	// before the error is returned to the caller. Wired to session teardown.
	OnAuthFailure func()

	// Notifier, when set, receives notices for non-auth failures.
	Notifier Notifier
}

// New creates a new API client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login authenticates the user and returns the access token. A rejected
// credential is returned to the caller; no session state is involved yet.
func (c *Client) Login(username, password string) (string, error) {
	var resp LoginResponse
	if err := c.post("/api/auth/login/", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", fmt.Errorf("login response contained no access token")
	}
	return resp.Access, nil
}

// Me returns the profile of the currently authenticated user.
func (c *Client) Me() (*Profile, error) {
	var p Profile
	if err := c.get("/api/users/users/me/", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListContracts returns all contracts visible to the current user.
func (c *Client) ListContracts() ([]Contract, error) {
	var contracts []Contract
	if err := c.get("/api/contracts/", &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListReviews returns all contract reviews.
func (c *Client) ListReviews() ([]Review, error) {
	var reviews []Review
	if err := c.get("/api/reviews/", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListRules returns all review rules.
func (c *Client) ListRules() ([]Rule, error) {
	var rules []Rule
	if err := c.get("/api/rules/", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// ListUsers returns all users. Requires the admin role server-side.
func (c *Client) ListUsers() ([]Profile, error) {
	var users []Profile
	if err := c.get("/api/users/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes a request with uniform credential decoration and failure
// classification, regardless of which caller issued it.
func (c *Client) do(req *http.Request, out any) error {
	if c.TokenFunc != nil {
		if token := c.TokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.Notifier != nil {
			c.Notifier.RequestFailed("network error, please try again later")
		}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnAuthFailure != nil {
			c.OnAuthFailure()
		}
		if detail := readDetail(resp.Body); detail != "" {
			return fmt.Errorf("%w: %s", ErrSessionExpired, detail)
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
		if c.Notifier != nil {
			c.Notifier.RequestFailed(apiErr.Detail)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readDetail extracts a human-readable failure detail from an error response
// body. The collaborator reports "detail"; older endpoints report "error".
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
