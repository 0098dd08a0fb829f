package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/google/uuid"
)

const maxResponseBody = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// NewHTTPClient returns a client for the API rooted at baseURL, for example
// "http://localhost:8000/api". Only http and https URLs are accepted.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute http(s)", baseURL)
	}

	c := &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	UserID      flexString `json:"user_id"`
	Username    string     `json:"username"`
}

type registerResponse struct {
	Message  string     `json:"message"`
	UserID   flexString `json:"user_id"`
	Username string     `json:"username"`
}

// Login posts the credentials. A 2xx answer without access_token is a
// failure with MsgInvalidLoginResponse.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	body, err := c.post(ctx, "login", "/login/", creds, MsgLoginFailed)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		return nil, &AuthError{Op: "login", Status: http.StatusOK, Message: MsgInvalidLoginResponse, Err: ErrInvalidResponse}
	}

	return &LoginResult{
		AccessToken: resp.AccessToken,
		UserID:      string(resp.UserID),
		Username:    resp.Username,
	}, nil
}

// Register posts the four form fields as they are. The shape of a
// successful answer is up to the server; unknown or unparsable bodies still
// count as success.
func (c *HTTPClient) Register(ctx context.Context, form validation.RegistrationForm) (*RegisterResult, error) {
	body, err := c.post(ctx, "register", "/register/", form, MsgRegistrationFailed)
	if err != nil {
		return nil, err
	}

	var resp registerResponse
	_ = json.Unmarshal(body, &resp)
	return &RegisterResult{Message: resp.Message, UserID: string(resp.UserID), Username: resp.Username}, nil
}

func (c *HTTPClient) post(ctx context.Context, op, path string, payload any, fallback string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &AuthError{Op: op, Message: fallback, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, &AuthError{Op: op, Message: fallback, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &AuthError{Op: op, Message: fallback, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &AuthError{Op: op, Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractMessage(body)
		if msg == "" {
			msg = fallback
		}
		return nil, &AuthError{Op: op, Status: resp.StatusCode, Message: msg, Err: fmt.Errorf("%w: %s", ErrRejected, resp.Status)}
	}

	return body, nil
}

// extractMessage looks for a human-readable message in an error body:
// "message", "detail" or "error" first, then the first field error in key
// order ({"email": ["already taken"]}). It returns "" when nothing fits.
func extractMessage(body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}

	for _, key := range []string{"message", "detail", "error"} {
		if s := firstString(m[key]); s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := firstString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func firstString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case []any:
		for _, item := range x {
			if s := firstString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		return firstString(x["message"])
	}
	return ""
}

// flexString accepts a JSON string or number; ids arrive as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
