// Package ehrapi is a typed client for the remote EHR mapping API. The API
// owns all persistence; the console only reads and writes through it.
package ehrapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type tokenKey struct{}

// WithToken returns a context carrying a bearer token. Requests issued with
// that context get an Authorization header; requests without one are sent
// unauthenticated (sign-in and sign-up).
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the remote EHR mapping API.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// NewClient creates a client for the given base URL, e.g.
// "https://ehr.example.com/api/v1/emapta".
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := tokenFrom(req.Context()); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	return &Client{http: http, logger: logger}
}

// SignIn exchanges credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	var out SignInResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(SignInRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/signin")
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sign in: remote API returned status %d", resp.StatusCode())
	}
	if out.Token == "" {
		return nil, fmt.Errorf("sign in: remote API returned no token")
	}
	return &out, nil
}

// SignUp registers a new console user. New accounts always get the "user" role.
func (c *Client) SignUp(ctx context.Context, email, username, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(SignUpRequest{Email: email, Username: username, Roles: []string{"user"}, Password: password}).
		Post("/signup")
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sign up: remote API returned status %d", resp.StatusCode())
	}
	return nil
}

// CreateMapping stores a new mapping record.
func (c *Client) CreateMapping(ctx context.Context, payload MappingPayload) (*MappingRecord, error) {
	var out MappingRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/ehr")
	if err != nil {
		return nil, fmt.Errorf("create mapping: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create mapping: remote API returned status %d", resp.StatusCode())
	}
	c.logger.Info().Str("ehr_name", payload.EHRName).Str("id", out.ID).Msg("mapping created")
	return &out, nil
}

// ListMappings fetches the full current set of mapping records.
func (c *Client) ListMappings(ctx context.Context) ([]MappingRecord, error) {
	var out []MappingRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/ehr")
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list mappings: remote API returned status %d", resp.StatusCode())
	}
	return out, nil
}

// GetMapping fetches a single mapping record by id.
func (c *Client) GetMapping(ctx context.Context, id string) (*MappingRecord, error) {
	var out MappingRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/ehr/" + id)
	if err != nil {
		return nil, fmt.Errorf("get mapping %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get mapping %s: remote API returned status %d", id, resp.StatusCode())
	}
	return &out, nil
}

// UpdateMapping replaces an existing mapping record.
func (c *Client) UpdateMapping(ctx context.Context, id string, payload MappingPayload) (*MappingRecord, error) {
	var out MappingRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Put("/ehr/" + id)
	if err != nil {
		return nil, fmt.Errorf("update mapping %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("update mapping %s: remote API returned status %d", id, resp.StatusCode())
	}
	return &out, nil
}

// DeleteMapping removes a mapping record by id.
func (c *Client) DeleteMapping(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/ehr/" + id)
	if err != nil {
		return fmt.Errorf("delete mapping %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete mapping %s: remote API returned status %d", id, resp.StatusCode())
	}
	c.logger.Info().Str("id", id).Msg("mapping deleted")
	return nil
}
