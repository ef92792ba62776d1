// Package submit posts collected form values to domain endpoints. One
// request per submit action, no retry: on failure the caller's session is
// untouched so the user can retry manually.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/render"
)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithSchemaBundled makes Post merge the serialized schema into the payload
// under render.SchemaJSONKey, the convention hosting pages use so the
// backend need not re-fetch the schema.
func WithSchemaBundled() Option {
	return func(c *Client) {
		c.bundleSchema = true
	}
}

// WithHeader adds a header to every request.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers[name] = value
	}
}

// Client posts submission payloads as JSON.
type Client struct {
	client       *http.Client
	bundleSchema bool
	headers      map[string]string
}

// NewClient constructs a submission client.
func NewClient(options ...Option) *Client {
	c := &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		headers: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Post runs the session's gating submit and ships the payload to the
// endpoint. Gating failures (missing required fields) surface before any
// request is made. The request is attempted exactly once.
func (c *Client) Post(ctx context.Context, endpoint string, session *render.Session) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return fmt.Errorf("submit: endpoint is required")
	}

	if missing := session.Missing(); len(missing) > 0 {
		err := &render.MissingFieldsError{}
		for _, field := range missing {
			err.IDs = append(err.IDs, field.ID)
			err.Labels = append(err.Labels, field.DisplayLabel())
		}
		return err
	}

	payload, err := render.Payload(session, c.bundleSchema)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &EndpointError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(detail)),
		}
	}
	return nil
}

// EndpointError reports a non-2xx response from the domain endpoint.
type EndpointError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("submit: %s responded %d: %s", e.Endpoint, e.Status, e.Body)
}
