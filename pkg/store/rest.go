package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RESTOption configures the REST client.
type RESTOption func(*RESTStore)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(client *http.Client) RESTOption {
	return func(s *RESTStore) {
		if client != nil {
			s.client = client
		}
	}
}

// WithAuthToken attaches a bearer token to every request.
func WithAuthToken(token string) RESTOption {
	return func(s *RESTStore) {
		s.authToken = strings.TrimSpace(token)
	}
}

// RESTStore implements Store against a remote schema service. Each operation
// issues a single request; transport failures are wrapped and surfaced, never
// retried, so callers keep their in-memory editing state and retry manually.
type RESTStore struct {
	baseURL   string
	client    *http.Client
	authToken string
}

var _ Store = (*RESTStore)(nil)

// NewRESTStore builds a client for the schema service at baseURL, e.g.
// "https://api.example.com/v1/schemas".
func NewRESTStore(baseURL string, options ...RESTOption) (*RESTStore, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("store: base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("store: invalid base URL: %w", err)
	}

	s := &RESTStore{
		baseURL: trimmed,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

func (s *RESTStore) Save(ctx context.Context, record Record) (Record, error) {
	method := http.MethodPost
	endpoint := s.baseURL
	if record.ID != 0 {
		method = http.MethodPut
		endpoint = s.baseURL + "/" + strconv.FormatInt(record.ID, 10)
	}

	body, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("store: encode record: %w", err)
	}

	var saved Record
	if err := s.do(ctx, method, endpoint, bytes.NewReader(body), &saved); err != nil {
		return Record{}, err
	}
	return saved, nil
}

func (s *RESTStore) Load(ctx context.Context, id int64) (Record, error) {
	var record Record
	err := s.do(ctx, http.MethodGet, s.baseURL+"/"+strconv.FormatInt(id, 10), nil, &record)
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *RESTStore) LoadByContext(ctx context.Context, contextTag string) (Record, error) {
	endpoint := s.baseURL + "?context=" + url.QueryEscape(contextTag)
	var record Record
	if err := s.do(ctx, http.MethodGet, endpoint, nil, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *RESTStore) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := s.do(ctx, http.MethodGet, s.baseURL, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RESTStore) Delete(ctx context.Context, id int64) error {
	err := s.do(ctx, http.MethodDelete, s.baseURL+"/"+strconv.FormatInt(id, 10), nil, nil)
	// The service reports deletes of absent ids as not found; the contract
	// makes deletion idempotent, so that outcome is a success here.
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *RESTStore) do(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("store: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("store: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("store: %s %s: unexpected status %d: %s",
			method, endpoint, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("store: decode response: %w", err)
	}
	return nil
}
