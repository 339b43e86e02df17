package remote

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

	"github.com/hylla/wishlist/internal/domain"
)

// VisitorHeader carries the acting visitor id on every request.
const VisitorHeader = "X-Wishlist-Visitor"

const (
	defaultAPIURL    = "http://127.0.0.1:8080/api/v1"
	defaultUserAgent = "wishlist/0.1"
	defaultTimeout   = 10 * time.Second
)

// Client talks to the list HTTP API on behalf of one visitor.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	visitorID string
	userAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent = strings.TrimSpace(userAgent); userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient builds a Client for apiURL (scheme optional, path kept as the API root).
func NewClient(apiURL, visitorID string, opts ...Option) (*Client, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, fmt.Errorf("visitor id is required")
	}
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		visitorID: visitorID,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// VisitorID returns the visitor the client acts for.
func (c *Client) VisitorID() string {
	return c.visitorID
}

// FetchListsForVisitor returns the visitor's lists as envelopes, in creation order.
func (c *Client) FetchListsForVisitor(ctx context.Context) ([]ListEnvelope, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("owner_id", c.visitorID)
	var payload listCollection
	if err := c.do(ctx, http.MethodGet, []string{"lists"}, values, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Items == nil {
		payload.Items = []ListEnvelope{}
	}
	return payload.Items, nil
}

// GetList fetches one list.
func (c *Client) GetList(ctx context.Context, listID string) (domain.List, error) {
	if c == nil {
		return domain.List{}, fmt.Errorf("client is nil")
	}
	var list domain.List
	if err := c.do(ctx, http.MethodGet, []string{"lists", listID}, nil, nil, &list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// CreateList creates a list owned by the client's visitor.
func (c *Client) CreateList(ctx context.Context, in CreateListInput) (domain.List, error) {
	if c == nil {
		return domain.List{}, fmt.Errorf("client is nil")
	}
	body := map[string]any{
		"owner_id":    c.visitorID,
		"name":        in.Name,
		"description": in.Description,
		"public":      in.Public,
	}
	var list domain.List
	if err := c.do(ctx, http.MethodPost, []string{"lists"}, nil, body, &list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// UpdateList replaces a list's name, description and visibility.
func (c *Client) UpdateList(ctx context.Context, in UpdateListInput) (domain.List, error) {
	if c == nil {
		return domain.List{}, fmt.Errorf("client is nil")
	}
	body := map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"public":      in.Public,
	}
	var list domain.List
	if err := c.do(ctx, http.MethodPut, []string{"lists", in.ListID}, nil, body, &list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// DeleteList deletes one list.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, []string{"lists", listID}, nil, nil, nil)
}

// do sends one request under the API root and decodes the JSON response into dest.
func (c *Client) do(ctx context.Context, method string, segments []string, query url.Values, body, dest any) error {
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("%s %s: empty path segment", method, strings.Join(segments, "/"))
		}
	}
	reqURL := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(VisitorHeader, c.visitorID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError turns an error response into *APIError, tolerating non-JSON bodies.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var env errorEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&env); err == nil || errors.Is(err, io.EOF) {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Hint = env.Error.Hint
	}
	return apiErr
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = "/" + strings.Trim(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
