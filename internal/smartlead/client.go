// Package smartlead provides a client for the SmartLead leads API.
package smartlead

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/smartsched/leadbridge/pkg/logging"
)

// SentinelAPIKey short-circuits the network call and returns a canned lead.
// Kept for compatibility with test/demo wiring in the original service.
const SentinelAPIKey = "ABCD"

// Lead is the contact record the provider returns for an email. It exists
// only for the duration of one enrichment request and is never persisted.
type Lead struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// FullName joins first and last name with a single space.
func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

// Client is an HTTP client for the SmartLead API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	timeout    time.Duration
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the request timeout. It is applied after all options run,
// so it also covers a client supplied via WithHTTPClient regardless of
// option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new SmartLead client.
// baseURL is the API host (e.g. "https://server.smartlead.ai").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	return c
}

// FetchLead retrieves the contact record for an email under the given API
// key. The sentinel key returns a canned lead without touching the network.
func (c *Client) FetchLead(ctx context.Context, apiKey, email string) (*Lead, error) {
	if apiKey == SentinelAPIKey {
		return &Lead{
			FirstName: "SHIVAM",
			LastName:  "WIN",
			Email:     "sharmashivam@gmail.com",
		}, nil
	}

	resp, err := c.getLeads(ctx, apiKey, email)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("smartlead: lead fetch failed with status %d", resp.StatusCode)
	}

	var lead Lead
	if err := json.NewDecoder(resp.Body).Decode(&lead); err != nil {
		return nil, fmt.Errorf("smartlead: decode lead response: %w", err)
	}

	c.logger.Debug("lead fetched", "email", email)
	return &lead, nil
}

// ValidateKey reports whether the provider accepts the API key for the given
// email. Any transport failure or non-2xx status counts as invalid.
func (c *Client) ValidateKey(ctx context.Context, apiKey, email string) bool {
	resp, err := c.getLeads(ctx, apiKey, email)
	if err != nil {
		c.logger.Warn("smartlead key validation failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("smartlead rejected key", "status", resp.StatusCode)
		return false
	}
	return true
}

func (c *Client) getLeads(ctx context.Context, apiKey, email string) (*http.Response, error) {
	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("email", email)
	endpoint := c.baseURL + "/api/v1/leads/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("smartlead: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("smartlead: request failed: %w", err)
	}
	return resp, nil
}
