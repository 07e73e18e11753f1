// Package api implements the HTTP client for the chatbot backend.
package api

import (
	"fmt"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/rvrjc/collegechat/internal/models"
)

// DefaultTimeout is the transport timeout used when none is configured.
const DefaultTimeout = 300 * time.Second

// Doer sends a single HTTP request. tls_client.HttpClient satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClient talks to the chatbot's reply endpoint
type ChatClient struct {
	httpClient Doer
	endpoint   string
	timeout    time.Duration
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*ChatClient)

// WithEndpoint overrides the chat endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *ChatClient) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the transport timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ChatClient) {
		c.timeout = timeout
	}
}

// WithHTTPClient injects the transport, mostly for tests
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *ChatClient) {
		c.httpClient = doer
	}
}

// NewClient creates a new ChatClient
func NewClient(opts ...ClientOption) (*ChatClient, error) {
	client := &ChatClient{
		endpoint: models.EndpointChat,
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	if client.httpClient == nil {
		seconds := int(client.timeout / time.Second)
		if seconds <= 0 {
			seconds = int(DefaultTimeout / time.Second)
		}

		httpClient, err := tls_client.NewHttpClient(
			tls_client.NewNoopLogger(),
			tls_client.WithTimeoutSeconds(seconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Endpoint returns the configured endpoint URL
func (c *ChatClient) Endpoint() string {
	return c.endpoint
}

// Close releases idle connections; further requests fail
func (c *ChatClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if idle, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		idle.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *ChatClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
