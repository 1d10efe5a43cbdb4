package notifyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// DefaultTimeout bounds every request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// HTTPClient reads the notification backend. Every collection lives in one
// JSON document served at BaseURL.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

var (
	_ Client           = (*HTTPClient)(nil)
	_ admin.DataSource = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client for the backend at cfg.BaseURL.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("notifyapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
		logger:  logger,
	}, nil
}

// GetTemplates returns the templates, or an empty slice on any failure.
func (c *HTTPClient) GetTemplates(ctx context.Context) []admin.Template {
	return fetchList[admin.Template](ctx, c, admin.CollectionTemplates)
}

// GetCategories returns the categories, or an empty slice on any failure.
func (c *HTTPClient) GetCategories(ctx context.Context) []admin.Category {
	return fetchList[admin.Category](ctx, c, admin.CollectionCategories)
}

// GetChannels returns the channels, or an empty slice on any failure.
func (c *HTTPClient) GetChannels(ctx context.Context) []admin.Channel {
	return fetchList[admin.Channel](ctx, c, admin.CollectionChannels)
}

// Collection implements admin.DataSource.
func (c *HTTPClient) Collection(ctx context.Context, name string) (json.RawMessage, error) {
	doc, err := c.document(ctx)
	if err != nil {
		return nil, err
	}
	raw, ok := doc[name]
	if !ok {
		return nil, fmt.Errorf("notifyapi: response has no %q", name)
	}
	return raw, nil
}

func fetchList[T any](ctx context.Context, c *HTTPClient, name string) []T {
	raw, err := c.Collection(ctx, name)
	if err != nil {
		c.logger.Warn("notifyapi: fetch failed", zap.String("collection", name), zap.Error(err))
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Warn("notifyapi: decode failed", zap.String("collection", name), zap.Error(err))
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func (c *HTTPClient) document(ctx context.Context) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("notifyapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notifyapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return nil, fmt.Errorf("notifyapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("notifyapi: decode response: %w", err)
	}
	return doc, nil
}
