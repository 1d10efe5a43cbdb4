package notifyapi

import (
	"context"
	"sync"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// MockClient implements Client from an in-memory dataset, for tests or
// local demos.
type MockClient struct {
	data admin.Dataset
	mu   sync.RWMutex
}

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data admin.Dataset) *MockClient {
	return &MockClient{data: data}
}

// GetTemplates returns a copy of the configured templates.
func (c *MockClient) GetTemplates(context.Context) []admin.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]admin.Template{}, c.data.Templates...)
}

// GetCategories returns a copy of the configured categories.
func (c *MockClient) GetCategories(context.Context) []admin.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]admin.Category{}, c.data.Categories...)
}

// GetChannels returns a copy of the configured channels.
func (c *MockClient) GetChannels(context.Context) []admin.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]admin.Channel{}, c.data.Channels...)
}

// SetData swaps the fixtures.
func (c *MockClient) SetData(data admin.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}
