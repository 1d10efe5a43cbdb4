package notifyapi

import (
	"context"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// TemplateClient fetches notification templates from the backend.
type TemplateClient interface {
	GetTemplates(ctx context.Context) []admin.Template
}

// CategoryClient fetches template categories.
type CategoryClient interface {
	GetCategories(ctx context.Context) []admin.Category
}

// ChannelClient fetches delivery channels.
type ChannelClient interface {
	GetChannels(ctx context.Context) []admin.Channel
}

// Client is a convenience union of every fetch helper.
type Client interface {
	TemplateClient
	CategoryClient
	ChannelClient
}
