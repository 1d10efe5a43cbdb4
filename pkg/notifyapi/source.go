package notifyapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// NewSource adapts a Client into an admin.DataSource. Only the collections
// the backend serves are available; the rest report an error so the loader
// falls back to an empty list or the next source in a chain.
func NewSource(client Client) admin.DataSource {
	return &clientSource{client: client}
}

type clientSource struct {
	client Client
}

func (s *clientSource) Collection(ctx context.Context, name string) (json.RawMessage, error) {
	var records any
	switch name {
	case admin.CollectionTemplates:
		records = s.client.GetTemplates(ctx)
	case admin.CollectionCategories:
		records = s.client.GetCategories(ctx)
	case admin.CollectionChannels:
		records = s.client.GetChannels(ctx)
	default:
		return nil, fmt.Errorf("notifyapi: %w: %q", admin.ErrUnknownCollection, name)
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("notifyapi: encode %s: %w", name, err)
	}
	return raw, nil
}
