package admin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Options configures the admin service.
type Options struct {
	Source    DataSource
	Validator *DatasetValidator
	Clock     Clock
	Logger    *zap.Logger
	Telemetry Telemetry
	Hooks     []RecordHook
	Cache     RenderCache
	Markdown  *MarkdownRenderer
	Charts    *ChartRenderer
	Feed      NotificationFeed
	FeedLimit int

	// BannerTimeout and NoticeTimeout override the per-page defaults when positive.
	BannerTimeout time.Duration
	NoticeTimeout time.Duration
}

// Service owns every collection of the admin console.
type Service struct {
	opts       Options
	clock      Clock
	logger     *zap.Logger
	telemetry  Telemetry
	categories *Collection[Category]
	channels   *Collection[Channel]
	templates  *Collection[Template]
	users      *Collection[User]
	payments   *Collection[PaymentMethod]
	orders     *OrderLedger
	markdown   *MarkdownRenderer
	charts     *ChartRenderer
	feed       NotificationFeed
}

// NewService wires collections with safe defaults: embedded mock data,
// wall clock, no-op logger and telemetry. Call Reset to load data.
func NewService(opts Options) *Service {
	if opts.Source == nil {
		opts.Source = EmbeddedSource()
	}
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = DefaultFeedLimit
	}
	if opts.Cache == nil {
		opts.Cache = NewTTLCache(5 * time.Minute)
	}
	s := &Service{
		opts:      opts,
		clock:     normalizeClock(opts.Clock),
		logger:    opts.Logger,
		telemetry: normalizeTelemetry(opts.Telemetry),
		markdown:  opts.Markdown,
		charts:    opts.Charts,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.markdown == nil {
		s.markdown = NewMarkdownRenderer(opts.Cache)
	}
	if s.charts == nil {
		s.charts = NewChartRenderer(WithChartCache(opts.Cache))
	}
	collOpts := CollectionOptions{Clock: s.clock, OnChange: s.changed}
	s.categories = NewCollection(applyTimeouts(CategoryDefinition(), opts.BannerTimeout, opts.NoticeTimeout), collOpts)
	s.channels = NewCollection(applyTimeouts(ChannelDefinition(), opts.BannerTimeout, opts.NoticeTimeout), collOpts)
	s.templates = NewCollection(applyTimeouts(TemplateDefinition(s), opts.BannerTimeout, opts.NoticeTimeout), collOpts)
	s.users = NewCollection(applyTimeouts(UserDefinition(), opts.BannerTimeout, opts.NoticeTimeout), collOpts)
	s.payments = NewCollection(applyTimeouts(PaymentDefinition(), opts.BannerTimeout, opts.NoticeTimeout), collOpts)
	s.orders = NewOrderLedger(s.clock)
	s.feed = opts.Feed
	if s.feed == nil {
		s.feed = OrderFeed{Ledger: s.orders}
	}
	return s
}

func applyTimeouts[T any](def Definition[T], banner, notice time.Duration) Definition[T] {
	if banner > 0 {
		def.Messages.BannerTimeout = banner
	}
	if notice > 0 {
		def.Messages.NoticeTimeout = notice
	}
	return def
}

// Categories returns the categories collection.
func (s *Service) Categories() *Collection[Category] { return s.categories }

// Channels returns the channels collection.
func (s *Service) Channels() *Collection[Channel] { return s.channels }

// Templates returns the templates collection.
func (s *Service) Templates() *Collection[Template] { return s.templates }

// Users returns the users collection.
func (s *Service) Users() *Collection[User] { return s.users }

// Payments returns the payment methods collection.
func (s *Service) Payments() *Collection[PaymentMethod] { return s.payments }

// Orders returns the order ledger.
func (s *Service) Orders() *OrderLedger { return s.orders }

// Clock returns the service clock.
func (s *Service) Clock() Clock { return s.clock }

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger { return s.logger }

// Reset reloads every collection from the data source, discarding all
// in-memory changes. Unavailable collections come back empty.
func (s *Service) Reset(ctx context.Context) error {
	loader := Loader{Source: s.opts.Source, Validator: s.opts.Validator, Logger: s.logger}

	categories := LoadCollection[Category](ctx, loader, CollectionCategories)
	channels := LoadCollection[Channel](ctx, loader, CollectionChannels)
	templates := LoadCollection[Template](ctx, loader, CollectionTemplates)
	users := LoadCollection[User](ctx, loader, CollectionUsers)
	payments := LoadCollection[PaymentMethod](ctx, loader, CollectionPayments)
	orders := LoadCollection[Order](ctx, loader, CollectionOrders)

	s.categories.Replace(categories)
	s.channels.Replace(channels)
	s.templates.Replace(hydrateSnapshots(templates, categories, channels))
	s.users.Replace(users)
	s.payments.Replace(payments)
	s.orders.Replace(orders)

	if purger, ok := s.opts.Cache.(interface{ Purge() }); ok {
		purger.Purge()
	}
	s.logger.Info("admin: dataset loaded",
		zap.Int("categories", len(categories)),
		zap.Int("channels", len(channels)),
		zap.Int("templates", len(templates)),
		zap.Int("users", len(users)),
		zap.Int("payments", len(payments)),
		zap.Int("orders", len(orders)),
	)
	s.changed(ctx, ChangeEvent{Collection: "*", Action: ChangeReset, At: s.clock.Now()})
	return ctx.Err()
}

// hydrateSnapshots fills missing category/channel copies on seed templates.
func hydrateSnapshots(templates []Template, categories []Category, channels []Channel) []Template {
	catByID := make(map[ID]Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	chanByID := make(map[ID]Channel, len(channels))
	for _, c := range channels {
		chanByID[c.ID] = c
	}
	for i := range templates {
		if templates[i].Category == nil {
			if c, ok := catByID[templates[i].CategoryID]; ok {
				templates[i].Category = &c
			}
		}
		if templates[i].Channel == nil {
			if c, ok := chanByID[templates[i].ChannelID]; ok {
				templates[i].Channel = &c
			}
		}
	}
	return templates
}

// Category implements ReferenceLookup.
func (s *Service) Category(id ID) (Category, bool) { return s.categories.Get(id) }

// Channel implements ReferenceLookup.
func (s *Service) Channel(id ID) (Channel, bool) { return s.channels.Get(id) }

// CategoryOptions lists categories for select inputs and facets.
func (s *Service) CategoryOptions() []FacetOption {
	all := s.categories.All()
	out := make([]FacetOption, 0, len(all))
	for _, c := range all {
		out = append(out, FacetOption{Value: string(c.ID), Label: c.Name})
	}
	return out
}

// ChannelOptions lists channels for select inputs and facets.
func (s *Service) ChannelOptions() []FacetOption {
	all := s.channels.All()
	out := make([]FacetOption, 0, len(all))
	for _, c := range all {
		out = append(out, FacetOption{Value: string(c.ID), Label: c.Name})
	}
	return out
}

// Feed returns the header notifications.
func (s *Service) Feed(ctx context.Context) ([]FeedItem, error) {
	items, err := s.feed.Recent(ctx, s.opts.FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("admin: load feed: %w", err)
	}
	return items, nil
}

// RenderMarkdown renders a template body for preview.
func (s *Service) RenderMarkdown(body string) (string, error) {
	return s.markdown.Render(body)
}

// Export snapshots the current in-memory state as a seed document.
func (s *Service) Export() Dataset {
	return Dataset{
		Categories: s.categories.All(),
		Channels:   s.channels.All(),
		Templates:  s.templates.All(),
		Users:      s.users.All(),
		Payment:    s.payments.All(),
		OrderList:  s.orders.All(),
	}
}

// Close stops every pending banner timer.
func (s *Service) Close() {
	s.categories.Close()
	s.channels.Close()
	s.templates.Close()
	s.users.Close()
	s.payments.Close()
}

func (s *Service) changed(ctx context.Context, event ChangeEvent) {
	s.telemetry.Record(ctx, "admin.record."+string(event.Action), map[string]any{
		"collection": event.Collection,
		"id":         string(event.ID),
	})
	for _, hook := range s.opts.Hooks {
		if hook == nil {
			continue
		}
		if err := hook.RecordChanged(ctx, event); err != nil {
			s.logger.Warn("admin: record hook failed",
				zap.String("collection", event.Collection),
				zap.String("action", string(event.Action)),
				zap.Error(err),
			)
		}
	}
}
