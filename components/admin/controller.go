package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// ControllerOptions configures the HTML controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Logger   *zap.Logger
	// BasePath prefixes every link rendered in the layout.
	BasePath string
	// Actions routes form submissions, typically through go-command.
	Actions PageActions
}

// PageRequest is a GET of one route.
type PageRequest struct {
	Page  string
	Query url.Values
}

// FormRequest is a POST of one form action.
type FormRequest struct {
	Page   string
	Action string
	ID     ID
	Values url.Values
}

// Controller renders the admin console pages.
type Controller struct {
	service  *Service
	renderer Renderer
	logger   *zap.Logger
	basePath string
	pages    map[string]Page
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	c := &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		basePath: strings.TrimRight(opts.BasePath, "/"),
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.service != nil {
		c.pages = newPages(c.service, opts.Actions)
	}
	return c
}

// QueryKeys lists the query parameters a page reads.
func (c *Controller) QueryKeys(page string) []string {
	if p, ok := c.pages[page]; ok {
		return p.QueryKeys()
	}
	return nil
}

// AcceptsForms reports whether the page has form actions.
func (c *Controller) AcceptsForms(page string) bool {
	_, ok := c.pages[page].(FormPage)
	return ok
}

// PageData builds the full template payload for a GET.
func (c *Controller) PageData(ctx context.Context, req PageRequest) (map[string]any, error) {
	page, err := c.page(req.Page)
	if err != nil {
		return nil, err
	}
	query := req.Query
	if query == nil {
		query = url.Values{}
	}
	body, err := page.View(ctx, query)
	if err != nil {
		return nil, err
	}
	return c.layout(ctx, page.Key(), body), nil
}

// SubmitData applies a form action and builds the resulting payload.
func (c *Controller) SubmitData(ctx context.Context, req FormRequest) (map[string]any, error) {
	page, err := c.page(req.Page)
	if err != nil {
		return nil, err
	}
	form, ok := page.(FormPage)
	if !ok {
		return nil, fmt.Errorf("%w: %s is read-only", ErrUnknownAction, req.Page)
	}
	values := req.Values
	if values == nil {
		values = url.Values{}
	}
	body, err := form.Submit(ctx, req.Action, req.ID, values)
	if err != nil {
		return nil, err
	}
	return c.layout(ctx, page.Key(), body), nil
}

// RenderPage renders a GET into out.
func (c *Controller) RenderPage(ctx context.Context, req PageRequest, out io.Writer) error {
	data, err := c.PageData(ctx, req)
	if err != nil {
		return err
	}
	return c.render(req.Page, data, out)
}

// Submit applies a form action and renders the page into out.
func (c *Controller) Submit(ctx context.Context, req FormRequest, out io.Writer) error {
	data, err := c.SubmitData(ctx, req)
	if err != nil {
		return err
	}
	return c.render(req.Page, data, out)
}

func (c *Controller) page(key string) (Page, error) {
	if c.service == nil {
		return nil, errors.New("admin: controller requires service")
	}
	page, ok := c.pages[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, key)
	}
	return page, nil
}

func (c *Controller) render(key string, data map[string]any, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("admin: controller requires renderer")
	}
	page := c.pages[key]
	if _, err := c.renderer.Render(page.Template(), data, out); err != nil {
		return fmt.Errorf("admin: render %s: %w", key, err)
	}
	return nil
}

func (c *Controller) layout(ctx context.Context, active string, body map[string]any) map[string]any {
	nav := Navigation()
	items := make([]map[string]any, 0, len(nav))
	for _, item := range nav {
		items = append(items, map[string]any{
			"key":    item.Key,
			"label":  item.Label,
			"path":   c.link(item.Path),
			"icon":   item.Icon,
			"active": item.Key == active,
		})
	}
	feed, err := c.service.Feed(ctx)
	if err != nil {
		c.logger.Warn("admin: notification feed unavailable", zap.Error(err))
	}
	feedItems := feedView(feed)
	for _, item := range feedItems {
		item["link"] = c.link(item["link"].(string))
	}
	path, _ := PagePath(active)
	return map[string]any{
		"sidebar_title":    SidebarTitle,
		"sidebar_subtitle": SidebarSubtitle,
		"nav":              items,
		"active":           active,
		"base_path":        c.basePath,
		"page_path":        c.link(path),
		"feed":             feedItems,
		"feed_count":       len(feedItems),
		"orders_link":      c.link("/orders"),
		"page":             body,
	}
}

func (c *Controller) link(path string) string {
	if c.basePath == "" {
		return path
	}
	if path == "/" {
		return c.basePath
	}
	return c.basePath + path
}
