package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Form actions accepted by FormPage.Submit.
const (
	ActionCreate        = "create"
	ActionPreview       = "preview"
	ActionEdit          = "edit"
	ActionPreviewEdit   = "preview-edit"
	ActionSave          = "save"
	ActionCancelEdit    = "cancel-edit"
	ActionDelete        = "delete"
	ActionConfirmDelete = "confirm-delete"
	ActionCancelDelete  = "cancel-delete"
	ActionDismissBanner = "dismiss-banner"
)

var (
	// ErrUnknownPage is returned for a page key with no route.
	ErrUnknownPage = errors.New("admin: unknown page")
	// ErrUnknownAction is returned for an unsupported form action.
	ErrUnknownAction = errors.New("admin: unknown form action")
)

// Page builds the view model of one route.
type Page interface {
	Key() string
	Template() string
	// QueryKeys lists the query parameters the page reads.
	QueryKeys() []string
	View(ctx context.Context, state url.Values) (map[string]any, error)
}

// FormPage is a page that accepts form submissions.
type FormPage interface {
	Page
	Submit(ctx context.Context, action string, id ID, values url.Values) (map[string]any, error)
}

type fieldSpec[T any] struct {
	name        string
	label       string
	kind        string
	placeholder string
	value       func(T) string
	options     func() []FacetOption
}

type crudPage[T any] struct {
	key      string
	title    string
	subtitle string
	addLabel string
	empty    string
	coll     *Collection[T]
	actions  RecordActions[T]
	decode   func(url.Values) T
	fields   []fieldSpec[T]
	row      func(T) map[string]any
	// body, when set, is the markdown source previewed for a record.
	body     func(T) string
	markdown func(string) (string, error)
}

type formState[T any] struct {
	createOpen    bool
	createPreview bool
	createDraft   T
	createErrors  FieldErrors
	editID        ID
	editDraft     *T
	editPreview   bool
	editErrors    FieldErrors
}

func (p *crudPage[T]) Key() string      { return p.key }
func (p *crudPage[T]) Template() string { return "collection" }

func (p *crudPage[T]) facetKeys() []string {
	facets := p.coll.Definition().Facets
	keys := make([]string, len(facets))
	for i, f := range facets {
		keys[i] = f.Key
	}
	return keys
}

func (p *crudPage[T]) QueryKeys() []string {
	keys := []string{ParamSearch, ParamCreate, ParamEdit}
	if p.body != nil {
		keys = append(keys, ParamPreview, ParamCreatePreview, ParamEditPreview)
	}
	for _, key := range p.facetKeys() {
		keys = append(keys, FacetParam(key))
	}
	return keys
}

func (p *crudPage[T]) View(ctx context.Context, state url.Values) (map[string]any, error) {
	var fs formState[T]
	fs.createOpen = formBool(state, ParamCreate)
	fs.createPreview = formBool(state, ParamCreatePreview)
	if id := ParseID(state.Get(ParamEdit)); !id.IsZero() {
		// Read-only: an open draft wins, otherwise the stored record fills the form.
		draft, ok := p.coll.Draft(id)
		if !ok {
			if draft, ok = p.coll.Get(id); !ok {
				return nil, fmt.Errorf("%w: %s %s", ErrNotFound, p.coll.Name(), id)
			}
		}
		fs.editID = id
		fs.editDraft = &draft
		fs.editPreview = formBool(state, ParamEditPreview)
	}
	return p.build(ctx, state, fs)
}

func (p *crudPage[T]) Submit(ctx context.Context, action string, id ID, values url.Values) (map[string]any, error) {
	var fs formState[T]
	switch action {
	case ActionCreate:
		if err := p.actions.Create(ctx, p.decode(values)); err != nil {
			verr, ok := AsValidationError(err)
			if !ok {
				return nil, err
			}
			fs.createOpen = true
			fs.createDraft = p.decode(values)
			fs.createErrors = verr.Fields
		}
	case ActionPreview:
		fs.createOpen = true
		fs.createPreview = !formBool(values, ParamCreatePreview)
		fs.createDraft = p.decode(values)
	case ActionEdit:
		draft, err := p.actions.BeginEdit(ctx, id)
		if err != nil {
			return nil, err
		}
		fs.editID, fs.editDraft = id, &draft
	case ActionPreviewEdit:
		if _, ok := p.coll.Get(id); !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, p.coll.Name(), id)
		}
		draft := p.decode(values)
		fs.editID, fs.editDraft = id, &draft
		fs.editPreview = !formBool(values, ParamEditPreview)
	case ActionSave:
		draft := p.decode(values)
		if err := p.actions.Save(ctx, id, draft); err != nil {
			verr, ok := AsValidationError(err)
			if !ok {
				return nil, err
			}
			fs.editID, fs.editDraft = id, &draft
			fs.editErrors = verr.Fields
		}
	case ActionCancelEdit:
		if err := p.actions.CancelEdit(ctx, id); err != nil {
			return nil, err
		}
	case ActionDelete:
		if err := p.actions.RequestDelete(ctx, id); err != nil {
			return nil, err
		}
	case ActionConfirmDelete:
		if err := p.actions.ConfirmDelete(ctx, id); err != nil {
			return nil, err
		}
	case ActionCancelDelete:
		if err := p.actions.CancelDelete(ctx); err != nil {
			return nil, err
		}
	case ActionDismissBanner:
		p.coll.DismissBanner()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return p.build(ctx, values, fs)
}

func (p *crudPage[T]) build(_ context.Context, state url.Values, fs formState[T]) (map[string]any, error) {
	def := p.coll.Definition()
	filter := FilterFromValues(state, p.facetKeys())
	records := p.coll.List(filter)
	previewID := ParseID(state.Get(ParamPreview))

	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		id := def.GetID(record)
		row := p.row(record)
		row["id"] = id.String()
		if _, ok := row["title"]; !ok && def.DisplayName != nil {
			row["title"] = def.DisplayName(record)
		}
		if p.body != nil && !previewID.IsZero() && id == previewID {
			html, err := p.markdown(p.body(record))
			if err != nil {
				return nil, err
			}
			row["preview_html"] = html
			row["preview_open"] = true
		}
		if fs.editDraft != nil && id == fs.editID {
			form, err := p.form(ActionSave, id, *fs.editDraft, fs.editErrors, fs.editPreview)
			if err != nil {
				return nil, err
			}
			row["editing"] = true
			row["form"] = form
		}
		rows = append(rows, row)
	}

	data := map[string]any{
		"key":           p.key,
		"title":         p.title,
		"subtitle":      p.subtitle,
		"add_label":     p.addLabel,
		"empty_message": p.empty,
		"search":        filter.Search,
		"facets":        facetViews(p.coll.DescribeFacets(filter)),
		"active_facets": p.coll.ActiveFacets(filter),
		"state":         stateFields(filter),
		"query":         FilterValues(filter).Encode(),
		"clear_query":   FilterValues(filter.Cleared()).Encode(),
		"rows":          rows,
		"shown":         len(rows),
		"total":         p.coll.Len(),
		"has_preview":   p.body != nil,
	}
	if fs.createOpen {
		form, err := p.form(ActionCreate, "", fs.createDraft, fs.createErrors, fs.createPreview)
		if err != nil {
			return nil, err
		}
		data["create_form"] = form
	}
	if req, ok := p.coll.PendingDelete(); ok {
		data["delete"] = map[string]any{"id": req.ID.String(), "name": req.Name}
	}
	now := p.coll.clock.Now()
	if banner, ok := p.coll.Banner(); ok {
		data["banner"] = map[string]any{
			"status":        banner.Status,
			"message":       banner.Message,
			"expires_at":    FormatExpiry(banner.ExpiresAt),
			"expires_in_ms": remainingMillis(banner.ExpiresAt, now),
		}
	}
	if notice, ok := p.coll.Notice(); ok {
		data["notice"] = map[string]any{
			"kind":          notice.Kind,
			"message":       notice.Message,
			"expires_in_ms": remainingMillis(notice.ExpiresAt, now),
		}
	}
	return data, nil
}

func (p *crudPage[T]) form(action string, id ID, draft T, errs FieldErrors, preview bool) (map[string]any, error) {
	fields := make([]map[string]any, 0, len(p.fields))
	for _, spec := range p.fields {
		value := spec.value(draft)
		field := map[string]any{
			"name":        spec.name,
			"label":       spec.label,
			"type":        spec.kind,
			"value":       value,
			"placeholder": spec.placeholder,
			"error":       errs[spec.name],
		}
		if spec.kind == "checkbox" {
			field["checked"] = value == "true"
		}
		if spec.options != nil {
			options := spec.options()
			views := make([]map[string]any, 0, len(options))
			for _, opt := range options {
				views = append(views, map[string]any{
					"value":    opt.Value,
					"label":    opt.Label,
					"selected": opt.Value == value,
				})
			}
			field["options"] = views
		}
		fields = append(fields, field)
	}
	form := map[string]any{
		"action":      action,
		"id":          id.String(),
		"fields":      fields,
		"has_errors":  len(errs) > 0,
		"has_preview": p.body != nil,
	}
	if preview && p.body != nil {
		html, err := p.markdown(p.body(draft))
		if err != nil {
			return nil, err
		}
		form["preview_html"] = html
		form["preview_open"] = true
	}
	return form, nil
}

// remainingMillis is the client-side countdown for a banner or notice.
func remainingMillis(expires, now time.Time) int64 {
	if d := expires.Sub(now); d > 0 {
		return d.Milliseconds()
	}
	return 0
}

func facetViews(facets []FacetInfo) []map[string]any {
	out := make([]map[string]any, 0, len(facets))
	for _, facet := range facets {
		options := make([]map[string]any, 0, len(facet.Options))
		for _, opt := range facet.Options {
			options = append(options, map[string]any{
				"value":    opt.Value,
				"label":    opt.Label,
				"selected": opt.Value == facet.Selected,
			})
		}
		out = append(out, map[string]any{
			"key":      facet.Key,
			"param":    FacetParam(facet.Key),
			"label":    facet.Label,
			"selected": facet.Selected,
			"options":  options,
		})
	}
	return out
}

// stateFields are hidden inputs that carry the list state through a POST.
func stateFields(filter Filter) []map[string]any {
	values := FilterValues(filter)
	out := make([]map[string]any, 0, len(values))
	for key := range values {
		out = append(out, map[string]any{"name": key, "value": values.Get(key)})
	}
	return out
}

// ordersPage renders the read-only ledger.
type ordersPage struct {
	ledger *OrderLedger
}

func (p *ordersPage) Key() string      { return PageOrders }
func (p *ordersPage) Template() string { return "orders" }

func (p *ordersPage) QueryKeys() []string {
	return []string{ParamSearch, ParamHighlight, FacetParam("status")}
}

func (p *ordersPage) View(_ context.Context, state url.Values) (map[string]any, error) {
	filter := FilterFromValues(state, []string{"status"})
	orders := p.ledger.List(filter)
	highlight := state.Get(ParamHighlight)
	rows := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderView(o, highlight))
	}
	return map[string]any{
		"key":           PageOrders,
		"title":         "Orders",
		"subtitle":      "Daftar transaksi pembayaran",
		"search":        filter.Search,
		"facets":        facetViews(p.ledger.DescribeFacets(filter)),
		"active_facets": ActiveFacetCount(orderFacets, filter),
		"clear_query":   FilterValues(filter.Cleared()).Encode(),
		"rows":          rows,
		"shown":         len(rows),
		"total":         p.ledger.Len(),
		"highlight":     highlight,
	}, nil
}

// overviewPage renders the dashboard landing page.
type overviewPage struct {
	service *Service
}

func (p *overviewPage) Key() string         { return PageDashboard }
func (p *overviewPage) Template() string    { return "overview" }
func (p *overviewPage) QueryKeys() []string { return nil }

func (p *overviewPage) View(ctx context.Context, _ url.Values) (map[string]any, error) {
	ov, err := p.service.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return overviewView(ov), nil
}
