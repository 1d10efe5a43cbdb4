package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
	"github.com/goliatone/go-notify-admin/components/admin/commands"
	"github.com/goliatone/go-notify-admin/components/admin/queries"
)

// Executor is the transport-neutral JSON API shared by net/http and go-router.
type Executor interface {
	Collections() []string
	FacetKeys(ctx context.Context, collection string) []string
	List(ctx context.Context, collection string, filter admin.Filter) (any, error)
	Get(ctx context.Context, collection string, id admin.ID) (any, error)
	Create(ctx context.Context, collection string, payload []byte) (any, error)
	Update(ctx context.Context, collection string, id admin.ID, payload []byte) (any, error)
	Delete(ctx context.Context, collection string, id admin.ID) error
	Orders(ctx context.Context, filter admin.Filter) (queries.OrdersResult, error)
	Feed(ctx context.Context) ([]admin.FeedItem, error)
	Overview(ctx context.Context) (admin.Overview, error)
	Preview(ctx context.Context, body string) (string, error)
	Reset(ctx context.Context) error
}

// API implements Executor over shared commands and queries.
type API struct {
	resources map[string]resource
	orders    gocommand.Querier[queries.ListInput, queries.OrdersResult]
	feed      gocommand.Querier[queries.FeedInput, []admin.FeedItem]
	overview  gocommand.Querier[queries.OverviewInput, admin.Overview]
	preview   gocommand.Commander[commands.PreviewMarkdownInput]
	reset     gocommand.Commander[commands.ResetInput]
	broadcast *admin.BroadcastHook
}

var _ Executor = (*API)(nil)

// Options configures New.
type Options struct {
	Telemetry commands.Telemetry
	// Broadcast enables /api/events and /ws on Handler.
	Broadcast *admin.BroadcastHook
}

// New exposes every collection of the service. Resource names follow the
// page routes: channels, payments, categories, templates, users.
func New(service *admin.Service, opts Options) *API {
	api := &API{
		resources: map[string]resource{},
		orders:    queries.NewOrdersQuery(service.Orders()),
		feed:      queries.NewFeedQuery(service),
		overview:  queries.NewOverviewQuery(service),
		preview:   commands.NewPreviewMarkdownCommand(service),
		reset:     commands.NewResetCommand(service, opts.Telemetry),
		broadcast: opts.Broadcast,
	}
	Mount(api, admin.PageChannels, CollectionResource(service.Channels(), opts.Telemetry))
	Mount(api, admin.PagePayments, CollectionResource(service.Payments(), opts.Telemetry))
	Mount(api, admin.PageCategories, CollectionResource(service.Categories(), opts.Telemetry))
	Mount(api, admin.PageTemplates, CollectionResource(service.Templates(), opts.Telemetry))
	Mount(api, admin.PageUsers, CollectionResource(service.Users(), opts.Telemetry))
	return api
}

// Mount registers (or replaces) a resource under name.
func Mount[T any](api *API, name string, r *Resource[T]) {
	if api.resources == nil {
		api.resources = map[string]resource{}
	}
	api.resources[name] = r
}

// Collections lists the mounted resource names.
func (a *API) Collections() []string {
	names := make([]string, 0, len(a.resources))
	for name := range a.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FacetKeys lists the facet keys a collection filters on.
func (a *API) FacetKeys(ctx context.Context, collection string) []string {
	r, err := a.resource(collection)
	if err != nil {
		return nil
	}
	return r.facetKeys(ctx)
}

func (a *API) resource(name string) (resource, error) {
	r, ok := a.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", admin.ErrUnknownCollection, name)
	}
	return r, nil
}

// List filters a collection.
func (a *API) List(ctx context.Context, collection string, filter admin.Filter) (any, error) {
	r, err := a.resource(collection)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, filter)
}

// Get fetches one record.
func (a *API) Get(ctx context.Context, collection string, id admin.ID) (any, error) {
	r, err := a.resource(collection)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

// Create decodes and inserts a record.
func (a *API) Create(ctx context.Context, collection string, payload []byte) (any, error) {
	r, err := a.resource(collection)
	if err != nil {
		return nil, err
	}
	return r.create(ctx, payload)
}

// Update decodes and saves an edit.
func (a *API) Update(ctx context.Context, collection string, id admin.ID, payload []byte) (any, error) {
	r, err := a.resource(collection)
	if err != nil {
		return nil, err
	}
	return r.update(ctx, id, payload)
}

// Delete removes a record.
func (a *API) Delete(ctx context.Context, collection string, id admin.ID) error {
	r, err := a.resource(collection)
	if err != nil {
		return err
	}
	return r.remove(ctx, id)
}

// Orders filters the ledger.
func (a *API) Orders(ctx context.Context, filter admin.Filter) (queries.OrdersResult, error) {
	return a.orders.Query(ctx, queries.ListInput{Filter: filter})
}

// Feed returns the header notifications.
func (a *API) Feed(ctx context.Context) ([]admin.FeedItem, error) {
	return a.feed.Query(ctx, queries.FeedInput{})
}

// Overview returns the dashboard model.
func (a *API) Overview(ctx context.Context) (admin.Overview, error) {
	return a.overview.Query(ctx, queries.OverviewInput{})
}

// Preview renders a markdown body.
func (a *API) Preview(ctx context.Context, body string) (string, error) {
	var html string
	if err := a.preview.Execute(ctx, commands.PreviewMarkdownInput{Body: body, HTML: &html}); err != nil {
		return "", err
	}
	return html, nil
}

// Reset reloads the dataset.
func (a *API) Reset(ctx context.Context) error {
	return a.reset.Execute(ctx, commands.ResetInput{})
}

// PreviewRequest is the body of POST /api/preview.
type PreviewRequest struct {
	Body string `json:"body"`
}

// Handler serves the JSON API, the SSE stream and the websocket.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", a.handleOrders)
	mux.HandleFunc("GET /api/feed", a.handleFeed)
	mux.HandleFunc("GET /api/overview", a.handleOverview)
	mux.HandleFunc("POST /api/preview", a.handlePreview)
	mux.HandleFunc("POST /api/reset", a.handleReset)
	mux.HandleFunc("GET /api/{collection}", a.handleList)
	mux.HandleFunc("POST /api/{collection}", a.handleCreate)
	mux.HandleFunc("GET /api/{collection}/{id}", a.handleGet)
	mux.HandleFunc("PUT /api/{collection}/{id}", a.handleUpdate)
	mux.HandleFunc("DELETE /api/{collection}/{id}", a.handleDelete)
	if a.broadcast != nil {
		mux.HandleFunc("GET /api/events", a.broadcast.ServeSSE)
		mux.HandleFunc("GET /ws", a.broadcast.ServeWebSocket)
	}
	return mux
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	result, err := a.List(r.Context(), r.PathValue("collection"), admin.FilterFromQuery(r.URL.Query()))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	result, err := a.Get(r.Context(), r.PathValue("collection"), admin.ParseID(r.PathValue("id")))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	result, err := a.Create(r.Context(), r.PathValue("collection"), payload)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	result, err := a.Update(r.Context(), r.PathValue("collection"), admin.ParseID(r.PathValue("id")), payload)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Delete(r.Context(), r.PathValue("collection"), admin.ParseID(r.PathValue("id"))); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleOrders(w http.ResponseWriter, r *http.Request) {
	result, err := a.Orders(r.Context(), admin.FilterFromQuery(r.URL.Query()))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleFeed(w http.ResponseWriter, r *http.Request) {
	items, err := a.Feed(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (a *API) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := a.Overview(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (a *API) handlePreview(w http.ResponseWriter, r *http.Request) {
	var payload PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	html, err := a.Preview(r.Context(), payload.Body)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := a.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	if _, ok := admin.AsValidationError(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, admin.ErrNotFound), errors.Is(err, admin.ErrUnknownCollection), errors.Is(err, admin.ErrUnknownPage):
		return http.StatusNotFound
	case errors.Is(err, admin.ErrNoPendingDelete), errors.Is(err, admin.ErrUnknownAction):
		return http.StatusConflict
	case errors.Is(err, admin.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorPayload is the JSON body of an error response.
func ErrorPayload(err error) map[string]any {
	payload := map[string]any{"error": err.Error()}
	if verr, ok := admin.AsValidationError(err); ok {
		payload["fields"] = verr.Fields
	}
	return payload
}

// WriteError writes err with the status from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), ErrorPayload(err))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
