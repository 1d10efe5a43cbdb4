package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-notify-admin/components/admin"
	"github.com/goliatone/go-notify-admin/components/admin/httpapi"
)

// Config wires go-router with the admin controller, JSON API and live events.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *admin.Controller
	API        httpapi.Executor
	Broadcast  *admin.BroadcastHook
	// BasePath mounts every route under a prefix; empty mounts at the root.
	BasePath string
	Routes   RouteConfig
}

// RouteConfig customizes the relative paths of the non-page endpoints.
type RouteConfig struct {
	API       string
	WebSocket string
}

// Register mounts the seven pages (GET and form POST), the JSON API and the
// websocket on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	group := cfg.Router.Group(strings.TrimRight(cfg.BasePath, "/"))

	for _, item := range admin.Navigation() {
		registerPage(group, cfg.Controller, item.Key, item.Path)
	}

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes.API)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerPage[T any](r router.Router[T], controller *admin.Controller, key, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		query := url.Values{}
		for _, name := range controller.QueryKeys(key) {
			if v := ctx.Query(name); v != "" {
				query.Set(name, v)
			}
		}
		var buf bytes.Buffer
		if err := controller.RenderPage(ctx.Context(), admin.PageRequest{Page: key, Query: query}, &buf); err != nil {
			return respondError(ctx, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))

	if !controller.AcceptsForms(key) {
		return
	}
	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		values, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, errors.Join(httpapi.ErrBadRequest, err))
		}
		req := admin.FormRequest{
			Page:   key,
			Action: admin.FormAction(values),
			ID:     admin.ParseID(values.Get(admin.ParamID)),
			Values: values,
		}
		var buf bytes.Buffer
		if err := controller.Submit(ctx.Context(), req, &buf); err != nil {
			return respondError(ctx, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, base string) {
	r.Get(base+"/orders", router.WrapHandler(func(ctx router.Context) error {
		result, err := api.Orders(ctx.Context(), filterFromContext(ctx, "status"))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Get(base+"/feed", router.WrapHandler(func(ctx router.Context) error {
		items, err := api.Feed(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"items": items, "count": len(items)})
	}))

	r.Get(base+"/overview", router.WrapHandler(func(ctx router.Context) error {
		ov, err := api.Overview(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, ov)
	}))

	r.Post(base+"/preview", router.WrapHandler(func(ctx router.Context) error {
		var payload httpapi.PreviewRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, errors.Join(httpapi.ErrBadRequest, err))
		}
		html, err := api.Preview(ctx.Context(), payload.Body)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"html": html})
	}))

	r.Post(base+"/reset", router.WrapHandler(func(ctx router.Context) error {
		if err := api.Reset(ctx.Context()); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))

	for _, name := range api.Collections() {
		registerResource(r, api, base+"/"+name, name)
	}
}

func registerResource[T any](r router.Router[T], api httpapi.Executor, path, name string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		result, err := api.List(ctx.Context(), name, filterFromContext(ctx, api.FacetKeys(ctx.Context(), name)...))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		result, err := api.Create(ctx.Context(), name, ctx.Body())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, result)
	}))

	r.Get(path+"/:id", router.WrapHandler(func(ctx router.Context) error {
		result, err := api.Get(ctx.Context(), name, admin.ParseID(ctx.Param("id")))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Put(path+"/:id", router.WrapHandler(func(ctx router.Context) error {
		result, err := api.Update(ctx.Context(), name, admin.ParseID(ctx.Param("id")), ctx.Body())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Delete(path+"/:id", router.WrapHandler(func(ctx router.Context) error {
		if err := api.Delete(ctx.Context(), name, admin.ParseID(ctx.Param("id"))); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))
}

func filterFromContext(ctx router.Context, keys ...string) admin.Filter {
	values := url.Values{}
	if q := ctx.Query(admin.ParamSearch); q != "" {
		values.Set(admin.ParamSearch, q)
	}
	for _, key := range keys {
		param := admin.FacetParam(key)
		if v := ctx.Query(param); v != "" {
			values.Set(param, v)
		}
	}
	return admin.FilterFromQuery(values)
}

func registerWebSocket[T any](r router.Router[T], hook *admin.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		defer ws.Close()
		return hook.Stream(ws.Context(), ws.ReadMessage, ws.WriteJSON)
	})
}

func sendHTML(ctx router.Context, body []byte) error {
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(body)
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(httpapi.StatusFor(err), httpapi.ErrorPayload(err))
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.API == "" {
		routes.API = "/api"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
