package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubRenderer struct {
	name string
	data any
	err  error
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	if s.err != nil {
		return "", s.err
	}
	result := fmt.Sprintf("<html>%s</html>", name)
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, result); err != nil {
			return "", err
		}
	}
	return result, nil
}

func newTestController(t *testing.T, basePath string) (*Controller, *Service, *fakeClock, *stubRenderer) {
	t.Helper()
	clock := newFakeClock(testNow)
	service := newTestService(t, clock)
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Logger:   zaptest.NewLogger(t),
		BasePath: basePath,
	})
	return controller, service, clock, renderer
}

func pageBody(t *testing.T, data map[string]any) map[string]any {
	t.Helper()
	body, ok := data["page"].(map[string]any)
	if !ok {
		t.Fatalf("expected page payload, got %T", data["page"])
	}
	return body
}

func TestControllerRendersEveryPage(t *testing.T) {
	controller, _, _, renderer := newTestController(t, "")
	templates := map[string]string{
		PageDashboard:  "overview",
		PageOrders:     "orders",
		PageChannels:   "collection",
		PagePayments:   "collection",
		PageCategories: "collection",
		PageTemplates:  "collection",
		PageUsers:      "collection",
	}

	for _, key := range PageKeys() {
		var buf bytes.Buffer
		err := controller.RenderPage(context.Background(), PageRequest{Page: key}, &buf)
		require.NoError(t, err, key)
		assert.Equal(t, templates[key], renderer.name, key)
		assert.Equal(t, "<html>"+templates[key]+"</html>", buf.String())
	}
}

func TestControllerLayout(t *testing.T) {
	controller, _, _, _ := newTestController(t, "/admin/")

	data, err := controller.PageData(context.Background(), PageRequest{Page: PageUsers})
	require.NoError(t, err)

	assert.Equal(t, SidebarTitle, data["sidebar_title"])
	assert.Equal(t, PageUsers, data["active"])
	assert.Equal(t, "/admin", data["base_path"])
	assert.Equal(t, "/admin/users", data["page_path"])
	assert.Equal(t, 5, data["feed_count"])

	nav := data["nav"].([]map[string]any)
	require.Len(t, nav, 7)
	assert.Equal(t, "/admin", nav[0]["path"])
	for _, item := range nav {
		assert.Equal(t, item["key"] == PageUsers, item["active"], item["key"])
	}
	feed := data["feed"].([]map[string]any)
	assert.Equal(t, "/admin/orders?highlight=ORD-20250405-0006", feed[0]["link"])
	assert.Equal(t, "Rp324.500", feed[0]["total_amount"])
}

func TestControllerUnknownPage(t *testing.T) {
	controller, _, _, _ := newTestController(t, "")
	_, err := controller.PageData(context.Background(), PageRequest{Page: "reports"})
	require.ErrorIs(t, err, ErrUnknownPage)

	_, err = controller.SubmitData(context.Background(), FormRequest{Page: PageOrders, Action: ActionCreate})
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.False(t, controller.AcceptsForms(PageOrders))
	assert.False(t, controller.AcceptsForms(PageDashboard))
	assert.True(t, controller.AcceptsForms(PageTemplates))
}

func TestControllerFiltersFromQuery(t *testing.T) {
	controller, _, _, _ := newTestController(t, "")
	query := url.Values{}
	query.Set(FacetParam("status"), "active")
	query.Set(ParamSearch, "andi")

	data, err := controller.PageData(context.Background(), PageRequest{Page: PageUsers, Query: query})
	require.NoError(t, err)
	body := pageBody(t, data)

	assert.Equal(t, 1, body["shown"])
	assert.Equal(t, 5, body["total"])
	assert.Equal(t, 1, body["active_facets"])
	assert.Equal(t, "andi", body["search"])
	assert.Equal(t, "q=andi", body["clear_query"])
}

func TestControllerCreateFlow(t *testing.T) {
	controller, service, clock, _ := newTestController(t, "")
	ctx := context.Background()

	values := url.Values{"name": {"x"}, "description": {"pendek"}}
	data, err := controller.SubmitData(ctx, FormRequest{Page: PageChannels, Action: ActionCreate, Values: values})
	require.NoError(t, err)
	body := pageBody(t, data)
	form, ok := body["create_form"].(map[string]any)
	require.True(t, ok, "invalid create keeps the form open")
	assert.Equal(t, true, form["has_errors"])
	fields := form["fields"].([]map[string]any)
	assert.Equal(t, "Nama channel minimal 3 karakter", fields[0]["error"])
	assert.Equal(t, "x", fields[0]["value"])
	assert.Equal(t, 4, service.Channels().Len())

	values = url.Values{"name": {"Telegram"}, "description": {"Bot telegram resmi"}}
	data, err = controller.SubmitData(ctx, FormRequest{Page: PageChannels, Action: ActionCreate, Values: values})
	require.NoError(t, err)
	body = pageBody(t, data)
	assert.NotContains(t, body, "create_form")
	assert.Equal(t, "Channel created successfully", body["banner"].(map[string]any)["message"])
	assert.Equal(t, "Channel berhasil dibuat", body["notice"].(map[string]any)["message"])
	rows := body["rows"].([]map[string]any)
	assert.Equal(t, "Telegram", rows[0]["title"])

	clock.Advance(5 * time.Second)
	data, err = controller.PageData(ctx, PageRequest{Page: PageChannels})
	require.NoError(t, err)
	assert.NotContains(t, pageBody(t, data), "banner")
}

func TestControllerFlashCountdownFollowsTimeouts(t *testing.T) {
	clock := newFakeClock(testNow)
	service := NewService(Options{Clock: clock, BannerTimeout: 8 * time.Second, NoticeTimeout: 6 * time.Second})
	require.NoError(t, service.Reset(context.Background()))
	t.Cleanup(service.Close)
	controller := NewController(ControllerOptions{Service: service, Renderer: &stubRenderer{}})
	ctx := context.Background()

	values := url.Values{"name": {"Telegram"}, "description": {"Bot telegram resmi"}}
	data, err := controller.SubmitData(ctx, FormRequest{Page: PageChannels, Action: ActionCreate, Values: values})
	require.NoError(t, err)
	body := pageBody(t, data)
	assert.Equal(t, int64(8000), body["banner"].(map[string]any)["expires_in_ms"])
	assert.Equal(t, int64(6000), body["notice"].(map[string]any)["expires_in_ms"])

	clock.Advance(2 * time.Second)
	data, err = controller.PageData(ctx, PageRequest{Page: PageChannels})
	require.NoError(t, err)
	body = pageBody(t, data)
	assert.Equal(t, int64(6000), body["banner"].(map[string]any)["expires_in_ms"])
	assert.Equal(t, int64(4000), body["notice"].(map[string]any)["expires_in_ms"])
}

func TestControllerEditFlow(t *testing.T) {
	controller, service, _, _ := newTestController(t, "")
	ctx := context.Background()

	data, err := controller.SubmitData(ctx, FormRequest{Page: PageUsers, Action: ActionEdit, ID: "202"})
	require.NoError(t, err)
	row := findRow(t, pageBody(t, data), "202")
	assert.Equal(t, true, row["editing"])

	values := url.Values{"name": {"Siti R."}, "email": {"andi.pratama@gmail.com"}, "phone": {"0812"}}
	data, err = controller.SubmitData(ctx, FormRequest{Page: PageUsers, Action: ActionSave, ID: "202", Values: values})
	require.NoError(t, err)
	row = findRow(t, pageBody(t, data), "202")
	form := row["form"].(map[string]any)
	fields := form["fields"].([]map[string]any)
	assert.Equal(t, "Email sudah digunakan", fields[1]["error"])

	values.Set("email", "siti@yahoo.com")
	_, err = controller.SubmitData(ctx, FormRequest{Page: PageUsers, Action: ActionSave, ID: "202", Values: values})
	require.NoError(t, err)
	user, _ := service.Users().Get("202")
	assert.Equal(t, "Siti R.", user.Name)
	assert.Empty(t, service.Users().Editing())
}

func TestControllerEditQueryIsReadOnly(t *testing.T) {
	controller, service, _, _ := newTestController(t, "")
	ctx := context.Background()
	query := url.Values{ParamEdit: {"202"}}

	for range 5 {
		data, err := controller.PageData(ctx, PageRequest{Page: PageUsers, Query: query})
		require.NoError(t, err)
		row := findRow(t, pageBody(t, data), "202")
		assert.Equal(t, true, row["editing"])
	}
	assert.Empty(t, service.Users().Editing())

	_, err := controller.SubmitData(ctx, FormRequest{Page: PageUsers, Action: ActionEdit, ID: "202"})
	require.NoError(t, err)
	_, err = controller.SubmitData(ctx, FormRequest{Page: PageUsers, Action: ActionCancelEdit, ID: "202"})
	require.NoError(t, err)
	assert.Empty(t, service.Users().Editing())

	_, err = controller.PageData(ctx, PageRequest{Page: PageUsers, Query: url.Values{ParamEdit: {"404"}}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestControllerDeleteFlow(t *testing.T) {
	controller, service, _, _ := newTestController(t, "")
	ctx := context.Background()

	data, err := controller.SubmitData(ctx, FormRequest{Page: PagePayments, Action: ActionDelete, ID: "303"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "303", "name": "QRIS"}, pageBody(t, data)["delete"])

	_, err = controller.SubmitData(ctx, FormRequest{Page: PagePayments, Action: ActionCancelDelete})
	require.NoError(t, err)
	_, err = controller.SubmitData(ctx, FormRequest{Page: PagePayments, Action: ActionConfirmDelete, ID: "303"})
	require.ErrorIs(t, err, ErrNoPendingDelete)

	_, err = controller.SubmitData(ctx, FormRequest{Page: PagePayments, Action: ActionDelete, ID: "303"})
	require.NoError(t, err)
	data, err = controller.SubmitData(ctx, FormRequest{Page: PagePayments, Action: ActionConfirmDelete, ID: "303"})
	require.NoError(t, err)
	assert.NotContains(t, pageBody(t, data), "delete")
	assert.Equal(t, 3, service.Payments().Len())

	_, err = controller.SubmitData(ctx, FormRequest{Page: PagePayments, Action: "explode"})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestControllerTemplatePreview(t *testing.T) {
	controller, _, _, _ := newTestController(t, "")
	ctx := context.Background()

	data, err := controller.PageData(ctx, PageRequest{Page: PageTemplates, Query: url.Values{ParamPreview: {"102"}}})
	require.NoError(t, err)
	row := findRow(t, pageBody(t, data), "102")
	assert.Equal(t, true, row["preview_open"])
	assert.Contains(t, row["preview_html"], "<code")

	values := url.Values{"template_name": {"Baru"}, "body": {"**tebal**"}}
	data, err = controller.SubmitData(ctx, FormRequest{Page: PageTemplates, Action: ActionPreview, Values: values})
	require.NoError(t, err)
	form := pageBody(t, data)["create_form"].(map[string]any)
	assert.Equal(t, true, form["preview_open"])
	assert.Contains(t, form["preview_html"], "<strong")

	values.Set(ParamCreatePreview, "1")
	data, err = controller.SubmitData(ctx, FormRequest{Page: PageTemplates, Action: ActionPreview, Values: values})
	require.NoError(t, err)
	form = pageBody(t, data)["create_form"].(map[string]any)
	assert.NotContains(t, form, "preview_html", "second toggle closes the preview")
}

func TestControllerOrdersHighlight(t *testing.T) {
	controller, _, _, _ := newTestController(t, "")
	query := url.Values{ParamHighlight: {"ORD-20250402-0003"}, FacetParam("status"): {"failed"}}

	data, err := controller.PageData(context.Background(), PageRequest{Page: PageOrders, Query: query})
	require.NoError(t, err)
	body := pageBody(t, data)
	rows := body["rows"].([]map[string]any)
	require.Len(t, rows, 1)
	assert.Equal(t, true, rows[0]["highlighted"])
	assert.Equal(t, "Gagal", rows[0]["status_label"])
	assert.Equal(t, "Rp100.000", rows[0]["total_amount"])
}

func TestControllerOverview(t *testing.T) {
	controller, _, _, _ := newTestController(t, "")
	data, err := controller.PageData(context.Background(), PageRequest{Page: PageDashboard})
	require.NoError(t, err)
	body := pageBody(t, data)

	stats := body["stats"].([]map[string]any)
	assert.Equal(t, "15.000", stats[7]["value"])
	assert.NotEmpty(t, body["chart_html"])
}

func TestControllerRenderErrors(t *testing.T) {
	controller, _, _, renderer := newTestController(t, "")
	renderer.err = errors.New("template missing")

	err := controller.RenderPage(context.Background(), PageRequest{Page: PageUsers}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render users")

	bare := NewController(ControllerOptions{})
	_, err = bare.PageData(context.Background(), PageRequest{Page: PageUsers})
	require.Error(t, err)
}

func TestNavigation(t *testing.T) {
	assert.Equal(t, []string{"dashboard", "channels", "payments", "categories", "templates", "users", "orders"}, PageKeys())

	path, ok := PagePath(PageOrders)
	require.True(t, ok)
	assert.Equal(t, "/orders", path)
}

func findRow(t *testing.T, body map[string]any, id string) map[string]any {
	t.Helper()
	for _, row := range body["rows"].([]map[string]any) {
		if row["id"] == id {
			return row
		}
	}
	t.Fatalf("row %s not found", id)
	return nil
}
