package commands

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/goliatone/go-notify-admin/components/admin"
)

func newFormController(t *testing.T, telemetry Telemetry) (*admin.Controller, *admin.Service) {
	t.Helper()
	service := admin.NewService(admin.Options{})
	if err := service.Reset(context.Background()); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	t.Cleanup(service.Close)
	controller := admin.NewController(admin.ControllerOptions{
		Service: service,
		Actions: NewPageActions(service, telemetry),
	})
	return controller, service
}

func TestPageActionsRecordEveryFormMutation(t *testing.T) {
	telemetry := &stubTelemetry{}
	controller, service := newFormController(t, telemetry)
	ctx := context.Background()

	submit := func(page, action string, id admin.ID, values url.Values) map[string]any {
		t.Helper()
		data, err := controller.SubmitData(ctx, admin.FormRequest{Page: page, Action: action, ID: id, Values: values})
		if err != nil {
			t.Fatalf("%s %s returned error: %v", page, action, err)
		}
		return data
	}

	submit(admin.PageChannels, admin.ActionCreate, "", url.Values{"name": {"Telegram"}, "description": {"Bot telegram resmi"}})
	if service.Channels().Len() != 5 {
		t.Fatalf("expected 5 channels, got %d", service.Channels().Len())
	}

	submit(admin.PageUsers, admin.ActionEdit, "202", nil)
	if got := service.Users().Editing(); len(got) != 1 || got[0] != "202" {
		t.Fatalf("expected draft for 202, got %v", got)
	}
	submit(admin.PageUsers, admin.ActionCancelEdit, "202", nil)
	if got := service.Users().Editing(); len(got) != 0 {
		t.Fatalf("expected no drafts, got %v", got)
	}
	submit(admin.PageUsers, admin.ActionEdit, "202", nil)
	submit(admin.PageUsers, admin.ActionSave, "202", url.Values{"name": {"Siti R."}, "email": {"siti@yahoo.com"}, "phone": {"0812"}})

	submit(admin.PagePayments, admin.ActionDelete, "303", nil)
	submit(admin.PagePayments, admin.ActionCancelDelete, "", nil)
	if _, open := service.Payments().PendingDelete(); open {
		t.Fatalf("expected dialog to be closed")
	}
	submit(admin.PagePayments, admin.ActionDelete, "303", nil)
	submit(admin.PagePayments, admin.ActionConfirmDelete, "303", nil)
	if service.Payments().Len() != 3 {
		t.Fatalf("expected 3 payments, got %d", service.Payments().Len())
	}

	want := []string{"admin.record.create", "admin.record.update", "admin.record.delete"}
	if !reflect.DeepEqual(telemetry.events, want) {
		t.Fatalf("expected %v, got %v", want, telemetry.events)
	}
}

func TestPageActionsKeepValidationErrorsOnForm(t *testing.T) {
	telemetry := &stubTelemetry{}
	controller, service := newFormController(t, telemetry)

	data, err := controller.SubmitData(context.Background(), admin.FormRequest{
		Page:   admin.PageChannels,
		Action: admin.ActionCreate,
		Values: url.Values{"name": {"x"}, "description": {"pendek"}},
	})
	if err != nil {
		t.Fatalf("SubmitData returned error: %v", err)
	}
	body := data["page"].(map[string]any)
	if _, ok := body["create_form"]; !ok {
		t.Fatalf("expected create form to stay open")
	}
	if service.Channels().Len() != 4 || telemetry.calls != 0 {
		t.Fatalf("expected no mutation, got %d channels and %d events", service.Channels().Len(), telemetry.calls)
	}

	_, err = controller.SubmitData(context.Background(), admin.FormRequest{Page: admin.PageUsers, Action: admin.ActionEdit, ID: "999"})
	if !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
