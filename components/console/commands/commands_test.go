package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-billing-console/components/console"
)

type stubService struct {
	calls    []string
	lastPage string
	lastKey  string
	lastID   string
	from, to string
	update   console.ListingUpdate
	request  console.MutationRequest
	err      error
}

func (s *stubService) state(page string) console.PageState {
	state := console.NewPageState(page)
	state.ListPage = 2
	return state
}

func (s *stubService) SetFilter(_ context.Context, _ console.ViewerContext, code, key, _ string) (console.PageState, error) {
	s.calls = append(s.calls, "set_filter")
	s.lastPage, s.lastKey = code, key
	return s.state(code), s.err
}

func (s *stubService) ResetFilters(_ context.Context, _ console.ViewerContext, code string) (console.PageState, error) {
	s.calls = append(s.calls, "reset_filters")
	s.lastPage = code
	return s.state(code), s.err
}

func (s *stubService) UpdateListing(_ context.Context, _ console.ViewerContext, code string, update console.ListingUpdate) (console.PageState, error) {
	s.calls = append(s.calls, "update_listing")
	s.lastPage, s.update = code, update
	return s.state(code), s.err
}

func (s *stubService) OpenModal(_ context.Context, _ console.ViewerContext, code, _, id string) (console.PageState, error) {
	s.calls = append(s.calls, "open_modal")
	s.lastPage, s.lastID = code, id
	return s.state(code), s.err
}

func (s *stubService) CloseModal(_ context.Context, _ console.ViewerContext, code, _ string) (console.PageState, error) {
	s.calls = append(s.calls, "close_modal")
	s.lastPage = code
	return s.state(code), s.err
}

func (s *stubService) Navigate(_ context.Context, _ console.ViewerContext, from, to string) (console.PageState, error) {
	s.calls = append(s.calls, "navigate")
	s.from, s.to = from, to
	return s.state(to), s.err
}

func (s *stubService) Mutate(_ context.Context, _ console.ViewerContext, code string, req console.MutationRequest) (console.MutationResult, error) {
	s.calls = append(s.calls, "mutate")
	s.lastPage, s.request = code, req
	if s.err != nil {
		return console.MutationResult{}, s.err
	}
	return console.MutationResult{Action: req.Action, ID: req.ID, Affected: 1}, nil
}

type stubTelemetry struct {
	events   []string
	payloads []map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.events = append(s.events, event)
	s.payloads = append(s.payloads, payload)
}

func TestSetFilterCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	var state console.PageState
	cmd := NewSetFilterCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), SetFilterInput{Page: "users", Key: "role", Value: "admin", Result: &state}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.lastPage != "users" || service.lastKey != "role" {
		t.Fatalf("expected page and key propagation, got %q %q", service.lastPage, service.lastKey)
	}
	if state.ListPage != 2 {
		t.Fatalf("expected result to be populated")
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "console.filter.set" {
		t.Fatalf("unexpected telemetry %v", telemetry.events)
	}
}

func TestSetFilterCommandPropagatesErrors(t *testing.T) {
	service := &stubService{err: console.ErrUnknownFilter}
	telemetry := &stubTelemetry{}
	err := NewSetFilterCommand(service, telemetry).Execute(context.Background(), SetFilterInput{Page: "users", Key: "plan"})
	if !errors.Is(err, console.ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
	if len(telemetry.events) != 0 {
		t.Fatalf("expected no telemetry on failure")
	}
}

func TestResetFiltersCommand(t *testing.T) {
	service := &stubService{}
	if err := NewResetFiltersCommand(service, nil).Execute(context.Background(), ResetFiltersInput{Page: "coupons"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.calls[0] != "reset_filters" || service.lastPage != "coupons" {
		t.Fatalf("expected reset on coupons, got %v %q", service.calls, service.lastPage)
	}
}

func TestUpdateListingCommand(t *testing.T) {
	service := &stubService{}
	deleted := true
	input := UpdateListingInput{Page: "users", Update: console.ListingUpdate{Deleted: &deleted}}
	if err := NewUpdateListingCommand(service, nil).Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.update.Deleted == nil || !*service.update.Deleted {
		t.Fatalf("expected deleted toggle propagation")
	}
}

func TestModalCommands(t *testing.T) {
	service := &stubService{}
	var state console.PageState
	if err := NewOpenModalCommand(service).Execute(context.Background(), OpenModalInput{Page: "plans", Modal: console.ModalEdit, ID: "p1", Result: &state}); err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if service.lastID != "p1" || state.Page != "plans" {
		t.Fatalf("expected selection propagation, got %q %q", service.lastID, state.Page)
	}
	if err := NewCloseModalCommand(service, nil).Execute(context.Background(), CloseModalInput{Page: "plans", Modal: console.ModalEdit}); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if len(service.calls) != 2 || service.calls[1] != "close_modal" {
		t.Fatalf("unexpected calls %v", service.calls)
	}
}

func TestNavigateCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewNavigateCommand(service)
	if err := cmd.Execute(context.Background(), NavigateInput{From: "coupons"}); err == nil {
		t.Fatalf("expected error without a target page")
	}
	if err := cmd.Execute(context.Background(), NavigateInput{From: "coupons", To: "users"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.from != "coupons" || service.to != "users" {
		t.Fatalf("unexpected navigation %q -> %q", service.from, service.to)
	}
}

func TestMutateCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	var result console.MutationResult
	input := MutateInput{
		Page:            "coupons",
		MutationRequest: console.MutationRequest{Action: console.MutationSoftDelete, ID: "c1"},
		Result:          &result,
	}
	if err := NewMutateCommand(service, telemetry).Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Affected != 1 || service.request.ID != "c1" {
		t.Fatalf("unexpected result %+v", result)
	}
	if telemetry.events[0] != "console.command.mutate" {
		t.Fatalf("unexpected telemetry %v", telemetry.events)
	}
	if id, _ := telemetry.payloads[0]["request_id"].(string); id == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestMutateCommandRecordsFailures(t *testing.T) {
	service := &stubService{err: console.ErrActionNotAllowed}
	telemetry := &stubTelemetry{}
	input := MutateInput{Page: "events", RequestID: "req-1", MutationRequest: console.MutationRequest{Action: console.MutationCreate}}
	err := NewMutateCommand(service, telemetry).Execute(context.Background(), input)
	if !errors.Is(err, console.ErrActionNotAllowed) {
		t.Fatalf("expected ErrActionNotAllowed, got %v", err)
	}
	if telemetry.events[0] != "console.command.mutate_error" || telemetry.payloads[0]["request_id"] != "req-1" {
		t.Fatalf("unexpected telemetry %v %v", telemetry.events, telemetry.payloads)
	}
	if err := NewMutateCommand(service, nil).Execute(context.Background(), MutateInput{Page: "events"}); err == nil {
		t.Fatalf("expected error without an action")
	}
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	if err := NewSetFilterCommand(nil, nil).Execute(ctx, SetFilterInput{}); err == nil {
		t.Fatalf("expected set filter error")
	}
	if err := NewMutateCommand(nil, nil).Execute(ctx, MutateInput{}); err == nil {
		t.Fatalf("expected mutate error")
	}
}
