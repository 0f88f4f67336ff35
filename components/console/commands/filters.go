package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
)

type filterService interface {
	SetFilter(ctx context.Context, viewer console.ViewerContext, code, key, value string) (console.PageState, error)
	ResetFilters(ctx context.Context, viewer console.ViewerContext, code string) (console.PageState, error)
}

// SetFilterInput sets one filter of a page.
type SetFilterInput struct {
	Viewer console.ViewerContext `json:"-"`
	Page   string                `json:"page"`
	Key    string                `json:"key"`
	Value  string                `json:"value"`
	// Result receives the updated state when set.
	Result *console.PageState `json:"-"`
}

// SetFilterCommand stores a filter value for the viewer.
type SetFilterCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewSetFilterCommand creates a command instance.
func NewSetFilterCommand(service filterService, telemetry Telemetry) *SetFilterCommand {
	return &SetFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetFilterInput] = (*SetFilterCommand)(nil)

// Execute delegates to the console service.
func (c *SetFilterCommand) Execute(ctx context.Context, msg SetFilterInput) error {
	if c.service == nil {
		return errors.New("set filter command requires service")
	}
	state, err := c.service.SetFilter(ctx, msg.Viewer, msg.Page, msg.Key, msg.Value)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "console.filter.set", map[string]any{
		"page": msg.Page,
		"key":  msg.Key,
	})
	return nil
}

// ResetFiltersInput resets every filter of a page.
type ResetFiltersInput struct {
	Viewer console.ViewerContext `json:"-"`
	Page   string                `json:"page"`
	Result *console.PageState    `json:"-"`
}

// ResetFiltersCommand restores the initial filter values.
type ResetFiltersCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewResetFiltersCommand creates a command instance.
func NewResetFiltersCommand(service filterService, telemetry Telemetry) *ResetFiltersCommand {
	return &ResetFiltersCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetFiltersInput] = (*ResetFiltersCommand)(nil)

// Execute delegates to the console service.
func (c *ResetFiltersCommand) Execute(ctx context.Context, msg ResetFiltersInput) error {
	if c.service == nil {
		return errors.New("reset filters command requires service")
	}
	state, err := c.service.ResetFilters(ctx, msg.Viewer, msg.Page)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "console.filter.reset", map[string]any{"page": msg.Page})
	return nil
}
