package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-billing-console/components/console"
)

type mutateService interface {
	Mutate(ctx context.Context, viewer console.ViewerContext, code string, req console.MutationRequest) (console.MutationResult, error)
}

// MutateInput forwards a mutation to a page backend.
type MutateInput struct {
	Viewer console.ViewerContext `json:"-"`
	Page   string                `json:"page"`
	console.MutationRequest
	// RequestID correlates telemetry; generated when empty.
	RequestID string                  `json:"request_id,omitempty"`
	Result    *console.MutationResult `json:"-"`
}

// MutateCommand runs create, update, delete and restore actions.
type MutateCommand struct {
	service   mutateService
	telemetry Telemetry
}

// NewMutateCommand creates a command instance.
func NewMutateCommand(service mutateService, telemetry Telemetry) *MutateCommand {
	return &MutateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MutateInput] = (*MutateCommand)(nil)

// Execute delegates to the console service.
func (c *MutateCommand) Execute(ctx context.Context, msg MutateInput) error {
	if c.service == nil {
		return errors.New("mutate command requires service")
	}
	if msg.Action == "" {
		return errors.New("mutate command requires an action")
	}
	if msg.RequestID == "" {
		msg.RequestID = uuid.NewString()
	}
	result, err := c.service.Mutate(ctx, msg.Viewer, msg.Page, msg.MutationRequest)
	if err != nil {
		c.telemetry.Record(ctx, "console.command.mutate_error", map[string]any{
			"page":       msg.Page,
			"action":     msg.Action,
			"request_id": msg.RequestID,
		})
		return err
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	c.telemetry.Record(ctx, "console.command.mutate", map[string]any{
		"page":       msg.Page,
		"action":     msg.Action,
		"affected":   result.Affected,
		"request_id": msg.RequestID,
	})
	return nil
}
