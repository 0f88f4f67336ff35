package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
)

type modalService interface {
	OpenModal(ctx context.Context, viewer console.ViewerContext, code, modal, id string) (console.PageState, error)
	CloseModal(ctx context.Context, viewer console.ViewerContext, code, modal string) (console.PageState, error)
}

// OpenModalInput opens a modal, optionally selecting a record.
type OpenModalInput struct {
	Viewer console.ViewerContext `json:"-"`
	Page   string                `json:"page"`
	Modal  string                `json:"modal"`
	ID     string                `json:"id,omitempty"`
	Result *console.PageState    `json:"-"`
}

// OpenModalCommand opens modals through the console service.
type OpenModalCommand struct {
	service modalService
}

// NewOpenModalCommand creates a command instance. The service records its own
// telemetry for modal opens.
func NewOpenModalCommand(service modalService) *OpenModalCommand {
	return &OpenModalCommand{service: service}
}

var _ gocommand.Commander[OpenModalInput] = (*OpenModalCommand)(nil)

// Execute delegates to the console service.
func (c *OpenModalCommand) Execute(ctx context.Context, msg OpenModalInput) error {
	if c.service == nil {
		return errors.New("open modal command requires service")
	}
	state, err := c.service.OpenModal(ctx, msg.Viewer, msg.Page, msg.Modal, msg.ID)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	return nil
}

// CloseModalInput closes one modal.
type CloseModalInput struct {
	Viewer console.ViewerContext `json:"-"`
	Page   string                `json:"page"`
	Modal  string                `json:"modal"`
	Result *console.PageState    `json:"-"`
}

// CloseModalCommand closes modals through the console service.
type CloseModalCommand struct {
	service   modalService
	telemetry Telemetry
}

// NewCloseModalCommand creates a command instance.
func NewCloseModalCommand(service modalService, telemetry Telemetry) *CloseModalCommand {
	return &CloseModalCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseModalInput] = (*CloseModalCommand)(nil)

// Execute delegates to the console service.
func (c *CloseModalCommand) Execute(ctx context.Context, msg CloseModalInput) error {
	if c.service == nil {
		return errors.New("close modal command requires service")
	}
	state, err := c.service.CloseModal(ctx, msg.Viewer, msg.Page, msg.Modal)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "console.modal.close", map[string]any{
		"page":  msg.Page,
		"modal": msg.Modal,
	})
	return nil
}
