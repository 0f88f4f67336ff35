package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
)

type listingService interface {
	UpdateListing(ctx context.Context, viewer console.ViewerContext, code string, update console.ListingUpdate) (console.PageState, error)
}

// UpdateListingInput changes paging, table options or the recycle bin toggle.
type UpdateListingInput struct {
	Viewer console.ViewerContext `json:"-"`
	Page   string                `json:"page"`
	Update console.ListingUpdate `json:"update"`
	Result *console.PageState    `json:"-"`
}

// UpdateListingCommand applies listing updates.
type UpdateListingCommand struct {
	service   listingService
	telemetry Telemetry
}

// NewUpdateListingCommand creates a command instance.
func NewUpdateListingCommand(service listingService, telemetry Telemetry) *UpdateListingCommand {
	return &UpdateListingCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateListingInput] = (*UpdateListingCommand)(nil)

// Execute delegates to the console service.
func (c *UpdateListingCommand) Execute(ctx context.Context, msg UpdateListingInput) error {
	if c.service == nil {
		return errors.New("update listing command requires service")
	}
	state, err := c.service.UpdateListing(ctx, msg.Viewer, msg.Page, msg.Update)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "console.listing.update", map[string]any{
		"page":      msg.Page,
		"list_page": state.ListPage,
		"deleted":   state.Deleted,
	})
	return nil
}
