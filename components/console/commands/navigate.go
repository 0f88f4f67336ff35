package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
)

type navigateService interface {
	Navigate(ctx context.Context, viewer console.ViewerContext, from, to string) (console.PageState, error)
}

// NavigateInput moves the viewer from one page to another.
type NavigateInput struct {
	Viewer console.ViewerContext `json:"-"`
	From   string                `json:"from"`
	To     string                `json:"to"`
	Result *console.PageState    `json:"-"`
}

// NavigateCommand discards the state of the page being left.
type NavigateCommand struct {
	service navigateService
}

// NewNavigateCommand creates a command instance.
func NewNavigateCommand(service navigateService) *NavigateCommand {
	return &NavigateCommand{service: service}
}

var _ gocommand.Commander[NavigateInput] = (*NavigateCommand)(nil)

// Execute delegates to the console service.
func (c *NavigateCommand) Execute(ctx context.Context, msg NavigateInput) error {
	if c.service == nil {
		return errors.New("navigate command requires service")
	}
	if msg.To == "" {
		return errors.New("navigate command requires a target page")
	}
	state, err := c.service.Navigate(ctx, msg.Viewer, msg.From, msg.To)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	return nil
}
