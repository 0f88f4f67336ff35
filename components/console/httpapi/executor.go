package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/components/console/commands"
	"github.com/goliatone/go-billing-console/components/console/queries"
)

// Executor is what transports need from the console: reads and commands with
// their results.
type Executor interface {
	Page(ctx context.Context, in queries.PageInput) (console.PageView, error)
	State(ctx context.Context, in queries.PageInput) (console.PageState, error)
	Menu(ctx context.Context, viewer console.ViewerContext) ([]console.MenuItem, error)
	SetFilter(ctx context.Context, in commands.SetFilterInput) (console.PageState, error)
	ResetFilters(ctx context.Context, in commands.ResetFiltersInput) (console.PageState, error)
	UpdateListing(ctx context.Context, in commands.UpdateListingInput) (console.PageState, error)
	OpenModal(ctx context.Context, in commands.OpenModalInput) (console.PageState, error)
	CloseModal(ctx context.Context, in commands.CloseModalInput) (console.PageState, error)
	Navigate(ctx context.Context, in commands.NavigateInput) (console.PageState, error)
	Mutate(ctx context.Context, in commands.MutateInput) (console.MutationResult, error)
}

// CommandExecutor bundles the shared commands and queries behind Executor.
type CommandExecutor struct {
	PageQuery     gocommand.Querier[queries.PageInput, console.PageView]
	StateQuery    gocommand.Querier[queries.PageInput, console.PageState]
	MenuQuery     gocommand.Querier[console.ViewerContext, []console.MenuItem]
	SetFilterCmd  gocommand.Commander[commands.SetFilterInput]
	ResetCmd      gocommand.Commander[commands.ResetFiltersInput]
	ListingCmd    gocommand.Commander[commands.UpdateListingInput]
	OpenModalCmd  gocommand.Commander[commands.OpenModalInput]
	CloseModalCmd gocommand.Commander[commands.CloseModalInput]
	NavigateCmd   gocommand.Commander[commands.NavigateInput]
	MutateCmd     gocommand.Commander[commands.MutateInput]
}

// NewCommandExecutor wires every command and query to the service.
func NewCommandExecutor(service *console.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		PageQuery:     queries.NewPageQuery(service),
		StateQuery:    queries.NewStateQuery(service),
		MenuQuery:     queries.NewMenuQuery(service),
		SetFilterCmd:  commands.NewSetFilterCommand(service, telemetry),
		ResetCmd:      commands.NewResetFiltersCommand(service, telemetry),
		ListingCmd:    commands.NewUpdateListingCommand(service, telemetry),
		OpenModalCmd:  commands.NewOpenModalCommand(service),
		CloseModalCmd: commands.NewCloseModalCommand(service, telemetry),
		NavigateCmd:   commands.NewNavigateCommand(service),
		MutateCmd:     commands.NewMutateCommand(service, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

var errNotConfigured = errors.New("httpapi: executor is not configured for this operation")

// Page renders a page.
func (e *CommandExecutor) Page(ctx context.Context, in queries.PageInput) (console.PageView, error) {
	if e.PageQuery == nil {
		return console.PageView{}, errNotConfigured
	}
	return e.PageQuery.Query(ctx, in)
}

// State loads a page state.
func (e *CommandExecutor) State(ctx context.Context, in queries.PageInput) (console.PageState, error) {
	if e.StateQuery == nil {
		return console.PageState{}, errNotConfigured
	}
	return e.StateQuery.Query(ctx, in)
}

// Menu lists navigation entries.
func (e *CommandExecutor) Menu(ctx context.Context, viewer console.ViewerContext) ([]console.MenuItem, error) {
	if e.MenuQuery == nil {
		return nil, errNotConfigured
	}
	return e.MenuQuery.Query(ctx, viewer)
}

// SetFilter runs the set filter command.
func (e *CommandExecutor) SetFilter(ctx context.Context, in commands.SetFilterInput) (console.PageState, error) {
	var state console.PageState
	in.Result = &state
	if err := execute(ctx, e.SetFilterCmd, in); err != nil {
		return console.PageState{}, err
	}
	return state, nil
}

// ResetFilters runs the reset filters command.
func (e *CommandExecutor) ResetFilters(ctx context.Context, in commands.ResetFiltersInput) (console.PageState, error) {
	var state console.PageState
	in.Result = &state
	if err := execute(ctx, e.ResetCmd, in); err != nil {
		return console.PageState{}, err
	}
	return state, nil
}

// UpdateListing runs the listing command.
func (e *CommandExecutor) UpdateListing(ctx context.Context, in commands.UpdateListingInput) (console.PageState, error) {
	var state console.PageState
	in.Result = &state
	if err := execute(ctx, e.ListingCmd, in); err != nil {
		return console.PageState{}, err
	}
	return state, nil
}

// OpenModal runs the open modal command.
func (e *CommandExecutor) OpenModal(ctx context.Context, in commands.OpenModalInput) (console.PageState, error) {
	var state console.PageState
	in.Result = &state
	if err := execute(ctx, e.OpenModalCmd, in); err != nil {
		return console.PageState{}, err
	}
	return state, nil
}

// CloseModal runs the close modal command.
func (e *CommandExecutor) CloseModal(ctx context.Context, in commands.CloseModalInput) (console.PageState, error) {
	var state console.PageState
	in.Result = &state
	if err := execute(ctx, e.CloseModalCmd, in); err != nil {
		return console.PageState{}, err
	}
	return state, nil
}

// Navigate runs the navigate command.
func (e *CommandExecutor) Navigate(ctx context.Context, in commands.NavigateInput) (console.PageState, error) {
	var state console.PageState
	in.Result = &state
	if err := execute(ctx, e.NavigateCmd, in); err != nil {
		return console.PageState{}, err
	}
	return state, nil
}

// Mutate runs the mutate command.
func (e *CommandExecutor) Mutate(ctx context.Context, in commands.MutateInput) (console.MutationResult, error) {
	var result console.MutationResult
	in.Result = &result
	if err := execute(ctx, e.MutateCmd, in); err != nil {
		return console.MutationResult{}, err
	}
	return result, nil
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errNotConfigured
	}
	return cmd.Execute(ctx, msg)
}
