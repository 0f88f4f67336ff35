package console

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errMissingPageCode = errors.New("console: page code is required")

// Options configures the console Service. Collaborators are interfaces so
// hosts can swap the state store, validator or refresh fan-out.
type Options struct {
	Registry      *Registry
	StateStore    StateStore
	Validator     PayloadValidator
	RefreshHook   RefreshHook
	Telemetry     Telemetry
	Charts        *ChartRenderer
	Translator    TranslationService
	Currency      string
	DefaultLocale string
}

// Service orchestrates pages, their per-viewer state and backend mutations.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry, _ = NewRegistry()
	}
	if opts.StateStore == nil {
		opts.StateStore = NewInMemoryStateStore()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Registry exposes the page registry.
func (s *Service) Registry() *Registry {
	return s.opts.Registry
}

// MenuItem is one navigation entry.
type MenuItem struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
	Group string `json:"group,omitempty"`
}

// Menu lists visible pages in manifest order with localized titles.
func (s *Service) Menu(ctx context.Context, viewer ViewerContext) []MenuItem {
	locale := s.locale(viewer)
	defs := s.opts.Registry.Definitions()
	items := make([]MenuItem, 0, len(defs))
	for _, def := range defs {
		if def.Hidden {
			continue
		}
		title := translateOrFallback(ctx, s.opts.Translator, "console.page."+def.Code+".title", locale, def.TitleForLocale(locale))
		items = append(items, MenuItem{Code: def.Code, Title: title, Icon: def.Icon, Group: def.Group})
	}
	return items
}

// State returns the viewer's stored state for a page.
func (s *Service) State(ctx context.Context, viewer ViewerContext, code string) (PageState, error) {
	if _, _, err := s.page(code); err != nil {
		return PageState{}, err
	}
	return s.load(ctx, viewer, code)
}

// RenderPage fetches and renders a page with the viewer's state.
func (s *Service) RenderPage(ctx context.Context, viewer ViewerContext, code string) (PageView, error) {
	page, def, err := s.page(code)
	if err != nil {
		return PageView{}, err
	}
	state, err := s.load(ctx, viewer, code)
	if err != nil {
		return PageView{}, err
	}
	locale := s.locale(viewer)
	viewer.Locale = locale
	view, err := page.Render(ctx, PageRequest{
		Viewer:    viewer,
		State:     state,
		Formatter: NewNumberFormatter(locale, s.opts.Currency),
		Charts:    s.opts.Charts,
	})
	if err != nil {
		s.recordTelemetry(ctx, "console.page.render_error", map[string]any{
			"page":  code,
			"error": err.Error(),
		})
		return PageView{}, err
	}
	view.Definition = def
	view.Title = translateOrFallback(ctx, s.opts.Translator, "console.page."+code+".title", locale, def.TitleForLocale(locale))
	view.Description = def.DescriptionForLocale(locale)
	s.recordTelemetry(ctx, "console.page.render", map[string]any{
		"page":        code,
		"viewer":      viewer.UserID,
		"approximate": view.Approximate,
	})
	return view, nil
}

// SetFilter stores one filter value for the viewer's page.
func (s *Service) SetFilter(ctx context.Context, viewer ViewerContext, code, key, value string) (PageState, error) {
	page, _, err := s.page(code)
	if err != nil {
		return PageState{}, err
	}
	return s.update(ctx, viewer, code, func(state *PageState) error {
		set := NewFilterSet(page.FilterFields(), state.Filters)
		if err := set.Set(key, value); err != nil {
			return err
		}
		state.SetFilter(key, value)
		return nil
	})
}

// ResetFilters returns every filter of the page to its initial value.
func (s *Service) ResetFilters(ctx context.Context, viewer ViewerContext, code string) (PageState, error) {
	page, _, err := s.page(code)
	if err != nil {
		return PageState{}, err
	}
	return s.update(ctx, viewer, code, func(state *PageState) error {
		state.ResetFilters()
		set := NewFilterSet(page.FilterFields(), nil)
		for key, value := range set.Values() {
			state.Filters[key] = value
		}
		return nil
	})
}

// ListingUpdate changes list paging, page-local sort/search or the recycle bin toggle.
type ListingUpdate struct {
	Page    *int          `json:"page,omitempty"`
	Table   *TableOptions `json:"table,omitempty"`
	Deleted *bool         `json:"deleted,omitempty"`
}

// UpdateListing applies a listing update to the viewer's page.
func (s *Service) UpdateListing(ctx context.Context, viewer ViewerContext, code string, update ListingUpdate) (PageState, error) {
	if _, _, err := s.page(code); err != nil {
		return PageState{}, err
	}
	return s.update(ctx, viewer, code, func(state *PageState) error {
		if update.Page != nil {
			state.ListPage = max(*update.Page, 1)
		}
		if update.Table != nil {
			state.Table = *update.Table
		}
		if update.Deleted != nil && *update.Deleted != state.Deleted {
			state.Deleted = *update.Deleted
			state.ListPage = 1
		}
		return nil
	})
}

// OpenModal opens a modal; a non-empty id selects that record, fetched from the backend.
func (s *Service) OpenModal(ctx context.Context, viewer ViewerContext, code, modal, id string) (PageState, error) {
	page, _, err := s.page(code)
	if err != nil {
		return PageState{}, err
	}
	var record any
	if id != "" {
		if record, err = page.Lookup(ctx, id); err != nil {
			return PageState{}, err
		}
	}
	state, err := s.update(ctx, viewer, code, func(state *PageState) error {
		return state.OpenModal(modal, id, record)
	})
	if err != nil {
		return PageState{}, err
	}
	s.recordTelemetry(ctx, "console.modal.open", map[string]any{"page": code, "modal": modal, "id": id})
	return state, nil
}

// CloseModal closes a modal, clearing the selection once none remain.
func (s *Service) CloseModal(ctx context.Context, viewer ViewerContext, code, modal string) (PageState, error) {
	if _, _, err := s.page(code); err != nil {
		return PageState{}, err
	}
	return s.update(ctx, viewer, code, func(state *PageState) error {
		state.CloseModal(modal)
		return nil
	})
}

// Navigate discards the state of the page being left and returns the target's state.
func (s *Service) Navigate(ctx context.Context, viewer ViewerContext, from, to string) (PageState, error) {
	if _, _, err := s.page(to); err != nil {
		return PageState{}, err
	}
	if from != "" && from != to {
		if err := s.opts.StateStore.Clear(ctx, viewer, from); err != nil {
			return PageState{}, fmt.Errorf("console: clear state %s: %w", from, err)
		}
	}
	s.recordTelemetry(ctx, "console.navigate", map[string]any{"from": from, "to": to, "viewer": viewer.UserID})
	return s.load(ctx, viewer, to)
}

// Mutate validates and forwards a mutation, then closes the page modals and
// notifies the refresh hook.
func (s *Service) Mutate(ctx context.Context, viewer ViewerContext, code string, req MutationRequest) (MutationResult, error) {
	page, def, err := s.page(code)
	if err != nil {
		return MutationResult{}, err
	}
	if !def.Allows(req.Action) {
		return MutationResult{}, fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, req.Action, code)
	}
	if err := s.opts.Validator.Validate(def, req.Action, req.Payload); err != nil {
		return MutationResult{}, err
	}
	result, err := page.Mutate(ctx, req)
	if err != nil {
		s.recordTelemetry(ctx, "console.mutation.error", map[string]any{
			"page":   code,
			"action": req.Action,
			"error":  err.Error(),
		})
		return MutationResult{}, err
	}
	// The backend change is committed; later failures are reported, not returned.
	if _, err := s.update(ctx, viewer, code, func(state *PageState) error {
		state.CloseAll()
		return nil
	}); err != nil {
		s.recordTelemetry(ctx, "console.state.error", map[string]any{
			"page":  code,
			"error": err.Error(),
		})
	}
	s.opts.Charts.Invalidate(code)
	ids := req.IDs
	if req.ID != "" {
		ids = []string{req.ID}
	}
	event := ResourceEvent{
		Page:      code,
		Action:    req.Action,
		IDs:       ids,
		Affected:  result.Affected,
		ViewerID:  viewer.UserID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.opts.RefreshHook.ResourceChanged(ctx, event); err != nil {
		s.recordTelemetry(ctx, "console.refresh.error", map[string]any{
			"page":   code,
			"action": req.Action,
			"error":  err.Error(),
		})
	}
	s.recordTelemetry(ctx, "console.mutation", map[string]any{
		"page":     code,
		"action":   req.Action,
		"affected": result.Affected,
		"viewer":   viewer.UserID,
	})
	return result, nil
}

func (s *Service) page(code string) (Page, PageDefinition, error) {
	if code == "" {
		return nil, PageDefinition{}, errMissingPageCode
	}
	page, ok := s.opts.Registry.Page(code)
	if !ok {
		return nil, PageDefinition{}, fmt.Errorf("%w: %s", ErrPageNotFound, code)
	}
	def, _ := s.opts.Registry.Definition(code)
	return page, def, nil
}

func (s *Service) load(ctx context.Context, viewer ViewerContext, code string) (PageState, error) {
	state, err := s.opts.StateStore.Load(ctx, viewer, code)
	if err != nil {
		return PageState{}, fmt.Errorf("console: load state %s: %w", code, err)
	}
	state.Page = code
	state.Normalize()
	return state, nil
}

func (s *Service) update(ctx context.Context, viewer ViewerContext, code string, apply func(*PageState) error) (PageState, error) {
	state, err := s.load(ctx, viewer, code)
	if err != nil {
		return PageState{}, err
	}
	if err := apply(&state); err != nil {
		return PageState{}, err
	}
	if err := s.opts.StateStore.Save(ctx, viewer, state); err != nil {
		return PageState{}, fmt.Errorf("console: save state %s: %w", code, err)
	}
	return state, nil
}

func (s *Service) locale(viewer ViewerContext) string {
	if viewer.Locale != "" {
		return viewer.Locale
	}
	return s.opts.DefaultLocale
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
