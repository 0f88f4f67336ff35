package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNoModalOpen is returned when a record is selected outside a modal.
var ErrNoModalOpen = errors.New("console: a record can only be selected while a modal is open")

// PageState is the ephemeral UI state of one page for one viewer.
// Selected is always nil when no modal is open.
type PageState struct {
	Page       string            `json:"page"`
	SelectedID string            `json:"selected_id,omitempty"`
	Selected   json.RawMessage   `json:"selected,omitempty"`
	Modals     map[string]bool   `json:"modals"`
	Filters    map[string]string `json:"filters"`
	Table      TableOptions      `json:"table"`
	ListPage   int               `json:"list_page,omitempty"`
	Deleted    bool              `json:"deleted,omitempty"`
}

// NewPageState returns the initial state for page.
func NewPageState(page string) PageState {
	return PageState{Page: page, Modals: map[string]bool{}, Filters: map[string]string{}}
}

// OpenModal opens a modal and, when id is set, selects the record it acts on.
func (s *PageState) OpenModal(name, id string, record any) error {
	if name == "" {
		return errors.New("console: modal name is required")
	}
	s.Normalize()
	s.Modals[name] = true
	if id == "" && record == nil {
		return nil
	}
	return s.Select(id, record)
}

// CloseModal closes a modal; the selection is cleared once none remain open.
func (s *PageState) CloseModal(name string) {
	s.Normalize()
	delete(s.Modals, name)
	if !s.AnyModalOpen() {
		s.clearSelection()
	}
}

// CloseAll closes every modal and clears the selection.
func (s *PageState) CloseAll() {
	s.Modals = map[string]bool{}
	s.clearSelection()
}

// Select stores the record a modal acts on.
func (s *PageState) Select(id string, record any) error {
	if !s.AnyModalOpen() {
		return ErrNoModalOpen
	}
	s.SelectedID = id
	s.Selected = nil
	if record == nil {
		return nil
	}
	if raw, ok := record.(json.RawMessage); ok {
		s.Selected = raw
		return nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("console: encode selected record: %w", err)
	}
	s.Selected = data
	return nil
}

// AnyModalOpen reports whether at least one modal is open.
func (s *PageState) AnyModalOpen() bool {
	for _, open := range s.Modals {
		if open {
			return true
		}
	}
	return false
}

// OpenModals lists open modal names, sorted.
func (s *PageState) OpenModals() []string {
	names := make([]string, 0, len(s.Modals))
	for name, open := range s.Modals {
		if open {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SetFilter stores a raw filter value.
func (s *PageState) SetFilter(key, value string) {
	s.Normalize()
	s.Filters[key] = value
	s.ListPage = 1
}

// ResetFilters clears every filter.
func (s *PageState) ResetFilters() {
	s.Filters = map[string]string{}
	s.ListPage = 1
}

// Reset returns the page to its initial state.
func (s *PageState) Reset() {
	*s = NewPageState(s.Page)
}

func (s *PageState) clearSelection() {
	s.SelectedID = ""
	s.Selected = nil
}

// Normalize fills nil maps and enforces that nothing is selected without an open modal.
func (s *PageState) Normalize() {
	if s.Modals == nil {
		s.Modals = map[string]bool{}
	}
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
	if !s.AnyModalOpen() {
		s.clearSelection()
	}
}
