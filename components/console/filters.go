package console

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilter reports a filter key the page does not declare.
var ErrUnknownFilter = errors.New("console: unknown filter")

// FilterKind selects the input a filter renders as.
type FilterKind string

const (
	FilterSelect    FilterKind = "select"
	FilterDateRange FilterKind = "date_range"
	FilterText      FilterKind = "text"
)

// Unset sentinels. Selects start at "null", text and date ranges at "".
const (
	SentinelNull  = "null"
	SentinelEmpty = ""
)

// SearchFilterKey is forwarded as the list "search" parameter rather than a field filter.
const SearchFilterKey = "search"

// DateRangeSeparator joins the two ends of a date_range value ("2024-01-01..2024-01-31").
const DateRangeSeparator = ".."

// FilterOption is one choice of a select filter.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterField declares one controlled filter input.
type FilterField struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Kind    FilterKind     `json:"kind"`
	Options []FilterOption `json:"options,omitempty"`
	// Initial overrides the kind's sentinel.
	Initial string `json:"initial,omitempty"`
}

// InitialValue is the value Reset restores.
func (f FilterField) InitialValue() string {
	if f.Initial != "" {
		return f.Initial
	}
	if f.Kind == FilterSelect {
		return SentinelNull
	}
	return SentinelEmpty
}

func (f FilterField) unset(value string) bool {
	value = strings.TrimSpace(value)
	return value == SentinelNull || value == SentinelEmpty || value == f.InitialValue()
}

// SelectFilter is shorthand for a select with "all" as its initial choice.
func SelectFilter(key, label string, values ...string) FilterField {
	options := make([]FilterOption, 0, len(values)+1)
	options = append(options, FilterOption{Value: SentinelNull, Label: "All"})
	for _, v := range values {
		options = append(options, FilterOption{Value: v, Label: humanize(v)})
	}
	return FilterField{Key: key, Label: label, Kind: FilterSelect, Options: options}
}

// TextFilter is shorthand for a free text filter.
func TextFilter(key, label string) FilterField {
	return FilterField{Key: key, Label: label, Kind: FilterText}
}

// DateRangeFilter is shorthand for a from/to date filter.
func DateRangeFilter(key, label string) FilterField {
	return FilterField{Key: key, Label: label, Kind: FilterDateRange}
}

// FilterSet binds field declarations to their current values.
type FilterSet struct {
	fields []FilterField
	values map[string]string
}

// NewFilterSet builds a set seeded with stored values; unknown keys are dropped.
func NewFilterSet(fields []FilterField, stored map[string]string) *FilterSet {
	set := &FilterSet{fields: fields, values: make(map[string]string, len(fields))}
	set.Reset()
	for key, value := range stored {
		if _, ok := set.field(key); ok {
			set.values[key] = value
		}
	}
	return set
}

// Fields returns the declarations in order.
func (s *FilterSet) Fields() []FilterField {
	return s.fields
}

// Set stores a field value.
func (s *FilterSet) Set(key, value string) error {
	if _, ok := s.field(key); !ok {
		return fmt.Errorf("%w %q", ErrUnknownFilter, key)
	}
	s.values[key] = value
	return nil
}

// Reset returns every field to its initial sentinel.
func (s *FilterSet) Reset() {
	for _, f := range s.fields {
		s.values[f.Key] = f.InitialValue()
	}
}

// Values returns a copy of every field value, set or not.
func (s *FilterSet) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Query returns only the set fields, ready to send as list parameters.
// A date range "a..b" expands to <key>_from and <key>_to.
func (s *FilterSet) Query() map[string]string {
	out := map[string]string{}
	for _, f := range s.fields {
		value := strings.TrimSpace(s.values[f.Key])
		if f.unset(value) {
			continue
		}
		if f.Kind != FilterDateRange {
			out[f.Key] = value
			continue
		}
		from, to, _ := strings.Cut(value, DateRangeSeparator)
		if from = strings.TrimSpace(from); from != "" {
			out[f.Key+"_from"] = from
		}
		if to = strings.TrimSpace(to); to != "" {
			out[f.Key+"_to"] = to
		}
	}
	return out
}

// Active reports whether any field differs from its initial value.
func (s *FilterSet) Active() bool {
	return len(s.Query()) > 0
}

func (s *FilterSet) field(key string) (FilterField, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f, true
		}
	}
	return FilterField{}, false
}

func humanize(value string) string {
	value = strings.NewReplacer("_", " ", "-", " ").Replace(value)
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
