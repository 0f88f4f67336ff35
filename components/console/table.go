package console

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Row actions dispatched by transports.
const (
	ActionView    = "view"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionRestore = "restore"
)

// Column declares one table column.
type Column[T any] struct {
	Key        string
	Header     string
	Sortable   bool
	Searchable bool
	// Cell renders the value; nil reads JSON field Key from the record.
	Cell func(T) string
}

// RowAction is a per-row button. Modal names the modal it opens, if any.
type RowAction[T any] struct {
	Name    string
	Label   string
	Modal   string
	Visible func(T) bool
}

// Table is the column and action layout for one page.
type Table[T any] struct {
	Columns []Column[T]
	Actions []RowAction[T]
	// RowID extracts the record id; nil reads the "id" JSON field.
	RowID func(T) string
}

// TableOptions shape the visible page.
type TableOptions struct {
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
	Search    string `json:"search,omitempty"`
}

// ColumnView is a rendered header.
type ColumnView struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	Sorted   string `json:"sorted,omitempty"`
}

// RowActionView is a rendered row action.
type RowActionView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Modal string `json:"modal,omitempty"`
}

// Row is a rendered record.
type Row struct {
	ID      string          `json:"id"`
	Cells   []string        `json:"cells"`
	Actions []RowActionView `json:"actions,omitempty"`
}

// TableView is the render-ready table.
type TableView struct {
	Columns []ColumnView `json:"columns"`
	Rows    []Row        `json:"rows"`
	Search  string       `json:"search,omitempty"`
}

// Build renders items. Search and sort only apply to the fetched page.
func (t Table[T]) Build(items []T, opts TableOptions) TableView {
	view := TableView{Columns: make([]ColumnView, len(t.Columns)), Search: opts.Search}
	sortIdx := -1
	for i, col := range t.Columns {
		view.Columns[i] = ColumnView{Key: col.Key, Header: col.Header, Sortable: col.Sortable}
		if col.Sortable && col.Key == opts.SortBy {
			sortIdx = i
			view.Columns[i].Sorted = sortDirection(opts.SortOrder)
		}
	}

	rows := make([]keyedRow, 0, len(items))
	for _, item := range items {
		fields := jsonFields(item)
		row := Row{ID: t.rowID(item, fields), Cells: make([]string, len(t.Columns))}
		for i, col := range t.Columns {
			row.Cells[i] = col.render(item, fields)
		}
		for _, action := range t.Actions {
			if action.Visible != nil && !action.Visible(item) {
				continue
			}
			row.Actions = append(row.Actions, RowActionView{Name: action.Name, Label: action.Label, Modal: action.Modal})
		}
		keyed := keyedRow{Row: row}
		if sortIdx >= 0 {
			keyed.key = sortKey(fields, t.Columns[sortIdx].Key, row.Cells[sortIdx])
		}
		rows = append(rows, keyed)
	}

	if search := strings.ToLower(strings.TrimSpace(opts.Search)); search != "" {
		rows = slices.DeleteFunc(rows, func(r keyedRow) bool { return !t.rowMatches(r.Row, search) })
	}

	if sortIdx >= 0 {
		desc := sortDirection(opts.SortOrder) == "desc"
		slices.SortStableFunc(rows, func(a, b keyedRow) int {
			c := compareCells(a.key, b.key)
			if desc {
				return -c
			}
			return c
		})
	}
	view.Rows = make([]Row, len(rows))
	for i, r := range rows {
		view.Rows[i] = r.Row
	}
	return view
}

// keyedRow pairs a rendered row with the value it sorts by.
type keyedRow struct {
	Row
	key string
}

// sortKey prefers the raw record field over the rendered cell, which may
// carry currency codes or units.
func sortKey(fields map[string]any, key, cell string) string {
	switch v := fields[key].(type) {
	case nil:
		return cell
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case bool, map[string]any:
		return stringify(v)
	default:
		return cell
	}
}

// Sortable reports whether key names a sortable column.
func (t Table[T]) Sortable(key string) bool {
	if key == "" {
		return false
	}
	for _, col := range t.Columns {
		if col.Key == key {
			return col.Sortable
		}
	}
	return false
}

// Action returns the declared action by name.
func (t Table[T]) Action(name string) (RowAction[T], bool) {
	for _, action := range t.Actions {
		if action.Name == name {
			return action, true
		}
	}
	return RowAction[T]{}, false
}

func (t Table[T]) rowID(item T, fields map[string]any) string {
	if t.RowID != nil {
		return t.RowID(item)
	}
	return stringify(fields["id"])
}

func (t Table[T]) rowMatches(row Row, search string) bool {
	for i, col := range t.Columns {
		if col.Searchable && strings.Contains(strings.ToLower(row.Cells[i]), search) {
			return true
		}
	}
	return false
}

func (c Column[T]) render(item T, fields map[string]any) string {
	if c.Cell != nil {
		return c.Cell(item)
	}
	return stringify(fields[c.Key])
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "desc") {
		return "desc"
	}
	return "asc"
}

// compareCells orders numerically when both cells parse as numbers.
func compareCells(a, b string) int {
	fa, errA := strconv.ParseFloat(strings.ReplaceAll(a, ",", ""), 64)
	fb, errB := strconv.ParseFloat(strings.ReplaceAll(b, ",", ""), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func jsonFields(item any) map[string]any {
	data, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts.Format("2006-01-02 15:04")
		}
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		for _, key := range []string{"name", "email", "id"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}
