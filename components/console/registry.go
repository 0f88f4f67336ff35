package console

import (
	"fmt"
	"sort"
	"sync"
)

// PageHook lets packages register pages during init().
type PageHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PageHook
)

// RegisterPageHook registers a hook executed against new registries.
func RegisterPageHook(h PageHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry stores pages and their (manifest adjusted) definitions.
type Registry struct {
	mu          sync.RWMutex
	pages       map[string]Page
	definitions map[string]PageDefinition
}

// NewRegistry registers pages and applies global hooks.
func NewRegistry(pages ...Page) (*Registry, error) {
	reg := &Registry{
		pages:       map[string]Page{},
		definitions: map[string]PageDefinition{},
	}
	for _, page := range pages {
		if err := reg.Register(page); err != nil {
			return nil, err
		}
	}
	if err := reg.ApplyHooks(); err != nil {
		return nil, err
	}
	return reg, nil
}

// ApplyHooks executes registered page hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register adds or replaces a page.
func (r *Registry) Register(page Page) error {
	if page == nil {
		return fmt.Errorf("console: page cannot be nil")
	}
	def := page.Definition()
	if def.Code == "" {
		return fmt.Errorf("console: page definition code is required")
	}
	def.normalizeLocalizedFields()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[def.Code] = page
	r.definitions[def.Code] = def
	return nil
}

// Page fetches a page by code.
func (r *Registry) Page(code string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[code]
	return page, ok
}

// Definition fetches the effective definition by code.
func (r *Registry) Definition(code string) (PageDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Definitions returns every definition ordered by Order, then code.
func (r *Registry) Definitions() []PageDefinition {
	r.mu.RLock()
	defs := make([]PageDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	r.mu.RUnlock()
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Order != defs[j].Order {
			return defs[i].Order < defs[j].Order
		}
		return defs[i].Code < defs[j].Code
	})
	return defs
}

func (r *Registry) updateDefinition(code string, apply func(*PageDefinition)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.definitions[code]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, code)
	}
	apply(&def)
	def.normalizeLocalizedFields()
	r.definitions[code] = def
	return nil
}
