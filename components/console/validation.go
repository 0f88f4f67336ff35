package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidPayload wraps schema violations of a mutation payload.
var ErrInvalidPayload = errors.New("console: invalid payload")

// PayloadValidator validates mutation payloads against the page schema.
type PayloadValidator interface {
	Validate(def PageDefinition, action string, payload map[string]any) error
}

// JSONSchemaValidator compiles page schemas and validates create/update payloads.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate checks create payloads against the full schema. Update and bulk
// update payloads are partial, so "required" is dropped for them.
func (v *JSONSchemaValidator) Validate(def PageDefinition, action string, payload map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	partial := false
	switch action {
	case MutationCreate:
	case MutationUpdate, MutationBulkUpdate:
		partial = true
	default:
		return nil
	}
	schema, err := v.schemaFor(def, partial)
	if err != nil {
		return err
	}
	normalized := map[string]any{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("console: marshal payload for %s: %w", def.Code, err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("console: normalize payload for %s: %w", def.Code, err)
		}
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %s on %s: %w", ErrInvalidPayload, action, def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def PageDefinition, partial bool) (*jsonschema.Schema, error) {
	name := def.Code + ".json"
	if partial {
		name = def.Code + ".partial.json"
	}
	v.mu.RLock()
	schema, ok := v.compiled[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	source := def.Schema
	if partial {
		source = make(map[string]any, len(def.Schema))
		for k, val := range def.Schema {
			if k != "required" {
				source[k] = val
			}
		}
	}
	data, err := json.Marshal(source)
	if err != nil {
		return nil, fmt.Errorf("console: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("console: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("console: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}
