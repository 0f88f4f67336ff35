package console

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// ManifestDocument adjusts the navigation menu: titles, order and visibility.
type ManifestDocument struct {
	Version string         `json:"version" yaml:"version"`
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Pages   []ManifestPage `json:"pages" yaml:"pages"`
	Source  string         `json:"-" yaml:"-"`
}

// ManifestPage overrides one page's menu entry. Empty fields keep the built-in value.
type ManifestPage struct {
	Code                 string            `json:"code" yaml:"code"`
	Title                string            `json:"title,omitempty" yaml:"title,omitempty"`
	TitleLocalized       map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	Icon                 string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Group                string            `json:"group,omitempty" yaml:"group,omitempty"`
	Order                *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Hidden               *bool             `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// LoadManifestFile reads a manifest from disk and applies it.
func (r *Registry) LoadManifestFile(path string) (*ManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.ApplyManifest(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ApplyManifest merges manifest entries into registered definitions.
func (r *Registry) ApplyManifest(doc *ManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("console: manifest document is nil")
	}
	for _, entry := range doc.Pages {
		entry := entry
		err := r.updateDefinition(entry.Code, func(def *PageDefinition) {
			if entry.Title != "" {
				def.Title = entry.Title
			}
			if entry.Description != "" {
				def.Description = entry.Description
			}
			if entry.Icon != "" {
				def.Icon = entry.Icon
			}
			if entry.Group != "" {
				def.Group = entry.Group
			}
			if entry.Order != nil {
				def.Order = *entry.Order
			}
			if entry.Hidden != nil {
				def.Hidden = *entry.Hidden
			}
			def.TitleLocalized = mergeLocaleMaps(def.TitleLocalized, entry.TitleLocalized)
			def.DescriptionLocalized = mergeLocaleMaps(def.DescriptionLocalized, entry.DescriptionLocalized)
		})
		if err != nil {
			return fmt.Errorf("console: apply manifest page from %s: %w", doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without applying it.
func ReadManifest(path string) (*ManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("console: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*ManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc ManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("console: manifest is empty")
		}
		return nil, fmt.Errorf("console: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeManifest writes doc as YAML.
func EncodeManifest(w io.Writer, doc *ManifestDocument) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("console: encode manifest: %w", err)
	}
	return encoder.Close()
}

// Validate ensures the manifest satisfies required fields.
func (doc *ManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("console: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Pages))
	for idx, page := range doc.Pages {
		if page.Code == "" {
			return fmt.Errorf("console: manifest page at index %d is missing code", idx)
		}
		if _, exists := seen[page.Code]; exists {
			return fmt.Errorf("console: manifest duplicates page code %s", page.Code)
		}
		seen[page.Code] = struct{}{}
	}
	return nil
}

func mergeLocaleMaps(base, override map[string]string) map[string]string {
	if len(override) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[normalizeLocale(k)] = v
	}
	return out
}
