package console

import (
	"context"
	"strings"
)

// TranslationService resolves UI strings for a locale.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`es-mx`) fall back to their
// base language (`es`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

// TitleForLocale returns the menu title for locale.
func (d PageDefinition) TitleForLocale(locale string) string {
	return ResolveLocalizedValue(d.TitleLocalized, locale, d.Title)
}

// DescriptionForLocale returns the localized description if available.
func (d PageDefinition) DescriptionForLocale(locale string) string {
	return ResolveLocalizedValue(d.DescriptionLocalized, locale, d.Description)
}

func (d *PageDefinition) normalizeLocalizedFields() {
	d.TitleLocalized = normalizeLocaleMap(d.TitleLocalized)
	d.DescriptionLocalized = normalizeLocaleMap(d.DescriptionLocalized)
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key = normalizeLocale(key)
		if key == "" || value == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, nil); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
