package console

import (
	"github.com/goliatone/go-billing-console/pkg/api"
)

// Card is one rendered summary value.
type Card struct {
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Raw         float64 `json:"raw"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	// Approximate is set when the value was computed from a single page of a paginated list.
	Approximate bool `json:"approximate,omitempty"`
}

// ServerValue reads an aggregate from meta.statistics.
type ServerValue func(stats api.Statistics) (float64, bool)

// Field reads a single numeric aggregate.
func Field(key string) ServerValue {
	return func(stats api.Statistics) (float64, bool) {
		return stats.Number(key)
	}
}

// SumOf adds several aggregates; all of them must be present.
func SumOf(keys ...string) ServerValue {
	return func(stats api.Statistics) (float64, bool) {
		total := 0.0
		for _, key := range keys {
			v, ok := stats.Number(key)
			if !ok {
				return 0, false
			}
			total += v
		}
		return total, len(keys) > 0
	}
}

// RatioOf divides two aggregates and scales the result (100 for percentages).
func RatioOf(numerator, denominator string, scale float64) ServerValue {
	return func(stats api.Statistics) (float64, bool) {
		num, ok := stats.Number(numerator)
		if !ok {
			return 0, false
		}
		den, ok := stats.Number(denominator)
		if !ok {
			return 0, false
		}
		if den == 0 {
			return 0, true
		}
		return num / den * scale, true
	}
}

// CardSpec declares how one card is computed.
type CardSpec[T any] struct {
	Key         string
	Title       string
	Description string
	Icon        string
	Format      Format
	// Count marks the collection size card: meta.total, then statistics.total, then len(data).
	Count    bool
	Server   ServerValue
	Fallback func(items []T) float64
}

// Section is the ordered card set for one page.
type Section[T any] struct {
	Code  string
	Cards []CardSpec[T]
}

// Compute renders the cards for the fetched page and its meta.
func (s Section[T]) Compute(items []T, meta *api.Meta, formatter NumberFormatter) []Card {
	var stats api.Statistics
	if meta != nil {
		stats = meta.Statistics
	}
	paginated := meta.Paginated(len(items))
	cards := make([]Card, 0, len(s.Cards))
	for _, spec := range s.Cards {
		value, approximate := spec.resolve(items, meta, stats, paginated)
		cards = append(cards, Card{
			Key:         spec.Key,
			Title:       spec.Title,
			Value:       formatter.Format(value, spec.Format),
			Raw:         value,
			Description: spec.Description,
			Icon:        spec.Icon,
			Approximate: approximate,
		})
	}
	return cards
}

func (spec CardSpec[T]) resolve(items []T, meta *api.Meta, stats api.Statistics, paginated bool) (float64, bool) {
	if spec.Count {
		if meta != nil && meta.Total != nil {
			return float64(*meta.Total), false
		}
		server := spec.Server
		if server == nil {
			server = Field("total")
		}
		if v, ok := server(stats); ok {
			return v, false
		}
		return float64(len(items)), paginated
	}
	if spec.Server != nil {
		if v, ok := spec.Server(stats); ok {
			return v, false
		}
	}
	if spec.Fallback == nil {
		return 0, paginated
	}
	return spec.Fallback(items), paginated
}

// Sum totals a numeric field over the visible items.
func Sum[T any](value func(T) float64) func([]T) float64 {
	return func(items []T) float64 {
		total := 0.0
		for _, item := range items {
			total += value(item)
		}
		return total
	}
}

// Average is the mean of a numeric field over the visible items.
func Average[T any](value func(T) float64) func([]T) float64 {
	return func(items []T) float64 {
		if len(items) == 0 {
			return 0
		}
		return Sum(value)(items) / float64(len(items))
	}
}

// CountWhere counts visible items matching pred.
func CountWhere[T any](pred func(T) bool) func([]T) float64 {
	return func(items []T) float64 {
		count := 0
		for _, item := range items {
			if pred(item) {
				count++
			}
		}
		return float64(count)
	}
}

// PercentWhere is the share of visible items matching pred, 0-100.
func PercentWhere[T any](pred func(T) bool) func([]T) float64 {
	return func(items []T) float64 {
		if len(items) == 0 {
			return 0
		}
		return CountWhere(pred)(items) / float64(len(items)) * 100
	}
}

// Distinct counts unique non-empty keys over the visible items.
func Distinct[T any](key func(T) string) func([]T) float64 {
	return func(items []T) float64 {
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			if k := key(item); k != "" {
				seen[k] = struct{}{}
			}
		}
		return float64(len(seen))
	}
}
