package console

import (
	"testing"

	"github.com/goliatone/go-billing-console/pkg/api"
)

func intPtr(v int) *int { return &v }

func cardByKey(t *testing.T, cards []Card, key string) Card {
	t.Helper()
	for _, card := range cards {
		if card.Key == key {
			return card
		}
	}
	t.Fatalf("card %s not found in %#v", key, cards)
	return Card{}
}

func TestSectionTotalFallsBackToDataLength(t *testing.T) {
	formatter := NewNumberFormatter("en", "USD")
	items := []api.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}}

	cards := UsersSection.Compute(items, nil, formatter)
	total := cardByKey(t, cards, "total")
	if total.Value != "3" || total.Raw != 3 {
		t.Fatalf("expected total 3, got %#v", total)
	}
	if total.Approximate {
		t.Fatalf("unpaginated list must not be approximate")
	}
}

func TestSectionTotalPrefersMetaTotal(t *testing.T) {
	formatter := NewNumberFormatter("en", "USD")
	items := []api.User{{ID: "u1"}, {ID: "u2"}}
	meta := &api.Meta{Page: 1, Limit: 2, Total: intPtr(1250), TotalPage: 625,
		Statistics: api.Statistics{"total": 9}}

	total := cardByKey(t, UsersSection.Compute(items, meta, formatter), "total")
	if total.Value != "1,250" {
		t.Fatalf("expected meta.total to win, got %q", total.Value)
	}
	if total.Approximate {
		t.Fatalf("meta.total is exact")
	}
}

func TestSectionTotalUsesStatisticsWhenMetaTotalMissing(t *testing.T) {
	formatter := NewNumberFormatter("en", "USD")
	meta := &api.Meta{Page: 1, Limit: 1, TotalPage: 4, Statistics: api.Statistics{"total": 4}}

	total := cardByKey(t, UsersSection.Compute([]api.User{{ID: "u1"}}, meta, formatter), "total")
	if total.Raw != 4 || total.Approximate {
		t.Fatalf("expected statistics.total, got %#v", total)
	}
}

func TestCreditsUsageTotalTokensFromStatistics(t *testing.T) {
	formatter := NewNumberFormatter("en", "USD")
	meta := &api.Meta{Statistics: api.Statistics{
		"total_input_tokens":  100,
		"total_output_tokens": 50,
	}}

	card := cardByKey(t, CreditsUsagesSection.Compute(nil, meta, formatter), "total_tokens")
	if card.Title != "Total Tokens" || card.Value != "150" {
		t.Fatalf("expected Total Tokens 150, got %#v", card)
	}
}

func TestCreditsUsageFallbackIsApproximateWhenPaginated(t *testing.T) {
	formatter := NewNumberFormatter("en", "USD")
	items := []api.CreditsUsage{
		{InputTokens: 10, OutputTokens: 5, Credits: 1.5},
		{InputTokens: 20, OutputTokens: 5, Credits: 2.5},
	}
	meta := &api.Meta{Page: 1, Limit: 2, TotalPage: 3}

	cards := CreditsUsagesSection.Compute(items, meta, formatter)
	tokens := cardByKey(t, cards, "total_tokens")
	if tokens.Raw != 40 || !tokens.Approximate {
		t.Fatalf("expected approximate page sum 40, got %#v", tokens)
	}
	credits := cardByKey(t, cards, "total_credits")
	if credits.Value != "4.00" {
		t.Fatalf("expected decimal credits, got %q", credits.Value)
	}
	avg := cardByKey(t, cards, "average_credits")
	if avg.Raw != 2 {
		t.Fatalf("expected average 2, got %v", avg.Raw)
	}
}

func TestSectionFallbackExactOnSinglePage(t *testing.T) {
	formatter := NewNumberFormatter("en", "USD")
	items := []api.Notification{{IsRead: true}, {IsRead: false}, {IsRead: false}, {IsRead: true}}
	meta := &api.Meta{Page: 1, Limit: 10, Total: intPtr(4), TotalPage: 1}

	cards := NotificationsSection.Compute(items, meta, formatter)
	unread := cardByKey(t, cards, "unread")
	if unread.Raw != 2 || unread.Approximate {
		t.Fatalf("expected exact unread 2, got %#v", unread)
	}
	rate := cardByKey(t, cards, "read_rate")
	if rate.Value != "50.0%" {
		t.Fatalf("expected 50.0%%, got %q", rate.Value)
	}
}

func TestSectionCardsKeepDeclaredOrder(t *testing.T) {
	cards := CreditsProfitsSection.Compute(nil, nil, NewNumberFormatter("", ""))
	want := []string{"total", "revenue", "cost", "profit", "margin"}
	if len(cards) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(cards))
	}
	for i, key := range want {
		if cards[i].Key != key {
			t.Fatalf("card %d: expected %s, got %s", i, key, cards[i].Key)
		}
	}
}

func TestRatioOfGuardsZeroDenominator(t *testing.T) {
	v, ok := RatioOf("clicks", "views", 100)(api.Statistics{"clicks": 5, "views": 0})
	if !ok || v != 0 {
		t.Fatalf("expected 0,true got %v,%v", v, ok)
	}
	if _, ok := RatioOf("clicks", "views", 100)(api.Statistics{"clicks": 5}); ok {
		t.Fatalf("missing denominator must report absent")
	}
}

func TestSumOfRequiresAllKeys(t *testing.T) {
	if _, ok := SumOf("a", "b")(api.Statistics{"a": 1}); ok {
		t.Fatalf("partial aggregates must not be used")
	}
}

func TestNumberFormatterFormats(t *testing.T) {
	f := NewNumberFormatter("en", "eur")
	cases := []struct {
		value  float64
		format Format
		want   string
	}{
		{1234567, FormatNumber, "1,234,567"},
		{12.5, FormatNumber, "12.50"},
		{1234.5, FormatCurrency, "EUR 1,234.50"},
		{12.345, FormatPercent, "12.3%"},
		{3, FormatDecimal, "3.00"},
	}
	for _, tc := range cases {
		if got := f.Format(tc.value, tc.format); got != tc.want {
			t.Fatalf("Format(%v, %s) = %q, want %q", tc.value, tc.format, got, tc.want)
		}
	}
}
