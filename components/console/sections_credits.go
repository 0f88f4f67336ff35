package console

import (
	"strings"

	"github.com/goliatone/go-billing-console/pkg/api"
)

// CreditsUsagesSection summarizes metered feature usage.
var CreditsUsagesSection = Section[api.CreditsUsage]{
	Code: "credits_usages",
	Cards: []CardSpec[api.CreditsUsage]{
		{Key: "total", Title: "Total Usages", Description: "Metered requests", Icon: "activity", Count: true},
		{
			Key: "total_tokens", Title: "Total Tokens", Description: "Input and output tokens", Icon: "hash",
			Server:   SumOf("total_input_tokens", "total_output_tokens"),
			Fallback: Sum(func(u api.CreditsUsage) float64 { return float64(u.InputTokens + u.OutputTokens) }),
		},
		{
			Key: "total_credits", Title: "Credits Used", Description: "Credits charged", Icon: "coins", Format: FormatDecimal,
			Server:   Field("total_credits"),
			Fallback: Sum(func(u api.CreditsUsage) float64 { return u.Credits }),
		},
		{
			Key: "average_credits", Title: "Avg Credits / Usage", Icon: "gauge", Format: FormatDecimal,
			Server:   RatioOf("total_credits", "total", 1),
			Fallback: Average(func(u api.CreditsUsage) float64 { return u.Credits }),
		},
	},
}

// CreditsTransactionsSection summarizes the credits ledger.
var CreditsTransactionsSection = Section[api.CreditsTransaction]{
	Code: "credits_transactions",
	Cards: []CardSpec[api.CreditsTransaction]{
		{Key: "total", Title: "Total Transactions", Icon: "list", Count: true},
		{
			Key: "credits_purchased", Title: "Credits Purchased", Icon: "arrow-down-circle", Format: FormatDecimal,
			Server: Field("total_purchased"),
			Fallback: Sum(func(t api.CreditsTransaction) float64 {
				if strings.EqualFold(t.Type, "purchase") {
					return t.Credits
				}
				return 0
			}),
		},
		{
			Key: "credits_spent", Title: "Credits Spent", Icon: "arrow-up-circle", Format: FormatDecimal,
			Server: Field("total_spent"),
			Fallback: Sum(func(t api.CreditsTransaction) float64 {
				if strings.EqualFold(t.Type, "usage") {
					return t.Credits
				}
				return 0
			}),
		},
		{
			Key: "revenue", Title: "Revenue", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("total_amount"),
			Fallback: Sum(func(t api.CreditsTransaction) float64 { return t.Amount }),
		},
	},
}

// CreditsProfitsSection summarizes margin on credits.
var CreditsProfitsSection = Section[api.CreditsProfit]{
	Code: "credits_profits",
	Cards: []CardSpec[api.CreditsProfit]{
		{Key: "total", Title: "Records", Icon: "list", Count: true},
		{
			Key: "revenue", Title: "Revenue", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("total_revenue"),
			Fallback: Sum(func(p api.CreditsProfit) float64 { return p.Revenue }),
		},
		{
			Key: "cost", Title: "Cost", Icon: "receipt", Format: FormatCurrency,
			Server:   Field("total_cost"),
			Fallback: Sum(func(p api.CreditsProfit) float64 { return p.Cost }),
		},
		{
			Key: "profit", Title: "Profit", Icon: "trending-up", Format: FormatCurrency,
			Server:   Field("total_profit"),
			Fallback: Sum(func(p api.CreditsProfit) float64 { return p.Profit }),
		},
		{
			Key: "margin", Title: "Margin", Icon: "percent", Format: FormatPercent,
			Server: RatioOf("total_profit", "total_revenue", 100),
			Fallback: func(items []api.CreditsProfit) float64 {
				revenue := Sum(func(p api.CreditsProfit) float64 { return p.Revenue })(items)
				if revenue == 0 {
					return 0
				}
				return Sum(func(p api.CreditsProfit) float64 { return p.Profit })(items) / revenue * 100
			},
		},
	},
}

// TokenProfitsSection summarizes margin on model tokens.
var TokenProfitsSection = Section[api.TokenProfit]{
	Code: "token_profits",
	Cards: []CardSpec[api.TokenProfit]{
		{Key: "total", Title: "Records", Icon: "list", Count: true},
		{
			Key: "total_tokens", Title: "Total Tokens", Icon: "hash",
			Server:   SumOf("total_input_tokens", "total_output_tokens"),
			Fallback: Sum(func(p api.TokenProfit) float64 { return float64(p.InputTokens + p.OutputTokens) }),
		},
		{
			Key: "revenue", Title: "Revenue", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("total_revenue"),
			Fallback: Sum(func(p api.TokenProfit) float64 { return p.Revenue }),
		},
		{
			Key: "profit", Title: "Profit", Icon: "trending-up", Format: FormatCurrency,
			Server:   Field("total_profit"),
			Fallback: Sum(func(p api.TokenProfit) float64 { return p.Profit }),
		},
	},
}

// TokenTransactionsSection summarizes the token ledger.
var TokenTransactionsSection = Section[api.TokenTransaction]{
	Code: "token_transactions",
	Cards: []CardSpec[api.TokenTransaction]{
		{Key: "total", Title: "Total Transactions", Icon: "list", Count: true},
		{
			Key: "tokens", Title: "Tokens Moved", Icon: "hash",
			Server:   Field("total_tokens"),
			Fallback: Sum(func(t api.TokenTransaction) float64 { return float64(t.Tokens) }),
		},
		{
			Key: "amount", Title: "Amount", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("total_amount"),
			Fallback: Sum(func(t api.TokenTransaction) float64 { return t.Amount }),
		},
		{
			Key: "completed", Title: "Completed", Icon: "check-circle",
			Server:   Field("completed"),
			Fallback: CountWhere(func(t api.TokenTransaction) bool { return strings.EqualFold(t.Status, "completed") }),
		},
	},
}

// UserWalletsSection summarizes balances.
var UserWalletsSection = Section[api.UserWallet]{
	Code: "user_wallets",
	Cards: []CardSpec[api.UserWallet]{
		{Key: "total", Title: "Wallets", Icon: "wallet", Count: true},
		{
			Key: "credits", Title: "Credits Outstanding", Icon: "coins", Format: FormatDecimal,
			Server:   Field("total_credits"),
			Fallback: Sum(func(w api.UserWallet) float64 { return w.Credits }),
		},
		{
			Key: "tokens", Title: "Tokens Outstanding", Icon: "hash",
			Server:   Field("total_tokens"),
			Fallback: Sum(func(w api.UserWallet) float64 { return float64(w.Tokens) }),
		},
		{
			Key: "active", Title: "Active Wallets", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(w api.UserWallet) bool { return w.IsActive }),
		},
	},
}

// AiModelsSection summarizes the model catalog.
var AiModelsSection = Section[api.AiModel]{
	Code: "ai_models",
	Cards: []CardSpec[api.AiModel]{
		{Key: "total", Title: "Models", Icon: "cpu", Count: true},
		{
			Key: "active", Title: "Active Models", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(m api.AiModel) bool { return m.IsActive }),
		},
		{
			Key: "providers", Title: "Providers", Icon: "server",
			Server:   Field("providers"),
			Fallback: Distinct(func(m api.AiModel) string { return strings.ToLower(m.Provider) }),
		},
		{
			Key: "avg_output_price", Title: "Avg Output Price", Icon: "dollar-sign", Format: FormatDecimal,
			Server:   Field("average_output_token_price"),
			Fallback: Average(func(m api.AiModel) float64 { return m.OutputTokenPrice }),
		},
	},
}
