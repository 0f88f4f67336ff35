package console

import "github.com/goliatone/go-billing-console/pkg/api"

// CreditsUsagesPage lists metered usage.
func CreditsUsagesPage(b Backend[api.CreditsUsage]) *ResourcePage[api.CreditsUsage] {
	return &ResourcePage[api.CreditsUsage]{
		Def: PageDefinition{
			Code: "credits_usages", Title: "Credits Usage", Icon: "activity", Group: GroupCredits, Order: 10,
			Path: "/api/credits-usages", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: CreditsUsagesSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			TextFilter("feature_id", "Feature"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.CreditsUsage]{
			Columns: []Column[api.CreditsUsage]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(u api.CreditsUsage) string { return userLabel(u.User, u.UserID) }},
				{Key: "model_name", Header: "Model", Sortable: true, Searchable: true},
				{Key: "input_tokens", Header: "Input Tokens", Sortable: true},
				{Key: "output_tokens", Header: "Output Tokens", Sortable: true},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(u api.CreditsUsage) string { return money(u.Credits) }},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.CreditsUsage](),
		},
		Chart: &ChartSpec[api.CreditsUsage]{
			Title: "Credits by model", Kind: ChartBar, Key: "credits_by_model",
			Group: func(u api.CreditsUsage) string { return u.ModelName },
			Value: func(u api.CreditsUsage) float64 { return u.Credits },
		},
	}
}

// CreditsTransactionsPage lists the credits ledger.
func CreditsTransactionsPage(b Backend[api.CreditsTransaction]) *ResourcePage[api.CreditsTransaction] {
	return &ResourcePage[api.CreditsTransaction]{
		Def: PageDefinition{
			Code: "credits_transactions", Title: "Credits Transactions", Icon: "list", Group: GroupCredits, Order: 11,
			Path: "/api/credits-transactions", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: CreditsTransactionsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("type", "Type", "purchase", "usage", "refund", "bonus", "adjustment"),
			SelectFilter("status", "Status", "pending", "completed", "failed"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.CreditsTransaction]{
			Columns: []Column[api.CreditsTransaction]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(t api.CreditsTransaction) string { return userLabel(t.User, t.UserID) }},
				{Key: "type", Header: "Type", Sortable: true},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(t api.CreditsTransaction) string { return money(t.Credits) }},
				{Key: "amount", Header: "Amount", Sortable: true, Cell: func(t api.CreditsTransaction) string { return money(t.Amount) }},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "description", Header: "Description", Searchable: true},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.CreditsTransaction](),
		},
		Chart: &ChartSpec[api.CreditsTransaction]{
			Title: "Credits by type", Kind: ChartPie, Key: "credits_by_type",
			Group: func(t api.CreditsTransaction) string { return t.Type },
			Value: func(t api.CreditsTransaction) float64 { return t.Credits },
		},
	}
}

// CreditsProfitsPage lists margin records on credits.
func CreditsProfitsPage(b Backend[api.CreditsProfit]) *ResourcePage[api.CreditsProfit] {
	return &ResourcePage[api.CreditsProfit]{
		Def: PageDefinition{
			Code: "credits_profits", Title: "Credits Profits", Icon: "trending-up", Group: GroupCredits, Order: 12,
			Path: "/api/credits-profits", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: CreditsProfitsSection,
		Filters: []FilterField{
			TextFilter("feature_id", "Feature"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.CreditsProfit]{
			Columns: []Column[api.CreditsProfit]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(p api.CreditsProfit) string { return userLabel(p.User, p.UserID) }},
				{Key: "feature_id", Header: "Feature", Searchable: true},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(p api.CreditsProfit) string { return money(p.Credits) }},
				{Key: "revenue", Header: "Revenue", Sortable: true, Cell: func(p api.CreditsProfit) string { return money(p.Revenue) }},
				{Key: "cost", Header: "Cost", Sortable: true, Cell: func(p api.CreditsProfit) string { return money(p.Cost) }},
				{Key: "profit", Header: "Profit", Sortable: true, Cell: func(p api.CreditsProfit) string { return money(p.Profit) }},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.CreditsProfit](),
		},
	}
}

// TokenProfitsPage lists margin records on tokens.
func TokenProfitsPage(b Backend[api.TokenProfit]) *ResourcePage[api.TokenProfit] {
	return &ResourcePage[api.TokenProfit]{
		Def: PageDefinition{
			Code: "token_profits", Title: "Token Profits", Icon: "trending-up", Group: GroupCredits, Order: 13,
			Path: "/api/token-profits", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: TokenProfitsSection,
		Filters: []FilterField{
			TextFilter("ai_model_id", "Model"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.TokenProfit]{
			Columns: []Column[api.TokenProfit]{
				{Key: "model_name", Header: "Model", Sortable: true, Searchable: true},
				{Key: "input_tokens", Header: "Input Tokens", Sortable: true},
				{Key: "output_tokens", Header: "Output Tokens", Sortable: true},
				{Key: "revenue", Header: "Revenue", Sortable: true, Cell: func(p api.TokenProfit) string { return money(p.Revenue) }},
				{Key: "profit", Header: "Profit", Sortable: true, Cell: func(p api.TokenProfit) string { return money(p.Profit) }},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.TokenProfit](),
		},
		Chart: &ChartSpec[api.TokenProfit]{
			Title: "Profit by model", Kind: ChartBar, Key: "profit_by_model",
			Group: func(p api.TokenProfit) string { return p.ModelName },
			Value: func(p api.TokenProfit) float64 { return p.Profit },
		},
	}
}

// TokenTransactionsPage lists the token ledger.
func TokenTransactionsPage(b Backend[api.TokenTransaction]) *ResourcePage[api.TokenTransaction] {
	return &ResourcePage[api.TokenTransaction]{
		Def: PageDefinition{
			Code: "token_transactions", Title: "Token Transactions", Icon: "hash", Group: GroupCredits, Order: 14,
			Path: "/api/token-transactions", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: TokenTransactionsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("type", "Type", "purchase", "usage", "refund"),
			SelectFilter("status", "Status", "pending", "completed", "failed"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.TokenTransaction]{
			Columns: []Column[api.TokenTransaction]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(t api.TokenTransaction) string { return userLabel(t.User, t.UserID) }},
				{Key: "type", Header: "Type", Sortable: true},
				{Key: "tokens", Header: "Tokens", Sortable: true},
				{Key: "amount", Header: "Amount", Sortable: true, Cell: func(t api.TokenTransaction) string { return money(t.Amount) }},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.TokenTransaction](),
		},
	}
}

// UserWalletsPage lists balances; balances can be adjusted.
func UserWalletsPage(b Backend[api.UserWallet]) *ResourcePage[api.UserWallet] {
	return &ResourcePage[api.UserWallet]{
		Def: PageDefinition{
			Code: "user_wallets", Title: "User Wallets", Icon: "wallet", Group: GroupCredits, Order: 15,
			Path: "/api/user-wallets", Actions: []string{MutationUpdate, MutationBulkUpdate}, Schema: userWalletSchema,
		},
		Backend: b,
		Section: UserWalletsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.UserWallet]{
			Columns: []Column[api.UserWallet]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(w api.UserWallet) string { return userLabel(w.User, w.UserID) }},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(w api.UserWallet) string { return money(w.Credits) }},
				{Key: "tokens", Header: "Tokens", Sortable: true},
				{Key: "total_credits_purchased", Header: "Purchased", Sortable: true, Cell: func(w api.UserWallet) string { return money(w.TotalCreditsPurchased) }},
				{Key: "total_credits_used", Header: "Used", Sortable: true, Cell: func(w api.UserWallet) string { return money(w.TotalCreditsUsed) }},
				{Key: "is_active", Header: "Active"},
			},
			Actions: []RowAction[api.UserWallet]{
				{Name: ActionView, Label: "View", Modal: ModalView},
				{Name: ActionEdit, Label: "Adjust", Modal: ModalEdit},
			},
		},
	}
}

// AiModelsPage manages the model catalog.
func AiModelsPage(b Backend[api.AiModel]) *ResourcePage[api.AiModel] {
	return &ResourcePage[api.AiModel]{
		Def: PageDefinition{
			Code: "ai_models", Title: "AI Models", Icon: "cpu", Group: GroupCatalog, Order: 30,
			Path: "/api/ai-models", Actions: CRUDActions, Schema: aiModelSchema,
		},
		Backend: b,
		Section: AiModelsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			TextFilter("provider", "Provider"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.AiModel]{
			Columns: []Column[api.AiModel]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "provider", Header: "Provider", Sortable: true, Searchable: true},
				{Key: "model_id", Header: "Model ID", Searchable: true},
				{Key: "input_token_price", Header: "Input Price", Sortable: true},
				{Key: "output_token_price", Header: "Output Price", Sortable: true},
				{Key: "is_active", Header: "Active"},
			},
			Actions: crudRowActions(func(m api.AiModel) bool { return m.IsDeleted }),
		},
		Chart: &ChartSpec[api.AiModel]{
			Title: "Models by provider", Kind: ChartPie, Key: "by_provider",
			Group: func(m api.AiModel) string { return m.Provider },
		},
	}
}
