package console

import "github.com/goliatone/go-billing-console/pkg/api"

// PaymentTransactionsPage lists gateway payments.
func PaymentTransactionsPage(b Backend[api.PaymentTransaction]) *ResourcePage[api.PaymentTransaction] {
	return &ResourcePage[api.PaymentTransaction]{
		Def: PageDefinition{
			Code: "payment_transactions", Title: "Payment Transactions", Icon: "credit-card", Group: GroupBilling, Order: 20,
			Path: "/api/payment-transactions", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: PaymentTransactionsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("status", "Status", "pending", "completed", "failed", "refunded"),
			TextFilter("gateway", "Gateway"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.PaymentTransaction]{
			Columns: []Column[api.PaymentTransaction]{
				{Key: "reference", Header: "Reference", Searchable: true},
				{Key: "user", Header: "User", Searchable: true, Cell: func(t api.PaymentTransaction) string { return userLabel(t.User, t.UserID) }},
				{Key: "amount", Header: "Amount", Sortable: true, Cell: func(t api.PaymentTransaction) string { return t.Currency + " " + money(t.Amount) }},
				{Key: "gateway", Header: "Gateway", Sortable: true},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.PaymentTransaction](),
		},
		Chart: &ChartSpec[api.PaymentTransaction]{
			Title: "Payments by status", Kind: ChartPie, Key: "by_status",
			Group: func(t api.PaymentTransaction) string { return t.Status },
		},
	}
}

// PaymentMethodsPage manages payment gateways.
func PaymentMethodsPage(b Backend[api.PaymentMethod]) *ResourcePage[api.PaymentMethod] {
	return &ResourcePage[api.PaymentMethod]{
		Def: PageDefinition{
			Code: "payment_methods", Title: "Payment Methods", Icon: "credit-card", Group: GroupBilling, Order: 21,
			Path: "/api/payment-methods", Actions: CRUDActions, Schema: paymentMethodSchema,
		},
		Backend: b,
		Section: PaymentMethodsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("type", "Type", "card", "wallet", "bank_transfer", "crypto"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.PaymentMethod]{
			Columns: []Column[api.PaymentMethod]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "provider", Header: "Provider", Sortable: true, Searchable: true},
				{Key: "type", Header: "Type", Sortable: true},
				{Key: "currency", Header: "Currency"},
				{Key: "is_default", Header: "Default"},
				{Key: "is_active", Header: "Active"},
			},
			Actions: crudRowActions(func(m api.PaymentMethod) bool { return m.IsDeleted }),
		},
	}
}

// PackagesPage manages credit bundles.
func PackagesPage(b Backend[api.Package]) *ResourcePage[api.Package] {
	return &ResourcePage[api.Package]{
		Def: PageDefinition{
			Code: "packages", Title: "Packages", Icon: "package", Group: GroupBilling, Order: 22,
			Path: "/api/packages", Actions: CRUDActions, Schema: packageSchema,
		},
		Backend: b,
		Section: PackagesSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("is_active", "Active", "true", "false"),
			SelectFilter("is_popular", "Popular", "true", "false"),
		},
		Table: Table[api.Package]{
			Columns: []Column[api.Package]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(p api.Package) string { return money(p.Credits) }},
				{Key: "price", Header: "Price", Sortable: true, Cell: func(p api.Package) string { return p.Currency + " " + money(p.Price) }},
				{Key: "duration_days", Header: "Days", Sortable: true},
				{Key: "is_popular", Header: "Popular"},
				{Key: "is_active", Header: "Active"},
			},
			Actions: crudRowActions(func(p api.Package) bool { return p.IsDeleted }),
		},
	}
}

// PackagePlansPage manages package pricing per plan.
func PackagePlansPage(b Backend[api.PackagePlan]) *ResourcePage[api.PackagePlan] {
	return &ResourcePage[api.PackagePlan]{
		Def: PageDefinition{
			Code: "package_plans", Title: "Package Plans", Icon: "layers", Group: GroupBilling, Order: 23,
			Path: "/api/package-plans", Actions: CRUDActions, Schema: packagePlanSchema,
		},
		Backend: b,
		Section: PackagePlansSection,
		Filters: []FilterField{
			TextFilter("package_id", "Package"),
			TextFilter("plan_id", "Plan"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.PackagePlan]{
			Columns: []Column[api.PackagePlan]{
				{Key: "package_id", Header: "Package", Searchable: true},
				{Key: "plan_id", Header: "Plan", Searchable: true},
				{Key: "price", Header: "Price", Sortable: true, Cell: func(p api.PackagePlan) string { return money(p.Price) }},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(p api.PackagePlan) string { return money(p.Credits) }},
				{Key: "is_active", Header: "Active"},
			},
			Actions: crudRowActions(func(p api.PackagePlan) bool { return p.IsDeleted }),
		},
	}
}

// PackageTransactionsPage lists package purchases.
func PackageTransactionsPage(b Backend[api.PackageTransaction]) *ResourcePage[api.PackageTransaction] {
	return &ResourcePage[api.PackageTransaction]{
		Def: PageDefinition{
			Code: "package_transactions", Title: "Package Transactions", Icon: "shopping-cart", Group: GroupBilling, Order: 24,
			Path: "/api/package-transactions", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: PackageTransactionsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("status", "Status", "pending", "completed", "failed", "refunded"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.PackageTransaction]{
			Columns: []Column[api.PackageTransaction]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(t api.PackageTransaction) string { return userLabel(t.User, t.UserID) }},
				{Key: "package_id", Header: "Package", Searchable: true},
				{Key: "amount", Header: "Amount", Sortable: true, Cell: func(t api.PackageTransaction) string { return money(t.Amount) }},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(t api.PackageTransaction) string { return money(t.Credits) }},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.PackageTransaction](),
		},
		Chart: &ChartSpec[api.PackageTransaction]{
			Title: "Revenue by package", Kind: ChartBar, Key: "revenue_by_package",
			Group: func(t api.PackageTransaction) string { return t.PackageID },
			Value: func(t api.PackageTransaction) float64 { return t.Amount },
		},
	}
}

// PlansPage manages subscription plans.
func PlansPage(b Backend[api.Plan]) *ResourcePage[api.Plan] {
	return &ResourcePage[api.Plan]{
		Def: PageDefinition{
			Code: "plans", Title: "Plans", Icon: "calendar", Group: GroupBilling, Order: 25,
			Path: "/api/plans", Actions: CRUDActions, Schema: planSchema,
		},
		Backend: b,
		Section: PlansSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("interval", "Interval", "monthly", "yearly", "lifetime"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.Plan]{
			Columns: []Column[api.Plan]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "interval", Header: "Interval", Sortable: true},
				{Key: "duration_days", Header: "Days", Sortable: true},
				{Key: "price", Header: "Price", Sortable: true, Cell: func(p api.Plan) string { return p.Currency + " " + money(p.Price) }},
				{Key: "is_active", Header: "Active"},
			},
			Actions: crudRowActions(func(p api.Plan) bool { return p.IsDeleted }),
		},
	}
}

// CouponsPage manages discount codes.
func CouponsPage(b Backend[api.Coupon]) *ResourcePage[api.Coupon] {
	return &ResourcePage[api.Coupon]{
		Def: PageDefinition{
			Code: "coupons", Title: "Coupons", Icon: "ticket", Group: GroupBilling, Order: 26,
			Path: "/api/coupons", Actions: CRUDActions, Schema: couponSchema,
		},
		Backend: b,
		Section: CouponsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("discount_type", "Type", "percentage", "fixed_amount"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.Coupon]{
			Columns: []Column[api.Coupon]{
				{Key: "code", Header: "Code", Sortable: true, Searchable: true},
				{Key: "discount_type", Header: "Type", Sortable: true},
				{Key: "discount_value", Header: "Value", Sortable: true},
				{Key: "usage", Header: "Used", Cell: func(c api.Coupon) string { return itoa(c.UsedCount) + " / " + itoa(c.MaxUses) }},
				{Key: "expires_at", Header: "Expires", Sortable: true},
				{Key: "is_active", Header: "Active"},
			},
			Actions: crudRowActions(func(c api.Coupon) bool { return c.IsDeleted }),
		},
		Chart: &ChartSpec[api.Coupon]{
			Title: "Redemptions by type", Kind: ChartPie, Key: "used_by_type",
			Group: func(c api.Coupon) string { return c.DiscountType },
			Value: func(c api.Coupon) float64 { return float64(c.UsedCount) },
		},
	}
}

// BillingSettingsPage manages pricing configuration. Settings are never deleted.
func BillingSettingsPage(b Backend[api.BillingSetting]) *ResourcePage[api.BillingSetting] {
	return &ResourcePage[api.BillingSetting]{
		Def: PageDefinition{
			Code: "billing_settings", Title: "Billing Settings", Icon: "settings", Group: GroupBilling, Order: 27,
			Path: "/api/billing-settings", Actions: []string{MutationCreate, MutationUpdate}, Schema: billingSettingSchema,
		},
		Backend: b,
		Section: BillingSettingsSection,
		Table: Table[api.BillingSetting]{
			Columns: []Column[api.BillingSetting]{
				{Key: "currency", Header: "Currency"},
				{Key: "credit_price", Header: "Credit Price"},
				{Key: "token_price", Header: "Token Price"},
				{Key: "tax_rate", Header: "Tax %"},
				{Key: "free_signup_credits", Header: "Signup Credits"},
				{Key: "is_active", Header: "Active"},
				{Key: "updated_at", Header: "Updated", Sortable: true},
			},
			Actions: []RowAction[api.BillingSetting]{
				{Name: ActionView, Label: "View", Modal: ModalView},
				{Name: ActionEdit, Label: "Edit", Modal: ModalEdit},
			},
		},
	}
}
