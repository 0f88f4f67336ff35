package console

import (
	"strings"
	"time"

	"github.com/goliatone/go-billing-console/pkg/api"
)

// PaymentTransactionsSection summarizes gateway payments.
var PaymentTransactionsSection = Section[api.PaymentTransaction]{
	Code: "payment_transactions",
	Cards: []CardSpec[api.PaymentTransaction]{
		{Key: "total", Title: "Transactions", Icon: "credit-card", Count: true},
		{
			Key: "revenue", Title: "Collected", Description: "Completed payments", Icon: "dollar-sign", Format: FormatCurrency,
			Server: Field("total_revenue"),
			Fallback: Sum(func(t api.PaymentTransaction) float64 {
				if strings.EqualFold(t.Status, "completed") {
					return t.Amount
				}
				return 0
			}),
		},
		{
			Key: "pending", Title: "Pending", Icon: "clock",
			Server:   Field("pending"),
			Fallback: CountWhere(func(t api.PaymentTransaction) bool { return strings.EqualFold(t.Status, "pending") }),
		},
		{
			Key: "success_rate", Title: "Success Rate", Icon: "percent", Format: FormatPercent,
			Server:   RatioOf("completed", "total", 100),
			Fallback: PercentWhere(func(t api.PaymentTransaction) bool { return strings.EqualFold(t.Status, "completed") }),
		},
	},
}

// PaymentMethodsSection summarizes configured gateways.
var PaymentMethodsSection = Section[api.PaymentMethod]{
	Code: "payment_methods",
	Cards: []CardSpec[api.PaymentMethod]{
		{Key: "total", Title: "Payment Methods", Icon: "credit-card", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(m api.PaymentMethod) bool { return m.IsActive }),
		},
		{
			Key: "providers", Title: "Providers", Icon: "server",
			Server:   Field("providers"),
			Fallback: Distinct(func(m api.PaymentMethod) string { return strings.ToLower(m.Provider) }),
		},
	},
}

// PackagesSection summarizes credit bundles.
var PackagesSection = Section[api.Package]{
	Code: "packages",
	Cards: []CardSpec[api.Package]{
		{Key: "total", Title: "Packages", Icon: "package", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(p api.Package) bool { return p.IsActive }),
		},
		{
			Key: "popular", Title: "Popular", Icon: "star",
			Server:   Field("popular"),
			Fallback: CountWhere(func(p api.Package) bool { return p.IsPopular }),
		},
		{
			Key: "avg_price", Title: "Avg Price", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("average_price"),
			Fallback: Average(func(p api.Package) float64 { return p.Price }),
		},
	},
}

// PackagePlansSection summarizes package pricing per plan.
var PackagePlansSection = Section[api.PackagePlan]{
	Code: "package_plans",
	Cards: []CardSpec[api.PackagePlan]{
		{Key: "total", Title: "Package Plans", Icon: "layers", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(p api.PackagePlan) bool { return p.IsActive }),
		},
		{
			Key: "credits", Title: "Credits Offered", Icon: "coins", Format: FormatDecimal,
			Server:   Field("total_credits"),
			Fallback: Sum(func(p api.PackagePlan) float64 { return p.Credits }),
		},
	},
}

// PackageTransactionsSection summarizes package purchases.
var PackageTransactionsSection = Section[api.PackageTransaction]{
	Code: "package_transactions",
	Cards: []CardSpec[api.PackageTransaction]{
		{Key: "total", Title: "Purchases", Icon: "shopping-cart", Count: true},
		{
			Key: "revenue", Title: "Revenue", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("total_amount"),
			Fallback: Sum(func(t api.PackageTransaction) float64 { return t.Amount }),
		},
		{
			Key: "credits", Title: "Credits Granted", Icon: "coins", Format: FormatDecimal,
			Server:   Field("total_credits"),
			Fallback: Sum(func(t api.PackageTransaction) float64 { return t.Credits }),
		},
		{
			Key: "buyers", Title: "Unique Buyers", Icon: "users",
			Server:   Field("unique_users"),
			Fallback: Distinct(func(t api.PackageTransaction) string { return t.UserID }),
		},
	},
}

// PlansSection summarizes subscription plans.
var PlansSection = Section[api.Plan]{
	Code: "plans",
	Cards: []CardSpec[api.Plan]{
		{Key: "total", Title: "Plans", Icon: "calendar", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(p api.Plan) bool { return p.IsActive }),
		},
		{
			Key: "monthly", Title: "Monthly Plans", Icon: "repeat",
			Server:   Field("monthly"),
			Fallback: CountWhere(func(p api.Plan) bool { return strings.EqualFold(p.Interval, "monthly") }),
		},
		{
			Key: "avg_price", Title: "Avg Price", Icon: "dollar-sign", Format: FormatCurrency,
			Server:   Field("average_price"),
			Fallback: Average(func(p api.Plan) float64 { return p.Price }),
		},
	},
}

// CouponsSection summarizes discount codes.
var CouponsSection = Section[api.Coupon]{
	Code: "coupons",
	Cards: []CardSpec[api.Coupon]{
		{Key: "total", Title: "Coupons", Icon: "ticket", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(c api.Coupon) bool { return c.IsActive && !couponExpired(c, time.Now()) }),
		},
		{
			Key: "expired", Title: "Expired", Icon: "clock",
			Server:   Field("expired"),
			Fallback: CountWhere(func(c api.Coupon) bool { return couponExpired(c, time.Now()) }),
		},
		{
			Key: "redemptions", Title: "Redemptions", Icon: "repeat",
			Server:   Field("total_used"),
			Fallback: Sum(func(c api.Coupon) float64 { return float64(c.UsedCount) }),
		},
	},
}

func couponExpired(c api.Coupon, now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// BillingSettingsSection summarizes pricing configuration.
var BillingSettingsSection = Section[api.BillingSetting]{
	Code: "billing_settings",
	Cards: []CardSpec[api.BillingSetting]{
		{Key: "total", Title: "Settings", Icon: "settings", Count: true},
		{
			Key: "credit_price", Title: "Credit Price", Icon: "coins", Format: FormatDecimal,
			Server: Field("credit_price"),
			Fallback: func(items []api.BillingSetting) float64 {
				if active, ok := activeSetting(items); ok {
					return active.CreditPrice
				}
				return 0
			},
		},
		{
			Key: "tax_rate", Title: "Tax Rate", Icon: "percent", Format: FormatPercent,
			Server: Field("tax_rate"),
			Fallback: func(items []api.BillingSetting) float64 {
				if active, ok := activeSetting(items); ok {
					return active.TaxRate
				}
				return 0
			},
		},
	},
}

func activeSetting(items []api.BillingSetting) (api.BillingSetting, bool) {
	for _, item := range items {
		if item.IsActive {
			return item, true
		}
	}
	if len(items) > 0 {
		return items[0], true
	}
	return api.BillingSetting{}, false
}
