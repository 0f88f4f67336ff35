package console

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-billing-console/pkg/api"
)

// Menu groups.
const (
	GroupCredits    = "credits"
	GroupBilling    = "billing"
	GroupCatalog    = "catalog"
	GroupEngagement = "engagement"
)

// Modal names used by row actions.
const (
	ModalView    = "view"
	ModalCreate  = "create"
	ModalEdit    = "edit"
	ModalDelete  = "delete"
	ModalRestore = "restore"
)

// DefaultPages builds every console page against client.
func DefaultPages(client *api.Client) []Page {
	return []Page{
		CreditsUsagesPage(client.CreditsUsages),
		CreditsTransactionsPage(client.CreditsTransactions),
		CreditsProfitsPage(client.CreditsProfits),
		TokenProfitsPage(client.TokenProfits),
		TokenTransactionsPage(client.TokenTransactions),
		UserWalletsPage(client.UserWallets),
		AiModelsPage(client.AiModels),

		PaymentTransactionsPage(client.PaymentTransactions),
		PaymentMethodsPage(client.PaymentMethods),
		PackagesPage(client.Packages),
		PackagePlansPage(client.PackagePlans),
		PackageTransactionsPage(client.PackageTransactions),
		PlansPage(client.Plans),
		CouponsPage(client.Coupons),
		BillingSettingsPage(client.BillingSettings),

		FeaturesPage(client.Features),
		FeaturePopupsPage(client.FeaturePopups),
		FeatureFeedbacksPage(client.FeatureFeedbacks),
		FeatureUsageLogsPage(client.FeatureUsageLogs),
		EventsPage(client.Events),
		UsersPage(client.Users),
		NotificationsPage(client.Notifications),
	}
}

func viewAction[T any]() []RowAction[T] {
	return []RowAction[T]{{Name: ActionView, Label: "View", Modal: ModalView}}
}

func crudRowActions[T any](deleted func(T) bool) []RowAction[T] {
	live := func(item T) bool { return !deleted(item) }
	return []RowAction[T]{
		{Name: ActionView, Label: "View", Modal: ModalView},
		{Name: ActionEdit, Label: "Edit", Modal: ModalEdit, Visible: live},
		{Name: ActionDelete, Label: "Delete", Modal: ModalDelete, Visible: live},
		{Name: ActionRestore, Label: "Restore", Modal: ModalRestore, Visible: deleted},
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func userLabel(ref *api.UserRef, fallback string) string {
	if ref == nil {
		return fallback
	}
	if ref.Name != "" {
		return ref.Name
	}
	if ref.Email != "" {
		return ref.Email
	}
	return fallback
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func itoa[N int | int64](v N) string {
	return fmt.Sprint(v)
}
