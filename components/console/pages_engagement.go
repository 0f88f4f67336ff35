package console

import "github.com/goliatone/go-billing-console/pkg/api"

// FeaturesPage manages credit-consuming features.
func FeaturesPage(b Backend[api.Feature]) *ResourcePage[api.Feature] {
	return &ResourcePage[api.Feature]{
		Def: PageDefinition{
			Code: "features", Title: "Features", Icon: "zap", Group: GroupCatalog, Order: 31,
			Path: "/api/features", Actions: CRUDActions, Schema: featureSchema,
		},
		Backend: b,
		Section: FeaturesSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("is_active", "Active", "true", "false"),
		},
		Table: Table[api.Feature]{
			Columns: []Column[api.Feature]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "slug", Header: "Slug", Searchable: true},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(f api.Feature) string { return money(f.Credits) }},
				{Key: "is_active", Header: "Active"},
				{Key: "created_at", Header: "Created", Sortable: true},
			},
			Actions: crudRowActions(func(f api.Feature) bool { return f.IsDeleted }),
		},
	}
}

// FeaturePopupsPage manages in-product announcements.
func FeaturePopupsPage(b Backend[api.FeaturePopup]) *ResourcePage[api.FeaturePopup] {
	return &ResourcePage[api.FeaturePopup]{
		Def: PageDefinition{
			Code: "feature_popups", Title: "Feature Popups", Icon: "message-square", Group: GroupCatalog, Order: 32,
			Path: "/api/feature-popups", Actions: CRUDActions, Schema: featurePopupSchema,
		},
		Backend: b,
		Section: FeaturePopupsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("status", "Status", "draft", "active", "paused", "archived"),
			DateRangeFilter("starts_at", "Schedule"),
		},
		Table: Table[api.FeaturePopup]{
			Columns: []Column[api.FeaturePopup]{
				{Key: "title", Header: "Title", Sortable: true, Searchable: true},
				{Key: "feature_id", Header: "Feature", Searchable: true},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "views", Header: "Views", Sortable: true},
				{Key: "clicks", Header: "Clicks", Sortable: true},
				{Key: "starts_at", Header: "Starts", Sortable: true},
				{Key: "ends_at", Header: "Ends", Sortable: true},
			},
			Actions: crudRowActions(func(p api.FeaturePopup) bool { return p.IsDeleted }),
		},
	}
}

// FeatureFeedbacksPage moderates ratings.
func FeatureFeedbacksPage(b Backend[api.FeatureFeedback]) *ResourcePage[api.FeatureFeedback] {
	return &ResourcePage[api.FeatureFeedback]{
		Def: PageDefinition{
			Code: "feature_feedbacks", Title: "Feature Feedback", Icon: "message-circle", Group: GroupEngagement, Order: 40,
			Path: "/api/feature-feedbacks", Schema: featureFeedbackSchema,
			Actions: []string{MutationUpdate, MutationBulkUpdate, MutationSoftDelete, MutationBulkSoftDelete, MutationRestore},
		},
		Backend: b,
		Section: FeatureFeedbacksSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("rating", "Rating", "1", "2", "3", "4", "5"),
			SelectFilter("status", "Status", "pending", "reviewed", "resolved"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.FeatureFeedback]{
			Columns: []Column[api.FeatureFeedback]{
				{Key: "user", Header: "User", Searchable: true, Cell: func(f api.FeatureFeedback) string { return userLabel(f.User, f.UserID) }},
				{Key: "feature_id", Header: "Feature", Searchable: true},
				{Key: "rating", Header: "Rating", Sortable: true},
				{Key: "comment", Header: "Comment", Searchable: true},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: []RowAction[api.FeatureFeedback]{
				{Name: ActionView, Label: "View", Modal: ModalView},
				{Name: ActionEdit, Label: "Review", Modal: ModalEdit},
				{Name: ActionDelete, Label: "Delete", Modal: ModalDelete},
			},
		},
		Chart: &ChartSpec[api.FeatureFeedback]{
			Title: "Ratings", Kind: ChartBar, Key: "by_rating",
			Group: func(f api.FeatureFeedback) string { return itoa(f.Rating) },
		},
	}
}

// FeatureUsageLogsPage lists feature executions.
func FeatureUsageLogsPage(b Backend[api.FeatureUsageLog]) *ResourcePage[api.FeatureUsageLog] {
	return &ResourcePage[api.FeatureUsageLog]{
		Def: PageDefinition{
			Code: "feature_usage_logs", Title: "Feature Usage Logs", Icon: "activity", Group: GroupEngagement, Order: 41,
			Path: "/api/feature-usage-logs", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: FeatureUsageLogsSection,
		Filters: []FilterField{
			TextFilter("feature_id", "Feature"),
			SelectFilter("status", "Status", "success", "failed"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.FeatureUsageLog]{
			Columns: []Column[api.FeatureUsageLog]{
				{Key: "feature_id", Header: "Feature", Searchable: true},
				{Key: "user_id", Header: "User", Searchable: true},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "duration_ms", Header: "Duration (ms)", Sortable: true},
				{Key: "credits", Header: "Credits", Sortable: true, Cell: func(l api.FeatureUsageLog) string { return money(l.Credits) }},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.FeatureUsageLog](),
		},
		Chart: &ChartSpec[api.FeatureUsageLog]{
			Title: "Executions by feature", Kind: ChartBar, Key: "by_feature",
			Group: func(l api.FeatureUsageLog) string { return l.FeatureID },
		},
	}
}

// EventsPage lists platform events.
func EventsPage(b Backend[api.Event]) *ResourcePage[api.Event] {
	return &ResourcePage[api.Event]{
		Def: PageDefinition{
			Code: "events", Title: "Events", Icon: "radio", Group: GroupEngagement, Order: 42,
			Path: "/api/events", Actions: ReadOnlyActions,
		},
		Backend: b,
		Section: EventsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			TextFilter("type", "Type"),
			DateRangeFilter("created_at", "Date"),
		},
		Table: Table[api.Event]{
			Columns: []Column[api.Event]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "type", Header: "Type", Sortable: true, Searchable: true},
				{Key: "source", Header: "Source", Searchable: true},
				{Key: "user_id", Header: "User", Searchable: true},
				{Key: "created_at", Header: "Date", Sortable: true},
			},
			Actions: viewAction[api.Event](),
		},
		Chart: &ChartSpec[api.Event]{
			Title: "Events by type", Kind: ChartLine, Key: "by_type",
			Group: func(e api.Event) string { return e.Type },
		},
	}
}

// UsersPage manages accounts.
func UsersPage(b Backend[api.User]) *ResourcePage[api.User] {
	return &ResourcePage[api.User]{
		Def: PageDefinition{
			Code: "users", Title: "Users", Icon: "users", Group: GroupEngagement, Order: 43,
			Path: "/api/users", Schema: userSchema,
			Actions: []string{MutationUpdate, MutationBulkUpdate, MutationSoftDelete, MutationBulkSoftDelete, MutationRestore, MutationPermanentDelete},
		},
		Backend: b,
		Section: UsersSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("role", "Role", "user", "admin", "super_admin"),
			SelectFilter("status", "Status", "active", "inactive", "blocked"),
			SelectFilter("is_verified", "Verified", "true", "false"),
		},
		Table: Table[api.User]{
			Columns: []Column[api.User]{
				{Key: "name", Header: "Name", Sortable: true, Searchable: true},
				{Key: "email", Header: "Email", Sortable: true, Searchable: true},
				{Key: "role", Header: "Role", Sortable: true},
				{Key: "status", Header: "Status", Sortable: true},
				{Key: "is_verified", Header: "Verified", Cell: func(u api.User) string { return yesNo(u.IsVerified) }},
				{Key: "created_at", Header: "Joined", Sortable: true},
			},
			Actions: crudRowActions(func(u api.User) bool { return u.IsDeleted }),
		},
		Chart: &ChartSpec[api.User]{
			Title: "Users by role", Kind: ChartPie, Key: "by_role",
			Group: func(u api.User) string { return u.Role },
		},
	}
}

// NotificationsPage lists and sends notifications.
func NotificationsPage(b Backend[api.Notification]) *ResourcePage[api.Notification] {
	return &ResourcePage[api.Notification]{
		Def: PageDefinition{
			Code: "notifications", Title: "Notifications", Icon: "bell", Group: GroupEngagement, Order: 44,
			Path: "/api/notifications", Schema: notificationSchema,
			Actions: []string{MutationCreate, MutationSoftDelete, MutationBulkSoftDelete},
		},
		Backend: b,
		Section: NotificationsSection,
		Filters: []FilterField{
			TextFilter("search", "Search"),
			SelectFilter("type", "Type", "info", "warning", "billing", "system"),
			SelectFilter("is_read", "Read", "true", "false"),
		},
		Table: Table[api.Notification]{
			Columns: []Column[api.Notification]{
				{Key: "title", Header: "Title", Sortable: true, Searchable: true},
				{Key: "user_id", Header: "User", Searchable: true},
				{Key: "type", Header: "Type", Sortable: true},
				{Key: "is_read", Header: "Read"},
				{Key: "created_at", Header: "Sent", Sortable: true},
			},
			Actions: []RowAction[api.Notification]{
				{Name: ActionView, Label: "View", Modal: ModalView},
				{Name: ActionDelete, Label: "Delete", Modal: ModalDelete},
			},
		},
	}
}
