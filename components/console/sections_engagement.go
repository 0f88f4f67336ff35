package console

import (
	"strings"

	"github.com/goliatone/go-billing-console/pkg/api"
)

// FeaturesSection summarizes the feature catalog.
var FeaturesSection = Section[api.Feature]{
	Code: "features",
	Cards: []CardSpec[api.Feature]{
		{Key: "total", Title: "Features", Icon: "zap", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(f api.Feature) bool { return f.IsActive }),
		},
		{
			Key: "avg_credits", Title: "Avg Credit Cost", Icon: "coins", Format: FormatDecimal,
			Server:   Field("average_credits"),
			Fallback: Average(func(f api.Feature) float64 { return f.Credits }),
		},
	},
}

// FeaturePopupsSection summarizes in-product announcements.
var FeaturePopupsSection = Section[api.FeaturePopup]{
	Code: "feature_popups",
	Cards: []CardSpec[api.FeaturePopup]{
		{Key: "total", Title: "Popups", Icon: "message-square", Count: true},
		{
			Key: "views", Title: "Views", Icon: "eye",
			Server:   Field("total_views"),
			Fallback: Sum(func(p api.FeaturePopup) float64 { return float64(p.Views) }),
		},
		{
			Key: "clicks", Title: "Clicks", Icon: "mouse-pointer",
			Server:   Field("total_clicks"),
			Fallback: Sum(func(p api.FeaturePopup) float64 { return float64(p.Clicks) }),
		},
		{
			Key: "ctr", Title: "Click Rate", Icon: "percent", Format: FormatPercent,
			Server: RatioOf("total_clicks", "total_views", 100),
			Fallback: func(items []api.FeaturePopup) float64 {
				views := Sum(func(p api.FeaturePopup) float64 { return float64(p.Views) })(items)
				if views == 0 {
					return 0
				}
				return Sum(func(p api.FeaturePopup) float64 { return float64(p.Clicks) })(items) / views * 100
			},
		},
	},
}

// FeatureFeedbacksSection summarizes user ratings.
var FeatureFeedbacksSection = Section[api.FeatureFeedback]{
	Code: "feature_feedbacks",
	Cards: []CardSpec[api.FeatureFeedback]{
		{Key: "total", Title: "Feedback", Icon: "message-circle", Count: true},
		{
			Key: "avg_rating", Title: "Avg Rating", Icon: "star", Format: FormatDecimal,
			Server:   Field("average_rating"),
			Fallback: Average(func(f api.FeatureFeedback) float64 { return float64(f.Rating) }),
		},
		{
			Key: "positive", Title: "Positive", Description: "Rated 4 or 5", Icon: "thumbs-up",
			Server:   Field("positive"),
			Fallback: CountWhere(func(f api.FeatureFeedback) bool { return f.Rating >= 4 }),
		},
		{
			Key: "pending", Title: "Pending Review", Icon: "clock",
			Server:   Field("pending"),
			Fallback: CountWhere(func(f api.FeatureFeedback) bool { return strings.EqualFold(f.Status, "pending") }),
		},
	},
}

// FeatureUsageLogsSection summarizes feature executions.
var FeatureUsageLogsSection = Section[api.FeatureUsageLog]{
	Code: "feature_usage_logs",
	Cards: []CardSpec[api.FeatureUsageLog]{
		{Key: "total", Title: "Executions", Icon: "activity", Count: true},
		{
			Key: "success_rate", Title: "Success Rate", Icon: "percent", Format: FormatPercent,
			Server:   RatioOf("successful", "total", 100),
			Fallback: PercentWhere(func(l api.FeatureUsageLog) bool { return strings.EqualFold(l.Status, "success") }),
		},
		{
			Key: "avg_duration", Title: "Avg Duration (ms)", Icon: "clock",
			Server:   Field("average_duration_ms"),
			Fallback: Average(func(l api.FeatureUsageLog) float64 { return float64(l.DurationMs) }),
		},
		{
			Key: "credits", Title: "Credits Charged", Icon: "coins", Format: FormatDecimal,
			Server:   Field("total_credits"),
			Fallback: Sum(func(l api.FeatureUsageLog) float64 { return l.Credits }),
		},
	},
}

// EventsSection summarizes platform events.
var EventsSection = Section[api.Event]{
	Code: "events",
	Cards: []CardSpec[api.Event]{
		{Key: "total", Title: "Events", Icon: "radio", Count: true},
		{
			Key: "types", Title: "Event Types", Icon: "tag",
			Server:   Field("types"),
			Fallback: Distinct(func(e api.Event) string { return e.Type }),
		},
		{
			Key: "users", Title: "Users Involved", Icon: "users",
			Server:   Field("unique_users"),
			Fallback: Distinct(func(e api.Event) string { return e.UserID }),
		},
	},
}

// UsersSection summarizes accounts.
var UsersSection = Section[api.User]{
	Code: "users",
	Cards: []CardSpec[api.User]{
		{Key: "total", Title: "Users", Icon: "users", Count: true},
		{
			Key: "active", Title: "Active", Icon: "check-circle",
			Server:   Field("active"),
			Fallback: CountWhere(func(u api.User) bool { return strings.EqualFold(u.Status, "active") }),
		},
		{
			Key: "verified", Title: "Verified", Icon: "shield-check",
			Server:   Field("verified"),
			Fallback: CountWhere(func(u api.User) bool { return u.IsVerified }),
		},
		{
			Key: "admins", Title: "Admins", Icon: "shield",
			Server:   Field("admins"),
			Fallback: CountWhere(func(u api.User) bool { return strings.EqualFold(u.Role, "admin") }),
		},
	},
}

// NotificationsSection summarizes outbound notifications.
var NotificationsSection = Section[api.Notification]{
	Code: "notifications",
	Cards: []CardSpec[api.Notification]{
		{Key: "total", Title: "Notifications", Icon: "bell", Count: true},
		{
			Key: "unread", Title: "Unread", Icon: "mail",
			Server:   Field("unread"),
			Fallback: CountWhere(func(n api.Notification) bool { return !n.IsRead }),
		},
		{
			Key: "read_rate", Title: "Read Rate", Icon: "percent", Format: FormatPercent,
			Server:   RatioOf("read", "total", 100),
			Fallback: PercentWhere(func(n api.Notification) bool { return n.IsRead }),
		},
	},
}
