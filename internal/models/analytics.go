package models

// AnalyticsSummary aggregates share activity over a date range.
type AnalyticsSummary struct {
	TotalShares   int   `json:"total_shares"`
	ActiveShares  int   `json:"active_shares"`
	ExpiredShares int   `json:"expired_shares"`
	TotalViews    int64 `json:"total_views"`
	UniqueClients int   `json:"unique_clients"`
}

// PropertyShareStats groups share counts by property.
type PropertyShareStats struct {
	PropertyID   string `json:"property_id"`
	PropertyName string `json:"property_name"`
	TotalShares  int    `json:"total_shares"`
	ActiveShares int    `json:"active_shares"`
	TotalViews   int64  `json:"total_views"`
}

// MonthlyShareStats groups share counts by creation month (YYYY-MM).
type MonthlyShareStats struct {
	Month  string `json:"month"`
	Shares int    `json:"shares"`
	Views  int64  `json:"views"`
}

// ClientShareStats ranks clients by engagement.
type ClientShareStats struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	Views            int64  `json:"views"`
	PropertiesViewed int    `json:"properties_viewed"`
}

// SharingAnalytics is the full analytics report.
type SharingAnalytics struct {
	Summary    AnalyticsSummary     `json:"summary"`
	ByProperty []PropertyShareStats `json:"by_property"`
	ByMonth    []MonthlyShareStats  `json:"by_month"`
	TopClients []ClientShareStats   `json:"top_clients"`
}
