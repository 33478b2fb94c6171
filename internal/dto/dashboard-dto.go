package dto

// SummaryRow is one name/count pair of a dashboard grouping.
type SummaryRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DashboardResponse aggregates the facilities the requesting user can
// see. Region summaries are populated for the horizon one level below
// the user's own: counties for national users, constituencies for
// county users, wards for constituency users.
type DashboardResponse struct {
	TotalFacilities       int64        `json:"total_facilities"`
	RecentlyCreated       int64        `json:"recently_created"`
	CountySummary         []SummaryRow `json:"county_summary"`
	ConstituenciesSummary []SummaryRow `json:"constituencies_summary"`
	WardsSummary          []SummaryRow `json:"wards_summary"`
	OwnersSummary         []SummaryRow `json:"owners_summary"`
	OwnerTypes            []SummaryRow `json:"owner_types"`
	TypesSummary          []SummaryRow `json:"types_summary"`
	StatusSummary         []SummaryRow `json:"status_summary"`
}
