package composer

// Report categories recognized by the composer. Any other category
// string falls back to the baseline list.
const (
	// CategoryInitial is a campaign kickoff report.
	CategoryInitial = "initial"
	// CategoryMidCampaign is an in-flight checkpoint report.
	CategoryMidCampaign = "mid_campaign"
	// CategoryFinal is a campaign wrap-up report.
	CategoryFinal = "final"
	// CategoryOther is the explicit fallback category.
	CategoryOther = "other"
)

// categoryDefaults maps each known category to its ordered default
// widget list. Early-campaign reports lean on pacing, wrap-up reports
// add the comparison and breakdown widgets.
var categoryDefaults = map[string][]string{
	CategoryInitial: {
		"topline_kpi_grid",
		"budget_pacing_meter",
	},
	CategoryMidCampaign: {
		"topline_kpi_grid",
		"ctr_over_time",
		"imps_clicks_over_time",
		"daily_spend_chart",
	},
	CategoryFinal: {
		"topline_kpi_grid",
		"ctr_over_time",
		"imps_clicks_over_time",
		"creative_comparison",
		"placement_performance_table",
		"session_engagement_chart",
	},
	CategoryOther: {
		"topline_kpi_grid",
	},
}

// DefaultWidgets returns the ordered default widget list for a
// category. Unknown categories get the baseline list.
func DefaultWidgets(category string) []string {
	names, ok := categoryDefaults[category]
	if !ok {
		names = categoryDefaults[CategoryOther]
	}
	return append([]string(nil), names...)
}

// Categories returns the known category names in report-lifecycle
// order.
func Categories() []string {
	return []string{CategoryInitial, CategoryMidCampaign, CategoryFinal, CategoryOther}
}
