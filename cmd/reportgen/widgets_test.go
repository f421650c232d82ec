package main

import (
	"strings"
	"testing"
)

func TestWidgetsCmdListsCatalog(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "widgets")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"topline_kpi_grid",
		"budget_pacing_meter",
		"ctr_over_time",
		"imps_clicks_over_time",
		"daily_spend_chart",
		"creative_comparison",
		"placement_performance_table",
		"session_engagement_chart",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("widgets output is missing %q", want)
		}
	}
}

func TestWidgetsCmdEligibility(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	out, err := execute(t, "widgets", "--sources", src)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, "* eligible for the given sources") {
		t.Error("widgets output is missing the eligibility legend")
	}
	// The test CSV has numeric metrics, so the KPI grid is eligible,
	// while the dimension-driven widgets are not.
	if !strings.Contains(out, "* topline_kpi_grid") {
		t.Errorf("widgets output does not mark topline_kpi_grid eligible: %q", out)
	}
	if strings.Contains(out, "* creative_comparison") {
		t.Error("widgets output marks creative_comparison eligible without a creative dimension")
	}
}
