package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RunsByStatus returns a timeseries panel with run outcomes per hour.
func RunsByStatus() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Runs by Status").
		Description("Reconciliation runs per hour by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (status) (increase(offers_runs_total{`+JobSelector+`}[1h]))`,
			"{{status}}", "A",
		)).
		FillOpacity(30).
		LineWidth(1).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// RunDuration returns a timeseries panel showing the p95 run duration.
func RunDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Run Duration (p95)").
		Description("95th percentile reconciliation run duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(Quantile(0.95, "offers_run_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// OfferChurn returns a timeseries panel comparing new and disappeared offers.
func OfferChurn() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Offer Churn").
		Description("Offers added and removed per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(offers_new_total{`+JobSelector+`}[1h])`, "new", "A")).
		WithTarget(PromQuery(`increase(offers_disappeared_total{`+JobSelector+`}[1h])`, "disappeared", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
