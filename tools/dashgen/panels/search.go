package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SearchRate returns a timeseries panel showing search API calls per minute.
func SearchRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Search Calls / min").
		Description("MercadoLibre search API page requests per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`offers:search_requests:rate5m * 60`, "calls/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SearchErrors returns a timeseries panel showing failed search calls per minute.
func SearchErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Search Errors / min").
		Description("Search API calls that failed or returned a non-200 status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`offers:search_errors:rate5m * 60`, "errors/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PaginationStops returns a timeseries panel showing why term pagination ended.
func PaginationStops() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Pagination Stops").
		Description("Why per-term pagination ended, per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (reason) (increase(offers_search_pagination_stops_total{`+JobSelector+`}[1h]))`,
			"{{reason}}", "A",
		)).
		FillOpacity(30).
		LineWidth(1).
		Legend(TableLegend("sum")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
