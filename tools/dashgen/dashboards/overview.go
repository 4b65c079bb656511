// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/tools/dashgen/panels"
)

// BuildOverview constructs the offer-tracker overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Offer Tracker Overview").
		Uid("offers-overview").
		Tags([]string{"offers", "offer-tracker"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.TrackedOffersStat()).
		WithPanel(panels.LastRunStat()))

	b.WithRow(dashboard.NewRowBuilder("Runs").
		WithPanel(panels.RunsByStatus()).
		WithPanel(panels.RunDuration()).
		WithPanel(panels.OfferChurn()))

	b.WithRow(dashboard.NewRowBuilder("Search API").
		WithPanel(panels.SearchRate()).
		WithPanel(panels.SearchErrors()).
		WithPanel(panels.PaginationStops()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.MessagesSent()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
