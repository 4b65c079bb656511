package main

import "errors"

// KnownMetrics is the set of metric names exported by offer-tracker plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP.
	"offers_http_request_duration_seconds": true,
	"offers_http_requests_total":           true,

	// Health.
	"offers_healthz_up": true,
	"offers_readyz_up":  true,

	// Search API.
	"offers_search_requests_total":         true,
	"offers_search_errors_total":           true,
	"offers_search_pagination_stops_total": true,

	// Runs.
	"offers_run_duration_seconds":       true,
	"offers_runs_total":                 true,
	"offers_new_total":                  true,
	"offers_disappeared_total":          true,
	"offers_tracked":                    true,
	"offers_last_run_timestamp_seconds": true,

	// Notifications.
	"offers_notification_messages_sent_total": true,
	"offers_notification_failures_total":      true,
	"offers_notification_splits_total":        true,
	"offers_notification_duration_seconds":    true,

	// Recording rules.
	"offers:http_requests:rate5m":         true,
	"offers:http_errors:rate5m":           true,
	"offers:search_requests:rate5m":       true,
	"offers:search_errors:rate5m":         true,
	"offers:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
