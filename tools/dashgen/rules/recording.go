package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "offers-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "offers-recording",
					Rules: []Rule{
						{
							Record: "offers:http_requests:rate5m",
							Expr:   `sum(rate(offers_http_requests_total[5m]))`,
						},
						{
							Record: "offers:http_errors:rate5m",
							Expr:   `sum(rate(offers_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "offers:search_requests:rate5m",
							Expr:   `rate(offers_search_requests_total[5m])`,
						},
						{
							Record: "offers:search_errors:rate5m",
							Expr:   `rate(offers_search_errors_total[5m])`,
						},
						{
							Record: "offers:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(offers_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
