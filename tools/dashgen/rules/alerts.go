package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// offer-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "offers-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "offers-alerts",
					Rules: []Rule{
						{
							Alert: "OffersDown",
							Expr:  `absent(up{job="offer-tracker"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Offer tracker is down",
								"description": "The offer-tracker job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "OffersStoreUnreachable",
							Expr:  `offers_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Offer store is unreachable",
								"description": "The readiness probe has failed to ping the store for more than 2 minutes.",
							},
						},
						{
							Alert: "OffersRunsStale",
							Expr:  `time() - offers_last_run_timestamp_seconds > 3 * 3600`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "No reconciliation run in the last 3 hours",
								"description": "The scheduler has not finished a run for more than three intervals.",
							},
						},
						{
							Alert: "OffersRunsFailing",
							Expr:  `increase(offers_runs_total{status="failed"}[1h]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Reconciliation runs are failing",
								"description": "At least one run failed in the last hour. Check the store and the run history.",
							},
						},
						{
							Alert: "OffersSearchErrors",
							Expr:  `offers:search_errors:rate5m / offers:search_requests:rate5m > 0.2`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Search API error rate is elevated",
								"description": "More than 20% of search calls failed over 15 minutes. Partial results can remove live offers.",
							},
						},
						{
							Alert: "OffersHighErrorRate",
							Expr:  `offers:http_errors:rate5m / offers:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on offer-tracker",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "OffersNotificationFailures",
							Expr:  `increase(offers_notification_failures_total[15m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more notification messages failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
