// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/tools/dashgen/rules"
)

// histogramSuffixes are the series a histogram exposes beyond its base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Dashboard validates every query expression in d.
func Dashboard(d dashboard.Dashboard, known map[string]bool) *Result {
	res := &Result{}

	data, err := json.Marshal(d)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	exprs := collectExprs(tree, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard has no queries")
	}
	for _, e := range exprs {
		checkExpr(res, "dashboard", e, known)
	}
	return res
}

// Rules validates every rule expression in cr. Record names become known
// for the rules that follow them.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	res := &Result{}
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			if name == "" {
				res.errorf("group %s: rule without record or alert name", g.Name)
				continue
			}
			checkExpr(res, g.Name+"/"+name, r.Expr, known)
		}
	}
	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			res.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// collectExprs walks decoded JSON and returns every "expr" string.
func collectExprs(node any, out []string) []string {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			if s, ok := child.(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(child, out)
		}
	case []any:
		for _, child := range v {
			out = collectExprs(child, out)
		}
	}
	return out
}
