package period

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Comparison is one metric measured in two periods.
//
// Percentage is change/previous*100 when previous is positive. Otherwise it
// is 100 when current is positive and 0 when it is not, so it is never null.
type Comparison struct {
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
	Change     decimal.Decimal `json:"change"`
	Percentage float64         `json:"percentage"`
}

// ComparisonReport pairs two periods with their compared metrics.
type ComparisonReport struct {
	Current  ReportPeriod          `json:"current_period"`
	Previous ReportPeriod          `json:"previous_period"`
	Metrics  map[string]Comparison `json:"metrics"`
}

// Compare builds a Comparison from two values.
func Compare(current, previous decimal.Decimal) Comparison {
	c := Comparison{Current: current, Previous: previous, Change: current.Sub(previous)}
	switch {
	case previous.GreaterThan(decimal.Zero):
		c.Percentage, _ = c.Change.Div(previous).Mul(hundred).Float64()
	case current.GreaterThan(decimal.Zero):
		c.Percentage = 100
	default:
		c.Percentage = 0
	}
	return c
}

// ComparePeriods compares every metric present in either map. A metric
// missing from one side counts as zero there.
func ComparePeriods(current, previous ReportPeriod, metricsCurrent, metricsPrevious map[string]decimal.Decimal) ComparisonReport {
	report := ComparisonReport{
		Current:  current,
		Previous: previous,
		Metrics:  make(map[string]Comparison, len(metricsCurrent)),
	}
	for _, name := range metricNames(metricsCurrent, metricsPrevious) {
		report.Metrics[name] = Compare(valueOrZero(metricsCurrent, name), valueOrZero(metricsPrevious, name))
	}
	return report
}

func metricNames(maps ...map[string]decimal.Decimal) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

func valueOrZero(m map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return decimal.Zero
}
