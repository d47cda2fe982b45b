// Package integrate joins border pairs with economic indicators and derives
// the per-pair ratio table.
package integrate

import (
	"math"

	"github.com/geoborder/borderlens/internal/model"
)

// latest tracks the most recent observation seen for one country+indicator.
type latest struct {
	value float64
	year  int
	ok    bool
}

// CalculateRatios derives the ratio set for two resolved country names.
// For each indicator, the most recent observation per country is used; when
// several records share the latest year, the one appearing last in input
// order wins. An indicator is skipped entirely when either country has no
// observation, or when countryB's value is zero (no partial entries). An
// empty result means the pair has no usable economic overlap.
func CalculateRatios(records []model.EconomicRecord, countryA, countryB string) model.RatioSet {
	var indicators []string
	seen := make(map[string]struct{})
	latestA := make(map[string]latest)
	latestB := make(map[string]latest)

	for _, r := range records {
		if _, ok := seen[r.Indicator]; !ok {
			seen[r.Indicator] = struct{}{}
			indicators = append(indicators, r.Indicator)
		}
		if r.Country == countryA {
			cur := latestA[r.Indicator]
			if !cur.ok || r.Year >= cur.year {
				latestA[r.Indicator] = latest{value: r.Value, year: r.Year, ok: true}
			}
		}
		if r.Country == countryB {
			cur := latestB[r.Indicator]
			if !cur.ok || r.Year >= cur.year {
				latestB[r.Indicator] = latest{value: r.Value, year: r.Year, ok: true}
			}
		}
	}

	ratios := make(model.RatioSet)
	for _, ind := range indicators {
		a, b := latestA[ind], latestB[ind]
		if !a.ok || !b.ok {
			continue
		}
		if b.value == 0 {
			continue
		}
		ratios[ind+"_ratio"] = a.value / b.value
		ratios[ind+"_gap"] = math.Abs(a.value - b.value)
		ratios[ind+"_"+countryA] = a.value
		ratios[ind+"_"+countryB] = b.value
		ratios[ind+"_year"] = float64(a.year)
	}

	return ratios
}
