package integrate

import (
	"sort"
	"strings"

	"github.com/geoborder/borderlens/internal/model"
)

// baseColumns are the fixed leading columns of the integrated table.
var baseColumns = []string{"border_pair", "country_1", "country_2", "border_length_km"}

// BuildColumns returns the fixed output column set for a run: the base
// columns plus the union of ratio-set keys across all rows. The schema is
// identical for every row; rows missing a column get an empty cell. Ratio
// columns are grouped per indicator in the order indicators were discovered
// in the source data, ordered ratio, gap, per-country raw values (sorted by
// country name), year. Only columns present in at least one row appear.
func BuildColumns(rows []model.IntegratedRow, indicators []string) []string {
	present := make(map[string]struct{})
	for _, row := range rows {
		for k := range row.Ratios {
			present[k] = struct{}{}
		}
	}

	cols := make([]string, 0, len(baseColumns)+len(present))
	cols = append(cols, baseColumns...)
	claimed := make(map[string]struct{})

	appendIf := func(key string) {
		if _, ok := present[key]; ok {
			cols = append(cols, key)
			claimed[key] = struct{}{}
		}
	}

	for _, ind := range indicators {
		appendIf(ind + "_ratio")
		appendIf(ind + "_gap")

		// Raw per-country columns carry the resolved country name as
		// suffix; collect and sort them for a stable order.
		var countryCols []string
		prefix := ind + "_"
		for k := range present {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			suffix := strings.TrimPrefix(k, prefix)
			if suffix == "ratio" || suffix == "gap" || suffix == "year" {
				continue
			}
			if _, taken := claimed[k]; !taken {
				countryCols = append(countryCols, k)
			}
		}
		sort.Strings(countryCols)
		for _, k := range countryCols {
			cols = append(cols, k)
			claimed[k] = struct{}{}
		}

		appendIf(ind + "_year")
	}

	// Keys not claimed by any manifest indicator still get deterministic
	// placement at the end.
	var rest []string
	for k := range present {
		if _, ok := claimed[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	cols = append(cols, rest...)

	return cols
}

// RatioColumns filters a column set down to the derived ratio columns.
func RatioColumns(columns []string) []string {
	var out []string
	for _, c := range columns {
		if strings.Contains(c, "ratio") {
			out = append(out, c)
		}
	}
	return out
}
