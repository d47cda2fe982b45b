package integrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoborder/borderlens/internal/model"
)

func rec(country, indicator string, year int, value float64) model.EconomicRecord {
	return model.EconomicRecord{Country: country, Indicator: indicator, Year: year, Value: value}
}

func TestCalculateRatiosBasic(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 50),
	}

	ratios := CalculateRatios(records, "China", "India")
	require.Len(t, ratios, 5)
	assert.InDelta(t, 2.0, ratios["gdp_ratio"], 1e-9)
	assert.InDelta(t, 50.0, ratios["gdp_gap"], 1e-9)
	assert.InDelta(t, 100.0, ratios["gdp_China"], 1e-9)
	assert.InDelta(t, 50.0, ratios["gdp_India"], 1e-9)
	assert.InDelta(t, 2019.0, ratios["gdp_year"], 1e-9)
}

func TestCalculateRatiosUsesLatestYear(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2015, 70),
		rec("China", "gdp", 2019, 100),
		rec("China", "gdp", 2017, 85),
		rec("India", "gdp", 2018, 40),
		rec("India", "gdp", 2016, 30),
	}

	ratios := CalculateRatios(records, "China", "India")
	assert.InDelta(t, 2.5, ratios["gdp_ratio"], 1e-9)
	// Year reported is country A's latest year.
	assert.InDelta(t, 2019.0, ratios["gdp_year"], 1e-9)
	assert.InDelta(t, 40.0, ratios["gdp_India"], 1e-9)
}

func TestCalculateRatiosYearTieTakesLastRecord(t *testing.T) {
	// Two records share the latest year; the one appearing last in input
	// order wins, matching a stable ascending-year sort taking the tail.
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("China", "gdp", 2019, 120),
		rec("India", "gdp", 2019, 50),
	}

	ratios := CalculateRatios(records, "China", "India")
	assert.InDelta(t, 2.4, ratios["gdp_ratio"], 1e-9)
	assert.InDelta(t, 120.0, ratios["gdp_China"], 1e-9)
}

func TestCalculateRatiosSkipsIndicatorMissingForOneCountry(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 50),
		rec("China", "population", 2019, 1400),
		// India has no population record.
	}

	ratios := CalculateRatios(records, "China", "India")
	require.Len(t, ratios, 5)
	for key := range ratios {
		assert.NotContains(t, key, "population")
	}
}

func TestCalculateRatiosSkipsZeroDenominator(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 0),
		rec("China", "trade", 2019, 30),
		rec("India", "trade", 2019, 20),
	}

	ratios := CalculateRatios(records, "China", "India")
	assert.NotContains(t, ratios, "gdp_ratio")
	assert.NotContains(t, ratios, "gdp_gap")
	assert.NotContains(t, ratios, "gdp_China")
	assert.NotContains(t, ratios, "gdp_India")
	assert.NotContains(t, ratios, "gdp_year")
	// The other indicator is unaffected.
	assert.InDelta(t, 1.5, ratios["trade_ratio"], 1e-9)
}

func TestCalculateRatiosNoOverlapIsEmpty(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("Canada", "trade", 2019, 60),
	}

	ratios := CalculateRatios(records, "China", "Canada")
	assert.Empty(t, ratios)
}
