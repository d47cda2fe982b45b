package integrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/model"
)

func TestNewRequiresData(t *testing.T) {
	_, err := New(nil, econ.DefaultBorderPairs())
	assert.ErrorIs(t, err, econ.ErrNoData)

	_, err = New([]model.EconomicRecord{rec("China", "gdp", 2019, 100)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no border pairs")
}

func TestIntegrationEndToEnd(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 50),
	}
	pairs := []model.BorderPair{
		{Country1: "China", Country2: "India", BorderLengthKM: 3488},
	}

	it, err := New(records, pairs)
	require.NoError(t, err)

	rows := it.Run()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "China ↔ India", row.BorderPair)
	assert.Equal(t, "China", row.Country1)
	assert.Equal(t, "India", row.Country2)
	assert.InDelta(t, 3488.0, row.BorderLengthKM, 1e-9)
	assert.InDelta(t, 2.0, row.Ratios["gdp_ratio"], 1e-9)
	assert.InDelta(t, 50.0, row.Ratios["gdp_gap"], 1e-9)
}

func TestIntegrationZeroDenominatorDropsIndicatorKeys(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 0),
		rec("China", "population", 2019, 1400),
		rec("India", "population", 2019, 1380),
	}
	pairs := []model.BorderPair{
		{Country1: "China", Country2: "India", BorderLengthKM: 3488},
	}

	it, err := New(records, pairs)
	require.NoError(t, err)

	rows := it.Run()
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Ratios, "gdp_ratio")
	assert.NotContains(t, rows[0].Ratios, "gdp_gap")
	assert.Contains(t, rows[0].Ratios, "population_ratio")
}

func TestIntegrationDropsUnresolvablePairs(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 50),
	}
	pairs := []model.BorderPair{
		{Country1: "China", Country2: "India", BorderLengthKM: 3488},
		{Country1: "Atlantis", Country2: "Lemuria", BorderLengthKM: 1000},
	}

	it, err := New(records, pairs)
	require.NoError(t, err)

	rows := it.Run()
	require.Len(t, rows, 1)
	assert.Equal(t, "China ↔ India", rows[0].BorderPair)
}

func TestIntegrationDropsPairsWithoutOverlap(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("Canada", "trade", 2019, 60),
	}
	pairs := []model.BorderPair{
		{Country1: "China", Country2: "Canada", BorderLengthKM: 100},
	}

	it, err := New(records, pairs)
	require.NoError(t, err)

	rows := it.Run()
	assert.Empty(t, rows)
}

func TestIntegrationResolvesThroughAliasAndSubstring(t *testing.T) {
	records := []model.EconomicRecord{
		rec("United States", "gdp", 2019, 200),
		rec("Russian Federation", "gdp", 2019, 40),
	}
	pairs := []model.BorderPair{
		// Alias hit and substring hit respectively.
		{Country1: "United States of America", Country2: "Russia", BorderLengthKM: 49},
	}

	it, err := New(records, pairs)
	require.NoError(t, err)

	rows := it.Run()
	require.Len(t, rows, 1)
	// Raw value keys carry the resolved economic names.
	assert.Contains(t, rows[0].Ratios, "gdp_United States")
	assert.Contains(t, rows[0].Ratios, "gdp_Russian Federation")
	// The row itself keeps the original border vocabulary.
	assert.Equal(t, "United States of America", rows[0].Country1)
	assert.InDelta(t, 5.0, rows[0].Ratios["gdp_ratio"], 1e-9)
}

func TestIntegratorRowsAlwaysHaveRatios(t *testing.T) {
	records := []model.EconomicRecord{
		rec("China", "gdp", 2019, 100),
		rec("India", "gdp", 2019, 50),
		rec("Germany", "trade", 2019, 80),
	}

	it, err := New(records, econ.DefaultBorderPairs())
	require.NoError(t, err)

	for _, row := range it.Run() {
		assert.NotEmpty(t, row.Ratios, row.BorderPair)
	}
}
