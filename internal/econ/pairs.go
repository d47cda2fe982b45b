package econ

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/geoborder/borderlens/internal/model"
)

// DefaultBorderPairs returns the built-in border pair table. The pairs are
// chosen so both countries appear in the default economic download set.
func DefaultBorderPairs() []model.BorderPair {
	return []model.BorderPair{
		{Country1: "China", Country2: "India", BorderLengthKM: 3488},
		{Country1: "United States", Country2: "Canada", BorderLengthKM: 8891},
		{Country1: "Germany", Country2: "Poland", BorderLengthKM: 467},
		{Country1: "France", Country2: "Spain", BorderLengthKM: 623},
		{Country1: "India", Country2: "Pakistan", BorderLengthKM: 3323},
	}
}

// LoadBorderPairs reads a border pair table from a CSV file with header
// country_1,country_2,border_length_km. An empty path returns the built-in
// table. Every row is validated; a bad row fails the whole load.
func LoadBorderPairs(path string) ([]model.BorderPair, error) {
	if path == "" {
		return DefaultBorderPairs(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "econ: open pairs file %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "econ: read pairs header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"country_1", "country_2", "border_length_km"} {
		if _, ok := col[required]; !ok {
			return nil, eris.Errorf("econ: pairs file missing column %q", required)
		}
	}

	var pairs []model.BorderPair
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "econ: read pairs row %d", line)
		}

		length, err := strconv.ParseFloat(row[col["border_length_km"]], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "econ: pairs row %d: parse border_length_km", line)
		}

		pair := model.BorderPair{
			Country1:       row[col["country_1"]],
			Country2:       row[col["country_2"]],
			BorderLengthKM: length,
		}
		if err := pair.Validate(); err != nil {
			return nil, eris.Wrapf(err, "econ: pairs row %d", line)
		}
		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return nil, eris.Errorf("econ: pairs file %s contains no rows", path)
	}

	return pairs, nil
}
