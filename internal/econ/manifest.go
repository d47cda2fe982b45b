// Package econ loads World Bank style economic indicator data into the
// long-form record table the rest of the pipeline works on.
package econ

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Indicator describes one economic time series tracked by the pipeline.
type Indicator struct {
	// Name is the short pipeline-internal identifier, e.g. "gdp_per_capita".
	Name string `yaml:"name"`
	// Code is the World Bank indicator code, e.g. "NY.GDP.PCAP.CD".
	Code string `yaml:"code"`
}

// Manifest lists the indicators a run operates on, in order.
type Manifest struct {
	Indicators []Indicator `yaml:"indicators"`
}

// RawFilename returns the raw JSON file name for an indicator.
func (i Indicator) RawFilename() string {
	return fmt.Sprintf("%s_raw.json", i.Name)
}

// DefaultManifest returns the built-in indicator set.
func DefaultManifest() Manifest {
	return Manifest{Indicators: []Indicator{
		{Name: "gdp_per_capita", Code: "NY.GDP.PCAP.CD"},
		{Name: "trade_percent", Code: "NE.TRD.GNFS.ZS"},
		{Name: "external_debt", Code: "DT.DOD.DECT.CD"},
		{Name: "fdi", Code: "BX.KLT.DINV.WD.GD.ZS"},
		{Name: "military_exp", Code: "MS.MIL.XPND.GD.ZS"},
		{Name: "population", Code: "SP.POP.TOTL"},
	}}
}

// LoadManifest reads an indicator manifest from a YAML file. An empty path
// returns the built-in default set.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return DefaultManifest(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, eris.Wrapf(err, "econ: read manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, eris.Wrap(err, "econ: parse manifest")
	}

	if len(m.Indicators) == 0 {
		return Manifest{}, eris.Errorf("econ: manifest %s lists no indicators", path)
	}
	for _, ind := range m.Indicators {
		if ind.Name == "" {
			return Manifest{}, eris.Errorf("econ: manifest %s contains an unnamed indicator", path)
		}
	}

	return m, nil
}
