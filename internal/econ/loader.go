package econ

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geoborder/borderlens/internal/model"
)

// ErrNoData is returned when no economic records could be loaded from any
// indicator source. Individual missing or corrupt sources are skipped; only
// total absence of usable data is fatal.
var ErrNoData = eris.New("econ: no economic data could be loaded")

// wbRecord mirrors the World Bank API record shape inside the raw files.
type wbRecord struct {
	Value   *float64 `json:"value"`
	Country struct {
		Value string `json:"value"`
	} `json:"country"`
	CountryISO3 string `json:"countryiso3code"`
	Date        string `json:"date"`
}

// Loader reads per-indicator raw JSON files into one long-form record table.
type Loader struct {
	dataDir  string
	manifest Manifest
	log      *zap.Logger
}

// NewLoader creates a loader rooted at dataDir for the given indicator set.
func NewLoader(dataDir string, manifest Manifest) *Loader {
	return &Loader{
		dataDir:  dataDir,
		manifest: manifest,
		log:      zap.L().With(zap.String("component", "econ.loader")),
	}
}

// Load reads every indicator's raw file and concatenates the surviving
// records. Sources that are missing or unparsable are logged and skipped;
// ErrNoData is returned only when nothing loads at all.
func (l *Loader) Load() ([]model.EconomicRecord, error) {
	var all []model.EconomicRecord

	for _, ind := range l.manifest.Indicators {
		path := filepath.Join(l.dataDir, "raw", "economic", ind.RawFilename())

		records, err := l.loadIndicator(ind.Name, path)
		if err != nil {
			l.log.Warn("skipping indicator source",
				zap.String("indicator", ind.Name),
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		l.log.Info("loaded indicator",
			zap.String("indicator", ind.Name),
			zap.Int("records", len(records)),
		)
		all = append(all, records...)
	}

	if len(all) == 0 {
		return nil, ErrNoData
	}

	l.log.Info("economic data loaded", zap.Int("total_records", len(all)))
	return all, nil
}

// loadIndicator parses one raw World Bank JSON file. The file is a
// two-element array whose second element holds the observation list.
// Null-valued observations are discarded.
func (l *Loader) loadIndicator(indicator, path string) ([]model.EconomicRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read file")
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, eris.Wrap(err, "parse envelope")
	}
	if len(payload) < 2 {
		return nil, eris.Errorf("expected 2-element response array, got %d elements", len(payload))
	}

	var raw []wbRecord
	if err := json.Unmarshal(payload[1], &raw); err != nil {
		return nil, eris.Wrap(err, "parse records")
	}

	var records []model.EconomicRecord
	var badYears int
	for _, r := range raw {
		if r.Value == nil {
			continue
		}
		year, err := strconv.Atoi(r.Date)
		if err != nil {
			badYears++
			continue
		}
		records = append(records, model.EconomicRecord{
			Country:     r.Country.Value,
			CountryCode: r.CountryISO3,
			Year:        year,
			Value:       *r.Value,
			Indicator:   indicator,
		})
	}

	if badYears > 0 {
		l.log.Warn("skipped records with unparsable years",
			zap.String("indicator", indicator),
			zap.Int("skipped", badYears),
		)
	}

	return records, nil
}

// Countries returns the sorted distinct country names in the record table.
func Countries(records []model.EconomicRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		if _, ok := seen[r.Country]; !ok {
			seen[r.Country] = struct{}{}
			names = append(names, r.Country)
		}
	}
	sort.Strings(names)
	return names
}

// Indicators returns the distinct indicators in first-seen order.
func Indicators(records []model.EconomicRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		if _, ok := seen[r.Indicator]; !ok {
			seen[r.Indicator] = struct{}{}
			names = append(names, r.Indicator)
		}
	}
	return names
}
