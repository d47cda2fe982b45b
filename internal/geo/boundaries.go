// Package geo downloads and validates world country boundary data.
package geo

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/geoborder/borderlens/internal/fetcher"
)

// minFeatureCount is the sanity bound for a world boundary collection: any
// real world-country dataset has well over 100 features.
const minFeatureCount = 100

// PrimaryFilename is the standardized boundary file the pipeline reads.
const PrimaryFilename = "world_countries_primary.geojson"

// historicalURL points at the 1938 world basemap used for border-change work.
const historicalURL = "https://raw.githubusercontent.com/aourednik/historical-basemaps/master/GeoJSON/World_1938.geojson"

// Source describes one candidate boundary dataset.
type Source struct {
	Name     string
	URL      string
	Filename string
}

// DefaultSources returns the boundary sources in priority order. The first
// source that downloads and validates becomes the primary boundary file.
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "datasets/geo-countries",
			URL:      "https://raw.githubusercontent.com/datasets/geo-countries/main/data/countries.geojson",
			Filename: "world_countries_datasets.geojson",
		},
		{
			Name:     "johan/world.geo.json",
			URL:      "https://raw.githubusercontent.com/johan/world.geo.json/master/countries.geo.json",
			Filename: "world_countries_johan.geojson",
		},
		{
			Name:     "martynafford/natural-earth-geojson",
			URL:      "https://raw.githubusercontent.com/martynafford/natural-earth-geojson/master/10m/cultural/ne_10m_admin_0_countries.geojson",
			Filename: "world_countries_natural_earth.geojson",
		},
	}
}

// DownloadBoundaries fetches each boundary source, keeps the ones that parse
// as a plausible world FeatureCollection, and writes the first success as
// the primary boundary file. Returns the number of sources that succeeded;
// zero successes is an error.
func DownloadBoundaries(ctx context.Context, f fetcher.Fetcher, destDir string, sources []Source) (int, error) {
	log := zap.L().With(zap.String("component", "geo.boundaries"))

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, eris.Wrap(err, "geo: create boundary dir")
	}

	var succeeded int
	for _, src := range sources {
		data, err := fetchAll(ctx, f, src.URL)
		if err != nil {
			log.Warn("boundary source failed", zap.String("source", src.Name), zap.Error(err))
			continue
		}

		features, err := ValidateBoundaryCollection(data)
		if err != nil {
			log.Warn("boundary source rejected", zap.String("source", src.Name), zap.Error(err))
			continue
		}

		path := filepath.Join(destDir, src.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return succeeded, eris.Wrapf(err, "geo: write %s", path)
		}

		succeeded++
		log.Info("boundary source downloaded",
			zap.String("source", src.Name),
			zap.Int("features", features),
		)

		if succeeded == 1 {
			primary := filepath.Join(destDir, PrimaryFilename)
			if err := os.WriteFile(primary, data, 0o644); err != nil {
				return succeeded, eris.Wrap(err, "geo: write primary boundary file")
			}
			log.Info("primary boundary file created", zap.String("path", primary))
		}
	}

	if succeeded == 0 {
		return 0, eris.New("geo: no boundary source could be downloaded")
	}
	return succeeded, nil
}

// DownloadHistorical fetches the 1938 historical basemap. Best-effort: the
// caller treats failure as a warning, not a pipeline error.
func DownloadHistorical(ctx context.Context, f fetcher.Fetcher, destDir string) error {
	data, err := fetchAll(ctx, f, historicalURL)
	if err != nil {
		return eris.Wrap(err, "geo: download historical boundaries")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return eris.Wrap(err, "geo: parse historical boundaries")
	}
	if len(fc.Features) == 0 {
		return eris.New("geo: historical boundary data has no features")
	}

	path := filepath.Join(destDir, "world_1938_historical.geojson")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geo: write %s", path)
	}

	zap.L().Info("historical boundaries downloaded",
		zap.String("component", "geo.boundaries"),
		zap.Int("features", len(fc.Features)),
	)
	return nil
}

// ValidateBoundaryCollection parses data as GeoJSON and checks it holds a
// plausible world-country FeatureCollection. Returns the feature count.
func ValidateBoundaryCollection(data []byte) (int, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return 0, eris.Wrap(err, "parse FeatureCollection")
	}
	if len(fc.Features) <= minFeatureCount {
		return 0, eris.Errorf("only %d features, want more than %d", len(fc.Features), minFeatureCount)
	}
	return len(fc.Features), nil
}

func fetchAll(ctx context.Context, f fetcher.Fetcher, url string) ([]byte, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck
	return io.ReadAll(body)
}
