package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/fetcher"
	"github.com/geoborder/borderlens/internal/geo"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download economic and geographic source datasets",
	Long:  "Fetches World Bank indicator data for the configured country set and world boundary GeoJSON from GitHub sources, writing raw files under the data directory.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		manifest, err := econ.LoadManifest(cfg.Integrate.ManifestPath)
		if err != nil {
			return eris.Wrap(err, "download")
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			Timeout:      time.Duration(cfg.Download.TimeoutSecs) * time.Second,
			MaxRetries:   cfg.Download.MaxRetries,
			RateLimiters: fetcher.DefaultRateLimiters(),
		})

		econOK, err := downloadIndicators(ctx, f, manifest)
		if err != nil {
			return eris.Wrap(err, "download")
		}

		geoDir := filepath.Join(cfg.DataDir, "raw", "geographic")
		geoCount, geoErr := geo.DownloadBoundaries(ctx, f, geoDir, geo.DefaultSources())
		if geoErr != nil {
			zap.L().Warn("boundary download failed", zap.Error(geoErr))
		}
		if err := geo.DownloadHistorical(ctx, f, geoDir); err != nil {
			zap.L().Warn("historical boundary download failed", zap.Error(err))
		}

		if econOK == 0 && geoCount == 0 {
			return eris.New("download: no dataset could be downloaded")
		}

		if err := writeCompletionFlag(econOK, len(manifest.Indicators), geoCount); err != nil {
			return eris.Wrap(err, "download")
		}

		fmt.Printf("Downloaded %d/%d indicators, %d boundary sources\n",
			econOK, len(manifest.Indicators), geoCount)
		return nil
	},
}

// downloadIndicators fetches every manifest indicator concurrently with a
// bounded worker count. Individual failures are logged and tolerated.
func downloadIndicators(ctx context.Context, f fetcher.Fetcher, manifest econ.Manifest) (int, error) {
	econDir := filepath.Join(cfg.DataDir, "raw", "economic")
	if err := os.MkdirAll(econDir, 0o755); err != nil {
		return 0, eris.Wrap(err, "create economic dir")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Download.Concurrency)

	results := make([]bool, len(manifest.Indicators))
	for i, ind := range manifest.Indicators {
		i, ind := i, ind
		g.Go(func() error {
			u := indicatorURL(ind)
			dest := filepath.Join(econDir, ind.RawFilename())

			n, err := f.DownloadToFile(gctx, u, dest)
			if err != nil {
				zap.L().Warn("indicator download failed",
					zap.String("indicator", ind.Name),
					zap.Error(err),
				)
				return nil
			}

			zap.L().Info("indicator downloaded",
				zap.String("indicator", ind.Name),
				zap.Int64("bytes", n),
			)
			results[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var ok int
	for _, succeeded := range results {
		if succeeded {
			ok++
		}
	}
	return ok, nil
}

// indicatorURL builds the World Bank API URL for one indicator over the
// configured country and date range.
func indicatorURL(ind econ.Indicator) string {
	base := strings.TrimSuffix(cfg.Download.WorldBankBaseURL, "/")
	countries := strings.Join(cfg.Download.Countries, ";")

	q := url.Values{}
	q.Set("format", "json")
	q.Set("per_page", "5000")
	q.Set("date", cfg.Download.DateRange)

	return fmt.Sprintf("%s/country/%s/indicator/%s?%s", base, countries, ind.Code, q.Encode())
}

// writeCompletionFlag drops a marker file summarizing the download outcome.
func writeCompletionFlag(econOK, econTotal, geoCount int) error {
	path := filepath.Join(cfg.DataDir, "download_complete.flag")
	content := fmt.Sprintf("Download completed: %d/%d indicators, %d boundary sources\n",
		econOK, econTotal, geoCount)
	return eris.Wrap(os.WriteFile(path, []byte(content), 0o644), "write completion flag")
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
