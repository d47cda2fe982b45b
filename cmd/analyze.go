package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/geoborder/borderlens/internal/analyze"
	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/integrate"
	"github.com/geoborder/borderlens/internal/model"
	"github.com/geoborder/borderlens/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Correlate border length with economic ratios",
	Long:  "Reads the latest integration run from the store (or re-integrates with --fresh), correlates border length against every derived ratio column, and prints the result.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fresh, _ := cmd.Flags().GetBool("fresh")

		var rows []model.IntegratedRow
		var columns []string

		if !fresh {
			stored, storedCols, err := rowsFromStore(ctx)
			if err == nil {
				rows, columns = stored, storedCols
			} else if !eris.Is(err, store.ErrNotFound) {
				return eris.Wrap(err, "analyze")
			}
		}

		if rows == nil {
			records, err := loadRecords()
			if err != nil {
				return eris.Wrap(err, "analyze")
			}
			pairs, err := econ.LoadBorderPairs(cfg.Integrate.PairsFile)
			if err != nil {
				return eris.Wrap(err, "analyze")
			}
			it, err := integrate.New(records, pairs)
			if err != nil {
				return eris.Wrap(err, "analyze")
			}
			rows = it.Run()
			columns = integrate.BuildColumns(rows, it.Indicators())
		}

		result := analyze.Patterns(rows, columns)
		printAnalysis(result)
		return nil
	},
}

// rowsFromStore loads the latest completed run's rows. The column set is
// rebuilt from the stored ratio keys, sorted, which keeps ratio-column
// iteration deterministic across invocations.
func rowsFromStore(ctx context.Context) ([]model.IntegratedRow, []string, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close() //nolint:errcheck

	run, err := st.LatestRun(ctx)
	if err != nil {
		return nil, nil, err
	}
	if run.Status != model.RunStatusCompleted {
		return nil, nil, store.ErrNotFound
	}

	rows, err := st.RowsForRun(ctx, run.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, store.ErrNotFound
	}

	seen := make(map[string]struct{})
	var ratioCols []string
	for _, row := range rows {
		for k := range row.Ratios {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				ratioCols = append(ratioCols, k)
			}
		}
	}
	sort.Strings(ratioCols)

	columns := append([]string{"border_pair", "country_1", "country_2", "border_length_km"}, ratioCols...)
	return rows, columns, nil
}

func printAnalysis(result *model.AnalysisResult) {
	p := message.NewPrinter(language.English)

	p.Printf("Border pairs:          %d\n", result.TotalBorderPairs)
	p.Printf("Average border length: %.1f km\n", result.AverageBorderLength)

	if len(result.EconomicCorrelations) > 0 {
		fmt.Println("\nCorrelations with border length:")
		cols := make([]string, 0, len(result.EconomicCorrelations))
		for col := range result.EconomicCorrelations {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Printf("  %-40s r=%+.3f\n", col, result.EconomicCorrelations[col])
		}
	} else {
		fmt.Println("\nNo defined correlations.")
	}

	for _, insight := range result.KeyInsights {
		fmt.Println("\n" + insight)
	}
}

func init() {
	analyzeCmd.Flags().Bool("fresh", false, "re-run integration instead of reading the latest stored run")
	rootCmd.AddCommand(analyzeCmd)
}
