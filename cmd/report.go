package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/geoborder/borderlens/internal/analyze"
	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/integrate"
	"github.com/geoborder/borderlens/internal/model"
	"github.com/geoborder/borderlens/internal/report"
	"github.com/geoborder/borderlens/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an HTML analysis report",
	Long:  "Runs pattern analysis over the latest stored integration run (or a fresh integration) and renders an HTML report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		output, _ := cmd.Flags().GetString("output")

		var rows []model.IntegratedRow
		var columns []string

		stored, storedCols, err := rowsFromStore(ctx)
		switch {
		case err == nil:
			rows, columns = stored, storedCols
		case eris.Is(err, store.ErrNotFound):
			records, err := loadRecords()
			if err != nil {
				return eris.Wrap(err, "report")
			}
			pairs, err := econ.LoadBorderPairs(cfg.Integrate.PairsFile)
			if err != nil {
				return eris.Wrap(err, "report")
			}
			it, err := integrate.New(records, pairs)
			if err != nil {
				return eris.Wrap(err, "report")
			}
			rows = it.Run()
			columns = integrate.BuildColumns(rows, it.Indicators())
		default:
			return eris.Wrap(err, "report")
		}

		result := analyze.Patterns(rows, columns)
		if err := report.Write(result, rows, output); err != nil {
			return eris.Wrap(err, "report")
		}

		fmt.Printf("Report generated: %s\n", output)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("output", "data/outputs/border_report.html", "output path for the HTML report")
	rootCmd.AddCommand(reportCmd)
}
