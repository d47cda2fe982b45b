package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/integrate"
	"github.com/geoborder/borderlens/internal/model"
)

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Join border pairs with economic indicators",
	Long:  "Loads economic indicator data and the border pair table, reconciles country names, derives per-pair economic ratios, and writes the integrated table.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		records, err := loadRecords()
		if err != nil {
			return eris.Wrap(err, "integrate")
		}

		pairsFile, _ := cmd.Flags().GetString("pairs")
		if pairsFile == "" {
			pairsFile = cfg.Integrate.PairsFile
		}
		pairs, err := econ.LoadBorderPairs(pairsFile)
		if err != nil {
			return eris.Wrap(err, "integrate")
		}

		it, err := integrate.New(records, pairs)
		if err != nil {
			return eris.Wrap(err, "integrate")
		}
		rows := it.Run()

		columns := integrate.BuildColumns(rows, it.Indicators())
		outPath := integrate.OutputPath(cfg.DataDir)
		if err := integrate.WriteCSV(rows, columns, outPath); err != nil {
			return eris.Wrap(err, "integrate")
		}
		zap.L().Info("integrated table written", zap.String("path", outPath))

		if xlsxOut, _ := cmd.Flags().GetString("xlsx"); xlsxOut != "" {
			if err := integrate.WriteXLSX(rows, columns, xlsxOut); err != nil {
				return eris.Wrap(err, "integrate")
			}
			zap.L().Info("xlsx export written", zap.String("path", xlsxOut))
		}

		if err := persistRun(ctx, len(pairs), rows); err != nil {
			return eris.Wrap(err, "integrate")
		}

		fmt.Printf("Integrated %d of %d border pairs -> %s\n", len(rows), len(pairs), outPath)
		return nil
	},
}

// persistRun records the run and its rows in the SQLite store.
func persistRun(ctx context.Context, pairCount int, rows []model.IntegratedRow) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	run, err := st.CreateRun(ctx, pairCount)
	if err != nil {
		return err
	}
	if err := st.InsertRows(ctx, run.ID, rows); err != nil {
		_ = st.FinishRun(ctx, run.ID, model.RunStatusFailed, 0)
		return err
	}
	if err := st.FinishRun(ctx, run.ID, model.RunStatusCompleted, len(rows)); err != nil {
		return err
	}

	zap.L().Info("run persisted",
		zap.String("run_id", run.ID),
		zap.Int("rows", len(rows)),
	)
	return nil
}

func init() {
	integrateCmd.Flags().String("pairs", "", "CSV file with border pairs (country_1,country_2,border_length_km); defaults to the built-in table")
	integrateCmd.Flags().String("xlsx", "", "also export the integrated table to this XLSX path")
	rootCmd.AddCommand(integrateCmd)
}
