package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoborder/borderlens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "borderlens",
	Short: "Geopolitical border research pipeline",
	Long:  "Downloads geographic and World Bank economic datasets, joins border-length records with economic indicators, computes per-pair ratios and correlations, and emits reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
