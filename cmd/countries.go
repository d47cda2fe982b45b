package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/reconcile"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries present in the economic data",
	Long:  "Loads the economic dataset and lists its distinct country names. With --check, probes names through the reconciler and shows resolution results and near-misses.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords()
		if err != nil {
			return eris.Wrap(err, "countries")
		}

		names := econ.Countries(records)

		p := message.NewPrinter(language.English)
		p.Printf("Economic records: %d\n", len(records))
		p.Printf("Distinct countries: %d\n\n", len(names))
		for i, name := range names {
			fmt.Printf("%3d. %s\n", i+1, name)
		}

		checks, _ := cmd.Flags().GetStringSlice("check")
		if len(checks) == 0 {
			return nil
		}

		resolver := reconcile.NewResolver(names)
		fmt.Println("\nName resolution:")
		for _, probe := range checks {
			if resolved, ok := resolver.Resolve(probe); ok {
				fmt.Printf("  %-30s -> %s\n", probe, resolved)
				continue
			}
			line := fmt.Sprintf("  %-30s -> NOT FOUND", probe)
			if candidates := resolver.Candidates(probe); len(candidates) > 0 {
				line += " (similar: " + strings.Join(candidates, ", ") + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	countriesCmd.Flags().StringSlice("check", nil, "country names to probe through the reconciler")
	rootCmd.AddCommand(countriesCmd)
}
