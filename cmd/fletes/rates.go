package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Fetch and print the current VES per USD rates",
	Example: `  fletes rates
  fletes rates --json`,
	Args: cobra.NoArgs,
	RunE: runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)

	ratesCmd.Flags().Bool("json", false, "Print the snapshot as JSON")
}

func runRates(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	snap, err := app.ratesService(nil).Current(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(snap)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, q := range []struct {
		label string
		price string
		at    string
	}{
		{"BCV", snap.BCV.Price.StringFixed(2), snap.BCV.LastUpdate},
		{"Paralelo", snap.Parallel.Price.StringFixed(2), snap.Parallel.LastUpdate},
		{"Promedio", snap.Average.Price.StringFixed(2), snap.Average.LastUpdate},
	} {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", q.label, q.price, q.at)
	}

	return tw.Flush()
}
