package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export reports",
}

var reportExpensesCmd = &cobra.Command{
	Use:     "gastos",
	Short:   "Write the expenses in a date range as CSV to stdout",
	Example: `  fletes report gastos --from 2025-03-01 --to 2025-03-31 > marzo.csv`,
	Args:    cobra.NoArgs,
	RunE:    runReportExpenses,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportExpensesCmd)

	reportExpensesCmd.Flags().String("from", "", "First expense date, YYYY-MM-DD")
	reportExpensesCmd.Flags().String("to", "", "Last expense date, YYYY-MM-DD")
	reportExpensesCmd.Flags().String("category", "", "Only this category")
	reportExpensesCmd.Flags().String("currency", "", "Only this original currency: USD or VES")
}

func expenseFilterFromFlags(cmd *cobra.Command) (expense.ListFilter, error) {
	var filter expense.ListFilter

	for _, name := range []string{"from", "to"} {
		s, _ := cmd.Flags().GetString(name)
		if s == "" {
			continue
		}

		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, fmt.Errorf("invalid --%s, use YYYY-MM-DD: %w", name, err)
		}

		if name == "from" {
			filter.From = &d
		} else {
			filter.To = &d
		}
	}

	if s, _ := cmd.Flags().GetString("category"); s != "" {
		c, ok := expense.ParseCategory(s)
		if !ok {
			return filter, fmt.Errorf("unknown category %q", s)
		}

		filter.Category = &c
	}

	if s, _ := cmd.Flags().GetString("currency"); s != "" {
		c, err := money.ParseCurrency(s)
		if err != nil {
			return filter, err
		}

		filter.Currencies = []money.Currency{c}
	}

	return filter, nil
}

func runReportExpenses(cmd *cobra.Command, args []string) error {
	filter, err := expenseFilterFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	db, err := app.openDB(ctx)
	if err != nil {
		return err
	}

	n, err := app.reportService(db).ExpensesCSV(ctx, filter, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	app.log.Info().Int("rows", n).Msg("expenses exported")

	return nil
}
