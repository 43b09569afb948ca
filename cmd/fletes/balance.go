package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [debt-id]",
	Short: "Print a debt statement, or the summary of every debt",
	Example: `  fletes balance
  fletes balance 3f1c9a52-5a0e-4d43-9b8c-7f1e2a4b6c10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	var id uuid.UUID

	if len(args) == 1 {
		parsed, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid debt id %q: %w", args[0], err)
		}

		id = parsed
	}

	ctx := cmd.Context()

	db, err := app.openDB(ctx)
	if err != nil {
		return err
	}

	svc := app.reportService(db)

	var text string
	if id == uuid.Nil {
		text, err = svc.Summary(ctx)
	} else {
		text, err = svc.DebtStatement(ctx, id)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), text)

	return err
}
