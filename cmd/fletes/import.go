package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/importer"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse an expense spreadsheet and optionally store it",
	Long: `Parse a planilla or bank statement export into gastos.

Without --commit the parsed rows are only printed. With --commit they are
stored unless some already exist; add --skip-duplicates to store only the
new ones in that case.`,
	Example: `  fletes import gastos_marzo.csv
  fletes import extracto.csv --format banco --tipo-tasa paralelo --commit
  fletes import planilla.csv --tasa 64.71 --commit --skip-duplicates`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("format", "", "File layout: planilla or banco (default: detect)")
	importCmd.Flags().String("tipo-tasa", "", "Rate applied to rows without one: bcv, paralelo, promedio or personalizada")
	importCmd.Flags().String("tasa", "", "Custom VES per USD rate, implies --tipo-tasa personalizada")
	importCmd.Flags().Bool("commit", false, "Store the parsed rows")
	importCmd.Flags().Bool("skip-duplicates", false, "With --commit, store the new rows even if others already exist")
}

func importRequestFromFlags(cmd *cobra.Command) (importer.Request, error) {
	format, _ := cmd.Flags().GetString("format")
	rateType, _ := cmd.Flags().GetString("tipo-tasa")
	rate, _ := cmd.Flags().GetString("tasa")

	req := importer.Request{Format: importer.Format(format)}

	if rateType != "" {
		t, err := money.ParseRateType(rateType)
		if err != nil {
			return req, err
		}

		req.RateType = t
	}

	if rate != "" {
		d, err := money.ParseDecimal(rate)
		if err != nil {
			return req, fmt.Errorf("invalid --tasa: %w", err)
		}

		req.CustomRate = new(d)

		if req.RateType == "" {
			req.RateType = money.RateCustom
		}
	}

	return req, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	commit, _ := cmd.Flags().GetBool("commit")
	skipDuplicates, _ := cmd.Flags().GetBool("skip-duplicates")

	req, err := importRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	ctx := cmd.Context()

	db, err := app.openDB(ctx)
	if err != nil {
		return err
	}

	parsed, err := app.importService(db).Import(ctx, req, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s: %d filas (formato %s, %s)\n", args[0], len(parsed.Rows), parsed.Format, parsed.Charset)

	if err := printRows(out, parsed.Rows); err != nil {
		return err
	}

	if !commit {
		return nil
	}

	expenses := app.expenseService(db)

	result, err := expenses.ImportBatch(ctx, parsed.Rows)
	if err != nil {
		return err
	}

	if len(result.Conflicts) == 0 {
		fmt.Fprintf(out, "Importados: %d\n", len(result.Imported))
		return nil
	}

	fmt.Fprintf(out, "Duplicados: %d\n", len(result.Conflicts))

	for _, c := range result.Conflicts {
		fmt.Fprintf(out, "  %s  %s  (existe %s)\n",
			c.Incoming.ExpenseDate.Format(time.DateOnly), c.Incoming.Description, c.Existing.ID)
	}

	if !skipDuplicates {
		return fmt.Errorf("%d rows already exist, nothing stored (use --skip-duplicates)", len(result.Conflicts))
	}

	created, err := expenses.CreateBatch(ctx, result.New)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Importados: %d\n", len(created))

	return nil
}

func printRows(w io.Writer, rows []expense.CreateParams) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, r := range rows {
		amount := ""

		switch {
		case r.Bolivares != nil:
			amount = money.Format(*r.Bolivares, money.VES)
		case r.Divisa != nil:
			amount = money.Format(*r.Divisa, money.USD)
		}

		rate := ""
		if r.Rate != nil {
			rate = r.Rate.StringFixed(2)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ExpenseDate.Format(time.DateOnly), r.Category, amount, rate, r.Description)
	}

	return tw.Flush()
}
